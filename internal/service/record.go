package service

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/saadjs/bmi-cli/internal/bmi"
	"github.com/saadjs/bmi-cli/internal/model"
)

type AddRecordInput struct {
	UserName   string
	Weight     float64
	WeightUnit string
	Height     float64
	HeightUnit string
	RecordedAt time.Time
	Notes      string
}

type AddRecordResult struct {
	RecordID int64
	UserID   int64
	BMI      float64
	Category bmi.Category
}

type RecordFilter struct {
	UserName string
	FromDate string
	ToDate   string
	Limit    int
}

// Compute converts inputs to metric and runs the BMI calculation
// without touching storage.
func Compute(weight float64, weightUnit string, height float64, heightUnit string) (float64, bmi.Category, error) {
	weightKg, err := ToKilograms(weight, weightUnit)
	if err != nil {
		return 0, "", err
	}
	heightM, err := ToMeters(height, heightUnit)
	if err != nil {
		return 0, "", err
	}
	value, err := bmi.Calculate(weightKg, heightM)
	if err != nil {
		return 0, "", err
	}
	return value, bmi.Categorize(value), nil
}

// AddRecord computes BMI for the given measurements and inserts one
// record, creating the user on first use. Records are immutable after
// insert; there is no update path.
func AddRecord(db *sql.DB, in AddRecordInput) (AddRecordResult, error) {
	weightKg, err := ToKilograms(in.Weight, in.WeightUnit)
	if err != nil {
		return AddRecordResult{}, err
	}
	heightM, err := ToMeters(in.Height, in.HeightUnit)
	if err != nil {
		return AddRecordResult{}, err
	}
	value, err := bmi.Calculate(weightKg, heightM)
	if err != nil {
		return AddRecordResult{}, err
	}
	category := bmi.Categorize(value)

	if in.RecordedAt.IsZero() {
		in.RecordedAt = time.Now()
	}
	recordedAt := in.RecordedAt.Truncate(time.Second).Format(time.RFC3339)

	userID, err := GetOrCreateUser(db, in.UserName)
	if err != nil {
		return AddRecordResult{}, err
	}
	res, err := db.Exec(`
INSERT INTO records(user_id, recorded_at, weight_kg, height_m, bmi, category, notes)
VALUES(?, ?, ?, ?, ?, ?, ?)
`, userID, recordedAt, weightKg, heightM, value, string(category), strings.TrimSpace(in.Notes))
	if err != nil {
		return AddRecordResult{}, fmt.Errorf("add record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return AddRecordResult{}, fmt.Errorf("resolve record id: %w", err)
	}
	slog.Debug("saved record", "user", in.UserName, "id", id, "bmi", value)
	return AddRecordResult{RecordID: id, UserID: userID, BMI: value, Category: category}, nil
}

// ListRecords returns a user's records ordered by measurement date,
// oldest first.
func ListRecords(db *sql.DB, f RecordFilter) ([]model.Record, error) {
	userID, err := FindUserByName(db, f.UserName)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, user_id, recorded_at, weight_kg, height_m, bmi, category, IFNULL(notes, '') FROM records WHERE user_id = ?`
	args := []any{userID}

	if strings.TrimSpace(f.FromDate) != "" {
		from, err := parseDateStart(f.FromDate)
		if err != nil {
			return nil, err
		}
		query += ` AND recorded_at >= ?`
		args = append(args, from)
	}
	if strings.TrimSpace(f.ToDate) != "" {
		to, err := parseDateEndExclusive(f.ToDate)
		if err != nil {
			return nil, err
		}
		query += ` AND recorded_at < ?`
		args = append(args, to)
	}

	query += ` ORDER BY recorded_at ASC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	items := make([]model.Record, 0)
	for rows.Next() {
		var r model.Record
		var recordedAtRaw string
		if err := rows.Scan(&r.ID, &r.UserID, &recordedAtRaw, &r.WeightKg, &r.HeightM, &r.BMI, &r.Category, &r.Notes); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		recorded, err := time.Parse(time.RFC3339, recordedAtRaw)
		if err != nil {
			return nil, fmt.Errorf("parse recorded_at: %w", err)
		}
		r.RecordedAt = recorded
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return items, nil
}

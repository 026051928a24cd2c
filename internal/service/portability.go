package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/saadjs/bmi-cli/internal/bmi"
)

type ExportRecord struct {
	User       string  `json:"user"`
	RecordedAt string  `json:"recorded_at"`
	WeightKg   float64 `json:"weight_kg"`
	HeightM    float64 `json:"height_m"`
	BMI        float64 `json:"bmi"`
	Category   string  `json:"category"`
	Notes      string  `json:"notes,omitempty"`
}

type ExportData struct {
	Users   []string       `json:"users"`
	Records []ExportRecord `json:"records"`
}

type ImportMode string

const (
	ImportModeFail    ImportMode = "fail"
	ImportModeSkip    ImportMode = "skip"
	ImportModeMerge   ImportMode = "merge"
	ImportModeReplace ImportMode = "replace"
)

type ImportOptions struct {
	Mode   ImportMode
	DryRun bool
}

type ImportReport struct {
	Inserted  int      `json:"inserted"`
	Skipped   int      `json:"skipped"`
	Conflicts int      `json:"conflicts"`
	Warnings  []string `json:"warnings,omitempty"`
}

// ExportDataSnapshot dumps all users and records. An empty userFilter
// exports everything; otherwise only the named user's data.
func ExportDataSnapshot(db *sql.DB, userFilter string) (*ExportData, error) {
	out := &ExportData{}
	userFilter = strings.TrimSpace(userFilter)

	userQuery := `SELECT name FROM users ORDER BY name COLLATE NOCASE ASC`
	userArgs := []any{}
	if userFilter != "" {
		if _, err := FindUserByName(db, userFilter); err != nil {
			return nil, err
		}
		userQuery = `SELECT name FROM users WHERE name = ?`
		userArgs = []any{userFilter}
	}
	userRows, err := db.Query(userQuery, userArgs...)
	if err != nil {
		return nil, fmt.Errorf("export users: %w", err)
	}
	for userRows.Next() {
		var name string
		if err := userRows.Scan(&name); err != nil {
			_ = userRows.Close()
			return nil, fmt.Errorf("scan export user: %w", err)
		}
		out.Users = append(out.Users, name)
	}
	_ = userRows.Close()

	recordQuery := `
SELECT u.name, r.recorded_at, r.weight_kg, r.height_m, r.bmi, r.category, IFNULL(r.notes, '')
FROM records r
JOIN users u ON u.id = r.user_id`
	recordArgs := []any{}
	if userFilter != "" {
		recordQuery += ` WHERE u.name = ?`
		recordArgs = append(recordArgs, userFilter)
	}
	recordQuery += ` ORDER BY r.recorded_at ASC`

	recordRows, err := db.Query(recordQuery, recordArgs...)
	if err != nil {
		return nil, fmt.Errorf("export records: %w", err)
	}
	for recordRows.Next() {
		var item ExportRecord
		if err := recordRows.Scan(&item.User, &item.RecordedAt, &item.WeightKg, &item.HeightM, &item.BMI, &item.Category, &item.Notes); err != nil {
			_ = recordRows.Close()
			return nil, fmt.Errorf("scan export record: %w", err)
		}
		out.Records = append(out.Records, item)
	}
	_ = recordRows.Close()

	return out, nil
}

// ImportDataSnapshot loads a snapshot. BMI and category are recomputed
// from weight/height on insert so the stored invariant holds regardless
// of what the snapshot claims. A record is a duplicate of an existing
// one when user, timestamp, weight, and height all match; records are
// immutable, so merge behaves like skip for duplicates.
func ImportDataSnapshot(db *sql.DB, data *ExportData, opts ImportOptions) (ImportReport, error) {
	report := ImportReport{}
	mode := normalizeImportMode(opts.Mode)

	tx, err := db.Begin()
	if err != nil {
		return report, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if mode == ImportModeReplace && !opts.DryRun {
		if err := clearAllDataTx(tx); err != nil {
			return report, err
		}
	}

	for _, name := range data.Users {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if opts.DryRun {
			continue
		}
		if _, err := tx.Exec(`INSERT OR IGNORE INTO users(name) VALUES(?)`, strings.TrimSpace(name)); err != nil {
			return report, fmt.Errorf("import user %q: %w", name, err)
		}
	}

	for idx, rec := range data.Records {
		user := strings.TrimSpace(rec.User)
		if user == "" {
			report.Warnings = append(report.Warnings, fmt.Sprintf("record[%d] missing user", idx))
			report.Conflicts++
			continue
		}
		recorded, err := time.Parse(time.RFC3339, rec.RecordedAt)
		if err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("record[%d] invalid recorded_at %q", idx, rec.RecordedAt))
			report.Conflicts++
			continue
		}
		weightKg := rec.WeightKg
		heightM := rec.HeightM
		value, err := bmi.Calculate(weightKg, heightM)
		if err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("record[%d] for %q: %v", idx, user, err))
			report.Conflicts++
			continue
		}
		category := bmi.Categorize(value)

		if opts.DryRun {
			report.Inserted++
			continue
		}

		if _, err := tx.Exec(`INSERT OR IGNORE INTO users(name) VALUES(?)`, user); err != nil {
			return report, fmt.Errorf("import record user %q: %w", user, err)
		}
		var userID int64
		if err := tx.QueryRow(`SELECT id FROM users WHERE name = ?`, user).Scan(&userID); err != nil {
			return report, fmt.Errorf("resolve record user %q: %w", user, err)
		}

		recordedAt := recorded.Truncate(time.Second).Format(time.RFC3339)
		var existingID int64
		err = tx.QueryRow(`
SELECT id FROM records
WHERE user_id = ? AND recorded_at = ? AND weight_kg = ? AND height_m = ?
LIMIT 1
`, userID, recordedAt, weightKg, heightM).Scan(&existingID)
		if err != nil && err != sql.ErrNoRows {
			return report, fmt.Errorf("check existing record for %q: %w", user, err)
		}
		if err == nil && existingID > 0 {
			switch mode {
			case ImportModeFail:
				report.Conflicts++
				return report, fmt.Errorf("import conflict for %q at %s", user, recordedAt)
			default:
				report.Skipped++
				continue
			}
		}

		if _, err := tx.Exec(`
INSERT INTO records(user_id, recorded_at, weight_kg, height_m, bmi, category, notes)
VALUES(?, ?, ?, ?, ?, ?, ?)
`, userID, recordedAt, weightKg, heightM, value, string(category), strings.TrimSpace(rec.Notes)); err != nil {
			return report, fmt.Errorf("import record for %q: %w", user, err)
		}
		report.Inserted++
	}

	if opts.DryRun {
		return report, nil
	}
	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("commit import tx: %w", err)
	}
	return report, nil
}

// ClearAllData deletes every record and every user in one transaction.
func ClearAllData(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin wipe tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := clearAllDataTx(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit wipe tx: %w", err)
	}
	return nil
}

func clearAllDataTx(tx *sql.Tx) error {
	for _, stmt := range []string{`DELETE FROM records`, `DELETE FROM users`} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("clear data: %w", err)
		}
	}
	return nil
}

func normalizeImportMode(mode ImportMode) ImportMode {
	switch mode {
	case ImportModeFail, ImportModeSkip, ImportModeMerge, ImportModeReplace:
		return mode
	default:
		return ImportModeMerge
	}
}

package service_test

import (
	"testing"
	"time"

	"github.com/saadjs/bmi-cli/internal/service"
)

func TestExportDataSnapshotRoundtrip(t *testing.T) {
	src := newTestDB(t)
	defer src.Close()

	when := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for _, in := range []service.AddRecordInput{
		{UserName: "Ava", Weight: 70, Height: 1.75, RecordedAt: when},
		{UserName: "Ben", Weight: 95, Height: 1.7, RecordedAt: when.Add(time.Hour)},
	} {
		if _, err := service.AddRecord(src, in); err != nil {
			t.Fatalf("seed record: %v", err)
		}
	}

	data, err := service.ExportDataSnapshot(src, "")
	if err != nil {
		t.Fatalf("export snapshot: %v", err)
	}
	if len(data.Users) != 2 || len(data.Records) != 2 {
		t.Fatalf("expected 2 users and 2 records, got %d and %d", len(data.Users), len(data.Records))
	}

	dst := newTestDB(t)
	defer dst.Close()
	report, err := service.ImportDataSnapshot(dst, data, service.ImportOptions{Mode: service.ImportModeMerge})
	if err != nil {
		t.Fatalf("import snapshot: %v", err)
	}
	if report.Inserted != 2 || report.Skipped != 0 || report.Conflicts != 0 {
		t.Fatalf("unexpected import report: %+v", report)
	}

	again, err := service.ExportDataSnapshot(dst, "")
	if err != nil {
		t.Fatalf("re-export snapshot: %v", err)
	}
	if len(again.Records) != 2 {
		t.Fatalf("expected 2 records after roundtrip, got %d", len(again.Records))
	}
}

func TestExportDataSnapshotUserFilter(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if _, err := service.AddRecord(sqldb, service.AddRecordInput{UserName: "Ava", Weight: 70, Height: 1.75}); err != nil {
		t.Fatalf("seed record: %v", err)
	}
	if _, err := service.AddRecord(sqldb, service.AddRecordInput{UserName: "Ben", Weight: 80, Height: 1.8}); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	data, err := service.ExportDataSnapshot(sqldb, "Ava")
	if err != nil {
		t.Fatalf("export filtered: %v", err)
	}
	if len(data.Users) != 1 || data.Users[0] != "Ava" {
		t.Fatalf("expected only Ava, got %v", data.Users)
	}
	if len(data.Records) != 1 || data.Records[0].User != "Ava" {
		t.Fatalf("expected one Ava record, got %+v", data.Records)
	}

	if _, err := service.ExportDataSnapshot(sqldb, "nobody"); err == nil {
		t.Fatalf("expected unknown-user error")
	}
}

func TestImportSkipsDuplicates(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	when := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	if _, err := service.AddRecord(sqldb, service.AddRecordInput{UserName: "Ava", Weight: 70, Height: 1.75, RecordedAt: when}); err != nil {
		t.Fatalf("seed record: %v", err)
	}
	data, err := service.ExportDataSnapshot(sqldb, "")
	if err != nil {
		t.Fatalf("export snapshot: %v", err)
	}

	report, err := service.ImportDataSnapshot(sqldb, data, service.ImportOptions{Mode: service.ImportModeSkip})
	if err != nil {
		t.Fatalf("import duplicates: %v", err)
	}
	if report.Inserted != 0 || report.Skipped != 1 {
		t.Fatalf("expected all duplicates skipped, got %+v", report)
	}
}

func TestImportModeFailOnConflict(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	when := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	if _, err := service.AddRecord(sqldb, service.AddRecordInput{UserName: "Ava", Weight: 70, Height: 1.75, RecordedAt: when}); err != nil {
		t.Fatalf("seed record: %v", err)
	}
	data, err := service.ExportDataSnapshot(sqldb, "")
	if err != nil {
		t.Fatalf("export snapshot: %v", err)
	}

	if _, err := service.ImportDataSnapshot(sqldb, data, service.ImportOptions{Mode: service.ImportModeFail}); err == nil {
		t.Fatalf("expected conflict error in fail mode")
	}
}

func TestImportModeReplaceWipesFirst(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if _, err := service.AddRecord(sqldb, service.AddRecordInput{UserName: "Old", Weight: 60, Height: 1.6}); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	incoming := &service.ExportData{
		Users: []string{"New"},
		Records: []service.ExportRecord{
			{User: "New", RecordedAt: "2026-03-01T08:00:00Z", WeightKg: 70, HeightM: 1.75},
		},
	}
	report, err := service.ImportDataSnapshot(sqldb, incoming, service.ImportOptions{Mode: service.ImportModeReplace})
	if err != nil {
		t.Fatalf("replace import: %v", err)
	}
	if report.Inserted != 1 {
		t.Fatalf("expected one insert, got %+v", report)
	}

	users, err := service.ListUsers(sqldb)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 1 || users[0].Name != "New" {
		t.Fatalf("expected only replacement data, got %+v", users)
	}
}

func TestImportDryRunWritesNothing(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	incoming := &service.ExportData{
		Records: []service.ExportRecord{
			{User: "Ava", RecordedAt: "2026-03-01T08:00:00Z", WeightKg: 70, HeightM: 1.75},
		},
	}
	report, err := service.ImportDataSnapshot(sqldb, incoming, service.ImportOptions{Mode: service.ImportModeMerge, DryRun: true})
	if err != nil {
		t.Fatalf("dry-run import: %v", err)
	}
	if report.Inserted != 1 {
		t.Fatalf("expected dry-run to count one insert, got %+v", report)
	}
	users, err := service.ListUsers(sqldb)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected no users after dry run, got %+v", users)
	}
}

func TestImportRecomputesBMI(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	incoming := &service.ExportData{
		Records: []service.ExportRecord{
			// Claims an absurd BMI; the stored value must come from
			// weight and height instead.
			{User: "Ava", RecordedAt: "2026-03-01T08:00:00Z", WeightKg: 70, HeightM: 1.75, BMI: 99, Category: "Obese"},
		},
	}
	if _, err := service.ImportDataSnapshot(sqldb, incoming, service.ImportOptions{Mode: service.ImportModeMerge}); err != nil {
		t.Fatalf("import: %v", err)
	}
	records, err := service.ListRecords(sqldb, service.RecordFilter{UserName: "Ava"})
	if err != nil {
		t.Fatalf("list records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	if records[0].BMI > 23 || records[0].Category != "Normal" {
		t.Fatalf("expected recomputed BMI/category, got %.2f %s", records[0].BMI, records[0].Category)
	}
}

func TestClearAllData(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if _, err := service.AddRecord(sqldb, service.AddRecordInput{UserName: "Ava", Weight: 70, Height: 1.75}); err != nil {
		t.Fatalf("seed record: %v", err)
	}
	if err := service.ClearAllData(sqldb); err != nil {
		t.Fatalf("wipe: %v", err)
	}
	users, err := service.ListUsers(sqldb)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected no users after wipe, got %+v", users)
	}
}

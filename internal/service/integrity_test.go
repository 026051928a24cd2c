package service_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/saadjs/bmi-cli/internal/db"
	"github.com/saadjs/bmi-cli/internal/service"
)

func TestCreateAndRestoreBackup(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "bmi.db")

	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := service.AddRecord(sqldb, service.AddRecordInput{UserName: "Ava", Weight: 70, Height: 1.75}); err != nil {
		t.Fatalf("seed record: %v", err)
	}
	sqldb.Close()

	backupPath := filepath.Join(dir, "backups", "bmi-copy.db")
	info, err := service.CreateBackup(dbPath, backupPath)
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if info.Checksum == "" || info.SizeBytes == 0 {
		t.Fatalf("expected checksum and size, got %+v", info)
	}
	if _, err := os.Stat(backupPath + ".sha256"); err != nil {
		t.Fatalf("expected checksum sidecar: %v", err)
	}

	restored := filepath.Join(dir, "restored.db")
	if err := service.RestoreBackup(backupPath, restored, false); err != nil {
		t.Fatalf("restore backup: %v", err)
	}

	check, err := db.Open(restored)
	if err != nil {
		t.Fatalf("open restored db: %v", err)
	}
	defer check.Close()
	records, err := service.ListRecords(check, service.RecordFilter{UserName: "Ava"})
	if err != nil {
		t.Fatalf("list restored records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one restored record, got %d", len(records))
	}
}

func TestRestoreRefusesExistingTarget(t *testing.T) {
	dir := t.TempDir()
	backup := filepath.Join(dir, "backup.db")
	target := filepath.Join(dir, "target.db")
	for _, p := range []string{backup, target} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
	if err := service.RestoreBackup(backup, target, false); err == nil {
		t.Fatalf("expected overwrite refusal")
	}
	if err := service.RestoreBackup(backup, target, true); err != nil {
		t.Fatalf("forced restore: %v", err)
	}
}

func TestRestoreDetectsChecksumMismatch(t *testing.T) {
	dir := t.TempDir()
	backup := filepath.Join(dir, "backup.db")
	if err := os.WriteFile(backup, []byte("data"), 0o644); err != nil {
		t.Fatalf("write backup: %v", err)
	}
	if err := os.WriteFile(backup+".sha256", []byte("deadbeef\n"), 0o644); err != nil {
		t.Fatalf("write checksum: %v", err)
	}
	if err := service.RestoreBackup(backup, filepath.Join(dir, "out.db"), true); err == nil {
		t.Fatalf("expected checksum mismatch error")
	}
}

func TestListBackupsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "bmi.db")
	if err := os.WriteFile(dbPath, []byte("data"), 0o644); err != nil {
		t.Fatalf("write db: %v", err)
	}
	backupDir := filepath.Join(dir, "backups")
	for _, name := range []string{"bmi-a.db", "bmi-b.db"} {
		if _, err := service.CreateBackup(dbPath, filepath.Join(backupDir, name)); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	backups, err := service.ListBackups(backupDir)
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(backups) != 2 {
		t.Fatalf("expected 2 backups, got %d", len(backups))
	}
	if backups[0].CreatedAt.Before(backups[1].CreatedAt) {
		t.Fatalf("expected newest first, got %v then %v", backups[0].CreatedAt, backups[1].CreatedAt)
	}
}

func TestDoctorDetectsAndFixesDrift(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if _, err := service.AddRecord(sqldb, service.AddRecordInput{UserName: "Ava", Weight: 70, Height: 1.75}); err != nil {
		t.Fatalf("seed record: %v", err)
	}
	if _, err := sqldb.Exec(`UPDATE records SET bmi = 99, category = 'Obese'`); err != nil {
		t.Fatalf("corrupt record: %v", err)
	}

	report, err := service.RunDoctor(sqldb, false)
	if err != nil {
		t.Fatalf("doctor check: %v", err)
	}
	if report.DriftedRecords != 1 {
		t.Fatalf("expected one drifted record, got %+v", report)
	}

	fixed, err := service.RunDoctor(sqldb, true)
	if err != nil {
		t.Fatalf("doctor fix: %v", err)
	}
	if fixed.FixedRecords != 1 {
		t.Fatalf("expected one fixed record, got %+v", fixed)
	}

	clean, err := service.RunDoctor(sqldb, false)
	if err != nil {
		t.Fatalf("doctor recheck: %v", err)
	}
	if clean.DriftedRecords != 0 {
		t.Fatalf("expected no drift after fix, got %+v", clean)
	}
}

func TestDoctorHealthyDatabase(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if _, err := service.AddRecord(sqldb, service.AddRecordInput{UserName: "Ava", Weight: 70, Height: 1.75}); err != nil {
		t.Fatalf("seed record: %v", err)
	}
	report, err := service.RunDoctor(sqldb, false)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if report.OrphanRecords != 0 || report.DriftedRecords != 0 || report.InvalidTimestamp != 0 {
		t.Fatalf("expected healthy report, got %+v", report)
	}
}

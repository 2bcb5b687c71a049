package storage

import (
	"path/filepath"
	"testing"

	"escala/internal"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "escala.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestManualShiftRoundTrip(t *testing.T) {
	db := openTestDB(t)

	first := internal.Shift{ID: "m1", Date: "20/03/2024", Hours: 6, Description: "curso"}
	second := internal.Shift{ID: "m2", Date: "02/04/2024", StartTime: "08:00", EndTime: "14:00", Hours: 6}
	if err := db.InsertManualShift(first); err != nil {
		t.Fatal(err)
	}
	if err := db.InsertManualShift(second); err != nil {
		t.Fatal(err)
	}

	shifts, err := db.ListManualShifts()
	if err != nil {
		t.Fatal(err)
	}
	if len(shifts) != 2 {
		t.Fatalf("len=%d", len(shifts))
	}
	if !shifts[0].IsManual || !shifts[1].IsManual {
		t.Fatal("loaded entries not flagged manual")
	}
	if shifts[0].ID != "m1" || shifts[0].Description != "curso" {
		t.Fatalf("first=%+v", shifts[0])
	}
	if shifts[1].StartTime != "08:00" || shifts[1].EndTime != "14:00" {
		t.Fatalf("second=%+v", shifts[1])
	}

	removed, err := db.DeleteManualShift("m1")
	if err != nil {
		t.Fatal(err)
	}
	if !removed {
		t.Fatal("expected removal")
	}
	removed, err = db.DeleteManualShift("m1")
	if err != nil {
		t.Fatal(err)
	}
	if removed {
		t.Fatal("second removal reported success")
	}

	shifts, err = db.ListManualShifts()
	if err != nil {
		t.Fatal(err)
	}
	if len(shifts) != 1 || shifts[0].ID != "m2" {
		t.Fatalf("after removal: %+v", shifts)
	}
}

func TestInsertRun(t *testing.T) {
	db := openTestDB(t)
	if err := db.InsertRun("trace-1", "SILVA", 2, 3, 12, 184.5); err != nil {
		t.Fatal(err)
	}
}

func TestMetadata(t *testing.T) {
	db := openTestDB(t)

	value, err := db.GetMetadata("missing")
	if err != nil {
		t.Fatal(err)
	}
	if value != nil {
		t.Fatalf("value=%v", value)
	}

	if err := db.SetMetadata("lastTarget", "SILVA"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetMetadata("lastTarget", "ALVES"); err != nil {
		t.Fatal(err)
	}

	value, err = db.GetMetadata("lastTarget")
	if err != nil {
		t.Fatal(err)
	}
	if value == nil || *value != "ALVES" {
		t.Fatalf("value=%v", value)
	}
}

package db

import (
	"context"
	"testing"

	"github.com/harperreed/clientdesk/models"
)

func TestOpenDatabase(t *testing.T) {
	db, err := OpenDatabase()
	if err != nil {
		t.Fatalf("OpenDatabase failed: %v", err)
	}
	defer db.Close()

	// Verify schema was initialized
	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='clients'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query tables: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected clients table, got %d matches", count)
	}
}

func TestOpenDatabaseIsIsolated(t *testing.T) {
	first, err := OpenDatabase()
	if err != nil {
		t.Fatalf("OpenDatabase failed: %v", err)
	}
	defer first.Close()

	second, err := OpenDatabase()
	if err != nil {
		t.Fatalf("OpenDatabase failed: %v", err)
	}
	defer second.Close()

	ctx := context.Background()
	c := &models.Client{Company: "Acme", Product: "A", Status: "Active", Channel: "Direct", AccountExec: "Bob"}
	if err := NewClientsRepository(first).Create(ctx, c); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := NewClientsRepository(second).Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected an empty second session, got %d clients", n)
	}
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	db, err := OpenDatabase()
	if err != nil {
		t.Fatalf("OpenDatabase failed: %v", err)
	}
	defer db.Close()

	// CREATE ... IF NOT EXISTS must tolerate a second run
	if err := InitSchema(db); err != nil {
		t.Errorf("InitSchema should handle re-initialization gracefully, got: %v", err)
	}
}

//go:build integration

package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pulseline/scribe/internal/entry"
	"github.com/pulseline/scribe/internal/matcher"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})
	return s
}

func TestIntegration_UpsertAndGetParamTarget(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	code := "ITEST_X1"

	pt := matcher.ParamTarget{
		Code:          code,
		TargetMin:     entry.Float(10),
		TargetMax:     entry.Float(20),
		PreferredUnit: "u",
		Description:   "Integration test target",
		OrganSystem:   "test",
	}
	if err := s.UpsertParamTarget(ctx, pt); err != nil {
		t.Fatalf("UpsertParamTarget (create) failed: %v", err)
	}

	got, err := s.GetParamTarget(ctx, code)
	if err != nil {
		t.Fatalf("GetParamTarget failed: %v", err)
	}
	if got.Description != "Integration test target" {
		t.Errorf("expected description, got %q", got.Description)
	}
	if got.TargetMax == nil || *got.TargetMax != 20 {
		t.Errorf("expected target_max 20, got %v", got.TargetMax)
	}

	// Upsert again with changed bounds and verify the update path.
	pt.TargetMax = entry.Float(25)
	pt.Notes = "revised"
	if err := s.UpsertParamTarget(ctx, pt); err != nil {
		t.Fatalf("UpsertParamTarget (update) failed: %v", err)
	}
	got, err = s.GetParamTarget(ctx, code)
	if err != nil {
		t.Fatalf("GetParamTarget after update failed: %v", err)
	}
	if got.TargetMax == nil || *got.TargetMax != 25 {
		t.Errorf("expected target_max 25, got %v", got.TargetMax)
	}
	if got.Notes != "revised" {
		t.Errorf("expected notes revised, got %q", got.Notes)
	}

	t.Cleanup(func() {
		s.pool.Exec(ctx, "DELETE FROM param_targets WHERE param_code = $1", code)
	})
}

func TestIntegration_WriteEntry(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	owner := uuid.New()

	e := &entry.Entry{
		Type:      entry.TypeVital,
		Category:  entry.CategoryHealthParams,
		Timestamp: time.Now().UnixMilli(),
		Vital: &entry.Vital{
			VitalType: entry.VitalBloodPressure,
			Systolic:  entry.Float(122),
			Diastolic: entry.Float(78),
		},
	}
	row, err := MapEntry(e, owner)
	if err != nil {
		t.Fatalf("MapEntry failed: %v", err)
	}

	if err := s.WriteEntry(ctx, row); err != nil {
		t.Fatalf("WriteEntry failed: %v", err)
	}

	var value string
	err = s.pool.QueryRow(ctx, "SELECT value FROM vitals WHERE id = $1", row.ID).Scan(&value)
	if err != nil {
		t.Fatalf("query vital failed: %v", err)
	}
	if value != "122/78" {
		t.Errorf("expected value 122/78, got %q", value)
	}

	t.Cleanup(func() {
		s.pool.Exec(ctx, "DELETE FROM vitals WHERE id = $1", row.ID)
	})
}

func TestIntegration_SeedParamTargets(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	// Seeding is idempotent: a second call inserts nothing.
	if _, err := s.SeedParamTargets(ctx); err != nil {
		t.Fatalf("SeedParamTargets (first) failed: %v", err)
	}
	n, err := s.SeedParamTargets(ctx)
	if err != nil {
		t.Fatalf("SeedParamTargets (second) failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 inserted on re-seed, got %d", n)
	}

	targets, err := s.ListParamTargets(ctx)
	if err != nil {
		t.Fatalf("ListParamTargets failed: %v", err)
	}
	if len(targets) < len(DefaultParamTargets) {
		t.Errorf("expected at least %d targets, got %d", len(DefaultParamTargets), len(targets))
	}
}

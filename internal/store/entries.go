package store

import (
	"context"
	"fmt"
)

var entryTables = map[string]bool{
	TableVitals:        true,
	TableMedications:   true,
	TableParamReadings: true,
	TableLabResults:    true,
	TableActivities:    true,
	TableNotes:         true,
}

// WriteEntry persists a mapped row to its target table. The table name is
// checked against the known set before it is interpolated into the query;
// everything else goes through bind parameters.
func (s *Store) WriteEntry(ctx context.Context, row *EntryRow) error {
	if row == nil {
		return fmt.Errorf("write entry: nil row")
	}
	if !entryTables[row.Table] {
		return fmt.Errorf("write entry: unknown table %q", row.Table)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, owner_id, entry_type, category, name, value, unit, notes, payload, recorded_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
	`, row.Table)

	_, err := s.pool.Exec(ctx, query,
		row.ID, row.OwnerID, string(row.Type), string(row.Category),
		row.Name, row.Value, row.Unit, row.Notes, row.Payload, row.Timestamp)
	if err != nil {
		return fmt.Errorf("write entry to %s: %w", row.Table, err)
	}
	return nil
}

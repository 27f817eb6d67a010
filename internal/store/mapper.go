package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pulseline/scribe/internal/entry"
)

// Table names for persisted entries. WriteEntry only accepts these.
const (
	TableVitals        = "vitals"
	TableMedications   = "medications"
	TableParamReadings = "param_readings"
	TableLabResults    = "lab_results"
	TableActivities    = "activities"
	TableNotes         = "notes"
)

// MappingError reports a contract violation between an interpreted entry and
// the persistence schema. It is raised, never swallowed: an entry that made
// it past validation and normalization but cannot be mapped is a bug
// upstream, not a user error.
type MappingError struct {
	EntryType entry.EntryType
	Field     string
	Detail    string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("cannot map %s entry: %s %s", e.EntryType, e.Field, e.Detail)
}

func mapErr(t entry.EntryType, field, detail string) *MappingError {
	return &MappingError{EntryType: t, Field: field, Detail: detail}
}

// EntryRow is the flat persisted form of an Entry. Value holds the display
// value ("138/88" for blood pressure, the bare number otherwise); Payload is
// only set for lab results, which are stored as an opaque JSON document.
type EntryRow struct {
	Table     string
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Type      entry.EntryType
	Category  entry.Category
	Name      string
	Value     string
	Unit      string
	Notes     string
	Payload   []byte
	Timestamp time.Time
}

// MapEntry converts a validated, normalized Entry into its row form. It is
// pure apart from the generated row ID.
func MapEntry(e *entry.Entry, owner uuid.UUID) (*EntryRow, error) {
	if e == nil {
		return nil, mapErr("", "entry", "is nil")
	}
	if e.Timestamp <= 0 {
		return nil, mapErr(e.Type, "timestamp", "is missing")
	}

	row := &EntryRow{
		ID:        uuid.New(),
		OwnerID:   owner,
		Type:      e.Type,
		Category:  e.Category,
		Timestamp: time.UnixMilli(e.Timestamp).UTC(),
	}

	switch e.Type {
	case entry.TypeVital:
		if err := mapVital(e.Vital, row); err != nil {
			return nil, err
		}
	case entry.TypeMedication:
		if err := mapMedication(e.Medication, row); err != nil {
			return nil, err
		}
	case entry.TypeParam:
		if err := mapParam(e.Param, row); err != nil {
			return nil, err
		}
	case entry.TypeLabResult:
		if err := mapLabResult(e.LabResult, row); err != nil {
			return nil, err
		}
	case entry.TypeActivity:
		if err := mapActivity(e.Activity, row); err != nil {
			return nil, err
		}
	case entry.TypeNote:
		if err := mapNote(e.Note, row); err != nil {
			return nil, err
		}
	default:
		return nil, mapErr(e.Type, "type", "is not a known entry type")
	}
	return row, nil
}

func mapVital(v *entry.Vital, row *EntryRow) error {
	if v == nil {
		return mapErr(entry.TypeVital, "vital", "is missing")
	}
	if !entry.ValidVitalType(v.VitalType) {
		return mapErr(entry.TypeVital, "vitalType", fmt.Sprintf("%q is not recognized", v.VitalType))
	}
	row.Table = TableVitals
	row.Name = string(v.VitalType)
	row.Unit = v.Unit
	if row.Unit == "" {
		row.Unit = entry.DefaultUnit(v.VitalType)
	}
	if v.VitalType == entry.VitalBloodPressure {
		if v.Systolic == nil || v.Diastolic == nil {
			return mapErr(entry.TypeVital, "systolic/diastolic", "is missing for blood pressure")
		}
		row.Value = fmtNum(*v.Systolic) + "/" + fmtNum(*v.Diastolic)
		if row.Unit == "" {
			row.Unit = "mmHg"
		}
		return nil
	}
	if v.Value == nil {
		return mapErr(entry.TypeVital, "value", "is missing")
	}
	row.Value = fmtNum(*v.Value)
	return nil
}

func mapMedication(m *entry.Medication, row *EntryRow) error {
	if m == nil {
		return mapErr(entry.TypeMedication, "medication", "is missing")
	}
	if m.Name == "" {
		return mapErr(entry.TypeMedication, "name", "is empty")
	}
	row.Table = TableMedications
	row.Name = m.Name
	if m.Dose != nil {
		row.Value = fmtNum(*m.Dose)
		if m.DoseUnit != "" {
			row.Value += " " + m.DoseUnit
			row.Unit = m.DoseUnit
		}
	}
	var parts []string
	if m.FrequencyPerDay != nil {
		parts = append(parts, fmt.Sprintf("%dx/day", *m.FrequencyPerDay))
	}
	if m.DurationDays != nil {
		parts = append(parts, fmt.Sprintf("for %d days", *m.DurationDays))
	}
	row.Notes = strings.Join(parts, " ")
	return nil
}

func mapParam(p *entry.Param, row *EntryRow) error {
	if p == nil {
		return mapErr(entry.TypeParam, "param", "is missing")
	}
	if p.Code == "" {
		return mapErr(entry.TypeParam, "param_code", "is empty")
	}
	if p.Value == nil {
		return mapErr(entry.TypeParam, "value", "is missing")
	}
	row.Table = TableParamReadings
	row.Name = p.Code
	row.Value = fmtNum(*p.Value)
	row.Unit = p.Unit
	row.Notes = p.Notes
	return nil
}

func mapLabResult(lr map[string]any, row *EntryRow) error {
	if len(lr) == 0 {
		return mapErr(entry.TypeLabResult, "labResult", "is empty")
	}
	payload, err := json.Marshal(lr)
	if err != nil {
		return mapErr(entry.TypeLabResult, "labResult", "cannot be serialized: "+err.Error())
	}
	row.Table = TableLabResults
	row.Name = "lab_result"
	if n, ok := lr["test_name"].(string); ok && n != "" {
		row.Name = n
	}
	row.Payload = payload
	return nil
}

func mapActivity(a *entry.Activity, row *EntryRow) error {
	if a == nil {
		return mapErr(entry.TypeActivity, "activity", "is missing")
	}
	if a.Name == "" {
		return mapErr(entry.TypeActivity, "name", "is empty")
	}
	row.Table = TableActivities
	row.Name = a.Name
	if a.DurationMinutes != nil {
		row.Value = fmtNum(*a.DurationMinutes)
		row.Unit = "min"
	} else if a.DistanceKm != nil {
		row.Value = fmtNum(*a.DistanceKm)
		row.Unit = "km"
	}
	row.Notes = a.Notes
	return nil
}

func mapNote(n *entry.Note, row *EntryRow) error {
	if n == nil {
		return mapErr(entry.TypeNote, "note", "is missing")
	}
	if n.Text == "" {
		return mapErr(entry.TypeNote, "text", "is empty")
	}
	row.Table = TableNotes
	row.Name = "note"
	row.Notes = n.Text
	return nil
}

// fmtNum renders a float without trailing zeros, so 138.0 persists as "138".
func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

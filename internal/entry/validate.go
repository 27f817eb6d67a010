package entry

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// SchemaError marks model output that parsed as JSON but violates the
// Interpretation contract, or did not parse at all. It drives the repair loop
// and is never shown to the end user.
type SchemaError struct {
	Field  string
	Detail string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return "schema: " + e.Detail
	}
	return fmt.Sprintf("schema: %s: %s", e.Field, e.Detail)
}

func schemaErr(field, detail string) error {
	return &SchemaError{Field: field, Detail: detail}
}

var paramCodePattern = regexp.MustCompile(`^[A-Z0-9_]{2,}$`)

// ExtractJSON returns the first balanced-looking JSON object in raw,
// scanning for the first '{' and the last '}'. Model output routinely wraps
// the object in prose or markdown fences.
func ExtractJSON(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", schemaErr("", "no JSON object found in output")
	}
	return raw[start : end+1], nil
}

// ParseInterpretation extracts and validates an Interpretation from raw
// model output.
func ParseInterpretation(raw string) (*Interpretation, error) {
	block, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var interp Interpretation
	if err := json.Unmarshal([]byte(block), &interp); err != nil {
		return nil, schemaErr("", "invalid JSON: "+err.Error())
	}

	if err := interp.Validate(); err != nil {
		return nil, err
	}
	return &interp, nil
}

// Validate checks the Interpretation contract. A parsed interpretation must
// carry an entry; the entry's own invariants are checked recursively.
func (i *Interpretation) Validate() error {
	if !i.Parsed {
		return nil
	}
	if i.Entry == nil {
		return schemaErr("entry", "parsed is true but entry is missing")
	}
	return i.Entry.Validate()
}

// Validate checks the Entry union contract: a known type discriminator, the
// matching sub-object present, and hard required fields set. Soft structural
// problems (a vital without its subtype) are left for the normalizer's
// downgrade rule.
func (e *Entry) Validate() error {
	if e.Category == "" {
		e.Category = CategoryHealthParams
	} else if !ValidCategory(e.Category) {
		e.Category = CategoryOther
	}

	switch e.Type {
	case TypeVital:
		if e.Vital == nil {
			return schemaErr("vital", "entry type is vital but vital object is missing")
		}
		if e.Vital.VitalType != "" && !ValidVitalType(e.Vital.VitalType) {
			return schemaErr("vital.vitalType", fmt.Sprintf("unknown vital type %q", e.Vital.VitalType))
		}
	case TypeMedication:
		if e.Medication == nil {
			return schemaErr("medication", "entry type is medication but medication object is missing")
		}
		if strings.TrimSpace(e.Medication.Name) == "" {
			return schemaErr("medication.name", "name is required")
		}
	case TypeParam:
		if e.Param == nil {
			return schemaErr("param", "entry type is param but param object is missing")
		}
		if e.Param.Code != "" {
			e.Param.Code = strings.ToUpper(strings.TrimSpace(e.Param.Code))
			if !paramCodePattern.MatchString(e.Param.Code) {
				return schemaErr("param.param_code", fmt.Sprintf("malformed code %q", e.Param.Code))
			}
		}
	case TypeLabResult:
		// Stored as an opaque blob; no structured schema to enforce.
	case TypeActivity:
		if e.Activity == nil {
			return schemaErr("activity", "entry type is activity but activity object is missing")
		}
		if strings.TrimSpace(e.Activity.Name) == "" {
			return schemaErr("activity.name", "name is required")
		}
		switch e.Activity.Intensity {
		case "", "Low", "Moderate", "High":
		default:
			return schemaErr("activity.intensity", fmt.Sprintf("unknown intensity %q", e.Activity.Intensity))
		}
	case TypeNote:
		if e.Note == nil || strings.TrimSpace(e.Note.Text) == "" {
			return schemaErr("note.text", "note text is required")
		}
	default:
		return schemaErr("type", fmt.Sprintf("unknown entry type %q", e.Type))
	}

	if e.Timestamp < 0 {
		return schemaErr("timestamp", "timestamp must not be negative")
	}
	return nil
}

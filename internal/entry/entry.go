package entry

// EntryType discriminates the Entry union. Exactly one sub-object matching
// the type must be populated.
type EntryType string

const (
	TypeVital      EntryType = "vital"
	TypeMedication EntryType = "medication"
	TypeParam      EntryType = "param"
	TypeLabResult  EntryType = "labResult"
	TypeActivity   EntryType = "activity"
	TypeNote       EntryType = "note"
)

// VitalType identifies which measurement a vital entry records.
type VitalType string

const (
	VitalGlucose       VitalType = "glucose"
	VitalWeight        VitalType = "weight"
	VitalBloodPressure VitalType = "bloodPressure"
	VitalTemperature   VitalType = "temperature"
	VitalHeartRate     VitalType = "heartRate"
	VitalSteps         VitalType = "steps"
	VitalHbA1c         VitalType = "hba1c"
)

// Category buckets entries for downstream filtering.
type Category string

const (
	CategoryHealthParams Category = "HEALTH_PARAMS"
	CategoryActivity     Category = "ACTIVITY"
	CategoryFood         Category = "FOOD"
	CategoryMedication   Category = "MEDICATION"
	CategorySymptoms     Category = "SYMPTOMS"
	CategoryOther        Category = "OTHER"
)

// Interpretation is the pipeline's output contract. Parsed=true guarantees a
// non-nil Entry with a populated timestamp once the normalizer has run.
type Interpretation struct {
	Parsed    bool   `json:"parsed"`
	Reply     string `json:"reply,omitempty"`
	Entry     *Entry `json:"entry,omitempty"`
	Reasoning string `json:"reasoning,omitempty"`
}

// Entry is a tagged union over the recordable health event shapes.
// Timestamp is epoch milliseconds.
type Entry struct {
	Type      EntryType `json:"type"`
	Category  Category  `json:"category,omitempty"`
	Timestamp int64     `json:"timestamp,omitempty"`

	Vital      *Vital          `json:"vital,omitempty"`
	Medication *Medication     `json:"medication,omitempty"`
	Param      *Param          `json:"param,omitempty"`
	LabResult  map[string]any  `json:"labResult,omitempty"`
	Activity   *Activity       `json:"activity,omitempty"`
	Note       *Note           `json:"note,omitempty"`
}

type Vital struct {
	VitalType VitalType `json:"vitalType"`
	Value     *float64  `json:"value,omitempty"`
	Systolic  *float64  `json:"systolic,omitempty"`
	Diastolic *float64  `json:"diastolic,omitempty"`
	Unit      string    `json:"unit,omitempty"`
}

type Medication struct {
	Name            string   `json:"name"`
	Dose            *float64 `json:"dose,omitempty"`
	DoseUnit        string   `json:"doseUnit,omitempty"`
	FrequencyPerDay *int     `json:"frequencyPerDay,omitempty"`
	DurationDays    *int     `json:"durationDays,omitempty"`
}

type Param struct {
	Code  string   `json:"param_code"`
	Value *float64 `json:"value,omitempty"`
	Unit  string   `json:"unit,omitempty"`
	Notes string   `json:"notes,omitempty"`
}

type Activity struct {
	Name            string   `json:"name"`
	DurationMinutes *float64 `json:"duration_minutes,omitempty"`
	DistanceKm      *float64 `json:"distance_km,omitempty"`
	Intensity       string   `json:"intensity,omitempty"` // Low | Moderate | High
	CaloriesBurned  *float64 `json:"calories_burned,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

type Note struct {
	Text string `json:"text"`
}

// DefaultUnit returns the unit assigned when the model omitted one.
func DefaultUnit(vt VitalType) string {
	switch vt {
	case VitalSteps:
		return "steps"
	case VitalWeight:
		return "kg"
	case VitalGlucose:
		return "mg/dL"
	case VitalHeartRate:
		return "bpm"
	case VitalTemperature:
		return "°C"
	case VitalHbA1c:
		return "%"
	default:
		return ""
	}
}

// ValidVitalType reports whether vt is one of the known vital subtypes.
func ValidVitalType(vt VitalType) bool {
	switch vt {
	case VitalGlucose, VitalWeight, VitalBloodPressure, VitalTemperature,
		VitalHeartRate, VitalSteps, VitalHbA1c:
		return true
	}
	return false
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryHealthParams, CategoryActivity, CategoryFood,
		CategoryMedication, CategorySymptoms, CategoryOther:
		return true
	}
	return false
}

// Float returns a pointer to v. Convenience for building optional fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

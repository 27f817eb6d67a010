package interpreter

import (
	"testing"
	"time"

	"github.com/pulseline/scribe/internal/entry"
)

func TestSalvage_HbA1c(t *testing.T) {
	for _, msg := range []string{"hba1c 6.5", "my 6.5% a1c result", "A1C came back 7.2"} {
		result := Salvage(msg, testNow)
		if result == nil {
			t.Fatalf("expected salvage for %q", msg)
		}
		if result.Entry.Type != entry.TypeParam || result.Entry.Param.Code != "HBA1C" {
			t.Errorf("%q: expected HBA1C param, got %+v", msg, result.Entry)
		}
		if result.Entry.Param.Unit != "%" {
			t.Errorf("%q: expected %% unit, got %q", msg, result.Entry.Param.Unit)
		}
		if result.Reasoning != SalvageReasoning {
			t.Errorf("%q: expected salvage reasoning, got %q", msg, result.Reasoning)
		}
	}
}

func TestSalvage_Steps(t *testing.T) {
	for _, tt := range []struct {
		msg  string
		want float64
	}{
		{"8000 steps", 8000},
		{"did 12000 steps at work", 12000},
		{"walked 5000", 5000},
	} {
		result := Salvage(tt.msg, testNow)
		if result == nil {
			t.Fatalf("expected salvage for %q", tt.msg)
		}
		if result.Entry.Type != entry.TypeVital || result.Entry.Vital.VitalType != entry.VitalSteps {
			t.Errorf("%q: expected steps vital, got %+v", tt.msg, result.Entry)
		}
		if *result.Entry.Vital.Value != tt.want {
			t.Errorf("%q: expected %v steps, got %v", tt.msg, tt.want, *result.Entry.Vital.Value)
		}
		if result.Entry.Vital.Unit != "steps" {
			t.Errorf("%q: expected steps unit, got %q", tt.msg, result.Entry.Vital.Unit)
		}
	}
}

func TestSalvage_BloodPressure(t *testing.T) {
	for _, msg := range []string{"138/88", "bp was 138 88 this morning"} {
		result := Salvage(msg, testNow)
		if result == nil {
			t.Fatalf("expected salvage for %q", msg)
		}
		if result.Entry.Type != entry.TypeParam || result.Entry.Param.Code != "BP_SYS" {
			t.Errorf("%q: expected BP_SYS param, got %+v", msg, result.Entry)
		}
		if *result.Entry.Param.Value != 138 {
			t.Errorf("%q: expected systolic 138, got %v", msg, *result.Entry.Param.Value)
		}
		if result.Entry.Param.Notes != "DIA=88" {
			t.Errorf("%q: expected DIA=88 note, got %q", msg, result.Entry.Param.Notes)
		}
	}
}

func TestSalvage_BloodPressureImplausible(t *testing.T) {
	// 30/400 is no blood pressure; nothing else matches either.
	if result := Salvage("ratio 30/400 whatever", testNow); result != nil {
		t.Errorf("expected no salvage, got %+v", result.Entry)
	}
}

func TestSalvage_Glucose(t *testing.T) {
	result := Salvage("224 post lunch sugar", testNow)
	if result == nil {
		t.Fatal("expected salvage")
	}
	if result.Entry.Type != entry.TypeParam || result.Entry.Param.Code != "GLU_FAST" {
		t.Fatalf("expected GLU_FAST param, got %+v", result.Entry)
	}
	if *result.Entry.Param.Value != 224 {
		t.Errorf("expected 224, got %v", *result.Entry.Param.Value)
	}
	if result.Entry.Param.Unit != "mg/dL" {
		t.Errorf("expected mg/dL, got %q", result.Entry.Param.Unit)
	}
}

func TestSalvage_GlucoseOutOfRange(t *testing.T) {
	// Numbers near glucose vocabulary outside [50,500] are not readings.
	if result := Salvage("ate 30 grams of sugar", testNow); result != nil {
		t.Errorf("expected no salvage, got %+v", result.Entry)
	}
}

func TestSalvage_GlucoseRequiresVocabulary(t *testing.T) {
	if result := Salvage("scored 224 points", testNow); result != nil {
		t.Errorf("expected no salvage without glucose vocabulary, got %+v", result.Entry)
	}
}

func TestSalvage_FirstMatchWins(t *testing.T) {
	// HbA1c outranks the step count in the same message.
	result := Salvage("hba1c 6.5 after walking 8000 steps", testNow)
	if result == nil {
		t.Fatal("expected salvage")
	}
	if result.Entry.Type != entry.TypeParam || result.Entry.Param.Code != "HBA1C" {
		t.Errorf("expected HBA1C to win, got %+v", result.Entry)
	}
}

func TestSalvage_NoMatch(t *testing.T) {
	for _, msg := range []string{"feeling tired", "remember to call the clinic", ""} {
		if result := Salvage(msg, testNow); result != nil {
			t.Errorf("%q: expected nil, got %+v", msg, result.Entry)
		}
	}
}

func TestSalvage_TimestampPopulated(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	result := Salvage("8000 steps", now)
	if result == nil {
		t.Fatal("expected salvage")
	}
	if result.Entry.Timestamp != now.UnixMilli() {
		t.Errorf("expected timestamp %d, got %d", now.UnixMilli(), result.Entry.Timestamp)
	}
}

package interpreter

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pulseline/scribe/internal/entry"
)

// SalvageReasoning tags interpretations produced by the regex fallback.
const SalvageReasoning = "heuristic-salvage"

var (
	hba1cAfterPattern  = regexp.MustCompile(`(?i)\b(?:hba1c|a1c)\b[^0-9]{0,20}(\d{1,2}(?:\.\d+)?)`)
	hba1cBeforePattern = regexp.MustCompile(`(?i)(\d{1,2}(?:\.\d+)?)\s*%?\s*\b(?:hba1c|a1c)\b`)
	stepsPattern       = regexp.MustCompile(`(?i)\b(\d{3,6})\s*steps?\b`)
	walkedPattern      = regexp.MustCompile(`(?i)\bwalked\s+(\d{3,6})\b`)
	bpSlashPattern     = regexp.MustCompile(`\b(\d{2,3})\s*/\s*(\d{2,3})\b`)
	bpSpacePattern     = regexp.MustCompile(`\b(\d{2,3})\s+(\d{2,3})\b`)
	bareNumberPattern  = regexp.MustCompile(`\b(\d{2,3})(?:\.\d+)?\b`)
)

var glucoseVocab = []string{"sugar", "glucose", "fasting", "postprandial", "gluco"}

// Salvage is the deterministic, model-free fallback. It runs ordered regex
// checks against a small set of common phrasings and returns a complete
// Interpretation on the first hit, or nil when nothing matches. Accuracy is
// best-effort; it only ever runs after every model strategy has failed.
func Salvage(message string, now time.Time) *entry.Interpretation {
	if e := salvageHbA1c(message); e != nil {
		return salvaged(e, now)
	}
	if e := salvageSteps(message); e != nil {
		return salvaged(e, now)
	}
	if e := salvageBloodPressure(message); e != nil {
		return salvaged(e, now)
	}
	if e := salvageGlucose(message); e != nil {
		return salvaged(e, now)
	}
	return nil
}

func salvaged(e *entry.Entry, now time.Time) *entry.Interpretation {
	e.Timestamp = now.UnixMilli()
	return &entry.Interpretation{
		Parsed:    true,
		Entry:     e,
		Reasoning: SalvageReasoning,
	}
}

func salvageHbA1c(message string) *entry.Entry {
	m := hba1cAfterPattern.FindStringSubmatch(message)
	if m == nil {
		m = hba1cBeforePattern.FindStringSubmatch(message)
	}
	if m == nil {
		return nil
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil || value <= 0 || value >= 25 {
		return nil
	}
	return &entry.Entry{
		Type:     entry.TypeParam,
		Category: entry.CategoryHealthParams,
		Param:    &entry.Param{Code: "HBA1C", Value: &value, Unit: "%"},
	}
}

func salvageSteps(message string) *entry.Entry {
	m := stepsPattern.FindStringSubmatch(message)
	if m == nil {
		m = walkedPattern.FindStringSubmatch(message)
	}
	if m == nil {
		return nil
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &entry.Entry{
		Type:     entry.TypeVital,
		Category: entry.CategoryActivity,
		Vital:    &entry.Vital{VitalType: entry.VitalSteps, Value: &value, Unit: "steps"},
	}
}

func salvageBloodPressure(message string) *entry.Entry {
	m := bpSlashPattern.FindStringSubmatch(message)
	if m == nil {
		m = bpSpacePattern.FindStringSubmatch(message)
	}
	if m == nil {
		return nil
	}
	sys, err1 := strconv.ParseFloat(m[1], 64)
	dia, err2 := strconv.ParseFloat(m[2], 64)
	if err1 != nil || err2 != nil {
		return nil
	}
	if !plausibleBP(sys, dia) {
		return nil
	}
	return &entry.Entry{
		Type:     entry.TypeParam,
		Category: entry.CategoryHealthParams,
		Param: &entry.Param{
			Code:  "BP_SYS",
			Value: &sys,
			Unit:  "mmHg",
			Notes: "DIA=" + strconv.FormatFloat(dia, 'f', -1, 64),
		},
	}
}

func plausibleBP(sys, dia float64) bool {
	return sys >= 80 && sys <= 250 && dia >= 40 && dia <= 150 && sys > dia
}

func salvageGlucose(message string) *entry.Entry {
	lower := strings.ToLower(message)
	hasVocab := false
	for _, word := range glucoseVocab {
		if strings.Contains(lower, word) {
			hasVocab = true
			break
		}
	}
	if !hasVocab {
		return nil
	}

	m := bareNumberPattern.FindStringSubmatch(message)
	if m == nil {
		return nil
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil || value < 50 || value > 500 {
		return nil
	}
	return &entry.Entry{
		Type:     entry.TypeParam,
		Category: entry.CategoryHealthParams,
		Param:    &entry.Param{Code: "GLU_FAST", Value: &value, Unit: "mg/dL"},
	}
}

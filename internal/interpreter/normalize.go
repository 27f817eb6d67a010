package interpreter

import (
	"regexp"
	"strings"
	"time"

	"github.com/pulseline/scribe/internal/entry"
)

// maxNoteLen bounds note text produced by downgrades and fallbacks.
const maxNoteLen = 500

// secondsEpochCeiling: timestamps below this are seconds, not milliseconds.
const secondsEpochCeiling = 1_000_000_000_000

var absoluteDatePattern = regexp.MustCompile(`\b((19|20)\d{2}|\d{1,2}/\d{1,2}(/\d{2,4})?)\b`)

// relativePhrase anchors are fixed-order: the first phrase found in the
// message wins, so "yesterday evening" resolves as "yesterday". hourAnchor
// -1 keeps the current clock time.
type relativePhrase struct {
	phrase     string
	dayOffset  int
	hourAnchor int
}

var relativePhrases = []relativePhrase{
	{"yesterday", -1, -1},
	{"last night", -1, 22},
	{"today", 0, -1},
	{"tonight", 0, 19},
	{"this morning", 0, 8},
	{"this evening", 0, 19},
	{"morning", 0, 8},
	{"evening", 0, 19},
}

// NormalizeTimestamp ensures the entry carries a plausible epoch-milliseconds
// timestamp, resolving relative time phrases in the original message against
// now. Idempotent.
func NormalizeTimestamp(e *entry.Entry, message string, now time.Time) {
	if e.Timestamp == 0 {
		e.Timestamp = now.UnixMilli()
	}
	if e.Timestamp > 0 && e.Timestamp < secondsEpochCeiling {
		e.Timestamp *= 1000
	}

	lower := strings.ToLower(message)
	if absoluteDatePattern.MatchString(lower) {
		// An explicit date outranks any relative phrase.
		return
	}

	for _, rp := range relativePhrases {
		if !strings.Contains(lower, rp.phrase) {
			continue
		}

		// The model's absolute guess is untrusted once a relative phrase is
		// in play (it drifts by months in practice, far past the 3-day
		// tolerance): the timestamp is always recomputed from now.
		base := now.AddDate(0, 0, rp.dayOffset)
		if rp.hourAnchor >= 0 {
			base = time.Date(base.Year(), base.Month(), base.Day(), rp.hourAnchor, 0, 0, 0, base.Location())
		}
		e.Timestamp = base.UnixMilli()
		return
	}
}

// Downgrade replaces a structurally inconsistent entry with a note carrying
// the original message. Returns true when a downgrade happened. This enforces
// the entry invariants without ever raising an error.
//
// knownCode reports corpus membership for param codes; a code it rejects is
// treated as model invention and downgraded. nil skips the membership check.
func Downgrade(e *entry.Entry, message string, knownCode func(string) bool) bool {
	inconsistent := false

	switch e.Type {
	case entry.TypeVital:
		switch {
		case e.Vital == nil || e.Vital.VitalType == "":
			inconsistent = true
		case e.Vital.VitalType == entry.VitalBloodPressure:
			inconsistent = e.Vital.Systolic == nil || e.Vital.Diastolic == nil
		default:
			inconsistent = e.Vital.Value == nil
		}
	case entry.TypeParam:
		inconsistent = e.Param == nil || e.Param.Code == ""
		if !inconsistent && knownCode != nil && !knownCode(e.Param.Code) {
			inconsistent = true
		}
	}

	if !inconsistent {
		return false
	}

	e.Type = entry.TypeNote
	e.Note = &entry.Note{Text: truncate(message, maxNoteLen)}
	e.Vital = nil
	e.Medication = nil
	e.Param = nil
	e.LabResult = nil
	e.Activity = nil
	return true
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

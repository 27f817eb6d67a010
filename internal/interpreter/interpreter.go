package interpreter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/pulseline/scribe/internal/anthropic"
	"github.com/pulseline/scribe/internal/entry"
	"github.com/pulseline/scribe/internal/prompts"
)

const notConfiguredReply = "Scribe is not configured. Set ANTHROPIC_API_KEY to enable message interpretation."

const repairPrompt = `Your previous output could not be used.

Error: %s

Previous output:
%s

Re-emit the interpretation for the original message as valid JSON only, matching the schema exactly. No commentary, no markdown fences.`

const secondPassSystem = `You convert one user message into a single JSON object and output nothing else.

The message was meant to be logged as a health entry, but earlier attempts produced unusable output. Last error: %s

Rules, in order:
1. If the message contains any recognizable numeric health metric (glucose, blood pressure, weight, steps, temperature, heart rate, hba1c, any lab value) or a medication phrase, set "parsed" to true and fill the closest matching fields.
2. Otherwise set "parsed" to true with an entry of type "note" whose text is the raw message.

Object shape: {"parsed": bool, "entry": {"type": "vital|medication|param|labResult|activity|note", "category": "HEALTH_PARAMS|ACTIVITY|FOOD|MEDICATION|SYMPTOMS|OTHER", "timestamp": epoch ms or {{NOW}}, "vital": {"vitalType","value","systolic","diastolic","unit"}, "medication": {"name","dose","doseUnit","frequencyPerDay","durationDays"}, "param": {"param_code","value","unit","notes"}, "activity": {"name","duration_minutes","distance_km","intensity","calories_burned","notes"}, "note": {"text"}}}

Populate only the sub-object matching "type". Output the JSON object only.`

// CodeSource reports whether a param code exists in the reference corpus,
// typically the matcher's cached corpus.
type CodeSource interface {
	HasCode(ctx context.Context, code string) bool
}

// Options tune the pipeline. Zero values fall back to sensible defaults.
type Options struct {
	MaxTokens  int
	SecondPass bool
	Debug      bool
	// Codes gates param entries on corpus membership. nil disables the check.
	Codes CodeSource
}

// Interpreter turns one free-form health message into a schema-valid
// Interpretation. It never returns an error to the caller: every failure
// tier falls through to the next strategy, ending at a guaranteed note.
type Interpreter struct {
	llm        *anthropic.Client // nil when no credential is configured
	prompts    *prompts.Store
	logger     *slog.Logger
	maxTokens  int
	secondPass bool
	debug      bool
	codes      CodeSource
	now        func() time.Time
}

func New(llm *anthropic.Client, ps *prompts.Store, opts Options, logger *slog.Logger) *Interpreter {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 2048
	}
	return &Interpreter{
		llm:        llm,
		prompts:    ps,
		logger:     logger,
		maxTokens:  opts.MaxTokens,
		secondPass: opts.SecondPass,
		debug:      opts.Debug,
		codes:      opts.Codes,
		now:        time.Now,
	}
}

// classifierDecision is the routing JSON the classifier template asks for.
type classifierDecision struct {
	Parsed bool   `json:"parsed"`
	Reply  string `json:"reply"`
	Route  string `json:"route"`
}

// Interpret runs the full strategy chain:
// classify → extract+repair → second pass → heuristic salvage → note.
func (i *Interpreter) Interpret(ctx context.Context, message string) entry.Interpretation {
	if i.llm == nil {
		return entry.Interpretation{
			Parsed:    false,
			Reply:     notConfiguredReply,
			Reasoning: "not-configured",
		}
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return entry.Interpretation{
			Parsed: false,
			Reply:  "There was nothing to log. Send a reading, medication, or activity.",
		}
	}

	scenario, direct := i.classify(ctx, message)
	if direct != nil {
		return *direct
	}

	interp, lastErr := i.extractWithRepair(ctx, scenario, message)
	if interp != nil {
		i.normalize(ctx, interp, message)
		return *interp
	}

	if i.secondPass {
		interp = i.repairSecondPass(ctx, message, lastErr)
		if interp != nil {
			i.normalize(ctx, interp, message)
			return *interp
		}
	}

	if salvaged := Salvage(message, i.now()); salvaged != nil {
		i.logger.Info("heuristic salvage produced entry", "type", salvaged.Entry.Type)
		i.normalize(ctx, salvaged, message)
		return *salvaged
	}

	// Absolute fallback: the message is preserved verbatim as a note.
	reason := "fallback-note"
	if lastErr != nil {
		reason = lastErr.Error()
	}
	i.logger.Warn("all interpretation strategies failed, degrading to note", "reason", reason)
	return entry.Interpretation{
		Parsed: true,
		Entry: &entry.Entry{
			Type:      entry.TypeNote,
			Category:  entry.CategoryOther,
			Timestamp: i.now().UnixMilli(),
			Note:      &entry.Note{Text: truncate(message, maxNoteLen)},
		},
		Reasoning: reason,
	}
}

// classify asks the model to route the message. It returns either the
// extraction scenario to use, or a direct reply that ends the pipeline
// (conversational messages). Classifier failure of any kind silently falls
// back to keyword routing.
func (i *Interpreter) classify(ctx context.Context, message string) (prompts.Scenario, *entry.Interpretation) {
	system, err := i.prompts.Get(prompts.ScenarioClassifier)
	if err != nil {
		return legacyScenario(message), nil
	}

	raw, err := i.llm.Complete(ctx, system, []anthropic.Message{{Role: "user", Content: message}}, i.maxTokens)
	if err != nil {
		i.logger.Warn("classifier call failed, using keyword routing", "error", err)
		return legacyScenario(message), nil
	}
	if i.debug {
		i.logger.Debug("classifier output", "raw", raw)
	}

	block, err := entry.ExtractJSON(raw)
	if err != nil {
		i.logger.Warn("classifier output unparseable, using keyword routing", "error", err)
		return legacyScenario(message), nil
	}

	var decision classifierDecision
	if err := json.Unmarshal([]byte(block), &decision); err != nil {
		i.logger.Warn("classifier output malformed, using keyword routing", "error", err)
		return legacyScenario(message), nil
	}

	if !decision.Parsed {
		return "", &entry.Interpretation{Parsed: false, Reply: decision.Reply}
	}
	return prompts.ExtractionScenario(decision.Route), nil
}

// extractWithRepair runs up to two extraction attempts. The second attempt
// feeds the model its own failed output and the validator's error.
func (i *Interpreter) extractWithRepair(ctx context.Context, scenario prompts.Scenario, message string) (*entry.Interpretation, error) {
	system, err := i.prompts.Get(scenario)
	if err != nil {
		return nil, err
	}

	messages := []anthropic.Message{{Role: "user", Content: message}}
	var lastErr error

	for attempt := 1; attempt <= 2; attempt++ {
		raw, err := i.llm.Complete(ctx, system, messages, i.maxTokens)
		if err != nil {
			i.logger.Warn("extraction call failed", "attempt", attempt, "error", err)
			lastErr = err
			if ctx.Err() != nil {
				return nil, lastErr
			}
			continue
		}
		if i.debug {
			i.logger.Debug("extraction output", "attempt", attempt, "raw", raw)
		}

		raw = i.resolvePlaceholders(raw)
		interp, err := entry.ParseInterpretation(raw)
		if err == nil {
			return interp, nil
		}
		lastErr = err
		i.logger.Info("extraction output rejected", "attempt", attempt, "error", err)

		messages = []anthropic.Message{
			{Role: "user", Content: message},
			{Role: "assistant", Content: raw},
			{Role: "user", Content: fmt.Sprintf(repairPrompt, err, raw)},
		}
	}
	return nil, lastErr
}

// repairSecondPass makes one stricter, example-free attempt after both
// extraction attempts failed.
func (i *Interpreter) repairSecondPass(ctx context.Context, message string, lastErr error) *entry.Interpretation {
	errText := "unknown"
	if lastErr != nil {
		errText = lastErr.Error()
	}
	system := strings.Replace(secondPassSystem, "%s", errText, 1)

	raw, err := i.llm.Complete(ctx, system, []anthropic.Message{{Role: "user", Content: message}}, i.maxTokens)
	if err != nil {
		i.logger.Warn("second-pass call failed", "error", err)
		return nil
	}
	if i.debug {
		i.logger.Debug("second-pass output", "raw", raw)
	}

	raw = i.resolvePlaceholders(raw)
	interp, err := entry.ParseInterpretation(raw)
	if err != nil {
		i.logger.Info("second-pass output rejected", "error", err)
		return nil
	}
	return interp
}

// normalize applies the timestamp and structural-downgrade passes.
func (i *Interpreter) normalize(ctx context.Context, interp *entry.Interpretation, message string) {
	if interp.Entry == nil {
		return
	}
	NormalizeTimestamp(interp.Entry, message, i.now())

	var knownCode func(string) bool
	if i.codes != nil {
		knownCode = func(code string) bool { return i.codes.HasCode(ctx, code) }
	}
	if Downgrade(interp.Entry, message, knownCode) {
		i.logger.Info("structurally inconsistent entry downgraded to note")
	}
}

// resolvePlaceholders replaces unresolved time tokens with the current epoch.
func (i *Interpreter) resolvePlaceholders(raw string) string {
	if !strings.Contains(raw, "{{NOW}}") {
		return raw
	}
	return strings.ReplaceAll(raw, "{{NOW}}", strconv.FormatInt(i.now().UnixMilli(), 10))
}

// legacyScenario picks an extraction template from message vocabulary when
// the classifier is unavailable.
func legacyScenario(message string) prompts.Scenario {
	lower := strings.ToLower(message)
	for _, word := range []string{"took", "tablet", "pill", "dose", "capsule", "insulin", "injection", " mg", "medicine", "medication"} {
		if strings.Contains(lower, word) {
			return prompts.ScenarioMedication
		}
	}
	for _, word := range []string{"ran ", "run ", "walk", "jog", "cycle", "cycling", "gym", "workout", "yoga", "swam", "swim", "exercise", "hike"} {
		if strings.Contains(lower, word) {
			return prompts.ScenarioActivity
		}
	}
	return prompts.ScenarioVital
}

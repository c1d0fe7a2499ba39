package services

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ParseMode tags which stage produced a result. Anything other than
// ParseStrict means the model violated the requested output format and is
// reported through the parse metrics.
type ParseMode string

const (
	ParseStrict   ParseMode = "strict"
	ParseRepaired ParseMode = "repaired"
	ParseFallback ParseMode = "fallback"
)

type ParsedTask struct {
	Slug             string
	Title            string
	Description      string
	Tags             []string
	EstimatedMinutes int
}

type ParseDefaults struct {
	EstimatedMinutes int
}

type ParseResult struct {
	Mode  ParseMode
	Tasks []ParsedTask
	// Dropped counts strict-stage objects discarded for lacking a usable title.
	Dropped int
}

const DefaultEstimatedMinutes = 15

// ParseTaskResponse converts raw model output into task fields. Stages, first
// success wins:
//  1. strict: the trimmed text (code fences stripped) is a JSON array of
//     objects; title required, description optional, duration defaulted.
//  2. repaired: same rules after one jsonrepair pass, for the frequent case
//     of almost-JSON (trailing commas, single quotes, chatter around the
//     array).
//  3. fallback: one task per non-blank line, the line as title.
//
// An empty Tasks slice is a valid outcome, not an error.
func ParseTaskResponse(raw string, defaults ParseDefaults) ParseResult {
	if defaults.EstimatedMinutes <= 0 {
		defaults.EstimatedMinutes = DefaultEstimatedMinutes
	}
	text := stripCodeFences(strings.TrimSpace(raw))

	if tasks, dropped, ok := parseStrict(text, defaults); ok {
		return ParseResult{Mode: ParseStrict, Tasks: tasks, Dropped: dropped}
	}

	if repaired, err := jsonrepair.JSONRepair(text); err == nil {
		if tasks, dropped, ok := parseStrict(repaired, defaults); ok {
			return ParseResult{Mode: ParseRepaired, Tasks: tasks, Dropped: dropped}
		}
	}

	return ParseResult{Mode: ParseFallback, Tasks: parseLines(raw, defaults)}
}

func parseStrict(text string, defaults ParseDefaults) ([]ParsedTask, int, bool) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var top any
	if err := dec.Decode(&top); err != nil {
		return nil, 0, false
	}
	arr, ok := top.([]any)
	if !ok {
		// A valid JSON document that is not an array fails the whole stage.
		return nil, 0, false
	}

	tasks := make([]ParsedTask, 0, len(arr))
	dropped := 0
	for _, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			// The stage only accepts an array of objects. Anything else
			// (e.g. plain strings) drops through to the line fallback.
			return nil, 0, false
		}
		title := strings.TrimSpace(stringField(obj, "title"))
		if title == "" {
			dropped++
			continue
		}
		task := ParsedTask{
			Slug:             strings.TrimSpace(stringField(obj, "task_id")),
			Title:            title,
			Description:      strings.TrimSpace(stringField(obj, "description")),
			Tags:             tagsField(obj),
			EstimatedMinutes: durationField(obj, defaults.EstimatedMinutes),
		}
		tasks = append(tasks, task)
	}
	return tasks, dropped, true
}

func parseLines(raw string, defaults ParseDefaults) []ParsedTask {
	var tasks []ParsedTask
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}
		tasks = append(tasks, ParsedTask{
			Title:            line,
			EstimatedMinutes: defaults.EstimatedMinutes,
		})
	}
	return tasks
}

// stripCodeFences unwraps a single markdown code block around the payload.
// Models regularly wrap the array in ```json fences despite the instructions.
func stripCodeFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	rest := s[3:]
	if idx := strings.Index(rest, "\n"); idx >= 0 {
		rest = rest[idx+1:]
	}
	rest = strings.TrimSpace(rest)
	rest = strings.TrimSuffix(rest, "```")
	return strings.TrimSpace(rest)
}

func stringField(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return ""
}

func durationField(obj map[string]any, fallback int) int {
	v, ok := obj["estimated_duration_min"]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case json.Number:
		if f, err := n.Float64(); err == nil && f > 0 {
			return int(f)
		}
	case string:
		// tolerated: "15" or "15 min"
		trimmed := strings.TrimSpace(n)
		if idx := strings.IndexFunc(trimmed, func(r rune) bool { return r < '0' || r > '9' }); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		if parsed, err := strconv.Atoi(trimmed); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func tagsField(obj map[string]any) []string {
	switch v := obj["tags"].(type) {
	case []any:
		var tags []string
		for _, el := range v {
			if s, ok := el.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					tags = append(tags, s)
				}
			}
		}
		return tags
	case string:
		var tags []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				tags = append(tags, s)
			}
		}
		return tags
	}
	return nil
}

package services

import (
	"testing"
)

func TestParseTaskResponseStrict(t *testing.T) {
	raw := `[{"task_id":"walk-1","title":"A","description":"B","tags":["calm","short"],"estimated_duration_min":7}]`
	result := ParseTaskResponse(raw, ParseDefaults{})

	if result.Mode != ParseStrict {
		t.Fatalf("mode: want=%q got=%q", ParseStrict, result.Mode)
	}
	if len(result.Tasks) != 1 {
		t.Fatalf("tasks: want=1 got=%d", len(result.Tasks))
	}
	task := result.Tasks[0]
	if task.Slug != "walk-1" || task.Title != "A" || task.Description != "B" {
		t.Fatalf("unexpected task fields: %+v", task)
	}
	if task.EstimatedMinutes != 7 {
		t.Fatalf("estimated minutes: want=7 got=%d", task.EstimatedMinutes)
	}
	if len(task.Tags) != 2 || task.Tags[0] != "calm" {
		t.Fatalf("unexpected tags: %v", task.Tags)
	}
}

func TestParseTaskResponseStrictDefaults(t *testing.T) {
	raw := `[{"title":"Stretch"}]`
	result := ParseTaskResponse(raw, ParseDefaults{})

	if result.Mode != ParseStrict {
		t.Fatalf("mode: want=%q got=%q", ParseStrict, result.Mode)
	}
	if result.Tasks[0].EstimatedMinutes != DefaultEstimatedMinutes {
		t.Fatalf("estimated minutes: want=%d got=%d", DefaultEstimatedMinutes, result.Tasks[0].EstimatedMinutes)
	}
	if result.Tasks[0].Description != "" {
		t.Fatalf("description: want empty got=%q", result.Tasks[0].Description)
	}
}

func TestParseTaskResponseStrictDropsUntitled(t *testing.T) {
	raw := `[{"title":"Keep me"},{"description":"no title here"},{"title":"   "}]`
	result := ParseTaskResponse(raw, ParseDefaults{})

	if result.Mode != ParseStrict {
		t.Fatalf("mode: want=%q got=%q", ParseStrict, result.Mode)
	}
	if len(result.Tasks) != 1 || result.Tasks[0].Title != "Keep me" {
		t.Fatalf("unexpected tasks: %+v", result.Tasks)
	}
	if result.Dropped != 2 {
		t.Fatalf("dropped: want=2 got=%d", result.Dropped)
	}
}

func TestParseTaskResponseEmptyArray(t *testing.T) {
	result := ParseTaskResponse("[]", ParseDefaults{})
	if result.Mode != ParseStrict {
		t.Fatalf("mode: want=%q got=%q", ParseStrict, result.Mode)
	}
	if len(result.Tasks) != 0 {
		t.Fatalf("tasks: want=0 got=%d", len(result.Tasks))
	}
}

func TestParseTaskResponseCodeFences(t *testing.T) {
	raw := "```json\n[{\"title\":\"Fenced\"}]\n```"
	result := ParseTaskResponse(raw, ParseDefaults{})
	if result.Mode != ParseStrict {
		t.Fatalf("mode: want=%q got=%q", ParseStrict, result.Mode)
	}
	if len(result.Tasks) != 1 || result.Tasks[0].Title != "Fenced" {
		t.Fatalf("unexpected tasks: %+v", result.Tasks)
	}
}

func TestParseTaskResponseRepaired(t *testing.T) {
	// trailing comma makes the strict stage fail
	raw := `[{"title":"Almost","estimated_duration_min":10,},]`
	result := ParseTaskResponse(raw, ParseDefaults{})

	if result.Mode != ParseRepaired {
		t.Fatalf("mode: want=%q got=%q", ParseRepaired, result.Mode)
	}
	if len(result.Tasks) != 1 || result.Tasks[0].Title != "Almost" {
		t.Fatalf("unexpected tasks: %+v", result.Tasks)
	}
	if result.Tasks[0].EstimatedMinutes != 10 {
		t.Fatalf("estimated minutes: want=10 got=%d", result.Tasks[0].EstimatedMinutes)
	}
}

func TestParseTaskResponseFallbackLines(t *testing.T) {
	raw := "Drink water\n\nGo for a walk\n"
	result := ParseTaskResponse(raw, ParseDefaults{})

	if result.Mode != ParseFallback {
		t.Fatalf("mode: want=%q got=%q", ParseFallback, result.Mode)
	}
	if len(result.Tasks) != 2 {
		t.Fatalf("tasks: want=2 got=%d", len(result.Tasks))
	}
	if result.Tasks[0].Title != "Drink water" || result.Tasks[1].Title != "Go for a walk" {
		t.Fatalf("unexpected titles: %+v", result.Tasks)
	}
	for _, task := range result.Tasks {
		if task.Description != "" {
			t.Fatalf("fallback description: want empty got=%q", task.Description)
		}
		if task.EstimatedMinutes != DefaultEstimatedMinutes {
			t.Fatalf("fallback minutes: want=%d got=%d", DefaultEstimatedMinutes, task.EstimatedMinutes)
		}
	}
}

func TestParseTaskResponseNonArrayJSON(t *testing.T) {
	raw := `{"title":"An object, not an array"}`
	result := ParseTaskResponse(raw, ParseDefaults{})
	if result.Mode != ParseFallback {
		t.Fatalf("mode: want=%q got=%q", ParseFallback, result.Mode)
	}
	if len(result.Tasks) != 1 {
		t.Fatalf("tasks: want=1 got=%d", len(result.Tasks))
	}
}

func TestParseTaskResponseDurationVariants(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"float duration", `[{"title":"T","estimated_duration_min":7.0}]`, 7},
		{"string duration", `[{"title":"T","estimated_duration_min":"12"}]`, 12},
		{"string with unit", `[{"title":"T","estimated_duration_min":"15 min"}]`, 15},
		{"zero falls back", `[{"title":"T","estimated_duration_min":0}]`, DefaultEstimatedMinutes},
		{"garbage falls back", `[{"title":"T","estimated_duration_min":"soon"}]`, DefaultEstimatedMinutes},
	}
	for _, tt := range tests {
		result := ParseTaskResponse(tt.raw, ParseDefaults{})
		if result.Mode != ParseStrict {
			t.Fatalf("%s: mode: want=%q got=%q", tt.name, ParseStrict, result.Mode)
		}
		if got := result.Tasks[0].EstimatedMinutes; got != tt.want {
			t.Fatalf("%s: minutes: want=%d got=%d", tt.name, tt.want, got)
		}
	}
}

func TestParseTaskResponseCustomDefaultMinutes(t *testing.T) {
	result := ParseTaskResponse(`[{"title":"T"}]`, ParseDefaults{EstimatedMinutes: 25})
	if got := result.Tasks[0].EstimatedMinutes; got != 25 {
		t.Fatalf("minutes: want=25 got=%d", got)
	}
}

func TestParseTaskResponseTagsAsString(t *testing.T) {
	result := ParseTaskResponse(`[{"title":"T","tags":"calm, short,  "}]`, ParseDefaults{})
	tags := result.Tasks[0].Tags
	if len(tags) != 2 || tags[0] != "calm" || tags[1] != "short" {
		t.Fatalf("unexpected tags: %v", tags)
	}
}

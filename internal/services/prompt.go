package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/allinhq/allin-backend/internal/types"
)

// PromptOptions carry the deployment-tunable parts of the rendered prompt.
type PromptOptions struct {
	// Quiet window in local hours. The window may wrap midnight, e.g. 22-7.
	QuietHoursStart int
	QuietHoursEnd   int
	MinTaskMinutes  int
	MaxTaskMinutes  int
}

func DefaultPromptOptions() PromptOptions {
	return PromptOptions{
		QuietHoursStart: 22,
		QuietHoursEnd:   7,
		MinTaskMinutes:  5,
		MaxTaskMinutes:  20,
	}
}

// InQuietHours reports whether t falls inside the quiet window.
func (o PromptOptions) InQuietHours(t time.Time) bool {
	h := t.Hour()
	if o.QuietHoursStart == o.QuietHoursEnd {
		return false
	}
	if o.QuietHoursStart < o.QuietHoursEnd {
		return h >= o.QuietHoursStart && h < o.QuietHoursEnd
	}
	return h >= o.QuietHoursStart || h < o.QuietHoursEnd
}

// BuildTaskPrompt renders the complete instruction block for one generation
// run. Pure function: identical inputs (including now) produce an identical
// string. It never touches the network or the database.
func BuildTaskPrompt(profile *types.IntakeProfile, state *types.DailyState, now time.Time, opts PromptOptions) string {
	var b strings.Builder

	b.WriteString("You are an experienced psychologist building a mental wellbeing application.\n")
	b.WriteString("Return EXACTLY one JSON array with 5 objects and NOTHING else - no explanations, headers, markdown or code fences.\n")
	b.WriteString("The first character of your reply must be \"[\" and the last character must be \"]\".\n")

	b.WriteString("\nPROFILE\n")
	fmt.Fprintf(&b, "age_range: %s\n", profile.AgeRange)
	fmt.Fprintf(&b, "pronouns: %s\n", profile.Pronouns)
	fmt.Fprintf(&b, "favorite_color: %s\n", profile.FavoriteColor)
	fmt.Fprintf(&b, "hobby: %s\n", profile.Hobby)
	fmt.Fprintf(&b, "has_close_person: %s\n", profile.ClosePersonPresence)
	fmt.Fprintf(&b, "family_relationship: %s\n", profile.FamilyRelationshipQuality)
	fmt.Fprintf(&b, "close_relationships: %s\n", profile.CloseRelationshipsQuality)

	b.WriteString("\nDAILY STATE\n")
	var low []string
	for _, r := range state.Ratings() {
		fmt.Fprintf(&b, "%s: %d/5\n", r.Label, r.Value)
		if r.Value <= 2 {
			low = append(low, r.Label)
		}
	}

	b.WriteString("\nCONTEXT\n")
	fmt.Fprintf(&b, "current_time_utc: %s\n", now.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "quiet_hours: %02d-%02d\n", opts.QuietHoursStart, opts.QuietHoursEnd)
	fmt.Fprintf(&b, "quiet_hours_active: %t\n", opts.InQuietHours(now))
	fmt.Fprintf(&b, "min_single_task_min: %d\n", opts.MinTaskMinutes)
	fmt.Fprintf(&b, "max_single_task_min: %d\n", opts.MaxTaskMinutes)

	b.WriteString("\nRULES\n")
	b.WriteString("1. Personalize every task using at least one attribute from PROFILE.\n")
	b.WriteString("2. Never suggest alcohol, nicotine, other substances or costly purchases.\n")
	b.WriteString("3. During quiet_hours suggest only quiet, home-based tasks of 10 minutes or less.\n")
	fmt.Fprintf(&b, "4. Outside quiet_hours tasks may take %d-%d minutes.\n", opts.MinTaskMinutes, opts.MaxTaskMinutes)
	b.WriteString("5. Do not repeat a theme across more than one task.\n")
	b.WriteString("6. Keep a friendly tone; never use imperative or guilt-inducing phrasing such as \"you should\", \"you must\" or \"you suffer\".\n")
	b.WriteString("7. Every object must contain exactly these keys in this order: task_id (slug), title (8 words or fewer), description (2 sentences or fewer), tags (2-4 words), estimated_duration_min (integer), created_at (current_time_utc).\n")
	b.WriteString("8. The result must pass a strict JSON parse.\n")
	if len(low) > 0 {
		fmt.Fprintf(&b, "9. The user rated the following dimensions low today: %s. Avoid tasks thematically tied to them.\n", strings.Join(low, ", "))
	}

	b.WriteString("\nGenerate exactly 5 tasks. Return only the raw JSON.")
	return b.String()
}

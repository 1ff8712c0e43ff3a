package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"garderobe/internal/models"
	"garderobe/internal/monitoring"
	"garderobe/internal/wardrobe"

	"github.com/tmc/langchaingo/llms"
)

// ErrMalformedSuggestion marks a suggestion engine response that is
// missing, empty, or not the strict JSON object the prompt demands.
// Anything wrapped in prose or markdown fencing counts as malformed;
// there is no partial acceptance.
var ErrMalformedSuggestion = errors.New("malformed suggestion response")

// Planner derives a week of outfits from the live wardrobe, either by
// asking the suggestion engine or by falling back to the store's random
// generation. The two paths deliberately differ: AI plans overwrite every
// date they return, random plans skip days that are already planned.
type Planner struct {
	llm   llms.LLM
	store *wardrobe.Store
}

// New creates a planner over the given store. A nil llm disables the AI
// path; PlanWeek then always takes the random one.
func New(llm llms.LLM, store *wardrobe.Store) *Planner {
	return &Planner{llm: llm, store: store}
}

// PlanWeek plans the 7 days starting at start and reports which mode
// actually produced the plan. When the AI path fails for any reason the
// random fallback always runs; a week plan request never ends without a
// plan.
func (p *Planner) PlanWeek(ctx context.Context, start time.Time, useAI bool) string {
	if useAI && p.llm != nil {
		err := p.SuggestWeek(ctx, WeekDates(start))
		if err == nil {
			return "ai"
		}
		log.Printf("AI outfit plan failed, falling back to random: %v", err)
	}
	p.store.AutoGenerateWeek(start, false)
	return "random"
}

// SuggestWeek asks the suggestion engine to dress the given dates from
// the current inventory and merges the result into the outfit calendar,
// overwriting any existing plan for those dates.
func (p *Planner) SuggestWeek(ctx context.Context, dates []string) error {
	prompt := buildPrompt(p.store.Items(), dates)

	response, err := p.llm.Call(ctx, prompt, llms.WithMaxTokens(1000), llms.WithJSONMode())
	if err != nil {
		return fmt.Errorf("outfit suggestion request: %w", err)
	}

	plan, err := parsePlan(response)
	if err != nil {
		return err
	}

	p.store.ApplyPlan(plan)
	monitoring.PlansGenerated.WithLabelValues("ai").Inc()
	return nil
}

// WeekDates returns the 7 consecutive date keys starting at start.
func WeekDates(start time.Time) []string {
	dates := make([]string, 7)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i).Format("2006-01-02")
	}
	return dates
}

// buildPrompt renders the inventory description and the instruction
// block. The description is built deterministically from store state so
// identical wardrobes always produce identical prompts.
func buildPrompt(items []models.WardrobeItem, dates []string) string {
	var inventory strings.Builder
	for _, item := range items {
		fmt.Fprintf(&inventory, "%s available in colors: %s\n", item.ID, strings.Join(item.Colors, ", "))
	}

	return fmt.Sprintf(`I have a digital wardrobe:
%s
Plan a stylish outfit for each date: %s.
Pick one 'top', one 'bottom', and one 'footwear' from available items.
Ensure colors match aesthetically.

Return ONLY raw JSON. No markdown.
Format:
{
  "YYYY-MM-DD": {
    "top": { "id": "shirt", "color": "#hexcode" },
    "bottom": { "id": "trousers", "color": "#hexcode" },
    "footwear": { "id": "sneakers", "color": "#hexcode" }
  }
}`, inventory.String(), strings.Join(dates, ", "))
}

// parsePlan decodes the strict JSON response. Empty content, non-JSON, or
// an empty object are all hard failures that leave the calendar alone.
func parsePlan(response string) (map[string]models.Outfit, error) {
	trimmed := strings.TrimSpace(response)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty content", ErrMalformedSuggestion)
	}

	var plan map[string]models.Outfit
	if err := json.Unmarshal([]byte(trimmed), &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSuggestion, err)
	}
	if len(plan) == 0 {
		return nil, fmt.Errorf("%w: no outfits returned", ErrMalformedSuggestion)
	}
	return plan, nil
}

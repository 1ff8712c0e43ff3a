package evaluation

import (
	"fmt"

	"garderobe/internal/catalog"
	"garderobe/internal/models"
)

// Evaluator scores generated weekly plans against the wardrobe that
// produced them. Scores are advisory; a low-quality plan is still
// applied, but the numbers let the status surface flag degenerate AI
// output such as repeated identical days or invented garments.
type Evaluator struct{}

// New creates an evaluator
func New() *Evaluator {
	return &Evaluator{}
}

// Evaluate scores the outfits planned for the given dates. Dates with
// no outfit count against coverage; dates outside the list are ignored.
func (e *Evaluator) Evaluate(items []models.WardrobeItem, outfits map[string]models.Outfit, dates []string) Report {
	if len(dates) == 0 {
		return Report{}
	}

	owned := make(map[string]bool, len(items))
	for _, item := range items {
		for _, color := range item.Colors {
			owned[item.ID+"/"+color] = true
		}
	}

	var filled, ownedCount, fitCount int
	combos := make(map[string]bool)
	planned := 0

	for _, date := range dates {
		outfit, ok := outfits[date]
		if !ok {
			continue
		}
		planned++

		slots := []struct {
			slot     *models.OutfitSlot
			category catalog.Category
		}{
			{outfit.Top, catalog.Tops},
			{outfit.Bottom, catalog.Bottoms},
			{outfit.Footwear, catalog.Footwear},
		}

		combo := ""
		for _, s := range slots {
			if s.slot == nil {
				combo += "|"
				continue
			}
			filled++
			combo += fmt.Sprintf("|%s/%s", s.slot.ID, s.slot.Color)
			if owned[s.slot.ID+"/"+s.slot.Color] {
				ownedCount++
			}
			if tpl, ok := catalog.Get(s.slot.ID); ok && tpl.Category == s.category {
				fitCount++
			}
		}
		combos[combo] = true
	}

	report := Report{
		SlotCoverage: float64(filled) / float64(3*len(dates)),
	}
	if filled > 0 {
		report.OwnedGarments = float64(ownedCount) / float64(filled)
		report.CategoryFit = float64(fitCount) / float64(filled)
	}
	if planned > 0 {
		report.Variety = float64(len(combos)) / float64(planned)
	}

	report.Overall = (report.SlotCoverage * 0.3) +
		(report.OwnedGarments * 0.3) +
		(report.CategoryFit * 0.2) +
		(report.Variety * 0.2)

	return report
}

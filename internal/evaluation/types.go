package evaluation

// Report contains the quality scores for one generated week of outfits.
// All scores are ratios in [0, 1].
type Report struct {
	// SlotCoverage is the fraction of top/bottom/footwear slots that
	// were filled across the planned dates.
	SlotCoverage float64 `json:"slotCoverage"`

	// OwnedGarments is the fraction of filled slots that reference a
	// garment and color the wardrobe actually contains.
	OwnedGarments float64 `json:"ownedGarments"`

	// CategoryFit is the fraction of filled slots whose garment belongs
	// to the catalog category of that slot.
	CategoryFit float64 `json:"categoryFit"`

	// Variety is the fraction of planned dates wearing a distinct
	// combination.
	Variety float64 `json:"variety"`

	// Overall is the weighted combination of the individual scores.
	Overall float64 `json:"overall"`
}

package models

// WardrobeItem is one garment type owned by the user together with every
// color the user has added for it. Colors keep user add order; the list is
// never empty while the item exists.
type WardrobeItem struct {
	ID     string   `json:"id"`
	Colors []string `json:"colors"`
}

// HasColor reports whether the item already carries the given color.
func (i WardrobeItem) HasColor(color string) bool {
	for _, c := range i.Colors {
		if c == color {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can hand items out without
// exposing internal slices to mutation.
func (i WardrobeItem) Clone() WardrobeItem {
	colors := make([]string, len(i.Colors))
	copy(colors, i.Colors)
	return WardrobeItem{ID: i.ID, Colors: colors}
}

// OutfitSlot pins one garment in a specific color to an outfit. The color
// is a snapshot taken at assignment time; it is not required to still be
// present in the item's color list later.
type OutfitSlot struct {
	ID    string `json:"id"`
	Color string `json:"color"`
}

// Outfit is the plan for a single calendar day, keyed by its "YYYY-MM-DD"
// date. ImageURI optionally references a photo of the look actually worn.
type Outfit struct {
	Date     string      `json:"date"`
	ImageURI string      `json:"imageUri,omitempty"`
	Top      *OutfitSlot `json:"top,omitempty"`
	Bottom   *OutfitSlot `json:"bottom,omitempty"`
	Footwear *OutfitSlot `json:"footwear,omitempty"`
}

// Snapshot is the durable shape of a user's wardrobe state. The loading
// flag is transient and deliberately not part of it.
type Snapshot struct {
	Items   []WardrobeItem    `json:"items"`
	Outfits map[string]Outfit `json:"outfits"`
}

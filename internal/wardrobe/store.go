package wardrobe

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"garderobe/internal/catalog"
	"garderobe/internal/gateway"
	"garderobe/internal/models"
	"garderobe/internal/monitoring"
	"garderobe/internal/persistence"
)

// Mutation errors of the invariant-violation class. They mean the caller
// asked for something the current state cannot satisfy; state is left
// untouched in every such case.
var (
	ErrUnknownGarment = errors.New("unknown garment id")
	ErrInvalidIndex   = errors.New("color index out of range")
)

// Event describes a committed local mutation, published to the notifier
// after the state change is visible.
type Event struct {
	Type    string      `json:"type"`
	User    string      `json:"user"`
	Payload interface{} `json:"payload,omitempty"`
}

// Notifier receives change events. A nil notifier disables publishing.
type Notifier interface {
	Publish(evt Event)
}

// Store owns one user's wardrobe state for the process lifetime. Every
// mutation applies locally first, mirrors the state to the snapshot file,
// and only then talks to the remote gateway; a remote failure is returned
// to the caller but never rolls the local change back. The mutex is held
// only across the synchronous local phase, never across a gateway call.
type Store struct {
	user string

	mu       sync.Mutex
	items    []models.WardrobeItem
	outfits  map[string]models.Outfit
	loading  bool
	fetchGen uint64

	gw       gateway.Gateway
	snapshot persistence.Snapshot
	notifier Notifier
	rng      *rand.Rand
}

// NewStore builds the state owner for one user, rehydrating from the
// snapshot when one exists and seeding the starter wardrobe otherwise.
func NewStore(user string, gw gateway.Gateway, snap persistence.Snapshot, notifier Notifier) (*Store, error) {
	s := &Store{
		user:     user,
		outfits:  make(map[string]models.Outfit),
		gw:       gw,
		snapshot: snap,
		notifier: notifier,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	state, err := snap.Load()
	if err != nil {
		return nil, fmt.Errorf("rehydrate wardrobe for %s: %w", user, err)
	}
	if state == nil {
		s.items = defaultItems()
		return s, nil
	}

	s.items = state.Items
	if state.Outfits != nil {
		s.outfits = state.Outfits
	}
	return s, nil
}

// defaultItems is the starter wardrobe shown on first launch.
func defaultItems() []models.WardrobeItem {
	return []models.WardrobeItem{
		{ID: "shirt", Colors: []string{"#E74C3C", "#3498DB"}},
		{ID: "trousers", Colors: []string{"#34495E"}},
		{ID: "sneakers", Colors: []string{"#9B59B6"}},
	}
}

// User returns the id of the user whose wardrobe this store owns.
func (s *Store) User() string {
	return s.user
}

// Items returns a deep copy of the current inventory.
func (s *Store) Items() []models.WardrobeItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyItems(s.items)
}

// Outfits returns a deep copy of the outfit calendar.
func (s *Store) Outfits() map[string]models.Outfit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyOutfits(s.outfits)
}

// IsLoading reports whether a FetchItems call is in flight.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// FetchItems replaces the inventory wholesale with the remote copy. The
// loading flag is always released when the call settles, and a result
// arriving after a newer fetch has started is discarded rather than
// allowed to clobber fresher state.
func (s *Store) FetchItems(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.fetchGen++
	gen := s.fetchGen
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if gen == s.fetchGen {
			s.loading = false
		}
		s.mu.Unlock()
	}()

	items, err := s.gw.FetchAll(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if gen != s.fetchGen {
		s.mu.Unlock()
		return nil
	}
	s.items = items
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.writeThrough(snap)
	s.publish("items_fetched", nil)
	return nil
}

// AddColorToItem appends a color to the garment's list, creating the item
// on first color. Adding a color the item already has is a no-op locally
// and remotely.
func (s *Store) AddColorToItem(ctx context.Context, id, color string) error {
	s.mu.Lock()
	i := s.indexOfLocked(id)
	if i >= 0 && s.items[i].HasColor(color) {
		s.mu.Unlock()
		return nil
	}
	if i >= 0 {
		s.items[i].Colors = append(s.items[i].Colors, color)
	} else {
		s.items = append(s.items, models.WardrobeItem{ID: id, Colors: []string{color}})
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.writeThrough(snap)
	s.publish("color_added", models.OutfitSlot{ID: id, Color: color})
	return s.gw.AddColor(ctx, id, color)
}

// RemoveColorFromItem removes the color at index. When the removal empties
// the color list the item disappears from the inventory entirely; the
// gateway is told it was the last color so the remote document is deleted
// rather than left empty.
func (s *Store) RemoveColorFromItem(ctx context.Context, id string, index int) error {
	s.mu.Lock()
	i := s.indexOfLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownGarment, id)
	}
	item := &s.items[i]
	if index < 0 || index >= len(item.Colors) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s[%d]", ErrInvalidIndex, id, index)
	}

	// The remote store is keyed by color value, and the last-color check
	// must use the pre-mutation length.
	color := item.Colors[index]
	isLast := len(item.Colors) == 1

	item.Colors = append(item.Colors[:index], item.Colors[index+1:]...)
	if len(item.Colors) == 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.writeThrough(snap)
	s.publish("color_removed", models.OutfitSlot{ID: id, Color: color})
	return s.gw.RemoveColor(ctx, id, color, isLast)
}

// UpdateColorOfItem replaces the color at index with newColor. Duplicate
// colors within one item are permitted after an update.
func (s *Store) UpdateColorOfItem(ctx context.Context, id string, index int, newColor string) error {
	s.mu.Lock()
	i := s.indexOfLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownGarment, id)
	}
	item := &s.items[i]
	if index < 0 || index >= len(item.Colors) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s[%d]", ErrInvalidIndex, id, index)
	}

	item.Colors[index] = newColor
	colors := append([]string(nil), item.Colors...)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.writeThrough(snap)
	s.publish("color_updated", models.OutfitSlot{ID: id, Color: newColor})
	return s.gw.SetColors(ctx, id, colors)
}

// DeleteEntireItem drops the garment from the inventory and its remote
// document. Outfits that reference the garment are left as they were:
// planned days are historical snapshots, immune to later inventory edits.
func (s *Store) DeleteEntireItem(ctx context.Context, id string) error {
	s.mu.Lock()
	if i := s.indexOfLocked(id); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.writeThrough(snap)
	s.publish("item_deleted", map[string]string{"id": id})
	return s.gw.DeleteItem(ctx, id)
}

// SetOutfitForDate upserts the outfit planned for a date. Outfits are
// local-only; nothing is mirrored to the gateway.
func (s *Store) SetOutfitForDate(date string, outfit models.Outfit) {
	outfit.Date = date
	s.mu.Lock()
	s.outfits[date] = outfit
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.writeThrough(snap)
	s.publish("outfit_set", outfit)
}

// SetOutfitImage attaches a photo of the worn look to a date, creating a
// minimal outfit when none exists and leaving planned slots untouched
// otherwise.
func (s *Store) SetOutfitImage(date, uri string) {
	s.mu.Lock()
	outfit, ok := s.outfits[date]
	if !ok {
		outfit = models.Outfit{Date: date}
	}
	outfit.Date = date
	outfit.ImageURI = uri
	s.outfits[date] = outfit
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.writeThrough(snap)
	s.publish("outfit_image_set", outfit)
}

// AutoGenerateWeek fills the 7 days starting at start with randomly picked
// outfits, skipping any day that already has one. A slot stays empty when
// no inventory item belongs to its category. The useAI flag is accepted
// for interface parity with the planner; AI-driven plans land through
// ApplyPlan instead and overwrite rather than skip.
func (s *Store) AutoGenerateWeek(start time.Time, useAI bool) {
	s.mu.Lock()
	for i := 0; i < 7; i++ {
		key := start.AddDate(0, 0, i).Format("2006-01-02")
		if _, exists := s.outfits[key]; exists {
			continue
		}
		s.outfits[key] = models.Outfit{
			Date:     key,
			Top:      s.pickRandomLocked(catalog.Tops),
			Bottom:   s.pickRandomLocked(catalog.Bottoms),
			Footwear: s.pickRandomLocked(catalog.Footwear),
		}
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	monitoring.PlansGenerated.WithLabelValues("random").Inc()
	s.writeThrough(snap)
	s.publish("week_generated", nil)
}

// ApplyPlan merges a planner result into the calendar, overwriting every
// date the plan names regardless of prior content.
func (s *Store) ApplyPlan(plan map[string]models.Outfit) {
	s.mu.Lock()
	for date, outfit := range plan {
		outfit.Date = date
		s.outfits[date] = outfit
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.writeThrough(snap)
	s.publish("plan_applied", nil)
}

// pickRandomLocked chooses a uniformly random item of the category, then a
// uniformly random color of that item. Items with no catalog entry are
// tolerated but never planned.
func (s *Store) pickRandomLocked(cat catalog.Category) *models.OutfitSlot {
	var candidates []models.WardrobeItem
	for _, item := range s.items {
		t, ok := catalog.Get(item.ID)
		if !ok || t.Category != cat || len(item.Colors) == 0 {
			continue
		}
		candidates = append(candidates, item)
	}
	if len(candidates) == 0 {
		return nil
	}
	item := candidates[s.rng.Intn(len(candidates))]
	return &models.OutfitSlot{
		ID:    item.ID,
		Color: item.Colors[s.rng.Intn(len(item.Colors))],
	}
}

func (s *Store) indexOfLocked(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() *models.Snapshot {
	return &models.Snapshot{
		Items:   copyItems(s.items),
		Outfits: copyOutfits(s.outfits),
	}
}

// writeThrough persists the snapshot. Local durability is best-effort and
// independent of remote sync; a failed write is logged, not returned.
func (s *Store) writeThrough(snap *models.Snapshot) {
	if err := s.snapshot.Save(snap); err != nil {
		log.Printf("wardrobe snapshot for %s not saved: %v", s.user, err)
	}
}

func (s *Store) publish(eventType string, payload interface{}) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(Event{Type: eventType, User: s.user, Payload: payload})
}

func copyItems(items []models.WardrobeItem) []models.WardrobeItem {
	out := make([]models.WardrobeItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

func copyOutfits(outfits map[string]models.Outfit) map[string]models.Outfit {
	out := make(map[string]models.Outfit, len(outfits))
	for date, outfit := range outfits {
		out[date] = copyOutfit(outfit)
	}
	return out
}

func copyOutfit(o models.Outfit) models.Outfit {
	copySlot := func(slot *models.OutfitSlot) *models.OutfitSlot {
		if slot == nil {
			return nil
		}
		c := *slot
		return &c
	}
	o.Top = copySlot(o.Top)
	o.Bottom = copySlot(o.Bottom)
	o.Footwear = copySlot(o.Footwear)
	return o
}

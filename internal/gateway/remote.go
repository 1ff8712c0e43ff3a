package gateway

import (
	"context"

	"garderobe/internal/models"
	"garderobe/internal/monitoring"

	"github.com/jinzhu/gorm"
)

// Remote is the database-backed Gateway. One row per (user, garment type)
// in the garment_documents table; the constructor binds the authenticated
// user's id so every operation stays inside that user's namespace.
type Remote struct {
	db     *gorm.DB
	userID string
}

// NewRemote creates a gateway scoped to the given user.
func NewRemote(db *gorm.DB, userID string) *Remote {
	return &Remote{db: db, userID: userID}
}

// Ensure Remote implements Gateway
var _ Gateway = (*Remote)(nil)

// FetchAll returns all wardrobe documents for the bound user.
func (r *Remote) FetchAll(ctx context.Context) ([]models.WardrobeItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, r.fail("fetch_all", err)
	}
	monitoring.RemoteSyncAttempts.WithLabelValues("fetch_all").Inc()

	var docs []models.GarmentDocument
	if err := r.scoped().Find(&docs).Error; err != nil {
		return nil, r.fail("fetch_all", err)
	}

	items := make([]models.WardrobeItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, models.WardrobeItem{
			ID:     doc.ItemID,
			Colors: append([]string(nil), doc.Colors...),
		})
	}
	return items, nil
}

// AddColor performs the idempotent union-add described by the Gateway
// contract, creating the document on first use of a garment type.
func (r *Remote) AddColor(ctx context.Context, itemID, color string) error {
	if err := ctx.Err(); err != nil {
		return r.fail("add_color", err)
	}
	monitoring.RemoteSyncAttempts.WithLabelValues("add_color").Inc()

	var doc models.GarmentDocument
	err := r.scoped().Where("item_id = ?", itemID).First(&doc).Error
	if gorm.IsRecordNotFoundError(err) {
		doc = models.GarmentDocument{
			UserID: r.userID,
			ItemID: itemID,
			Colors: models.StringSlice{color},
		}
		if err := r.db.Create(&doc).Error; err != nil {
			return r.fail("add_color", err)
		}
		return nil
	}
	if err != nil {
		return r.fail("add_color", err)
	}

	for _, c := range doc.Colors {
		if c == color {
			return nil
		}
	}
	doc.Colors = append(doc.Colors, color)
	if err := r.db.Save(&doc).Error; err != nil {
		return r.fail("add_color", err)
	}
	return nil
}

// RemoveColor removes every occurrence of color from the document, or
// deletes the document outright when the caller flags the last color.
func (r *Remote) RemoveColor(ctx context.Context, itemID, color string, isLastColor bool) error {
	if err := ctx.Err(); err != nil {
		return r.fail("remove_color", err)
	}
	monitoring.RemoteSyncAttempts.WithLabelValues("remove_color").Inc()

	if isLastColor {
		if err := r.scoped().Where("item_id = ?", itemID).Delete(&models.GarmentDocument{}).Error; err != nil {
			return r.fail("remove_color", err)
		}
		return nil
	}

	var doc models.GarmentDocument
	err := r.scoped().Where("item_id = ?", itemID).First(&doc).Error
	if gorm.IsRecordNotFoundError(err) {
		// Nothing to remove; the local copy was ahead of the remote one.
		return nil
	}
	if err != nil {
		return r.fail("remove_color", err)
	}

	kept := make(models.StringSlice, 0, len(doc.Colors))
	for _, c := range doc.Colors {
		if c != color {
			kept = append(kept, c)
		}
	}
	doc.Colors = kept
	if err := r.db.Save(&doc).Error; err != nil {
		return r.fail("remove_color", err)
	}
	return nil
}

// SetColors replaces the stored color list, creating the document if the
// item has never been synced.
func (r *Remote) SetColors(ctx context.Context, itemID string, colors []string) error {
	if err := ctx.Err(); err != nil {
		return r.fail("set_colors", err)
	}
	monitoring.RemoteSyncAttempts.WithLabelValues("set_colors").Inc()

	var doc models.GarmentDocument
	err := r.scoped().Where("item_id = ?", itemID).First(&doc).Error
	if gorm.IsRecordNotFoundError(err) {
		doc = models.GarmentDocument{
			UserID: r.userID,
			ItemID: itemID,
			Colors: models.StringSlice(colors),
		}
		if err := r.db.Create(&doc).Error; err != nil {
			return r.fail("set_colors", err)
		}
		return nil
	}
	if err != nil {
		return r.fail("set_colors", err)
	}

	doc.Colors = models.StringSlice(colors)
	if err := r.db.Save(&doc).Error; err != nil {
		return r.fail("set_colors", err)
	}
	return nil
}

// DeleteItem deletes the item's document regardless of its contents.
func (r *Remote) DeleteItem(ctx context.Context, itemID string) error {
	if err := ctx.Err(); err != nil {
		return r.fail("delete_item", err)
	}
	monitoring.RemoteSyncAttempts.WithLabelValues("delete_item").Inc()

	if err := r.scoped().Where("item_id = ?", itemID).Delete(&models.GarmentDocument{}).Error; err != nil {
		return r.fail("delete_item", err)
	}
	return nil
}

func (r *Remote) scoped() *gorm.DB {
	return r.db.Where("user_id = ?", r.userID)
}

func (r *Remote) fail(op string, err error) error {
	monitoring.RemoteSyncFailures.WithLabelValues(op).Inc()
	return &RemoteError{Op: op, Err: err}
}

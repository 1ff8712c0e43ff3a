package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/jinzhu/gorm"
)

// StringSlice represents a slice of strings that can be stored in the database
type StringSlice []string

// Value converts the slice to a JSON string for storage
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan converts the database value back to a slice
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for StringSlice")
	}
}

// GarmentDocument is the remote copy of one wardrobe item: a single row
// per (user, garment type) holding the color set. The remote side keeps
// union semantics for colors while the local store keeps user order.
type GarmentDocument struct {
	gorm.Model
	UserID string      `gorm:"column:user_id;index"`
	ItemID string      `gorm:"column:item_id"`
	Colors StringSlice `gorm:"type:text"`
}

// TableName sets the table name for GarmentDocument
func (GarmentDocument) TableName() string {
	return "garment_documents"
}

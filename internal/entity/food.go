package entity

import "time"

// Food categories accepted by the listing form.
const (
	CategoryFruit      = "Fruit"
	CategoryVegetables = "Vegetables"
	CategoryDairy      = "Dairy"
	CategoryDeli       = "Deli"
	CategoryDryGrocery = "Dry Grocery"
	CategoryBakery     = "Bakery"
)

// Food is a surplus food listing. Price is kept as a string on purpose: "0" is
// the sentinel for a free listing and the original data contains free-form
// values, so numeric interpretation happens in the ranking package only.
type Food struct {
	ID            string
	UserID        string
	Owner         *User // populated on reads, never stored
	Title         string
	Description   string
	Quantity      string
	Category      string
	Location      *GeoPoint
	ImageURL      string
	IsUrgent      bool
	DietryRestric string
	Price         string
	Unit          string
	ExpiresAt     time.Time
	Comments      []Comment
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsExpired is derived, never stored.
func (f *Food) IsExpired(now time.Time) bool {
	return !f.ExpiresAt.After(now)
}

// Comment is embedded in a Food document. IDs are unique within the listing.
type Comment struct {
	ID        string
	UserID    string
	Text      string
	CreatedAt time.Time
}

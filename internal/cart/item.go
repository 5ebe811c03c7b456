package cart

import (
	"github.com/fanzone/fanzone-backend/internal/app/model"
)

// LineItem is a cart row: a snapshot of the product at the moment it was
// added, plus the chosen quantity and variant. Later catalog edits do not
// touch lines already in the cart.
type LineItem struct {
	model.Product
	Quantity  int                    `json:"quantity"`
	Attribute string                 `json:"attribute,omitempty"`
	Poster    *model.PosterSelection `json:"posterCustomization,omitempty"`
}

// SameLine reports whether two rows are the same cart line. Lines match on
// product id plus variant: poster lines compare the full customization,
// everything else compares the attribute string (both empty counts as a
// match for products without variants).
func (li LineItem) SameLine(other LineItem) bool {
	if li.ID != other.ID {
		return false
	}
	if li.Poster != nil && other.Poster != nil {
		return *li.Poster == *other.Poster
	}
	if (li.Poster == nil) != (other.Poster == nil) {
		return false
	}
	return li.Attribute == other.Attribute
}

// LineTotal is quantity times the unit price captured in the snapshot.
func (li LineItem) LineTotal() float64 {
	return float64(li.Quantity) * li.EffectivePrice()
}

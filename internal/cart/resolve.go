package cart

import (
	"errors"
	"fmt"

	"github.com/fanzone/fanzone-backend/internal/app/model"
)

var (
	// ErrSelectionRequired means the product has variants but no choice
	// was made.
	ErrSelectionRequired = errors.New("product requires a variant selection")
	// ErrUnknownOption means the chosen option is not one the product
	// offers.
	ErrUnknownOption = errors.New("unknown variant option")
)

// Selection is the shopper's variant choice for one product. Option is the
// chosen size, color or dimension key; Poster carries the full poster
// customization instead.
type Selection struct {
	Option string
	Poster *model.PosterSelection
}

// Resolve turns a product plus variant selection into a cart line with the
// price fixed at selection time.
func Resolve(product model.Product, sel Selection, quantity int) (LineItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	item := LineItem{
		Product:  product,
		Quantity: quantity,
	}

	variants := product.Variants()
	switch variants.Kind {
	case model.VariantNone:
		return item, nil

	case model.VariantFlatList:
		if sel.Option == "" {
			return LineItem{}, ErrSelectionRequired
		}
		if !contains(variants.Options, sel.Option) {
			return LineItem{}, fmt.Errorf("%w: %s", ErrUnknownOption, sel.Option)
		}
		// Flat variants share the catalog price.
		item.Attribute = sel.Option
		return item, nil

	case model.VariantPricedMap:
		if sel.Option == "" {
			return LineItem{}, ErrSelectionRequired
		}
		price, ok := variants.Prices[sel.Option]
		if !ok {
			return LineItem{}, fmt.Errorf("%w: %s", ErrUnknownOption, sel.Option)
		}
		// The dimension price overrides both fields, so a product-level
		// discount no longer changes the unit price of this line.
		item.Attribute = sel.Option
		item.Price = price
		item.FinalPrice = price
		return item, nil

	case model.VariantPoster:
		if sel.Poster == nil {
			return LineItem{}, ErrSelectionRequired
		}
		poster := variants.Poster
		item.Poster = sel.Poster
		item.Attribute = fmt.Sprintf("%s - %s - %s", sel.Poster.Size, sel.Poster.FrameColor, sel.Poster.Material)
		item.Price = poster.CellPrice(sel.Poster.Size, sel.Poster.Material, product.Price)
		item.FinalPrice = poster.FinalCellPrice(sel.Poster.Size, sel.Poster.Material, product.Discount, product.Price)
		return item, nil
	}

	return item, nil
}

func contains(options []string, option string) bool {
	for _, o := range options {
		if o == option {
			return true
		}
	}
	return false
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func posterProduct() *Product {
	return &Product{
		ID:       "poster-1",
		Name:     "Poster Messi",
		Price:    900,
		Discount: true,
		Attributes: AttributeMap{
			"poster_options": map[string]interface{}{
				"sizes":        []interface{}{"30x40cm", "50x70cm"},
				"frame_colors": []interface{}{"black", "white"},
				"materials":    []interface{}{"framed", "canvas"},
				"pricing": map[string]interface{}{
					"30x40cm": map[string]interface{}{"framed": 1200.0, "canvas": 900.0},
					"50x70cm": map[string]interface{}{"framed": 1800.0, "canvas": 1400.0},
				},
				"discount_percentage": 20.0,
			},
		},
	}
}

func TestVariants_NoAttributes(t *testing.T) {
	p := &Product{Name: "Gotë"}

	v := p.Variants()

	assert.Equal(t, VariantNone, v.Kind)
	assert.False(t, v.RequiresSelection())
}

func TestVariants_FlatList(t *testing.T) {
	p := &Product{
		Name: "Bluzë",
		Attributes: AttributeMap{
			"sizes": []interface{}{"S", "M", "L"},
		},
	}

	v := p.Variants()

	assert.Equal(t, VariantFlatList, v.Kind)
	assert.Equal(t, "sizes", v.Label)
	assert.Equal(t, []string{"S", "M", "L"}, v.Options)
	assert.True(t, v.RequiresSelection())
}

func TestVariants_Colors(t *testing.T) {
	p := &Product{
		Name: "Gotë",
		Attributes: AttributeMap{
			"colors": []interface{}{"red", "black"},
		},
	}

	v := p.Variants()

	assert.Equal(t, VariantFlatList, v.Kind)
	assert.Equal(t, "colors", v.Label)
}

func TestVariants_PricedMap(t *testing.T) {
	p := &Product{
		Name: "Kornizë",
		Attributes: AttributeMap{
			"dimensions": map[string]interface{}{
				"60x80cm":  4500.0,
				"80x100cm": 6000.0,
			},
		},
	}

	v := p.Variants()

	assert.Equal(t, VariantPricedMap, v.Kind)
	assert.Equal(t, 4500.0, v.Prices["60x80cm"])
	assert.Equal(t, 6000.0, v.Prices["80x100cm"])
}

func TestVariants_Poster(t *testing.T) {
	v := posterProduct().Variants()

	assert.Equal(t, VariantPoster, v.Kind)
	assert.ElementsMatch(t, []string{"30x40cm", "50x70cm"}, v.Poster.Sizes)
	assert.ElementsMatch(t, []string{"framed", "canvas"}, v.Poster.Materials)
	assert.Equal(t, 20.0, v.Poster.DiscountPercentage)
}

func TestVariants_PosterWinsOverOtherKeys(t *testing.T) {
	p := posterProduct()
	p.Attributes["sizes"] = []interface{}{"S", "M"}

	v := p.Variants()

	assert.Equal(t, VariantPoster, v.Kind)
}

func TestPosterOptions_CellPrice(t *testing.T) {
	v := posterProduct().Variants()

	assert.Equal(t, 1200.0, v.Poster.CellPrice("30x40cm", "framed", 900))
	assert.Equal(t, 1400.0, v.Poster.CellPrice("50x70cm", "canvas", 900))
}

func TestPosterOptions_CellPriceFallsBackToBase(t *testing.T) {
	v := posterProduct().Variants()

	assert.Equal(t, 900.0, v.Poster.CellPrice("100x140cm", "framed", 900))
	assert.Equal(t, 900.0, v.Poster.CellPrice("30x40cm", "metal", 900))
}

func TestPosterOptions_FinalCellPriceAppliesDiscount(t *testing.T) {
	v := posterProduct().Variants()

	// 1200 with 20% off rounds to 960.
	assert.Equal(t, 960.0, v.Poster.FinalCellPrice("30x40cm", "framed", true, 900))
}

func TestPosterOptions_FinalCellPriceWithoutDiscountFlag(t *testing.T) {
	v := posterProduct().Variants()

	assert.Equal(t, 1200.0, v.Poster.FinalCellPrice("30x40cm", "framed", false, 900))
}

func TestPosterOptions_FinalCellPriceZeroPercentage(t *testing.T) {
	p := posterProduct()
	p.Attributes["poster_options"].(map[string]interface{})["discount_percentage"] = 0.0

	v := p.Variants()

	assert.Equal(t, 1200.0, v.Poster.FinalCellPrice("30x40cm", "framed", true, 900))
}

func TestEffectivePrice(t *testing.T) {
	discounted := &Product{Price: 2500, FinalPrice: 2000, Discount: true}
	regular := &Product{Price: 2500, FinalPrice: 2000, Discount: false}

	assert.Equal(t, 2000.0, discounted.EffectivePrice())
	assert.Equal(t, 2500.0, regular.EffectivePrice())
}

func TestGalleryImages_FiltersBlanks(t *testing.T) {
	p := &Product{Images: []string{"a.jpg", "", "  ", "b.jpg"}}

	assert.Equal(t, []string{"a.jpg", "b.jpg"}, p.GalleryImages())
}

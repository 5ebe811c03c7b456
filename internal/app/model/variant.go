package model

import (
	"encoding/json"
	"math"
)

// VariantKind enumerates the known shapes of the product attributes map.
// Adding a new shape means extending this enum and every switch over it,
// instead of sniffing keys at runtime.
type VariantKind int

const (
	// VariantNone - product has no variants, price fields apply directly.
	VariantNone VariantKind = iota
	// VariantFlatList - a list of sizes or colors sharing the base price.
	VariantFlatList
	// VariantPricedMap - each variant key carries its own price (dimensions).
	VariantPricedMap
	// VariantPoster - size x material grid with per-cell pricing and an
	// optional discount percentage; frame color does not affect the price.
	VariantPoster
)

// PosterSelection is a fully resolved poster customization.
type PosterSelection struct {
	Size       string `json:"size"`
	FrameColor string `json:"frameColor"`
	Material   string `json:"material"`
}

type PosterOptions struct {
	Sizes              []string
	FrameColors        []string
	Materials          []string
	Pricing            map[string]map[string]float64
	DiscountPercentage float64
}

// CellPrice resolves the price for a size/material cell, falling back to the
// given base price when the cell is missing from the grid.
func (po *PosterOptions) CellPrice(size, material string, fallback float64) float64 {
	if materials, ok := po.Pricing[size]; ok {
		if price, ok := materials[material]; ok {
			return price
		}
	}
	return fallback
}

// FinalCellPrice applies the poster discount percentage to a cell price.
// The percentage only applies when the product-level discount flag is set
// and the percentage is positive.
func (po *PosterOptions) FinalCellPrice(size, material string, discounted bool, fallback float64) float64 {
	price := po.CellPrice(size, material, fallback)
	if discounted && po.DiscountPercentage > 0 {
		return math.Round(price * (1 - po.DiscountPercentage/100))
	}
	return price
}

// Variants is the tagged union over the known attribute shapes. Exactly the
// fields for the active Kind are populated.
type Variants struct {
	Kind VariantKind

	// FlatList
	Label   string
	Options []string

	// PricedMap
	Prices map[string]float64

	// Poster
	Poster *PosterOptions
}

// RequiresSelection reports whether the product cannot go into a cart
// without a resolved variant choice.
func (v Variants) RequiresSelection() bool {
	return v.Kind != VariantNone
}

// Variants classifies the raw attributes map into the tagged union.
// Unknown or empty shapes degrade to VariantNone.
func (p *Product) Variants() Variants {
	if len(p.Attributes) == 0 {
		return Variants{Kind: VariantNone}
	}

	if raw, ok := p.Attributes["poster_options"]; ok {
		if poster := parsePosterOptions(raw); poster != nil {
			return Variants{Kind: VariantPoster, Poster: poster}
		}
	}

	if raw, ok := p.Attributes["dimensions"]; ok {
		if prices := toPriceMap(raw); len(prices) > 0 {
			return Variants{Kind: VariantPricedMap, Prices: prices}
		}
	}

	for _, label := range []string{"sizes", "colors"} {
		if raw, ok := p.Attributes[label]; ok {
			if options := toStringSlice(raw); len(options) > 0 {
				return Variants{Kind: VariantFlatList, Label: label, Options: options}
			}
		}
	}

	return Variants{Kind: VariantNone}
}

func parsePosterOptions(raw interface{}) *PosterOptions {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}
	poster := &PosterOptions{
		Sizes:       toStringSlice(m["sizes"]),
		FrameColors: toStringSlice(m["frame_colors"]),
		Materials:   toStringSlice(m["materials"]),
		Pricing:     toPricingGrid(m["pricing"]),
	}
	if pct, ok := toFloat(m["discount_percentage"]); ok {
		poster.DiscountPercentage = pct
	}
	if len(poster.Sizes) == 0 && len(poster.Materials) == 0 {
		return nil
	}
	return poster
}

func toStringSlice(raw interface{}) []string {
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

func toPriceMap(raw interface{}) map[string]float64 {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}
	result := make(map[string]float64, len(m))
	for key, value := range m {
		if price, ok := toFloat(value); ok {
			result[key] = price
		}
	}
	return result
}

func toPricingGrid(raw interface{}) map[string]map[string]float64 {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return nil
	}
	result := make(map[string]map[string]float64, len(m))
	for size, cells := range m {
		if prices := toPriceMap(cells); len(prices) > 0 {
			result[size] = prices
		}
	}
	return result
}

func toFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

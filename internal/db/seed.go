package db

import (
	"github.com/fanzone/fanzone-backend/internal/app/model"
	"github.com/fanzone/fanzone-backend/pkg/logger"
	"github.com/lib/pq"
)

// Seed loads a small demo catalog. Existing products are left untouched.
func Seed() error {
	var count int64
	if err := DB.Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Products already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding demo catalog...")

	products := []model.Product{
		{
			Name:        "Bluzë Real Madrid 2024",
			Price:       2500,
			FinalPrice:  2000,
			Thumbnail:   "https://cdn.fanzone.al/products/rm-home-24.jpg",
			Images:      pq.StringArray{"https://cdn.fanzone.al/products/rm-home-24.jpg", "https://cdn.fanzone.al/products/rm-home-24-back.jpg"},
			Description: "Bluzë zyrtare e Real Madrid, sezoni 2024.",
			Category:    "futboll",
			ProductType: "bluze",
			Discount:    true,
			IsActive:    true,
			Attributes: model.AttributeMap{
				"sizes": []interface{}{"S", "M", "L", "XL"},
			},
		},
		{
			Name:        "Gotë Ferrari F1",
			Price:       800,
			FinalPrice:  800,
			Thumbnail:   "https://cdn.fanzone.al/products/ferrari-mug.jpg",
			Images:      pq.StringArray{"https://cdn.fanzone.al/products/ferrari-mug.jpg"},
			Description: "Gotë qeramike me logon e Scuderia Ferrari.",
			Category:    "formula1",
			ProductType: "aksesor",
			IsActive:    true,
			Attributes: model.AttributeMap{
				"colors": []interface{}{"red", "black"},
			},
		},
		{
			Name:        "Kornizë fanelle e nënshkruar",
			Price:       4500,
			FinalPrice:  4500,
			Thumbnail:   "https://cdn.fanzone.al/products/signed-frame.jpg",
			Images:      pq.StringArray{"https://cdn.fanzone.al/products/signed-frame.jpg"},
			Description: "Kornizë për fanellë me madhësi të ndryshme.",
			Category:    "koleksion",
			IsActive:    true,
			Attributes: model.AttributeMap{
				"dimensions": map[string]interface{}{
					"60x80cm": 4500.0,
					"80x100cm": 6000.0,
				},
			},
		},
		{
			Name:        "Poster Messi - Kampionë Bote",
			Price:       900,
			FinalPrice:  900,
			Thumbnail:   "https://cdn.fanzone.al/products/messi-wc.jpg",
			Images:      pq.StringArray{"https://cdn.fanzone.al/products/messi-wc.jpg"},
			Description: "Poster i printuar me cilësi të lartë.",
			Category:    "futboll",
			ProductType: "poster",
			Discount:    true,
			IsActive:    true,
			Attributes: model.AttributeMap{
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
		},
	}

	for i := range products {
		if err := DB.Create(&products[i]).Error; err != nil {
			logger.Error("Failed to seed product", err, map[string]interface{}{
				"name": products[i].Name,
			})
			return err
		}
	}

	logger.Info("Demo catalog seeded successfully", map[string]interface{}{
		"count": len(products),
	})
	return nil
}

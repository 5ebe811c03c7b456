package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fanzone/fanzone-backend/config"
	"github.com/fanzone/fanzone-backend/internal/app/model"
	"github.com/fanzone/fanzone-backend/internal/app/repository"
	"github.com/fanzone/fanzone-backend/internal/db"
)

// Without arguments the demo catalog is seeded. With an XLSX path the
// catalog is bulk-imported from the spreadsheet the old admin tool exports.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if len(os.Args) < 2 {
		if err := db.Seed(); err != nil {
			log.Fatal("Failed to seed demo catalog:", err)
		}
		fmt.Println("Demo catalog seeded.")
		return
	}

	filePath := os.Args[1]

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	productRepo := repository.NewProductRepository(db.GetDB())

	batchSize := 500
	if err := productRepo.BulkCreate(products, batchSize); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

// Expected columns: name, price, final_price, thumbnail, description,
// category, product_type, discount (po/yes/true). First row is the header.
func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product
	seen := make(map[string]bool)
	skippedCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 6 {
			skippedCount++
			continue
		}

		name := strings.TrimSpace(row[0])
		priceStr := strings.TrimSpace(row[1])
		finalPriceStr := strings.TrimSpace(row[2])
		thumbnail := strings.TrimSpace(row[3])
		description := strings.TrimSpace(row[4])
		category := strings.TrimSpace(row[5])

		productType := ""
		if len(row) > 6 {
			productType = strings.TrimSpace(row[6])
		}
		discount := false
		if len(row) > 7 {
			switch strings.ToLower(strings.TrimSpace(row[7])) {
			case "po", "yes", "true", "1":
				discount = true
			}
		}

		if name == "" || category == "" {
			skippedCount++
			continue
		}

		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			skippedCount++
			continue
		}

		finalPrice := price
		if finalPriceStr != "" {
			if parsed, err := strconv.ParseFloat(finalPriceStr, 64); err == nil && parsed >= 0 {
				finalPrice = parsed
			}
		}

		// De-duplicate on name + category.
		key := fmt.Sprintf("%s|%s", name, category)
		if seen[key] {
			skippedCount++
			continue
		}
		seen[key] = true

		products = append(products, model.Product{
			Name:        name,
			Price:       price,
			FinalPrice:  finalPrice,
			Thumbnail:   thumbnail,
			Description: description,
			Category:    category,
			ProductType: productType,
			Discount:    discount,
			IsActive:    true,
		})

		if len(products)%500 == 0 {
			fmt.Printf("Processed %d products...\n", len(products))
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid products: %d\n", len(products))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return products, nil
}

package repository

import (
	"strings"

	"github.com/fanzone/fanzone-backend/internal/app/model"
	"github.com/fanzone/fanzone-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductSort string

const (
	ProductSortPriceLow  ProductSort = "price-low"
	ProductSortPriceHigh ProductSort = "price-high"
	ProductSortNameAsc   ProductSort = "name-asc"
	ProductSortNameDesc  ProductSort = "name-desc"
	ProductSortDefault   ProductSort = ""
)

// ProductFilter describes one catalog listing query. Zero values impose no
// constraint; all present predicates are ANDed.
type ProductFilter struct {
	Search         string
	Categories     []string
	ProductTypes   []string
	MinPrice       *float64
	MaxPrice       *float64
	DiscountedOnly bool
	Sort           ProductSort
	Offset         int
	Limit          int
}

// scopes returns the optional predicate builders for this filter. Each
// builder contributes at most one WHERE clause, which keeps every predicate
// individually testable.
func (f ProductFilter) scopes() []func(*gorm.DB) *gorm.DB {
	var scopes []func(*gorm.DB) *gorm.DB

	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
			return q.Where("LOWER(name) LIKE ?", like)
		})
	}
	if len(f.Categories) > 0 {
		scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
			return q.Where("category IN ?", f.Categories)
		})
	}
	if len(f.ProductTypes) > 0 {
		scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
			return q.Where("product_type IN ?", f.ProductTypes)
		})
	}
	if f.MinPrice != nil {
		scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
			return q.Where("price >= ?", *f.MinPrice)
		})
	}
	if f.MaxPrice != nil {
		scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
			return q.Where("price <= ?", *f.MaxPrice)
		})
	}
	if f.DiscountedOnly {
		scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
			return q.Where("discount = ?", true)
		})
	}

	return scopes
}

// orderClause always ends on id so rows with equal sort keys keep a stable
// order across page queries.
func (f ProductFilter) orderClause() string {
	switch f.Sort {
	case ProductSortPriceLow:
		return "price ASC, id ASC"
	case ProductSortPriceHigh:
		return "price DESC, id ASC"
	case ProductSortNameAsc:
		return "name ASC, id ASC"
	case ProductSortNameDesc:
		return "name DESC, id ASC"
	default:
		return "category ASC, id ASC"
	}
}

type ProductRepository interface {
	Create(product *model.Product) error
	BulkCreate(products []model.Product, batchSize int) error
	FindWithFilter(filter ProductFilter) ([]model.Product, int64, error)
	FindByID(id string) (*model.Product, error)
	SearchByName(name string) ([]model.Product, error)
	FindRelated(category, excludeID string) ([]model.Product, error)
	Update(id string, fields map[string]interface{}) error
	Deactivate(id string) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":     product.Name,
		"category": product.Category,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name":     product.Name,
			"category": product.Category,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

// BulkCreate inserts products in batches, for the catalog importer.
func (r *productRepository) BulkCreate(products []model.Product, batchSize int) error {
	if len(products) == 0 {
		return nil
	}
	if batchSize < 1 {
		batchSize = 100
	}

	if err := r.db.CreateInBatches(products, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create products", err, map[string]interface{}{
			"count": len(products),
		})
		return err
	}

	logger.Info("Bulk created products", map[string]interface{}{
		"count": len(products),
	})
	return nil
}

// FindWithFilter returns one page of products plus the total row count for
// the same predicate set. The count ignores limit/offset so callers can
// derive hasNextPage.
func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, int64, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"search":          filter.Search,
		"categories":      filter.Categories,
		"product_types":   filter.ProductTypes,
		"discounted_only": filter.DiscountedOnly,
		"sort":            filter.Sort,
		"limit":           filter.Limit,
		"offset":          filter.Offset,
	})

	scopes := filter.scopes()

	var total int64
	if err := r.db.Model(&model.Product{}).Scopes(scopes...).Count(&total).Error; err != nil {
		logger.Error("Failed to count products with filter", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, 0, err
	}

	query := r.db.Model(&model.Product{}).Scopes(scopes...).Order(filter.orderClause())
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"search": filter.Search,
		})
		return nil, 0, err
	}

	logger.Debug("Products found with filter", map[string]interface{}{
		"count": len(products),
		"total": total,
	})
	return products, total, nil
}

func (r *productRepository) FindByID(id string) (*model.Product, error) {
	logger.Debug("Finding product by ID in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return &product, nil
}

// SearchByName is the unpaginated name search behind GET /products/search.
func (r *productRepository) SearchByName(name string) ([]model.Product, error) {
	like := "%" + strings.ToLower(name) + "%"

	var products []model.Product
	if err := r.db.Where("LOWER(name) LIKE ?", like).Find(&products).Error; err != nil {
		logger.Error("Failed to search products by name", err, map[string]interface{}{
			"name": name,
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) FindRelated(category, excludeID string) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.
		Where("category = ?", category).
		Where("id <> ?", excludeID).
		Find(&products).Error; err != nil {
		logger.Error("Failed to find related products", err, map[string]interface{}{
			"category":   category,
			"exclude_id": excludeID,
		})
		return nil, err
	}
	return products, nil
}

// Update applies a partial update. Missing row reports gorm.ErrRecordNotFound
// so services can distinguish not-found from other failures.
func (r *productRepository) Update(id string, fields map[string]interface{}) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": id,
	})

	result := r.db.Model(&model.Product{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		logger.Error("Failed to update product in database", result.Error, map[string]interface{}{
			"product_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Deactivate soft-deletes a product by flipping is_active. The row stays in
// place because historical orders may still display it in the admin panel.
func (r *productRepository) Deactivate(id string) error {
	logger.Debug("Deactivating product in database", map[string]interface{}{
		"product_id": id,
	})

	result := r.db.Model(&model.Product{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		logger.Error("Failed to deactivate product in database", result.Error, map[string]interface{}{
			"product_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

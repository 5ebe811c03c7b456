package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fanzone/fanzone-backend/internal/app/model"
	"github.com/fanzone/fanzone-backend/internal/app/repository"
	"github.com/fanzone/fanzone-backend/internal/cache"
	"github.com/fanzone/fanzone-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

// ProductPageSize is the fixed catalog page size.
const ProductPageSize = 40

// ProductListOptions mirror the query parameters of GET /products.
// Categories and ProductTypes may arrive as a single comma-joined value;
// normalization splits them.
type ProductListOptions struct {
	Offset         int
	Search         string
	Categories     []string
	ProductTypes   []string
	MinPrice       *float64
	MaxPrice       *float64
	DiscountedOnly bool
	Sort           string
}

// ProductPage is one page of the catalog listing.
type ProductPage struct {
	Products    []model.Product `json:"products"`
	HasNextPage bool            `json:"hasNextPage"`
	Total       int64           `json:"total"`
}

type ProductService interface {
	ListProducts(opts ProductListOptions) (*ProductPage, error)
	GetProductByID(id string) (*model.Product, error)
	SearchProducts(name string) ([]model.Product, error)
	GetRelatedProducts(category string, excludeID string) ([]model.Product, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(id string, fields map[string]interface{}) error
	DeactivateProduct(id string) error
}

type productService struct {
	productRepo repository.ProductRepository
	pageCache   *cache.ProductPageCache
}

// NewProductService builds the catalog service. The cache is optional; pass
// nil to always hit the database.
func NewProductService(productRepo repository.ProductRepository, pageCache *cache.ProductPageCache) ProductService {
	return &productService{
		productRepo: productRepo,
		pageCache:   pageCache,
	}
}

func (s *productService) ListProducts(opts ProductListOptions) (*ProductPage, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"offset":        opts.Offset,
		"search":        opts.Search,
		"categories":    opts.Categories,
		"product_types": opts.ProductTypes,
		"sort":          opts.Sort,
	})

	if opts.Offset < 0 {
		opts.Offset = 0
	}

	filter := repository.ProductFilter{
		Search:         opts.Search,
		Categories:     normalizeMultiValue(opts.Categories),
		ProductTypes:   normalizeMultiValue(opts.ProductTypes),
		MinPrice:       opts.MinPrice,
		MaxPrice:       opts.MaxPrice,
		DiscountedOnly: opts.DiscountedOnly,
		Sort:           parseSort(opts.Sort),
		Offset:         opts.Offset,
		Limit:          ProductPageSize,
	}

	cacheKey := filterCacheKey(filter)
	var page ProductPage
	if s.pageCache.Get(cacheKey, &page) {
		logger.Debug("Product page served from cache", map[string]interface{}{
			"key": cacheKey,
		})
		return &page, nil
	}

	products, total, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}

	page = ProductPage{
		Products:    products,
		HasNextPage: total > int64(opts.Offset+ProductPageSize),
		Total:       total,
	}
	s.pageCache.Set(cacheKey, &page)

	logger.Info("Products listed", map[string]interface{}{
		"count": len(products),
		"total": total,
	})
	return &page, nil
}

func (s *productService) GetProductByID(id string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

func (s *productService) SearchProducts(name string) ([]model.Product, error) {
	products, err := s.productRepo.SearchByName(name)
	if err != nil {
		logger.Error("Failed to search products", err, map[string]interface{}{
			"name": name,
		})
		return nil, err
	}

	logger.Info("Products searched", map[string]interface{}{
		"name":  name,
		"count": len(products),
	})
	return products, nil
}

func (s *productService) GetRelatedProducts(category string, excludeID string) ([]model.Product, error) {
	products, err := s.productRepo.FindRelated(category, excludeID)
	if err != nil {
		logger.Error("Failed to fetch related products", err, map[string]interface{}{
			"category": category,
		})
		return nil, err
	}
	return products, nil
}

func (s *productService) CreateProduct(product *model.Product) error {
	if err := s.productRepo.Create(product); err != nil {
		return err
	}
	s.pageCache.Flush()

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (s *productService) UpdateProduct(id string, fields map[string]interface{}) error {
	if err := s.productRepo.Update(id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	s.pageCache.Flush()

	logger.Info("Product updated", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (s *productService) DeactivateProduct(id string) error {
	if err := s.productRepo.Deactivate(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	s.pageCache.Flush()

	logger.Info("Product deactivated", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

// normalizeMultiValue splits single comma-joined values and trims entries.
// The SPA sends ?categories=a,b while curl users repeat the parameter; both
// must behave the same.
func normalizeMultiValue(values []string) []string {
	if len(values) == 1 && strings.Contains(values[0], ",") {
		values = strings.Split(values[0], ",")
	}

	result := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func parseSort(sort string) repository.ProductSort {
	switch repository.ProductSort(sort) {
	case repository.ProductSortPriceLow,
		repository.ProductSortPriceHigh,
		repository.ProductSortNameAsc,
		repository.ProductSortNameDesc:
		return repository.ProductSort(sort)
	default:
		return repository.ProductSortDefault
	}
}

// filterCacheKey is the canonical cache key of a filter. Every field that
// changes the result set must appear here.
func filterCacheKey(f repository.ProductFilter) string {
	min, max := "", ""
	if f.MinPrice != nil {
		min = fmt.Sprintf("%g", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		max = fmt.Sprintf("%g", *f.MaxPrice)
	}
	return fmt.Sprintf("o=%d|s=%s|c=%s|t=%s|min=%s|max=%s|d=%t|sort=%s",
		f.Offset,
		strings.ToLower(f.Search),
		strings.Join(f.Categories, ","),
		strings.Join(f.ProductTypes, ","),
		min, max,
		f.DiscountedOnly,
		f.Sort,
	)
}

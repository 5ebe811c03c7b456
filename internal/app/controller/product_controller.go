package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fanzone/fanzone-backend/internal/app/model"
	"github.com/fanzone/fanzone-backend/internal/app/service"
	apperrors "github.com/fanzone/fanzone-backend/internal/errors"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ListProducts handles GET /products.
// Multi-value params accept both repeated keys and a single comma-joined
// value; the service splits the latter.
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Parametri offset nuk është i vlefshëm")
			return
		}
		offset = parsed
	}

	opts := service.ProductListOptions{
		Offset:       offset,
		Search:       strings.TrimSpace(c.Query("search")),
		Categories:   c.QueryArray("categories"),
		ProductTypes: c.QueryArray("productTypes"),
		Sort:         c.Query("sortOption"),
	}

	if raw := c.Query("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Parametri minPrice nuk është i vlefshëm")
			return
		}
		opts.MinPrice = &v
	}
	if raw := c.Query("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Parametri maxPrice nuk është i vlefshëm")
			return
		}
		opts.MaxPrice = &v
	}
	if raw := c.Query("discountedOnly"); raw != "" {
		opts.DiscountedOnly = raw == "true" || raw == "1"
	}

	page, err := ctrl.productService.ListProducts(opts)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, page)
}

// SearchProducts handles GET /products/search?name=.
func (ctrl *ProductController) SearchProducts(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		c.JSON(http.StatusOK, []model.Product{})
		return
	}

	products, err := ctrl.productService.SearchProducts(name)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetRelatedProducts handles GET /products/related/:category/:id.
func (ctrl *ProductController) GetRelatedProducts(c *gin.Context) {
	category := c.Param("category")
	excludeID := c.Param("id")

	products, err := ctrl.productService.GetRelatedProducts(category, excludeID)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /products/:id.
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	product, err := ctrl.productService.GetProductByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Produkti nuk u gjet")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProductRequest is the admin create payload.
type CreateProductRequest struct {
	Name        string             `json:"name" binding:"required"`
	Price       float64            `json:"price" binding:"required,gte=0"`
	FinalPrice  float64            `json:"final_price" binding:"gte=0"`
	Thumbnail   string             `json:"thumbnail"`
	Images      []string           `json:"images"`
	Description string             `json:"description"`
	Category    string             `json:"category" binding:"required"`
	ProductType string             `json:"product_type"`
	Discount    bool               `json:"discount"`
	Attributes  model.AttributeMap `json:"attributes"`
}

// CreateProduct handles POST /products (admin).
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithValidationError(c, bindingErrorFields(err))
		return
	}

	finalPrice := req.FinalPrice
	if finalPrice == 0 {
		finalPrice = req.Price
	}

	product := &model.Product{
		Name:        req.Name,
		Price:       req.Price,
		FinalPrice:  finalPrice,
		Thumbnail:   req.Thumbnail,
		Images:      req.Images,
		Description: req.Description,
		Category:    req.Category,
		ProductType: req.ProductType,
		Discount:    req.Discount,
		IsActive:    true,
		Attributes:  req.Attributes,
	}

	if err := ctrl.productService.CreateProduct(product); err != nil {
		info := apperrors.ParseError(err, "create product")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProductRequest carries the admin partial update. Pointer fields
// distinguish "absent" from zero values.
type UpdateProductRequest struct {
	Name        *string             `json:"name"`
	Price       *float64            `json:"price"`
	FinalPrice  *float64            `json:"final_price"`
	Thumbnail   *string             `json:"thumbnail"`
	Images      []string            `json:"images"`
	Description *string             `json:"description"`
	Category    *string             `json:"category"`
	ProductType *string             `json:"product_type"`
	Discount    *bool               `json:"discount"`
	IsActive    *bool               `json:"is_active"`
	Attributes  *model.AttributeMap `json:"attributes"`
}

func (req *UpdateProductRequest) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.FinalPrice != nil {
		fields["final_price"] = *req.FinalPrice
	}
	if req.Thumbnail != nil {
		fields["thumbnail"] = *req.Thumbnail
	}
	if req.Images != nil {
		fields["images"] = req.Images
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.ProductType != nil {
		fields["product_type"] = *req.ProductType
	}
	if req.Discount != nil {
		fields["discount"] = *req.Discount
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if req.Attributes != nil {
		fields["attributes"] = *req.Attributes
	}
	return fields
}

// UpdateProduct handles PATCH /products/:id (admin).
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Të dhënat e dërguara nuk janë të vlefshme")
		return
	}

	fields := req.fields()
	if len(fields) == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Asnjë fushë për përditësim")
		return
	}

	if err := ctrl.productService.UpdateProduct(c.Param("id"), fields); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Produkti nuk u gjet")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	product, err := ctrl.productService.GetProductByID(c.Param("id"))
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/:id (admin). The row stays; only
// is_active flips so existing order snapshots keep resolving.
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	if err := ctrl.productService.DeactivateProduct(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Produkti nuk u gjet")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Produkti u çaktivizua"})
}

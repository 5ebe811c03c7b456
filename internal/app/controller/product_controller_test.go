package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanzone/fanzone-backend/internal/app/model"
	"github.com/fanzone/fanzone-backend/internal/app/repository"
	"github.com/fanzone/fanzone-backend/internal/app/service"
	"github.com/fanzone/fanzone-backend/internal/db"
)

func setupProductControllerTest(t *testing.T) (*gin.Engine, repository.ProductRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	productService := service.NewProductService(productRepo, nil)
	ctrl := NewProductController(productService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/products", ctrl.ListProducts)
	router.GET("/products/search", ctrl.SearchProducts)
	router.GET("/products/related/:category/:id", ctrl.GetRelatedProducts)
	router.GET("/products/:id", ctrl.GetProduct)
	router.POST("/products", ctrl.CreateProduct)
	router.PATCH("/products/:id", ctrl.UpdateProduct)
	router.DELETE("/products/:id", ctrl.DeleteProduct)

	return router, productRepo
}

func seedCatalog(t *testing.T, repo repository.ProductRepository, n int, category string) []model.Product {
	products := make([]model.Product, 0, n)
	for i := 0; i < n; i++ {
		p := model.Product{
			Name:       fmt.Sprintf("%s %02d", category, i),
			Price:      100,
			FinalPrice: 100,
			Category:   category,
			IsActive:   true,
		}
		require.NoError(t, repo.Create(&p))
		products = append(products, p)
	}
	return products
}

func TestProductController_ListProducts(t *testing.T) {
	router, repo := setupProductControllerTest(t)
	seedCatalog(t, repo, 41, "futboll")

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var page service.ProductPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Products, 40)
	assert.True(t, page.HasNextPage)
	assert.Equal(t, int64(41), page.Total)
}

func TestProductController_ListProducts_CommaJoinedCategories(t *testing.T) {
	router, repo := setupProductControllerTest(t)
	seedCatalog(t, repo, 2, "futboll")
	seedCatalog(t, repo, 3, "formula1")
	seedCatalog(t, repo, 1, "basketboll")

	req := httptest.NewRequest(http.MethodGet, "/products?categories=futboll,formula1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var page service.ProductPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, int64(5), page.Total)
}

func TestProductController_ListProducts_BadOffset(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/products?offset=abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductController_GetProduct_NotFound(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/products/missing-id", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "PRODUCT_NOT_FOUND")
}

func TestProductController_SearchProducts_EmptyNameReturnsEmptyList(t *testing.T) {
	router, repo := setupProductControllerTest(t)
	seedCatalog(t, repo, 3, "futboll")

	req := httptest.NewRequest(http.MethodGet, "/products/search", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestProductController_RelatedExcludesSelf(t *testing.T) {
	router, repo := setupProductControllerTest(t)
	products := seedCatalog(t, repo, 3, "futboll")

	url := fmt.Sprintf("/products/related/futboll/%s", products[0].ID)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var related []model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &related))
	assert.Len(t, related, 2)
	for _, p := range related {
		assert.NotEqual(t, products[0].ID, p.ID)
	}
}

func TestProductController_CreateProduct(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	body, _ := json.Marshal(CreateProductRequest{
		Name:     "Bluzë e re",
		Price:    2500,
		Category: "futboll",
		Attributes: model.AttributeMap{
			"sizes": []interface{}{"S", "M"},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive)
	// A missing final price defaults to the base price.
	assert.Equal(t, 2500.0, created.FinalPrice)
}

func TestProductController_CreateProduct_MissingFields(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader([]byte(`{"price": 100}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_INVALID_INPUT")
}

func TestProductController_UpdateProduct_Partial(t *testing.T) {
	router, repo := setupProductControllerTest(t)
	products := seedCatalog(t, repo, 1, "futboll")

	body := []byte(`{"price": 999}`)
	req := httptest.NewRequest(http.MethodPatch, "/products/"+products[0].ID, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var updated model.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 999.0, updated.Price)
	// Untouched fields keep their values.
	assert.Equal(t, products[0].Name, updated.Name)
}

func TestProductController_UpdateProduct_EmptyBody(t *testing.T) {
	router, repo := setupProductControllerTest(t)
	products := seedCatalog(t, repo, 1, "futboll")

	req := httptest.NewRequest(http.MethodPatch, "/products/"+products[0].ID, bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductController_DeleteProduct_SoftDeletes(t *testing.T) {
	router, repo := setupProductControllerTest(t)
	products := seedCatalog(t, repo, 1, "futboll")

	req := httptest.NewRequest(http.MethodDelete, "/products/"+products[0].ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	found, err := repo.FindByID(products[0].ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)
}

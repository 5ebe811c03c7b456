package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanzone/fanzone-backend/internal/app/model"
	"github.com/fanzone/fanzone-backend/internal/app/repository"
	"github.com/fanzone/fanzone-backend/internal/db"
)

func setupProductServiceTest(t *testing.T) (ProductService, repository.ProductRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	return NewProductService(productRepo, nil), productRepo
}

func seedProducts(t *testing.T, repo repository.ProductRepository, n int, category string) {
	for i := 0; i < n; i++ {
		p := model.Product{
			Name:       fmt.Sprintf("%s %02d", category, i),
			Price:      100,
			FinalPrice: 100,
			Category:   category,
			IsActive:   true,
		}
		require.NoError(t, repo.Create(&p))
	}
}

func TestProductService_ListProducts_PageSizeAndHasNextPage(t *testing.T) {
	svc, repo := setupProductServiceTest(t)
	seedProducts(t, repo, 41, "futboll")

	page, err := svc.ListProducts(ProductListOptions{})
	require.NoError(t, err)
	assert.Len(t, page.Products, 40)
	assert.Equal(t, int64(41), page.Total)
	assert.True(t, page.HasNextPage)

	page, err = svc.ListProducts(ProductListOptions{Offset: 40})
	require.NoError(t, err)
	assert.Len(t, page.Products, 1)
	assert.False(t, page.HasNextPage)
}

func TestProductService_ListProducts_ExactPageBoundary(t *testing.T) {
	svc, repo := setupProductServiceTest(t)
	seedProducts(t, repo, 40, "futboll")

	page, err := svc.ListProducts(ProductListOptions{})
	require.NoError(t, err)
	assert.Len(t, page.Products, 40)
	// total == offset + page size means no further page.
	assert.False(t, page.HasNextPage)
}

func TestProductService_ListProducts_SplitsCommaJoinedValues(t *testing.T) {
	svc, repo := setupProductServiceTest(t)
	seedProducts(t, repo, 2, "futboll")
	seedProducts(t, repo, 3, "formula1")
	seedProducts(t, repo, 1, "basketboll")

	// The SPA sends one comma-joined value.
	page, err := svc.ListProducts(ProductListOptions{
		Categories: []string{"futboll, formula1"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)

	// Repeated parameters behave the same.
	page, err = svc.ListProducts(ProductListOptions{
		Categories: []string{"futboll", "formula1"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
}

func TestProductService_ListProducts_NegativeOffsetClamped(t *testing.T) {
	svc, repo := setupProductServiceTest(t)
	seedProducts(t, repo, 3, "futboll")

	page, err := svc.ListProducts(ProductListOptions{Offset: -10})
	require.NoError(t, err)
	assert.Len(t, page.Products, 3)
}

func TestProductService_ListProducts_UnknownSortFallsBack(t *testing.T) {
	svc, repo := setupProductServiceTest(t)
	seedProducts(t, repo, 2, "futboll")

	page, err := svc.ListProducts(ProductListOptions{Sort: "price-weird"})
	require.NoError(t, err)
	assert.Len(t, page.Products, 2)
}

func TestProductService_GetProductByID_NotFound(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	_, err := svc.GetProductByID("missing")

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	err := svc.UpdateProduct("missing", map[string]interface{}{"price": 100.0})

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_DeactivateProduct(t *testing.T) {
	svc, repo := setupProductServiceTest(t)
	p := model.Product{Name: "Bluzë", Price: 2500, FinalPrice: 2500, Category: "futboll", IsActive: true}
	require.NoError(t, repo.Create(&p))

	require.NoError(t, svc.DeactivateProduct(p.ID))

	found, err := svc.GetProductByID(p.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)
}

func TestNormalizeMultiValue(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, normalizeMultiValue([]string{"a,b"}))
	assert.Equal(t, []string{"a", "b"}, normalizeMultiValue([]string{" a ", "b"}))
	assert.Equal(t, []string{"a"}, normalizeMultiValue([]string{"a", "", "  "}))
	assert.Empty(t, normalizeMultiValue(nil))
}

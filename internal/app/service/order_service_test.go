package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanzone/fanzone-backend/internal/app/model"
	"github.com/fanzone/fanzone-backend/internal/app/repository"
	"github.com/fanzone/fanzone-backend/internal/db"
)

// fakeMailService records dispatches instead of sending.
type fakeMailService struct {
	mu       sync.Mutex
	orders   []*model.Order
	contacts int
}

func (f *fakeMailService) OrderCreated(order *model.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, order)
}

func (f *fakeMailService) ContactMessage(name, email, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contacts++
}

func (f *fakeMailService) orderCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

func setupOrderServiceTest(t *testing.T) (OrderService, *fakeMailService) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	mails := &fakeMailService{}
	orderRepo := repository.NewOrderRepository(testDB)
	return NewOrderService(orderRepo, mails), mails
}

func validInput() CreateOrderInput {
	return CreateOrderInput{
		Name:      "Arben Hoxha",
		UserEmail: "arben@example.com",
		Phone:     "+355691234567",
		Products: []model.OrderLine{
			{ID: "p-1", Name: "Bluzë Real Madrid - M", Quantity: 2, Price: 2000, Image: "rm.jpg"},
		},
		Total:   4000,
		City:    "Tiranë",
		Address: "Rruga e Durrësit 10",
	}
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	svc, mails := setupOrderServiceTest(t)

	order, err := svc.CreateOrder(validInput())

	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, 4000.0, order.Total)
	assert.Equal(t, 1, mails.orderCount())
}

func TestOrderService_CreateOrder_CollectsAllFieldErrors(t *testing.T) {
	svc, mails := setupOrderServiceTest(t)

	_, err := svc.CreateOrder(CreateOrderInput{
		UserEmail: "not-an-email",
		Products:  nil,
	})

	var fieldErrs ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "name")
	assert.Contains(t, fieldErrs, "user_email")
	assert.Contains(t, fieldErrs, "phone")
	assert.Contains(t, fieldErrs, "city")
	assert.Contains(t, fieldErrs, "address")
	assert.Contains(t, fieldErrs, "products")
	assert.Equal(t, 0, mails.orderCount())
}

func TestOrderService_CreateOrder_RejectsBadLines(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)

	input := validInput()
	input.Products = []model.OrderLine{
		{ID: "", Name: "", Quantity: 1, Price: 100},
		{ID: "p-2", Name: "Gotë", Quantity: 0, Price: 100},
		{ID: "p-3", Name: "Poster", Quantity: 1, Price: -5},
	}

	_, err := svc.CreateOrder(input)

	var fieldErrs ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "products[0]")
	assert.Contains(t, fieldErrs, "products[1].quantity")
	assert.Contains(t, fieldErrs, "products[2].price")
}

func TestOrderService_CreateOrder_WhitespaceOnlyFieldsFail(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)

	input := validInput()
	input.Name = "   "
	input.City = "\t"

	_, err := svc.CreateOrder(input)

	var fieldErrs ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "name")
	assert.Contains(t, fieldErrs, "city")
}

func TestOrderService_GetOrderByID_NotFound(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)

	_, err := svc.GetOrderByID(999)

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_UpdateAndDelete(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)

	order, err := svc.CreateOrder(validInput())
	require.NoError(t, err)

	updated, err := svc.UpdateOrder(order.ID, map[string]interface{}{"city": "Durrës"})
	require.NoError(t, err)
	assert.Equal(t, "Durrës", updated.City)

	require.NoError(t, svc.DeleteOrder(order.ID))
	_, err = svc.GetOrderByID(order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_DeleteOrder_NotFound(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)

	err := svc.DeleteOrder(999)

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

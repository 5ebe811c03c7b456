package service

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/fanzone/fanzone-backend/internal/app/model"
	"github.com/fanzone/fanzone-backend/internal/app/repository"
	"github.com/fanzone/fanzone-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found")

// ValidationErrors maps field names to Albanian user-facing messages.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	return fmt.Sprintf("invalid order payload: %s", strings.Join(fields, ", "))
}

// CreateOrderInput is the checkout payload. Total is client-computed and
// stored as provided; the products array is the immutable snapshot.
type CreateOrderInput struct {
	Name      string
	UserEmail string
	Phone     string
	Products  []model.OrderLine
	Total     float64
	City      string
	Address   string
	Notes     string
}

type OrderService interface {
	CreateOrder(input CreateOrderInput) (*model.Order, error)
	ListOrders() ([]model.Order, error)
	GetOrderByID(id uint) (*model.Order, error)
	UpdateOrder(id uint, fields map[string]interface{}) (*model.Order, error)
	DeleteOrder(id uint) error
}

type orderService struct {
	orderRepo repository.OrderRepository
	mails     MailService
}

func NewOrderService(orderRepo repository.OrderRepository, mails MailService) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		mails:     mails,
	}
}

// CreateOrder validates the payload, persists the order transactionally and
// then queues the confirmation and owner-notification emails. The request
// fails only when validation or persistence fails; mail delivery is
// best-effort and retried out of band.
func (s *orderService) CreateOrder(input CreateOrderInput) (*model.Order, error) {
	if errs := validateOrderInput(input); len(errs) > 0 {
		logger.Warn("Order payload rejected", map[string]interface{}{
			"fields": errs,
		})
		return nil, errs
	}

	order := &model.Order{
		Name:      input.Name,
		UserEmail: input.UserEmail,
		Phone:     input.Phone,
		Products:  model.OrderLines(input.Products),
		Total:     input.Total,
		City:      input.City,
		Address:   input.Address,
		Notes:     input.Notes,
	}

	if err := s.orderRepo.Create(order); err != nil {
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_email": input.UserEmail,
		})
		return nil, err
	}

	s.mails.OrderCreated(order)

	logger.Info("Order created", map[string]interface{}{
		"order_id": order.ID,
		"total":    order.Total,
		"items":    len(order.Products),
	})
	return order, nil
}

func (s *orderService) ListOrders() ([]model.Order, error) {
	return s.orderRepo.FindAll()
}

func (s *orderService) GetOrderByID(id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) UpdateOrder(id uint, fields map[string]interface{}) (*model.Order, error) {
	order, err := s.orderRepo.Update(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	logger.Info("Order updated", map[string]interface{}{
		"order_id": id,
	})
	return order, nil
}

func (s *orderService) DeleteOrder(id uint) error {
	if err := s.orderRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	logger.Info("Order deleted", map[string]interface{}{
		"order_id": id,
	})
	return nil
}

func validateOrderInput(input CreateOrderInput) ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(input.Name) == "" {
		errs["name"] = "Emri është i detyrueshëm"
	}
	if _, err := mail.ParseAddress(input.UserEmail); err != nil {
		errs["user_email"] = "Email jo i vlefshëm"
	}
	if strings.TrimSpace(input.Phone) == "" {
		errs["phone"] = "Numri i telefonit është i detyrueshëm"
	}
	if strings.TrimSpace(input.City) == "" {
		errs["city"] = "Qyteti është i detyrueshëm"
	}
	if strings.TrimSpace(input.Address) == "" {
		errs["address"] = "Adresa është e detyrueshme"
	}
	if input.Total < 0 {
		errs["total"] = "Totali nuk mund të jetë negativ"
	}

	if len(input.Products) == 0 {
		errs["products"] = "Porosia nuk ka produkte"
	}
	for i, line := range input.Products {
		if line.ID == "" || line.Name == "" {
			errs[fmt.Sprintf("products[%d]", i)] = "Produkt jo i vlefshëm"
			continue
		}
		if line.Quantity < 1 {
			errs[fmt.Sprintf("products[%d].quantity", i)] = "Sasia duhet të jetë së paku 1"
		}
		if line.Price < 0 {
			errs[fmt.Sprintf("products[%d].price", i)] = "Çmimi nuk mund të jetë negativ"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Package checkout assembles the order payload the storefront submits and
// posts it to the orders API.
package checkout

import (
	"context"
	"fmt"

	"github.com/fanzone/fanzone-backend/internal/app/model"
	"github.com/fanzone/fanzone-backend/internal/cart"
	"github.com/fanzone/fanzone-backend/pkg/logger"
)

// CustomerDetails is the delivery form.
type CustomerDetails struct {
	Name    string
	Email   string
	Phone   string
	City    string
	Address string
	Notes   string
}

// OrderRequest is the body posted to /orders. Total is the sum of the
// lines only; shipping is presentation and the recipient re-derives it
// from the same policy.
type OrderRequest struct {
	Name      string            `json:"name"`
	UserEmail string            `json:"user_email"`
	Phone     string            `json:"phone"`
	Products  []model.OrderLine `json:"products"`
	Total     float64           `json:"total"`
	City      string            `json:"city"`
	Address   string            `json:"address"`
	Notes     string            `json:"notes,omitempty"`
}

// OrdersAPI submits a finished order.
type OrdersAPI interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*model.Order, error)
}

// Lines converts cart rows into order snapshot rows. The attribute folds
// into the name, the unit price is the final price and the image is the
// thumbnail only.
func Lines(items []cart.LineItem) []model.OrderLine {
	lines := make([]model.OrderLine, 0, len(items))
	for _, item := range items {
		name := item.Name
		if item.Attribute != "" {
			name = fmt.Sprintf("%s - %s", name, item.Attribute)
		}
		lines = append(lines, model.OrderLine{
			ID:       item.ID,
			Name:     name,
			Quantity: item.Quantity,
			Price:    item.FinalPrice,
			Image:    item.Thumbnail,
		})
	}
	return lines
}

// Submit posts the whole cart as one order. The cart is cleared when the
// submit is dispatched, before the response arrives; a failed submit
// therefore loses the cart contents.
func Submit(ctx context.Context, api OrdersAPI, c *cart.Cart, details CustomerDetails) (*model.Order, error) {
	items := c.Items()
	if len(items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	req := orderRequest(Lines(items), c.Total(), details)
	c.Clear()

	order, err := api.CreateOrder(ctx, req)
	if err != nil {
		logger.Error("Order submit failed after cart was cleared", err, map[string]interface{}{
			"items": len(items),
		})
		return nil, err
	}
	return order, nil
}

// BuyNow orders a single resolved line without touching the cart. The
// total is the final price times the quantity, matching the line rows,
// regardless of the discount flag.
func BuyNow(ctx context.Context, api OrdersAPI, item cart.LineItem, details CustomerDetails) (*model.Order, error) {
	total := item.FinalPrice * float64(item.Quantity)
	req := orderRequest(Lines([]cart.LineItem{item}), total, details)
	return api.CreateOrder(ctx, req)
}

func orderRequest(lines []model.OrderLine, total float64, details CustomerDetails) OrderRequest {
	return OrderRequest{
		Name:      details.Name,
		UserEmail: details.Email,
		Phone:     details.Phone,
		Products:  lines,
		Total:     total,
		City:      details.City,
		Address:   details.Address,
		Notes:     details.Notes,
	}
}

package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/fanzone/fanzone-backend/internal/app/model"
	"github.com/fanzone/fanzone-backend/internal/app/service"
	apperrors "github.com/fanzone/fanzone-backend/internal/errors"
	"github.com/fanzone/fanzone-backend/pkg/logger"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// CreateOrderRequest is the checkout payload. Field rules live in the
// service so the error map covers every field at once.
type CreateOrderRequest struct {
	Name      string            `json:"name"`
	UserEmail string            `json:"user_email"`
	Phone     string            `json:"phone"`
	Products  []model.OrderLine `json:"products"`
	Total     float64           `json:"total"`
	City      string            `json:"city"`
	Address   string            `json:"address"`
	Notes     string            `json:"notes"`
}

// CreateOrder handles POST /orders.
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondWithValidationError(c, map[string]string{
			"body": "Trupi i kërkesës nuk është JSON i vlefshëm",
		})
		return
	}

	order, err := ctrl.orderService.CreateOrder(service.CreateOrderInput{
		Name:      req.Name,
		UserEmail: req.UserEmail,
		Phone:     req.Phone,
		Products:  req.Products,
		Total:     req.Total,
		City:      req.City,
		Address:   req.Address,
		Notes:     req.Notes,
	})
	if err != nil {
		var validationErrs service.ValidationErrors
		if errors.As(err, &validationErrs) {
			apperrors.RespondWithValidationError(c, validationErrs)
			return
		}
		info := apperrors.ParseError(err, "create order")
		apperrors.RespondWithError(c, http.StatusInternalServerError, info.Code, info.Message)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// ListOrders handles GET /orders (admin), newest first.
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	orders, err := ctrl.orderService.ListOrders()
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /orders/:id (admin).
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetOrderByID(id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Porosia nuk u gjet")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrderRequest carries the admin partial update.
type UpdateOrderRequest struct {
	Name      *string  `json:"name"`
	UserEmail *string  `json:"user_email"`
	Phone     *string  `json:"phone"`
	Total     *float64 `json:"total"`
	City      *string  `json:"city"`
	Address   *string  `json:"address"`
	Notes     *string  `json:"notes"`
}

func (req *UpdateOrderRequest) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.UserEmail != nil {
		fields["user_email"] = *req.UserEmail
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Total != nil {
		fields["total"] = *req.Total
	}
	if req.City != nil {
		fields["city"] = *req.City
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	return fields
}

// UpdateOrder handles PATCH /orders/:id (admin).
func (ctrl *OrderController) UpdateOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Të dhënat e dërguara nuk janë të vlefshme")
		return
	}

	fields := req.fields()
	if len(fields) == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Asnjë fushë për përditësim")
		return
	}

	order, err := ctrl.orderService.UpdateOrder(id, fields)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Porosia nuk u gjet")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, order)
}

// DeleteOrder handles DELETE /orders/:id (admin). Hard delete; the row is
// a denormalized snapshot with nothing referencing it.
func (ctrl *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	if err := ctrl.orderService.DeleteOrder(id); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Porosia nuk u gjet")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Porosia u fshi"})
}

var orderExportHeaders = []string{"ID", "Emri", "Email", "Telefoni", "Qyteti", "Adresa", "Produkte", "Totali", "Data"}

// ExportOrders handles GET /orders/export (admin): all orders as an XLSX
// download for the bookkeeping spreadsheet.
func (ctrl *OrderController) ExportOrders(c *gin.Context) {
	orders, err := ctrl.orderService.ListOrders()
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Porositë"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range orderExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, order := range orders {
		values := []interface{}{
			order.ID,
			order.Name,
			order.UserEmail,
			order.Phone,
			order.City,
			order.Address,
			summarizeLines(order.Products),
			order.Total,
			order.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	filename := fmt.Sprintf("porosite-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		logger.Error("Failed to stream orders export", err, nil)
	}
}

func summarizeLines(lines model.OrderLines) string {
	summary := ""
	for i, line := range lines {
		if i > 0 {
			summary += "; "
		}
		summary += fmt.Sprintf("%dx %s", line.Quantity, line.Name)
	}
	return summary
}

func parseOrderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID e porosisë nuk është e vlefshme")
		return 0, false
	}
	return uint(id), true
}

package repository

import (
	"github.com/fanzone/fanzone-backend/internal/app/model"
	"github.com/fanzone/fanzone-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *model.Order) error
	FindAll() ([]model.Order, error)
	FindByID(id uint) (*model.Order, error)
	Update(id uint, fields map[string]interface{}) (*model.Order, error)
	Delete(id uint) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create persists the order inside a transaction. The row is a complete
// snapshot, so a single insert is the whole write.
func (r *orderRepository) Create(order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"user_email": order.UserEmail,
		"total":      order.Total,
		"items":      len(order.Products),
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"user_email": order.UserEmail,
		})
		return err
	}

	logger.Debug("Order created in database", map[string]interface{}{
		"order_id": order.ID,
	})
	return nil
}

func (r *orderRepository) FindAll() ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.Order("created_at DESC").Find(&orders).Error; err != nil {
		logger.Error("Failed to list orders", err)
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.First(&order, id).Error; err != nil {
		logger.Error("Failed to find order by ID in database", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}
	return &order, nil
}

// Update applies a partial update and returns the fresh row.
func (r *orderRepository) Update(id uint, fields map[string]interface{}) (*model.Order, error) {
	logger.Debug("Updating order in database", map[string]interface{}{
		"order_id": id,
	})

	result := r.db.Model(&model.Order{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		logger.Error("Failed to update order in database", result.Error, map[string]interface{}{
			"order_id": id,
		})
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindByID(id)
}

// Delete removes the order row permanently.
func (r *orderRepository) Delete(id uint) error {
	logger.Debug("Deleting order from database", map[string]interface{}{
		"order_id": id,
	})

	result := r.db.Delete(&model.Order{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete order from database", result.Error, map[string]interface{}{
			"order_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

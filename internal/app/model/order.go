package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// OrderLine is a point-in-time snapshot of a purchased product. Orders never
// reference the products table, so later catalog edits cannot rewrite
// history.
type OrderLine struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
}

// OrderLines stores the snapshot array as a jsonb column.
type OrderLines []OrderLine

func (l OrderLines) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *OrderLines) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported products column type %T", value)
	}
	return json.Unmarshal(data, l)
}

type Order struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	UserEmail string     `gorm:"size:255;not null" json:"user_email"`
	Phone     string     `gorm:"size:255;not null" json:"phone"`
	Products  OrderLines `gorm:"type:jsonb;not null" json:"products"`
	Total     float64    `gorm:"not null" json:"total"`
	City      string     `gorm:"size:255;not null" json:"city"`
	Address   string     `gorm:"size:255;not null" json:"address"`
	Notes     string     `gorm:"size:255" json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
}

func (Order) TableName() string {
	return "orders"
}

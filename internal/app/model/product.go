package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// AttributeMap holds the open-ended variant attributes of a product as stored
// in the jsonb column. Use Product.Variants() for typed access.
type AttributeMap map[string]interface{}

func (m AttributeMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *AttributeMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported attributes column type %T", value)
	}
	if len(data) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(data, m)
}

type Product struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Price       float64        `gorm:"not null" json:"price"`
	FinalPrice  float64        `gorm:"not null" json:"final_price"`
	Thumbnail   string         `json:"thumbnail"`
	Images      pq.StringArray `gorm:"type:text[]" json:"images"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"index;not null" json:"category"`
	ProductType string         `json:"product_type,omitempty"`
	Discount    bool           `gorm:"default:false" json:"discount"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	Attributes  AttributeMap   `gorm:"type:jsonb" json:"attributes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// EffectivePrice is the price a buyer pays for one unit.
func (p *Product) EffectivePrice() float64 {
	if p.Discount {
		return p.FinalPrice
	}
	return p.Price
}

// GalleryImages returns the image list without blank entries. Catalog rows
// imported from the old admin tool may carry empty strings in the array.
func (p *Product) GalleryImages() []string {
	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		if strings.TrimSpace(img) != "" {
			images = append(images, img)
		}
	}
	return images
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Product 商品（导入的目标实体）
// sku 存的是规范化后的值（trim + 小写），靠唯一索引保证大小写不敏感的唯一性
type Product struct {
	Id          uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	Sku         string    `json:"sku" gorm:"column:sku;size:255;not null;uniqueIndex"`
	Name        string    `json:"name" gorm:"column:name;size:255;not null"`
	Description string    `json:"description" gorm:"column:description;type:text"`
	Active      bool      `json:"active" gorm:"column:active;not null;default:true"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}

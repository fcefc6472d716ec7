package model

import (
	"time"

	"github.com/google/uuid"
)

// Webhook 出站通知配置
type Webhook struct {
	Id        uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	URL       string    `json:"url" gorm:"column:url;size:500;not null;index"`
	EventType string    `json:"event_type" gorm:"column:event_type;size:100;not null;index"`
	Enabled   bool      `json:"enabled" gorm:"column:enabled;not null;default:true"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (Webhook) TableName() string {
	return "webhooks"
}

// Webhook 事件类型常量
const (
	WebhookEventImportCompleted = "import_completed"
	WebhookEventImportFailed    = "import_failed"
	WebhookEventProductCreated  = "product_created"
	WebhookEventProductUpdated  = "product_updated"
)

package v1

import "time"

// Webhook 相关 API 定义

// CreateWebhookRequest 创建 Webhook 请求
type CreateWebhookRequest struct {
	URL       string `json:"url" binding:"required,max=500" example:"https://example.com/hooks/import"`
	EventType string `json:"event_type" binding:"required,max=100" example:"import_completed"`
	Enabled   *bool  `json:"enabled,omitempty" example:"true"`
}

// UpdateWebhookRequest 更新 Webhook 请求（全部字段可选）
type UpdateWebhookRequest struct {
	URL       *string `json:"url,omitempty"`
	EventType *string `json:"event_type,omitempty"`
	Enabled   *bool   `json:"enabled,omitempty"`
}

type WebhookItem struct {
	Id        string    `json:"id"`
	URL       string    `json:"url"`
	EventType string    `json:"event_type"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetWebhookResponse Webhook 详情响应
type GetWebhookResponse struct {
	Response
	Data WebhookItem
}

// ListWebhooksResponse Webhook 列表响应
type ListWebhooksResponse struct {
	Response
	Data []WebhookItem
}

// TestWebhookResponseData Webhook 测试结果
type TestWebhookResponseData struct {
	Success        bool    `json:"success"`
	StatusCode     int     `json:"status_code,omitempty"`
	ResponseTimeMs float64 `json:"response_time_ms,omitempty"`
	ErrorMessage   string  `json:"error_message,omitempty"`
}

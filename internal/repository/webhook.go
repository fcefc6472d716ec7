package repository

import (
	"context"

	"prodhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WebhookRepository interface {
	Create(ctx context.Context, webhook *model.Webhook) error
	Update(ctx context.Context, webhook *model.Webhook) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Webhook, error)
	List(ctx context.Context) ([]*model.Webhook, error)
	ListEnabledByEventType(ctx context.Context, eventType string) ([]*model.Webhook, error)
}

func NewWebhookRepository(
	repository *Repository,
) WebhookRepository {
	return &webhookRepository{
		Repository: repository,
	}
}

type webhookRepository struct {
	*Repository
}

func (r *webhookRepository) Create(ctx context.Context, webhook *model.Webhook) error {
	return r.DB(ctx).Create(webhook).Error
}

func (r *webhookRepository) Update(ctx context.Context, webhook *model.Webhook) error {
	return r.DB(ctx).Save(webhook).Error
}

func (r *webhookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Delete(&model.Webhook{}, "id = ?", id).Error
}

func (r *webhookRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Webhook, error) {
	var webhook model.Webhook
	err := r.DB(ctx).Where("id = ?", id).First(&webhook).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &webhook, nil
}

func (r *webhookRepository) List(ctx context.Context) ([]*model.Webhook, error) {
	var webhooks []*model.Webhook
	err := r.DB(ctx).Order("created_at DESC").Find(&webhooks).Error
	if err != nil {
		return nil, err
	}
	return webhooks, nil
}

// ListEnabledByEventType 查询某事件类型下启用的 webhook（终态通知用）
func (r *webhookRepository) ListEnabledByEventType(ctx context.Context, eventType string) ([]*model.Webhook, error) {
	var webhooks []*model.Webhook
	err := r.DB(ctx).Where("event_type = ? AND enabled = ?", eventType, true).
		Find(&webhooks).Error
	if err != nil {
		return nil, err
	}
	return webhooks, nil
}

package service

import (
	"context"
	"time"

	v1 "prodhub/api/v1"
	"prodhub/internal/model"
	"prodhub/internal/repository"
	"prodhub/pkg/log"
	"prodhub/pkg/webhook"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type WebhookService interface {
	CreateWebhook(ctx context.Context, req *v1.CreateWebhookRequest) (*v1.WebhookItem, error)
	UpdateWebhook(ctx context.Context, id uuid.UUID, req *v1.UpdateWebhookRequest) (*v1.WebhookItem, error)
	DeleteWebhook(ctx context.Context, id uuid.UUID) error
	GetWebhook(ctx context.Context, id uuid.UUID) (*v1.WebhookItem, error)
	ListWebhooks(ctx context.Context) ([]v1.WebhookItem, error)
	// TestWebhook 发送示例载荷验证配置，禁用的 webhook 不允许测试
	TestWebhook(ctx context.Context, id uuid.UUID) (*v1.TestWebhookResponseData, error)
}

func NewWebhookService(
	service *Service,
	webhookRepo repository.WebhookRepository,
	notifier *webhook.Client,
	logger *log.Logger,
) WebhookService {
	return &webhookService{
		Service:     service,
		webhookRepo: webhookRepo,
		notifier:    notifier,
		logger:      logger,
	}
}

type webhookService struct {
	*Service
	webhookRepo repository.WebhookRepository
	notifier    *webhook.Client
	logger      *log.Logger
}

func (s *webhookService) CreateWebhook(ctx context.Context, req *v1.CreateWebhookRequest) (*v1.WebhookItem, error) {
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	wh := &model.Webhook{
		Id:        uuid.New(),
		URL:       req.URL,
		EventType: req.EventType,
		Enabled:   enabled,
	}
	if err := s.webhookRepo.Create(ctx, wh); err != nil {
		s.logger.WithContext(ctx).Error("failed to create webhook", zap.Error(err))
		return nil, v1.ErrInternalServerError
	}
	return webhookToItem(wh), nil
}

func (s *webhookService) UpdateWebhook(ctx context.Context, id uuid.UUID, req *v1.UpdateWebhookRequest) (*v1.WebhookItem, error) {
	wh, err := s.webhookRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.WithContext(ctx).Error("failed to get webhook", zap.Error(err))
		return nil, v1.ErrInternalServerError
	}
	if wh == nil {
		return nil, v1.ErrWebhookNotFound
	}

	if req.URL != nil {
		wh.URL = *req.URL
	}
	if req.EventType != nil {
		wh.EventType = *req.EventType
	}
	if req.Enabled != nil {
		wh.Enabled = *req.Enabled
	}

	if err := s.webhookRepo.Update(ctx, wh); err != nil {
		s.logger.WithContext(ctx).Error("failed to update webhook", zap.Error(err))
		return nil, v1.ErrInternalServerError
	}
	return webhookToItem(wh), nil
}

func (s *webhookService) DeleteWebhook(ctx context.Context, id uuid.UUID) error {
	wh, err := s.webhookRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.WithContext(ctx).Error("failed to get webhook", zap.Error(err))
		return v1.ErrInternalServerError
	}
	if wh == nil {
		return v1.ErrWebhookNotFound
	}
	if err := s.webhookRepo.Delete(ctx, id); err != nil {
		s.logger.WithContext(ctx).Error("failed to delete webhook", zap.Error(err))
		return v1.ErrInternalServerError
	}
	return nil
}

func (s *webhookService) GetWebhook(ctx context.Context, id uuid.UUID) (*v1.WebhookItem, error) {
	wh, err := s.webhookRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.WithContext(ctx).Error("failed to get webhook", zap.Error(err))
		return nil, v1.ErrInternalServerError
	}
	if wh == nil {
		return nil, v1.ErrWebhookNotFound
	}
	return webhookToItem(wh), nil
}

func (s *webhookService) ListWebhooks(ctx context.Context) ([]v1.WebhookItem, error) {
	webhooks, err := s.webhookRepo.List(ctx)
	if err != nil {
		s.logger.WithContext(ctx).Error("failed to list webhooks", zap.Error(err))
		return nil, v1.ErrInternalServerError
	}
	list := make([]v1.WebhookItem, 0, len(webhooks))
	for _, wh := range webhooks {
		list = append(list, *webhookToItem(wh))
	}
	return list, nil
}

func (s *webhookService) TestWebhook(ctx context.Context, id uuid.UUID) (*v1.TestWebhookResponseData, error) {
	wh, err := s.webhookRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.WithContext(ctx).Error("failed to get webhook", zap.Error(err))
		return nil, v1.ErrInternalServerError
	}
	if wh == nil {
		return nil, v1.ErrWebhookNotFound
	}
	if !wh.Enabled {
		return nil, v1.ErrWebhookDisabled
	}

	samplePayload := map[string]interface{}{
		"event_type": wh.EventType,
		"test":       true,
		"message":    "This is a test webhook",
		"timestamp":  time.Now().Unix(),
	}
	result := s.notifier.Post(ctx, wh.URL, samplePayload)
	return &v1.TestWebhookResponseData{
		Success:        result.Success,
		StatusCode:     result.StatusCode,
		ResponseTimeMs: result.ResponseTimeMs,
		ErrorMessage:   result.ErrorMessage,
	}, nil
}

func webhookToItem(wh *model.Webhook) *v1.WebhookItem {
	return &v1.WebhookItem{
		Id:        wh.Id.String(),
		URL:       wh.URL,
		EventType: wh.EventType,
		Enabled:   wh.Enabled,
		CreatedAt: wh.CreatedAt,
		UpdatedAt: wh.UpdatedAt,
	}
}

package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	v1 "prodhub/api/v1"
	mock_repository "prodhub/internal/mocks/repository"
	"prodhub/internal/model"
	"prodhub/pkg/log"
	"prodhub/pkg/sid"
	"prodhub/pkg/webhook"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func newWebhookService(t *testing.T) (WebhookService, *mock_repository.MockWebhookRepository, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock_repository.NewMockWebhookRepository(ctrl)
	tm := mock_repository.NewMockTransaction(ctrl)
	conf := viper.New()
	logger := log.NewLog(conf)
	svc := NewService(tm, logger, sid.NewSid())
	return NewWebhookService(svc, repo, webhook.NewClient(conf), logger), repo, ctrl
}

func TestCreateWebhookDefaultsEnabled(t *testing.T) {
	s, repo, ctrl := newWebhookService(t)
	defer ctrl.Finish()

	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, wh *model.Webhook) error {
			assert.True(t, wh.Enabled)
			return nil
		})

	item, err := s.CreateWebhook(context.Background(), &v1.CreateWebhookRequest{
		URL:       "https://example.com/hook",
		EventType: model.WebhookEventImportCompleted,
	})
	assert.NoError(t, err)
	assert.True(t, item.Enabled)
}

func TestTestWebhookDisabled(t *testing.T) {
	s, repo, ctrl := newWebhookService(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo.EXPECT().
		GetByID(gomock.Any(), id).
		Return(&model.Webhook{Id: id, URL: "https://example.com/hook", Enabled: false}, nil)

	_, err := s.TestWebhook(context.Background(), id)
	assert.ErrorIs(t, err, v1.ErrWebhookDisabled)
}

func TestTestWebhookDeliversSamplePayload(t *testing.T) {
	s, repo, ctrl := newWebhookService(t)
	defer ctrl.Finish()

	var received map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	id := uuid.New()
	repo.EXPECT().
		GetByID(gomock.Any(), id).
		Return(&model.Webhook{
			Id:        id,
			URL:       srv.URL,
			EventType: model.WebhookEventImportCompleted,
			Enabled:   true,
		}, nil)

	data, err := s.TestWebhook(context.Background(), id)
	assert.NoError(t, err)
	assert.True(t, data.Success)
	assert.Equal(t, http.StatusOK, data.StatusCode)
	assert.Equal(t, model.WebhookEventImportCompleted, received["event_type"])
	assert.Equal(t, true, received["test"])
}

func TestTestWebhookNotFound(t *testing.T) {
	s, repo, ctrl := newWebhookService(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo.EXPECT().GetByID(gomock.Any(), id).Return(nil, nil)

	_, err := s.TestWebhook(context.Background(), id)
	assert.ErrorIs(t, err, v1.ErrWebhookNotFound)
}

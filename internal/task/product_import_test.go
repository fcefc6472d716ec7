package task

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"prodhub/internal/model"
	mock_repository "prodhub/internal/mocks/repository"
	"prodhub/internal/queue"
	"prodhub/pkg/log"
	"prodhub/pkg/webhook"

	"github.com/golang/mock/gomock"
	"github.com/hibiken/asynq"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

type importTaskMocks struct {
	jobRepo     *mock_repository.MockImportJobRepository
	productRepo *mock_repository.MockProductRepository
	cacheRepo   *mock_repository.MockJobCacheRepository
	webhookRepo *mock_repository.MockWebhookRepository
}

func newImportTask(t *testing.T, batchSize int) (*ProductImportTask, *importTaskMocks, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)

	conf := viper.New()
	conf.Set("import.batch_size", batchSize)
	logger := log.NewLog(conf)

	mocks := &importTaskMocks{
		jobRepo:     mock_repository.NewMockImportJobRepository(ctrl),
		productRepo: mock_repository.NewMockProductRepository(ctrl),
		cacheRepo:   mock_repository.NewMockJobCacheRepository(ctrl),
		webhookRepo: mock_repository.NewMockWebhookRepository(ctrl),
	}
	it := NewProductImportTask(conf, logger, mocks.jobRepo, mocks.productRepo, mocks.cacheRepo, mocks.webhookRepo, webhook.NewClient(conf))
	return it, mocks, ctrl
}

func buildCSV(rows int) string {
	var b strings.Builder
	b.WriteString("sku,name,description\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "SKU-%04d,Product %d,desc %d\n", i, i, i)
	}
	return b.String()
}

func newImportMessage(t *testing.T, taskID, filePath string) *asynq.Task {
	t.Helper()
	payload := fmt.Sprintf(`{"task_id":%q,"file_path":%q}`, taskID, filePath)
	return asynq.NewTask(queue.TypeProductImport, []byte(payload))
}

func TestProductImportTaskCompletes(t *testing.T) {
	it, mocks, ctrl := newImportTask(t, 500)
	defer ctrl.Finish()

	path := writeTempCSV(t, buildCSV(1200))
	taskID := "task-complete"

	// 初始 processing + 每批一次 processing
	mocks.jobRepo.EXPECT().
		UpdateProgress(gomock.Any(), taskID, model.ImportJobStatusProcessing, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(4)
	mocks.jobRepo.EXPECT().
		UpdateProgress(gomock.Any(), taskID, model.ImportJobStatusCompleted, 100, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)
	mocks.cacheRepo.EXPECT().
		CacheStatus(gomock.Any(), taskID, gomock.Any()).
		Return(nil).
		AnyTimes()
	mocks.cacheRepo.EXPECT().
		IsCancelled(gomock.Any(), taskID).
		Return(false, nil).
		Times(3)

	var batchSizes []int
	mocks.productRepo.EXPECT().
		UpsertBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, products []*model.Product) error {
			batchSizes = append(batchSizes, len(products))
			return nil
		}).
		Times(3)
	mocks.webhookRepo.EXPECT().
		ListEnabledByEventType(gomock.Any(), model.WebhookEventImportCompleted).
		Return(nil, nil)

	err := it.Handle(context.Background(), newImportMessage(t, taskID, path))
	assert.NoError(t, err)
	assert.Equal(t, []int{500, 500, 200}, batchSizes)
}

func TestProductImportTaskSkipsBlankRows(t *testing.T) {
	it, mocks, ctrl := newImportTask(t, 500)
	defer ctrl.Finish()

	// 2 条有效，1 条缺 sku，1 条缺 name
	csv := "sku,name\nA-1,Widget\n,NoSku\nA-2,\nB-1,Gear\n"
	path := writeTempCSV(t, csv)
	taskID := "task-skip"

	mocks.jobRepo.EXPECT().
		UpdateProgress(gomock.Any(), taskID, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
	mocks.cacheRepo.EXPECT().CacheStatus(gomock.Any(), taskID, gomock.Any()).Return(nil).AnyTimes()
	mocks.cacheRepo.EXPECT().IsCancelled(gomock.Any(), taskID).Return(false, nil)

	mocks.productRepo.EXPECT().
		UpsertBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, products []*model.Product) error {
			assert.Len(t, products, 2)
			assert.Equal(t, "a-1", products[0].Sku)
			assert.Equal(t, "b-1", products[1].Sku)
			for _, p := range products {
				assert.True(t, p.Active)
			}
			return nil
		})
	mocks.webhookRepo.EXPECT().
		ListEnabledByEventType(gomock.Any(), model.WebhookEventImportCompleted).
		Return(nil, nil)

	err := it.Handle(context.Background(), newImportMessage(t, taskID, path))
	assert.NoError(t, err)
}

func TestProductImportTaskCancelledAtBatchBoundary(t *testing.T) {
	it, mocks, ctrl := newImportTask(t, 10)
	defer ctrl.Finish()

	path := writeTempCSV(t, buildCSV(25))
	taskID := "task-cancel"

	gomock.InOrder(
		mocks.cacheRepo.EXPECT().IsCancelled(gomock.Any(), taskID).Return(false, nil),
		mocks.cacheRepo.EXPECT().IsCancelled(gomock.Any(), taskID).Return(true, nil),
	)

	mocks.jobRepo.EXPECT().
		UpdateProgress(gomock.Any(), taskID, model.ImportJobStatusProcessing, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		Times(2)
	// 取消走 failed 终态，文案固定
	mocks.jobRepo.EXPECT().
		UpdateProgress(gomock.Any(), taskID, model.ImportJobStatusFailed, 0, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, _ int, _, _ *int, errorMessage *string) error {
			assert.NotNil(t, errorMessage)
			assert.Equal(t, CancelMessage, *errorMessage)
			return nil
		})
	mocks.cacheRepo.EXPECT().CacheStatus(gomock.Any(), taskID, gomock.Any()).Return(nil).AnyTimes()

	// 只有第一批落库
	mocks.productRepo.EXPECT().UpsertBatch(gomock.Any(), gomock.Any()).Return(nil)
	mocks.webhookRepo.EXPECT().
		ListEnabledByEventType(gomock.Any(), model.WebhookEventImportFailed).
		Return(nil, nil)

	err := it.Handle(context.Background(), newImportMessage(t, taskID, path))
	assert.Error(t, err)
	// 取消不重试
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestProductImportTaskMissingFileFails(t *testing.T) {
	it, mocks, ctrl := newImportTask(t, 500)
	defer ctrl.Finish()

	taskID := "task-missing"
	path := filepath.Join(t.TempDir(), "gone.csv")

	mocks.jobRepo.EXPECT().
		UpdateProgress(gomock.Any(), taskID, model.ImportJobStatusFailed, 0, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)
	mocks.cacheRepo.EXPECT().CacheStatus(gomock.Any(), taskID, gomock.Any()).Return(nil).AnyTimes()
	mocks.webhookRepo.EXPECT().
		ListEnabledByEventType(gomock.Any(), model.WebhookEventImportFailed).
		Return(nil, nil)

	err := it.Handle(context.Background(), newImportMessage(t, taskID, path))
	assert.Error(t, err)
	// 意外失败交给队列重试
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestProductImportTaskUpsertIdempotent(t *testing.T) {
	it, mocks, ctrl := newImportTask(t, 500)
	defer ctrl.Finish()

	path := writeTempCSV(t, buildCSV(5))
	taskID := "task-idem"

	mocks.jobRepo.EXPECT().
		UpdateProgress(gomock.Any(), taskID, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
	mocks.cacheRepo.EXPECT().CacheStatus(gomock.Any(), taskID, gomock.Any()).Return(nil).AnyTimes()
	mocks.cacheRepo.EXPECT().IsCancelled(gomock.Any(), taskID).Return(false, nil).Times(2)
	mocks.productRepo.EXPECT().
		UpsertBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, products []*model.Product) error {
			assert.Len(t, products, 5)
			return nil
		}).
		Times(2)
	mocks.webhookRepo.EXPECT().
		ListEnabledByEventType(gomock.Any(), model.WebhookEventImportCompleted).
		Return(nil, nil).
		Times(2)

	// 同一文件跑两遍：同样的批次、同样的 upsert 形状，队列重投不会产生重复行
	msg := newImportMessage(t, taskID, path)
	assert.NoError(t, it.Handle(context.Background(), msg))
	assert.NoError(t, it.Handle(context.Background(), msg))
}

func TestProductImportTaskBadPayloadSkipsRetry(t *testing.T) {
	it, _, ctrl := newImportTask(t, 500)
	defer ctrl.Finish()

	msg := asynq.NewTask(queue.TypeProductImport, []byte("not json"))
	err := it.Handle(context.Background(), msg)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestProductImportTaskEmptyFileCompletes(t *testing.T) {
	it, mocks, ctrl := newImportTask(t, 500)
	defer ctrl.Finish()

	path := writeTempCSV(t, "sku,name\n")
	taskID := "task-empty"

	mocks.jobRepo.EXPECT().
		UpdateProgress(gomock.Any(), taskID, model.ImportJobStatusProcessing, 0, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)
	mocks.jobRepo.EXPECT().
		UpdateProgress(gomock.Any(), taskID, model.ImportJobStatusCompleted, 100, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)
	mocks.cacheRepo.EXPECT().CacheStatus(gomock.Any(), taskID, gomock.Any()).Return(nil).AnyTimes()
	mocks.webhookRepo.EXPECT().
		ListEnabledByEventType(gomock.Any(), model.WebhookEventImportCompleted).
		Return(nil, nil)

	err := it.Handle(context.Background(), newImportMessage(t, taskID, path))
	assert.NoError(t, err)
}

func TestProductImportTaskDirEntriesIgnored(t *testing.T) {
	// countRows 对目录返回错误而不是 panic
	dir := t.TempDir()
	sub := filepath.Join(dir, "subdir")
	assert.NoError(t, os.Mkdir(sub, 0o755))
	_, err := countRows(sub)
	assert.Error(t, err)
}

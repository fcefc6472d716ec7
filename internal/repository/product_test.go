package repository

import (
	"context"
	"testing"

	"prodhub/internal/model"
	"prodhub/pkg/log"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func setupProductRepo(t *testing.T) ProductRepository {
	t.Helper()
	conf := viper.New()
	conf.Set("data.db.user.driver", "sqlite")
	conf.Set("data.db.user.dsn", ":memory:")
	logger := log.NewLog(conf)

	db := NewDB(conf, logger)
	err := db.AutoMigrate(&model.Product{})
	assert.NoError(t, err)

	return NewProductRepository(NewRepository(db, nil, logger))
}

func newProduct(sku, name string) *model.Product {
	return &model.Product{
		Id:     uuid.New(),
		Sku:    sku,
		Name:   name,
		Active: true,
	}
}

func TestProductRepositoryCreateAndGet(t *testing.T) {
	repo := setupProductRepo(t)
	ctx := context.Background()

	p := newProduct("abc-001", "Widget")
	p.Description = "a widget"
	assert.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetBySku(ctx, "abc-001")
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, "Widget", got.Name)

	got, err = repo.GetByID(ctx, p.Id)
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, "abc-001", got.Sku)

	// 不存在返回 (nil, nil)
	got, err = repo.GetBySku(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductRepositoryUpsertBatchIdempotent(t *testing.T) {
	repo := setupProductRepo(t)
	ctx := context.Background()

	first := []*model.Product{
		newProduct("a-1", "Alpha"),
		newProduct("b-1", "Beta"),
	}
	assert.NoError(t, repo.UpsertBatch(ctx, first))

	// 同一 sku 再 upsert：按 sku 冲突更新，不产生第二行
	second := []*model.Product{
		newProduct("a-1", "Alpha v2"),
		newProduct("c-1", "Gamma"),
	}
	second[0].Description = "updated"
	assert.NoError(t, repo.UpsertBatch(ctx, second))

	_, total, err := repo.ListWithPagination(ctx, 1, 10, "", "", "", nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)

	got, err := repo.GetBySku(ctx, "a-1")
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, "Alpha v2", got.Name)
	assert.Equal(t, "updated", got.Description)
	// 冲突更新保留原主键
	assert.Equal(t, first[0].Id, got.Id)
}

func TestProductRepositoryListWithPagination(t *testing.T) {
	repo := setupProductRepo(t)
	ctx := context.Background()

	inactive := newProduct("x-1", "Xylophone")
	inactive.Active = false
	products := []*model.Product{
		newProduct("a-1", "Alpha Widget"),
		newProduct("a-2", "Alpha Gear"),
		newProduct("b-1", "Beta Widget"),
		inactive,
	}
	assert.NoError(t, repo.UpsertBatch(ctx, products))

	// sku 前缀过滤（大小写不敏感）
	list, total, err := repo.ListWithPagination(ctx, 1, 10, "A-", "", "", nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	// name 模糊过滤
	_, total, err = repo.ListWithPagination(ctx, 1, 10, "", "widget", "", nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// active 过滤
	active := false
	list, total, err = repo.ListWithPagination(ctx, 1, 10, "", "", "", &active)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "x-1", list[0].Sku)

	// 分页
	list, total, err = repo.ListWithPagination(ctx, 2, 3, "", "", "", nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, list, 1)
}

func TestProductRepositoryDeleteAndDeleteAll(t *testing.T) {
	repo := setupProductRepo(t)
	ctx := context.Background()

	p := newProduct("d-1", "Doomed")
	assert.NoError(t, repo.Create(ctx, p))
	assert.NoError(t, repo.Delete(ctx, p.Id))

	got, err := repo.GetByID(ctx, p.Id)
	assert.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, repo.UpsertBatch(ctx, []*model.Product{
		newProduct("e-1", "One"),
		newProduct("e-2", "Two"),
	}))
	deleted, err := repo.DeleteAll(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, total, err := repo.ListWithPagination(ctx, 1, 10, "", "", "", nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

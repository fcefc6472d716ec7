package service

import (
	"context"
	"testing"

	v1 "prodhub/api/v1"
	mock_repository "prodhub/internal/mocks/repository"
	"prodhub/internal/model"
	"prodhub/pkg/log"
	"prodhub/pkg/sid"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func newProductService(t *testing.T) (ProductService, *mock_repository.MockProductRepository, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock_repository.NewMockProductRepository(ctrl)
	tm := mock_repository.NewMockTransaction(ctrl)
	tm.EXPECT().
		Transaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}).
		AnyTimes()
	logger := log.NewLog(viper.New())
	svc := NewService(tm, logger, sid.NewSid())
	return NewProductService(svc, repo, logger), repo, ctrl
}

func TestCreateProductNormalizesSku(t *testing.T) {
	s, repo, ctrl := newProductService(t)
	defer ctrl.Finish()
	ctx := context.Background()

	repo.EXPECT().GetBySku(gomock.Any(), "sku-001").Return(nil, nil)
	repo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *model.Product) error {
			assert.Equal(t, "sku-001", p.Sku)
			assert.True(t, p.Active)
			return nil
		})

	item, err := s.CreateProduct(ctx, &v1.CreateProductRequest{
		Sku:  "  SKU-001 ",
		Name: "Widget",
	})
	assert.NoError(t, err)
	assert.Equal(t, "sku-001", item.Sku)
}

func TestCreateProductDuplicateSku(t *testing.T) {
	s, repo, ctrl := newProductService(t)
	defer ctrl.Finish()

	repo.EXPECT().
		GetBySku(gomock.Any(), "sku-001").
		Return(&model.Product{Id: uuid.New(), Sku: "sku-001"}, nil)

	_, err := s.CreateProduct(context.Background(), &v1.CreateProductRequest{
		Sku:  "SKU-001",
		Name: "Widget",
	})
	assert.ErrorIs(t, err, v1.ErrSkuAlreadyExists)
}

func TestCreateProductBlankSku(t *testing.T) {
	s, _, ctrl := newProductService(t)
	defer ctrl.Finish()

	_, err := s.CreateProduct(context.Background(), &v1.CreateProductRequest{
		Sku:  "   ",
		Name: "Widget",
	})
	assert.ErrorIs(t, err, v1.ErrBadRequest)
}

func TestUpdateProductPartialFields(t *testing.T) {
	s, repo, ctrl := newProductService(t)
	defer ctrl.Finish()
	ctx := context.Background()

	id := uuid.New()
	repo.EXPECT().
		GetByID(gomock.Any(), id).
		Return(&model.Product{
			Id:          id,
			Sku:         "sku-001",
			Name:        "Widget",
			Description: "original",
			Active:      true,
		}, nil)
	repo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *model.Product) error {
			// sku 不可变更，未传的字段保持原值
			assert.Equal(t, "sku-001", p.Sku)
			assert.Equal(t, "Widget v2", p.Name)
			assert.Equal(t, "original", p.Description)
			assert.False(t, p.Active)
			return nil
		})

	name := "Widget v2"
	active := false
	item, err := s.UpdateProduct(ctx, id, &v1.UpdateProductRequest{Name: &name, Active: &active})
	assert.NoError(t, err)
	assert.Equal(t, "Widget v2", item.Name)
}

func TestUpdateProductNotFound(t *testing.T) {
	s, repo, ctrl := newProductService(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo.EXPECT().GetByID(gomock.Any(), id).Return(nil, nil)

	_, err := s.UpdateProduct(context.Background(), id, &v1.UpdateProductRequest{})
	assert.ErrorIs(t, err, v1.ErrProductNotFound)
}

func TestDeleteProductNotFound(t *testing.T) {
	s, repo, ctrl := newProductService(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo.EXPECT().GetByID(gomock.Any(), id).Return(nil, nil)

	err := s.DeleteProduct(context.Background(), id)
	assert.ErrorIs(t, err, v1.ErrProductNotFound)
}

func TestDeleteAllProducts(t *testing.T) {
	s, repo, ctrl := newProductService(t)
	defer ctrl.Finish()

	repo.EXPECT().DeleteAll(gomock.Any()).Return(int64(42), nil)

	data, err := s.DeleteAllProducts(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(42), data.DeletedCount)
}

func TestListProductsDefaultsPagination(t *testing.T) {
	s, repo, ctrl := newProductService(t)
	defer ctrl.Finish()

	repo.EXPECT().
		ListWithPagination(gomock.Any(), 1, 20, "", "", "", gomock.Nil()).
		Return([]*model.Product{
			{Id: uuid.New(), Sku: "a", Name: "A", Active: true},
		}, int64(41), nil)

	data, err := s.ListProducts(context.Background(), &v1.ListProductRequest{})
	assert.NoError(t, err)
	assert.Equal(t, int64(41), data.Total)
	assert.Equal(t, 1, data.Page)
	assert.Equal(t, 20, data.PageSize)
	assert.Equal(t, int64(3), data.TotalPages)
	assert.Len(t, data.List, 1)
}

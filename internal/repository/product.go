package repository

import (
	"context"
	"strings"

	"prodhub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	GetBySku(ctx context.Context, sku string) (*model.Product, error)
	ListWithPagination(ctx context.Context, page, pageSize int, sku, name, description string, active *bool) ([]*model.Product, int64, error)
	UpsertBatch(ctx context.Context, products []*model.Product) error
}

func NewProductRepository(
	repository *Repository,
) ProductRepository {
	return &productRepository{
		Repository: repository,
	}
}

type productRepository struct {
	*Repository
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return r.DB(ctx).Create(product).Error
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	return r.DB(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.DB(ctx).Where("1 = 1").Delete(&model.Product{})
	return result.RowsAffected, result.Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.DB(ctx).Where("id = ?", id).First(&product).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetBySku 按规范化 sku 查询（调用方保证 sku 已 trim + 小写）
func (r *productRepository) GetBySku(ctx context.Context, sku string) (*model.Product, error) {
	var product model.Product
	err := r.DB(ctx).Where("sku = ?", sku).First(&product).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) ListWithPagination(ctx context.Context, page, pageSize int, sku, name, description string, active *bool) ([]*model.Product, int64, error) {
	var products []*model.Product
	var total int64

	query := r.DB(ctx).Model(&model.Product{})

	// 条件过滤（大小写不敏感的模糊匹配）
	if sku != "" {
		query = query.Where("lower(sku) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(sku))+"%")
	}
	if name != "" {
		query = query.Where("lower(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if description != "" {
		query = query.Where("lower(description) LIKE ?", "%"+strings.ToLower(description)+"%")
	}
	if active != nil {
		query = query.Where("active = ?", *active)
	}

	// 统计总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	offset := (page - 1) * pageSize
	if err := query.Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// UpsertBatch 按 sku 批量创建或更新，整批一条语句原子提交
// 冲突时只覆盖 name/description/active/updated_at，id 和 created_at 保持不变
// 调用方必须先对批内重复 sku 去重，否则同一条语句命中两次冲突键会报错
func (r *productRepository) UpsertBatch(ctx context.Context, products []*model.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sku"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "active", "updated_at"}),
	}).Create(&products).Error
}

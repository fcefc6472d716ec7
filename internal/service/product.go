package service

import (
	"context"
	"strings"

	v1 "prodhub/api/v1"
	"prodhub/internal/model"
	"prodhub/internal/repository"
	"prodhub/pkg/log"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *v1.CreateProductRequest) (*v1.ProductItem, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *v1.UpdateProductRequest) (*v1.ProductItem, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	DeleteAllProducts(ctx context.Context) (*v1.DeleteAllProductsResponseData, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*v1.ProductItem, error)
	ListProducts(ctx context.Context, req *v1.ListProductRequest) (*v1.ListProductResponseData, error)
}

func NewProductService(
	service *Service,
	productRepo repository.ProductRepository,
	logger *log.Logger,
) ProductService {
	return &productService{
		Service:     service,
		productRepo: productRepo,
		logger:      logger,
	}
}

type productService struct {
	*Service
	productRepo repository.ProductRepository
	logger      *log.Logger
}

// normalizeSku 规范化 sku：trim + 小写，保证大小写不敏感的唯一性
func normalizeSku(sku string) string {
	return strings.ToLower(strings.TrimSpace(sku))
}

// CreateProduct 创建商品，sku 大小写不敏感唯一
func (s *productService) CreateProduct(ctx context.Context, req *v1.CreateProductRequest) (*v1.ProductItem, error) {
	sku := normalizeSku(req.Sku)
	if sku == "" {
		return nil, v1.ErrBadRequest
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	product := &model.Product{
		Id:          uuid.New(),
		Sku:         sku,
		Name:        req.Name,
		Description: req.Description,
		Active:      active,
	}

	// 查重和创建放在同一事务里，避免并发创建同 sku 竞态
	err := s.tm.Transaction(ctx, func(ctx context.Context) error {
		existing, err := s.productRepo.GetBySku(ctx, sku)
		if err != nil {
			return err
		}
		if existing != nil {
			return v1.ErrSkuAlreadyExists
		}
		return s.productRepo.Create(ctx, product)
	})
	if err != nil {
		if err == v1.ErrSkuAlreadyExists {
			return nil, err
		}
		s.logger.WithContext(ctx).Error("failed to create product", zap.Error(err))
		return nil, v1.ErrInternalServerError
	}

	return productToItem(product), nil
}

// UpdateProduct 更新商品，只允许更新 name/description/active，sku 不可变更
func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, req *v1.UpdateProductRequest) (*v1.ProductItem, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.WithContext(ctx).Error("failed to get product", zap.Error(err))
		return nil, v1.ErrInternalServerError
	}
	if product == nil {
		return nil, v1.ErrProductNotFound
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		s.logger.WithContext(ctx).Error("failed to update product", zap.Error(err))
		return nil, v1.ErrInternalServerError
	}
	return productToItem(product), nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.WithContext(ctx).Error("failed to get product", zap.Error(err))
		return v1.ErrInternalServerError
	}
	if product == nil {
		return v1.ErrProductNotFound
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		s.logger.WithContext(ctx).Error("failed to delete product", zap.Error(err))
		return v1.ErrInternalServerError
	}
	return nil
}

// DeleteAllProducts 清空商品表，调用方需显式确认
func (s *productService) DeleteAllProducts(ctx context.Context) (*v1.DeleteAllProductsResponseData, error) {
	count, err := s.productRepo.DeleteAll(ctx)
	if err != nil {
		s.logger.WithContext(ctx).Error("failed to delete all products", zap.Error(err))
		return nil, v1.ErrInternalServerError
	}
	return &v1.DeleteAllProductsResponseData{DeletedCount: count}, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*v1.ProductItem, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.WithContext(ctx).Error("failed to get product", zap.Error(err))
		return nil, v1.ErrInternalServerError
	}
	if product == nil {
		return nil, v1.ErrProductNotFound
	}
	return productToItem(product), nil
}

func (s *productService) ListProducts(ctx context.Context, req *v1.ListProductRequest) (*v1.ListProductResponseData, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	products, total, err := s.productRepo.ListWithPagination(ctx, page, pageSize, req.Sku, req.Name, req.Description, req.Active)
	if err != nil {
		s.logger.WithContext(ctx).Error("failed to list products", zap.Error(err))
		return nil, v1.ErrInternalServerError
	}

	list := make([]v1.ProductItem, 0, len(products))
	for _, p := range products {
		list = append(list, *productToItem(p))
	}
	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &v1.ListProductResponseData{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		List:       list,
	}, nil
}

func productToItem(p *model.Product) *v1.ProductItem {
	return &v1.ProductItem{
		Id:          p.Id.String(),
		Sku:         p.Sku,
		Name:        p.Name,
		Description: p.Description,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

package v1

import "time"

// Product 相关 API 定义

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	Sku         string `json:"sku" binding:"required" example:"abc-123"`
	Name        string `json:"name" binding:"required" example:"Widget"`
	Description string `json:"description" example:"商品描述"`
	Active      *bool  `json:"active,omitempty" example:"true"`
}

// UpdateProductRequest 更新商品请求（sku 不可变更，只允许更新以下字段）
type UpdateProductRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Active      *bool   `json:"active,omitempty"`
}

// ListProductRequest 商品列表查询请求
type ListProductRequest struct {
	Page        int    `form:"page" example:"1"`
	PageSize    int    `form:"page_size" binding:"omitempty,max=100" example:"20"`
	Sku         string `form:"sku" example:"abc"`
	Name        string `form:"name" example:"widget"`
	Description string `form:"description"`
	Active      *bool  `form:"active"`
}

// ListProductResponse 商品列表响应
type ListProductResponse struct {
	Response
	Data ListProductResponseData
}

type ListProductResponseData struct {
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int64         `json:"total_pages"`
	List       []ProductItem `json:"list"`
}

type ProductItem struct {
	Id          string    `json:"id"`
	Sku         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GetProductResponse 商品详情响应
type GetProductResponse struct {
	Response
	Data ProductItem
}

// DeleteAllProductsResponseData 批量删除响应
type DeleteAllProductsResponseData struct {
	DeletedCount int64 `json:"deleted_count"`
}

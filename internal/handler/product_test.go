package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	v1 "prodhub/api/v1"
	mock_service "prodhub/internal/mocks/service"
	"prodhub/pkg/log"

	"github.com/gavv/httpexpect/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

func newProductTestServer(t *testing.T) (*httpexpect.Expect, *mock_service.MockProductService, *gomock.Controller) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := mock_service.NewMockProductService(ctrl)

	h := NewProductHandler(NewHandler(log.NewLog(viper.New())), svc)
	router := gin.New()
	group := router.Group("/v1/products")
	{
		group.GET("", h.ListProducts)
		group.POST("", h.CreateProduct)
		group.DELETE("", h.DeleteAllProducts)
		group.GET("/:id", h.GetProduct)
		group.PUT("/:id", h.UpdateProduct)
		group.DELETE("/:id", h.DeleteProduct)
	}

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return httpexpect.Default(t, srv.URL), svc, ctrl
}

func TestListProductsHandler(t *testing.T) {
	e, svc, ctrl := newProductTestServer(t)
	defer ctrl.Finish()

	svc.EXPECT().
		ListProducts(gomock.Any(), gomock.Any()).
		Return(&v1.ListProductResponseData{
			Total:      1,
			Page:       1,
			PageSize:   20,
			TotalPages: 1,
			List: []v1.ProductItem{
				{Id: uuid.New().String(), Sku: "sku-001", Name: "Widget", Active: true},
			},
		}, nil)

	obj := e.GET("/v1/products").
		Expect().
		Status(http.StatusOK).
		JSON().Object()
	obj.Value("code").IsEqual(0)
	obj.Value("data").Object().Value("total").IsEqual(1)
}

func TestCreateProductHandlerDuplicateSku(t *testing.T) {
	e, svc, ctrl := newProductTestServer(t)
	defer ctrl.Finish()

	svc.EXPECT().
		CreateProduct(gomock.Any(), gomock.Any()).
		Return(nil, v1.ErrSkuAlreadyExists)

	obj := e.POST("/v1/products").
		WithJSON(map[string]interface{}{"sku": "sku-001", "name": "Widget"}).
		Expect().
		Status(http.StatusBadRequest).
		JSON().Object()
	obj.Value("code").IsEqual(1001)
}

func TestGetProductHandlerInvalidID(t *testing.T) {
	e, _, ctrl := newProductTestServer(t)
	defer ctrl.Finish()

	// 非法 UUID 不触达 service 层
	e.GET("/v1/products/not-a-uuid").
		Expect().
		Status(http.StatusBadRequest)
}

func TestGetProductHandlerNotFound(t *testing.T) {
	e, svc, ctrl := newProductTestServer(t)
	defer ctrl.Finish()

	id := uuid.New()
	svc.EXPECT().GetProduct(gomock.Any(), id).Return(nil, v1.ErrProductNotFound)

	e.GET("/v1/products/" + id.String()).
		Expect().
		Status(http.StatusNotFound)
}

func TestDeleteAllProductsHandlerRequiresConfirm(t *testing.T) {
	e, svc, ctrl := newProductTestServer(t)
	defer ctrl.Finish()

	// 不带 confirm=true 直接拒绝
	obj := e.DELETE("/v1/products").
		Expect().
		Status(http.StatusBadRequest).
		JSON().Object()
	obj.Value("code").IsEqual(1003)

	svc.EXPECT().
		DeleteAllProducts(gomock.Any()).
		Return(&v1.DeleteAllProductsResponseData{DeletedCount: 7}, nil)

	obj = e.DELETE("/v1/products").
		WithQuery("confirm", "true").
		Expect().
		Status(http.StatusOK).
		JSON().Object()
	obj.Value("data").Object().Value("deleted_count").IsEqual(7)
}

package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	v1 "prodhub/api/v1"
	mock_service "prodhub/internal/mocks/service"
	"prodhub/internal/model"
	"prodhub/pkg/log"

	"github.com/gavv/httpexpect/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/spf13/viper"
)

func newImportTestServer(t *testing.T) (*httpexpect.Expect, *mock_service.MockImportService, *gomock.Controller) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := mock_service.NewMockImportService(ctrl)

	h := NewImportJobHandler(NewHandler(log.NewLog(viper.New())), svc)
	router := gin.New()
	group := router.Group("/v1/imports")
	{
		group.POST("", h.UploadCSV)
		group.GET("/jobs", h.ListJobs)
		group.GET("/jobs/:id", h.GetJobStatus)
		group.DELETE("/jobs/:id", h.DeleteJob)
		group.POST("/jobs/:id/cancel", h.CancelJob)
		group.GET("/jobs/:id/events", h.StreamJobEvents)
	}

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return httpexpect.Default(t, srv.URL), svc, ctrl
}

func TestUploadCSVHandler(t *testing.T) {
	e, svc, ctrl := newImportTestServer(t)
	defer ctrl.Finish()

	svc.EXPECT().
		UploadCSV(gomock.Any(), "products.csv", gomock.Any()).
		Return(&v1.UploadCSVResponseData{JobID: "3f0c", TaskID: "t-1"}, nil)

	obj := e.POST("/v1/imports").
		WithMultipart().
		WithFileBytes("file", "products.csv", []byte("sku,name\na,Alpha\n")).
		Expect().
		Status(http.StatusOK).
		JSON().Object()
	obj.Value("data").Object().Value("task_id").IsEqual("t-1")
}

func TestUploadCSVHandlerMissingFile(t *testing.T) {
	e, _, ctrl := newImportTestServer(t)
	defer ctrl.Finish()

	e.POST("/v1/imports").
		WithMultipart().
		WithFormField("other", "x").
		Expect().
		Status(http.StatusBadRequest)
}

func TestUploadCSVHandlerInvalidFormat(t *testing.T) {
	e, svc, ctrl := newImportTestServer(t)
	defer ctrl.Finish()

	svc.EXPECT().
		UploadCSV(gomock.Any(), "bad.csv", gomock.Any()).
		Return(nil, fmt.Errorf("%s: missing required columns: name", v1.ErrInvalidCSVFormat.Error()))

	obj := e.POST("/v1/imports").
		WithMultipart().
		WithFileBytes("file", "bad.csv", []byte("sku,description\na,c\n")).
		Expect().
		Status(http.StatusBadRequest).
		JSON().Object()
	obj.Value("code").IsEqual(2003)
	data := obj.Value("data").Object()
	data.Value("detail").String().Contains("name")
	data.Value("required").String().Contains("sku")
}

func TestGetJobStatusHandler(t *testing.T) {
	e, svc, ctrl := newImportTestServer(t)
	defer ctrl.Finish()

	total := 100
	svc.EXPECT().
		GetJobStatus(gomock.Any(), "t-1").
		Return(&v1.ImportJobStatus{
			JobID:         "t-1",
			TaskID:        "t-1",
			Status:        model.ImportJobStatusProcessing,
			Progress:      40,
			TotalRows:     &total,
			ProcessedRows: 40,
		}, nil)

	obj := e.GET("/v1/imports/jobs/t-1").
		Expect().
		Status(http.StatusOK).
		JSON().Object()
	data := obj.Value("data").Object()
	data.Value("status").IsEqual(model.ImportJobStatusProcessing)
	data.Value("progress").IsEqual(40)
}

func TestGetJobStatusHandlerNotFound(t *testing.T) {
	e, svc, ctrl := newImportTestServer(t)
	defer ctrl.Finish()

	svc.EXPECT().GetJobStatus(gomock.Any(), "missing").Return(nil, v1.ErrJobNotFound)

	e.GET("/v1/imports/jobs/missing").
		Expect().
		Status(http.StatusNotFound)
}

func TestCancelJobHandlerFinished(t *testing.T) {
	e, svc, ctrl := newImportTestServer(t)
	defer ctrl.Finish()

	svc.EXPECT().CancelJob(gomock.Any(), "t-2").Return(v1.ErrJobFinished)

	obj := e.POST("/v1/imports/jobs/t-2/cancel").
		Expect().
		Status(http.StatusBadRequest).
		JSON().Object()
	obj.Value("code").IsEqual(2005)
}

func TestDeleteJobHandler(t *testing.T) {
	e, svc, ctrl := newImportTestServer(t)
	defer ctrl.Finish()

	svc.EXPECT().DeleteJob(gomock.Any(), "t-3").Return(nil)

	e.DELETE("/v1/imports/jobs/t-3").
		Expect().
		Status(http.StatusOK)
}

func TestStreamJobEventsHandler(t *testing.T) {
	e, svc, ctrl := newImportTestServer(t)
	defer ctrl.Finish()

	// 预检查 + 首轮推送都返回终态，流推一条数据后立即 close
	svc.EXPECT().
		GetJobStatus(gomock.Any(), "t-4").
		Return(&v1.ImportJobStatus{
			JobID:    "t-4",
			TaskID:   "t-4",
			Status:   model.ImportJobStatusCompleted,
			Progress: 100,
		}, nil).
		Times(2)

	body := e.GET("/v1/imports/jobs/t-4/events").
		Expect().
		Status(http.StatusOK).
		ContentType("text/event-stream").
		Body()
	body.Contains(`"status":"completed"`)
	body.Contains("event: close")
}

func TestStreamJobEventsHandlerNotFound(t *testing.T) {
	e, svc, ctrl := newImportTestServer(t)
	defer ctrl.Finish()

	svc.EXPECT().GetJobStatus(gomock.Any(), "missing").Return(nil, v1.ErrJobNotFound)

	e.GET("/v1/imports/jobs/missing/events").
		Expect().
		Status(http.StatusNotFound)
}

package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Client Webhook 出站通知客户端（带超时的 HTTP POST）
type Client struct {
	httpClient *http.Client
}

func NewClient(conf *viper.Viper) *Client {
	timeout := conf.GetInt("webhook.timeout")
	if timeout <= 0 {
		timeout = 10
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

// Result 单次投递结果，投递失败不作为 error 返回（调用方只关心结果本身）
type Result struct {
	Success        bool    `json:"success"`
	StatusCode     int     `json:"status_code,omitempty"`
	ResponseTimeMs float64 `json:"response_time_ms,omitempty"`
	ErrorMessage   string  `json:"error_message,omitempty"`
}

// Post 向目标 URL 投递 JSON 载荷
func (c *Client) Post(ctx context.Context, url string, payload interface{}) *Result {
	body, err := json.Marshal(payload)
	if err != nil {
		return &Result{Success: false, ErrorMessage: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &Result{Success: false, ErrorMessage: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if strings.Contains(err.Error(), "Client.Timeout") {
			return &Result{Success: false, ErrorMessage: fmt.Sprintf("request timeout (%s)", c.httpClient.Timeout)}
		}
		return &Result{Success: false, ErrorMessage: err.Error()}
	}
	defer resp.Body.Close()

	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	return &Result{
		Success:        resp.StatusCode >= 200 && resp.StatusCode < 300,
		StatusCode:     resp.StatusCode,
		ResponseTimeMs: elapsed,
	}
}

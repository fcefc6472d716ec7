package v1

// 导入任务相关 API 定义

// UploadCSVResponse CSV 上传响应
type UploadCSVResponse struct {
	Response
	Data UploadCSVResponseData
}

type UploadCSVResponseData struct {
	JobID  string `json:"job_id"`  // 任务记录 UUID
	TaskID string `json:"task_id"` // 队列任务 ID（用于进度订阅）
}

// ImportJobStatus 任务状态（缓存优先，回落数据库）
type ImportJobStatus struct {
	JobID         string `json:"job_id"`
	TaskID        string `json:"task_id,omitempty"`
	Status        string `json:"status"`
	Progress      int    `json:"progress"`
	TotalRows     *int   `json:"total_rows"`
	ProcessedRows int    `json:"processed_rows"`
	ErrorMessage  string `json:"error_message,omitempty"`
	ETASeconds    *int   `json:"eta_seconds,omitempty"`
	FileName      string `json:"file_name,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// GetImportJobResponse 任务详情响应
type GetImportJobResponse struct {
	Response
	Data ImportJobStatus
}

// ListImportJobsRequest 任务列表查询请求
type ListImportJobsRequest struct {
	Limit int `form:"limit" binding:"omitempty,max=100" example:"20"`
}

// ListImportJobsResponse 任务列表响应
type ListImportJobsResponse struct {
	Response
	Data ListImportJobsResponseData
}

type ListImportJobsResponseData struct {
	Total int               `json:"total"`
	List  []ImportJobStatus `json:"list"`
}

package model

// DispatchLog 调度审计日志表 — 对应 dispatch_logs
// 每次经 Action Dispatcher 转发到上游的动作记一条，含成败
type DispatchLog struct {
	DispatchLogID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"dispatch_log_id"`
	SwapRequestID string `gorm:"type:varchar(64);not null;index"                json:"swap_request_id"`
	ActorID       string `gorm:"type:varchar(64);not null"                      json:"actor_id"`
	Action        string `gorm:"type:varchar(20);not null"                      json:"action"`
	Operation     string `gorm:"type:varchar(40);not null"                      json:"operation"`
	SwapType      string `gorm:"type:varchar(20);not null"                      json:"swap_type"`
	RawStatus     string `gorm:"type:varchar(40);not null"                      json:"raw_status"` // 转发时刻的上游原始状态
	Notes         string `gorm:"type:varchar(500);not null;default:''"          json:"notes,omitempty"`
	Succeeded     bool   `gorm:"not null;default:false"                         json:"succeeded"`
	ErrorMessage  string `gorm:"type:varchar(500);not null;default:''"          json:"error_message,omitempty"`
	BaseModel
}

// TableName 指定表名
func (DispatchLog) TableName() string { return "dispatch_logs" }

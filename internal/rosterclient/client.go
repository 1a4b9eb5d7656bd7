package rosterclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/berba-q/hospitality-scheduler-sub001/config"
	"github.com/berba-q/hospitality-scheduler-sub001/internal/workflow"
)

// Client 上游排班服务 HTTP 客户端
// 上游是换班数据的唯一权威：本客户端只拉快照、转发动作，不重试不兜底
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// RemoteError 上游返回的结构化失败
// 响应体原样保留（含并发响应冲突等本地无法判定的错误）
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("排班服务错误: status=%d body=%s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("排班服务错误: status=%d", e.StatusCode)
}

// NewClient 创建排班服务客户端
func NewClient(cfg *config.RosterConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		logger:     logger,
	}
}

// ListSwapRequests 批量拉取用户可见的换班申请（宽松形态）
func (c *Client) ListSwapRequests(ctx context.Context, userID string) ([]RawSwapRequest, error) {
	var out struct {
		SwapRequests []RawSwapRequest `json:"swap_requests"`
	}
	path := "/api/swap-requests?user_id=" + url.QueryEscape(userID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.SwapRequests, nil
}

// GetTimeline 拉取单条申请的历史事件（只读）
func (c *Client) GetTimeline(ctx context.Context, swapRequestID string) ([]TimelineEvent, error) {
	var out struct {
		Events []TimelineEvent `json:"events"`
	}
	path := "/api/swap-requests/" + url.PathEscape(swapRequestID) + "/timeline"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}

// Execute 执行调度器产出的调用描述
// 操作 → 端点的映射是穷举的；未知操作直接报错而非猜测
func (c *Client) Execute(ctx context.Context, call *workflow.Call) error {
	var path string
	id := url.PathEscape(call.SwapRequestID)

	switch call.Operation {
	case workflow.OpRespondPotentialAssignment:
		path = "/api/swap-requests/" + id + "/assignment-response"
	case workflow.OpRespondSwap:
		path = "/api/swap-requests/" + id + "/response"
	case workflow.OpManagerSwapDecision:
		path = "/api/swap-requests/" + id + "/manager-decision"
	case workflow.OpManagerFinalApproval:
		path = "/api/swap-requests/" + id + "/final-approval"
	case workflow.OpCancelSwapRequest:
		path = "/api/swap-requests/" + id + "/cancel"
	default:
		return fmt.Errorf("未知的后端操作: %s", call.Operation)
	}

	return c.doJSON(ctx, http.MethodPost, path, call.Payload, nil)
}

// doJSON 发送 JSON 请求并解码响应
// 非 2xx 时将上游响应体原样包入 RemoteError 透传给调用方
func (c *Client) doJSON(ctx context.Context, method, path string, reqBody, respBody any) error {
	var buf bytes.Buffer
	if reqBody != nil {
		if err := json.NewEncoder(&buf).Encode(reqBody); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("请求排班服务失败: %w", err)
	}
	defer resp.Body.Close()

	b, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &RemoteError{StatusCode: resp.StatusCode, Body: string(b)}
	}

	if respBody != nil && len(b) > 0 {
		if err := json.Unmarshal(b, respBody); err != nil {
			return fmt.Errorf("解码排班服务响应失败: %w", err)
		}
	}

	return nil
}

package task

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Lumos-Labs-HQ/datamock/internal/converter"
	"github.com/Lumos-Labs-HQ/datamock/internal/logger"
)

const TypeMockData = "MOCKDATA"

type Table struct {
	TableName string                   `json:"tableName"`
	Columns   []converter.ServerColumn `json:"columns"`
}

type Parameters struct {
	TaskName   string `json:"taskName"`
	TotalCount int64  `json:"totalCount"`
	BatchSize  int64  `json:"batchSize"`
	Strategy   string `json:"strategy"`
	Table      Table  `json:"table"`
}

// Request is the task creation body the mock executor accepts.
type Request struct {
	RequestID  string     `json:"requestId"`
	TaskType   string     `json:"taskType"`
	DatabaseID int64      `json:"databaseId"`
	Parameters Parameters `json:"parameters"`
}

// Options are the submission settings that do not come from the columns.
type Options struct {
	DatabaseID int64
	TotalCount int64
	BatchSize  int64
	Strategy   string
	TaskName   string
}

// NewRequest assembles a mock data task for table. An empty task name is
// derived from the table name and the current time.
func NewRequest(table string, cols []converter.ServerColumn, opts Options) Request {
	name := opts.TaskName
	if name == "" {
		name = fmt.Sprintf("mock_%s_%s", table, time.Now().Format("20060102150405"))
	}
	return Request{
		RequestID:  uuid.NewString(),
		TaskType:   TypeMockData,
		DatabaseID: opts.DatabaseID,
		Parameters: Parameters{
			TaskName:   name,
			TotalCount: opts.TotalCount,
			BatchSize:  opts.BatchSize,
			Strategy:   opts.Strategy,
			Table:      Table{TableName: table, Columns: cols},
		},
	}
}

// Response is the executor's reply. Data carries the created task id.
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"errMsg,omitempty"`
}

// Client posts tasks to the executor endpoint.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	log      logger.LoggerI
}

func NewClient(endpoint, token string, log logger.LoggerI) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		http:     &http.Client{Timeout: 30 * time.Second},
		log:      log,
	}
}

// Submit sends req once. There is no retry: any transport failure or
// unsuccessful reply is returned as the error.
func (c *Client) Submit(ctx context.Context, req Request) (Response, error) {
	var out Response
	if c.endpoint == "" {
		return out, errors.New("task endpoint is not configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return out, errors.Wrap(err, "failed to encode task")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return out, errors.Wrap(err, "failed to build task request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", req.RequestID)
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log.Info("submitting mock task",
		logger.String("requestId", req.RequestID),
		logger.String("table", req.Parameters.Table.TableName),
		logger.Int("columns", len(req.Parameters.Table.Columns)),
	)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Error("task submission failed", logger.Error(err))
		return out, errors.Wrap(err, "failed to submit task")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return out, errors.Wrap(err, "failed to read task response")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, errors.Errorf("task submission returned %s: %s", resp.Status, bytes.TrimSpace(data))
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, errors.Wrap(err, "failed to decode task response")
	}
	if !out.Success {
		return out, errors.Errorf("task rejected: %s", out.Message)
	}

	c.log.Info("mock task created", logger.String("requestId", req.RequestID), logger.Any("data", out.Data))
	return out, nil
}

// services/backend_client.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"flowai-dashboard/models"
)

// ErrTransport covers network failures, unexpected status codes and undecodable bodies.
var ErrTransport = errors.New("backend transport failure")

// StatusError is a non-2xx answer from the backend on a non-claim call.
type StatusError struct {
	Path       string
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend %s returned status %d: %s", e.Path, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend %s returned status %d", e.Path, e.StatusCode)
}

func (e *StatusError) Unwrap() error { return ErrTransport }

// ClaimRejectedError means the backend explicitly refused a claim.
type ClaimRejectedError struct {
	TaskID     models.TaskID
	StatusCode int
	Reason     string
}

func (e *ClaimRejectedError) Error() string {
	return fmt.Sprintf("claim of task %s rejected (%d): %s", e.TaskID, e.StatusCode, e.Reason)
}

// Backend is the set of calls the session makes against the marketplace API.
type Backend interface {
	Stats(ctx context.Context) (*models.WorkerStats, error)
	Balance(ctx context.Context) (*models.Balance, error)
	NetworkInfo(ctx context.Context) (*models.NetworkInfo, error)
	AccountAddress(ctx context.Context) (string, error)
	AvailableTasks(ctx context.Context, lang string) ([]models.Task, error)
	RawTask(ctx context.Context, id models.TaskID) (*models.Task, bool)
	ClaimTask(ctx context.Context, id models.TaskID) error
	StartWork(ctx context.Context) (*models.WorkResult, error)
	WorkSync(ctx context.Context, claimed []models.TaskID) (*models.WorkResult, error)
}

// BackendClient talks to the FlowAI REST API. It never retries.
type BackendClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewBackendClient(baseURL string, httpClient *http.Client) *BackendClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BackendClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: httpClient,
	}
}

type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func readDetail(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Detail != "" {
			return eb.Detail
		}
		if eb.Message != "" {
			return eb.Message
		}
	}
	return strings.TrimSpace(string(body))
}

func (c *BackendClient) do(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request for %s: %w", path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	return resp, nil
}

func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

// call performs one request and decodes a 2xx JSON body into out.
func (c *BackendClient) call(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.do(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer closeBody(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Path: path, StatusCode: resp.StatusCode, Detail: readDetail(resp)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode %s response: %v", ErrTransport, path, err)
	}
	return nil
}

func (c *BackendClient) Stats(ctx context.Context) (*models.WorkerStats, error) {
	var out models.WorkerStats
	if err := c.call(ctx, http.MethodGet, "/api/worker/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *BackendClient) Balance(ctx context.Context) (*models.Balance, error) {
	var out models.Balance
	if err := c.call(ctx, http.MethodGet, "/api/worker/balance", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *BackendClient) NetworkInfo(ctx context.Context) (*models.NetworkInfo, error) {
	var out models.NetworkInfo
	if err := c.call(ctx, http.MethodGet, "/api/network/info", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *BackendClient) AccountAddress(ctx context.Context) (string, error) {
	var out models.AccountInfo
	if err := c.call(ctx, http.MethodGet, "/api/account/address", nil, &out); err != nil {
		return "", err
	}
	return out.Address, nil
}

// AvailableTasks lists open tasks localized for lang.
func (c *BackendClient) AvailableTasks(ctx context.Context, lang string) ([]models.Task, error) {
	path := "/api/tasks/available"
	if lang != "" {
		path += "?lang=" + url.QueryEscape(lang)
	}
	var out []models.Task
	if err := c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Task{}
	}
	return out, nil
}

// RawTask fetches the multilingual variant of a task. Failure is reported as ok=false.
func (c *BackendClient) RawTask(ctx context.Context, id models.TaskID) (*models.Task, bool) {
	var out models.Task
	if err := c.call(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(id.String())+"/raw", nil, &out); err != nil {
		log.Printf("[BACKEND] raw task %s unavailable, keeping localized copy: %v", id, err)
		return nil, false
	}
	if out.ID == "" {
		out.ID = id
	}
	return &out, true
}

// ClaimTask asks the backend to assign the task to this account.
// A non-2xx answer becomes a *ClaimRejectedError carrying the backend's detail.
func (c *BackendClient) ClaimTask(ctx context.Context, id models.TaskID) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/tasks/"+url.PathEscape(id.String())+"/claim", nil)
	if err != nil {
		return err
	}
	defer closeBody(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ClaimRejectedError{TaskID: id, StatusCode: resp.StatusCode, Reason: readDetail(resp)}
	}
	return nil
}

func (c *BackendClient) StartWork(ctx context.Context) (*models.WorkResult, error) {
	var out models.WorkResult
	if err := c.call(ctx, http.MethodPost, "/api/agent/work", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WorkSync runs one work cycle. The id list is always sent, as [] when empty.
func (c *BackendClient) WorkSync(ctx context.Context, claimed []models.TaskID) (*models.WorkResult, error) {
	if claimed == nil {
		claimed = []models.TaskID{}
	}
	var out models.WorkResult
	if err := c.call(ctx, http.MethodPost, "/api/agent/work/sync", models.WorkSyncRequest{ClaimedTasks: claimed}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

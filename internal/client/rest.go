package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/boostly/boostly/internal/log"
	"github.com/boostly/boostly/internal/model"
)

// RESTClientConfig is the configuration for the REST backend client.
type RESTClientConfig struct {
	// BaseURL is the backend root, e.g. https://api.boostly.app.
	BaseURL string
	// Token is the bearer token used on every request, optional.
	Token  string
	Client *http.Client
	Logger log.Logger
}

func (c *RESTClientConfig) defaults() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base url is required")
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Client == nil {
		c.Client = &http.Client{Timeout: 30 * time.Second}
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "client.REST"})
	return nil
}

// RESTClient is the HTTP implementation of Backend against the marketplace
// API (`/api/v1`).
type RESTClient struct {
	baseURL string
	token   string
	client  *http.Client
	logger  log.Logger
}

// NewRESTClient creates a new REST backend client.
func NewRESTClient(cfg RESTClientConfig) (*RESTClient, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &RESTClient{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		client:  cfg.Client,
		logger:  cfg.Logger,
	}, nil
}

// Wire types. The backend speaks snake_case JSON and reports errors as
// {"detail": "..."}.

type taskResponse struct {
	ID            string            `json:"id"`
	Platform      string            `json:"platform"`
	Type          string            `json:"type"`
	TargetURL     string            `json:"target_url"`
	Requirements  []string          `json:"requirements"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Instructions  string            `json:"instructions"`
	BudgetPerTask float64           `json:"budget_per_task"`
	TotalSlots    int               `json:"total_slots"`
	FilledSlots   int               `json:"filled_slots"`
	ServiceFee    float64           `json:"service_fee"`
	TotalCost     float64           `json:"total_cost"`
	Targeting     map[string]string `json:"targeting"`
	Status        string            `json:"status"`
	Creator       creatorResponse   `json:"creator"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type creatorResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Verified    bool   `json:"verified"`
}

type taskPageResponse struct {
	Tasks []taskResponse `json:"tasks"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Total int            `json:"total"`
}

type taskRequest struct {
	Platform      string            `json:"platform"`
	Type          string            `json:"type"`
	TargetURL     string            `json:"target_url,omitempty"`
	Requirements  []string          `json:"requirements,omitempty"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Instructions  string            `json:"instructions,omitempty"`
	BudgetPerTask float64           `json:"budget_per_task"`
	TotalSlots    int               `json:"total_slots"`
	ServiceFee    float64           `json:"service_fee"`
	TotalCost     float64           `json:"total_cost"`
	Targeting     map[string]string `json:"targeting,omitempty"`
}

type claimRequest struct {
	PerformerID string `json:"performer_id"`
}

type assignmentResponse struct {
	ID          string    `json:"id"`
	TaskID      string    `json:"task_id"`
	PerformerID string    `json:"performer_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type proofRequest struct {
	ProofURL         string `json:"proof_url,omitempty"`
	ProofDescription string `json:"proof_description,omitempty"`
}

type submissionResponse struct {
	ID               string    `json:"id"`
	TaskID           string    `json:"task_id"`
	PerformerID      string    `json:"performer_id"`
	ProofURL         string    `json:"proof_url"`
	ProofDescription string    `json:"proof_description"`
	CreatedAt        time.Time `json:"created_at"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func newTaskRequest(d model.TaskDraft) taskRequest {
	return taskRequest{
		Platform:      string(d.Platform.Platform),
		Type:          string(d.TaskType.Type),
		TargetURL:     d.TaskType.TargetURL,
		Requirements:  d.TaskType.Requirements,
		Title:         d.Instructions.Title,
		Description:   d.Instructions.Description,
		Instructions:  d.Instructions.Instructions,
		BudgetPerTask: d.Budget.BudgetPerTask,
		TotalSlots:    d.Budget.TaskCount,
		ServiceFee:    d.Budget.ServiceFee,
		TotalCost:     d.Budget.TotalCost,
		Targeting:     d.Targeting.Criteria,
	}
}

func (t taskResponse) toModel() model.Task {
	return model.Task{
		ID:            t.ID,
		Platform:      model.Platform(t.Platform),
		Type:          model.TaskType(t.Type),
		TargetURL:     t.TargetURL,
		Requirements:  t.Requirements,
		Title:         t.Title,
		Description:   t.Description,
		Instructions:  t.Instructions,
		BudgetPerTask: t.BudgetPerTask,
		TotalSlots:    t.TotalSlots,
		FilledSlots:   t.FilledSlots,
		ServiceFee:    t.ServiceFee,
		TotalCost:     t.TotalCost,
		Targeting:     t.Targeting,
		Status:        model.TaskStatus(t.Status),
		Creator: model.Creator{
			ID:          t.Creator.ID,
			DisplayName: t.Creator.DisplayName,
			Verified:    t.Creator.Verified,
		},
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// CreateTask creates a new task.
func (c *RESTClient) CreateTask(ctx context.Context, draft model.TaskDraft) (*model.Task, error) {
	var resp taskResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/tasks", newTaskRequest(draft), &resp)
	if err != nil {
		return nil, err
	}

	task := resp.toModel()
	c.logger.Debugf("Created task: %s", task.ID)
	return &task, nil
}

// UpdateTask updates an existing task.
func (c *RESTClient) UpdateTask(ctx context.Context, id string, draft model.TaskDraft) (*model.Task, error) {
	var resp taskResponse
	err := c.do(ctx, http.MethodPut, "/api/v1/tasks/"+url.PathEscape(id), newTaskRequest(draft), &resp)
	if err != nil {
		return nil, err
	}

	task := resp.toModel()
	return &task, nil
}

// GetTaskByID retrieves a single task.
func (c *RESTClient) GetTaskByID(ctx context.Context, id string) (*model.Task, error) {
	var resp taskResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/tasks/"+url.PathEscape(id), nil, &resp)
	if err != nil {
		return nil, err
	}

	task := resp.toModel()
	return &task, nil
}

// GetTasks retrieves a paginated, filtered task listing.
func (c *RESTClient) GetTasks(ctx context.Context, filters TaskFilters) (*TaskPage, error) {
	q := url.Values{}
	if filters.Status != nil {
		q.Set("status", string(*filters.Status))
	}
	if filters.Platform != nil {
		q.Set("platform", string(*filters.Platform))
	}
	if filters.Type != nil {
		q.Set("type", string(*filters.Type))
	}
	if filters.MinBudget != nil {
		q.Set("min_budget", strconv.FormatFloat(*filters.MinBudget, 'f', -1, 64))
	}
	if filters.MaxBudget != nil {
		q.Set("max_budget", strconv.FormatFloat(*filters.MaxBudget, 'f', -1, 64))
	}
	if filters.OwnerID != "" {
		q.Set("owner_id", filters.OwnerID)
	}
	if filters.SortBy != "" {
		q.Set("sort_by", filters.SortBy)
	}
	if filters.SortOrder != "" {
		q.Set("sort_order", string(filters.SortOrder))
	}
	if filters.Page > 0 {
		q.Set("page", strconv.Itoa(filters.Page))
	}
	if filters.Limit > 0 {
		q.Set("limit", strconv.Itoa(filters.Limit))
	}

	path := "/api/v1/tasks"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp taskPageResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	page := TaskPage{
		Tasks: make([]model.Task, 0, len(resp.Tasks)),
		Page:  resp.Page,
		Limit: resp.Limit,
		Total: resp.Total,
	}
	for _, t := range resp.Tasks {
		page.Tasks = append(page.Tasks, t.toModel())
	}

	return &page, nil
}

// ClaimTask claims a task slot for a performer.
func (c *RESTClient) ClaimTask(ctx context.Context, taskID, performerID string) (*model.Assignment, error) {
	var resp assignmentResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/tasks/"+url.PathEscape(taskID)+"/claim", claimRequest{PerformerID: performerID}, &resp)
	if err != nil {
		return nil, err
	}

	return &model.Assignment{
		ID:          resp.ID,
		TaskID:      resp.TaskID,
		PerformerID: resp.PerformerID,
		CreatedAt:   resp.CreatedAt,
	}, nil
}

// PublishTask publishes a draft task.
func (c *RESTClient) PublishTask(ctx context.Context, id string) (*model.Task, error) {
	return c.statusAction(ctx, id, "publish")
}

// PauseTask pauses an active task.
func (c *RESTClient) PauseTask(ctx context.Context, id string) (*model.Task, error) {
	return c.statusAction(ctx, id, "pause")
}

// ResumeTask resumes a paused task.
func (c *RESTClient) ResumeTask(ctx context.Context, id string) (*model.Task, error) {
	return c.statusAction(ctx, id, "resume")
}

// CancelTask cancels a task.
func (c *RESTClient) CancelTask(ctx context.Context, id string) (*model.Task, error) {
	return c.statusAction(ctx, id, "cancel")
}

// statusAction issues one of the status-only update endpoints.
func (c *RESTClient) statusAction(ctx context.Context, id, action string) (*model.Task, error) {
	var resp taskResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/tasks/"+url.PathEscape(id)+"/"+action, nil, &resp)
	if err != nil {
		return nil, err
	}

	task := resp.toModel()
	return &task, nil
}

// SubmitTaskProof submits proof for a claimed task. The proof is validated
// locally before any request is made.
func (c *RESTClient) SubmitTaskProof(ctx context.Context, proof model.ProofSubmission) (*model.Submission, error) {
	if errs := proof.Validate(); !errs.Empty() {
		return nil, fmt.Errorf("invalid proof submission %v: %w", errs, model.ErrNotValid)
	}

	var resp submissionResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/tasks/"+url.PathEscape(proof.TaskID)+"/proof", proofRequest{
		ProofURL:         proof.URL,
		ProofDescription: proof.Description,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &model.Submission{
		ID:          resp.ID,
		TaskID:      resp.TaskID,
		PerformerID: resp.PerformerID,
		URL:         resp.ProofURL,
		Description: resp.ProofDescription,
		CreatedAt:   resp.CreatedAt,
	}, nil
}

// do issues a single JSON request and decodes the response into out.
func (c *RESTClient) do(ctx context.Context, method, path string, reqBody, out interface{}) error {
	var body io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("could not marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		// Surface the backend's message verbatim.
		var apiErr errorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Detail != "" {
			if resp.StatusCode == http.StatusNotFound {
				return fmt.Errorf("%s: %w", apiErr.Detail, model.ErrNotFound)
			}
			return fmt.Errorf("%s: %w", apiErr.Detail, model.ErrRejected)
		}
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("backend returned status %d: %w", resp.StatusCode, model.ErrNotFound)
		}
		return fmt.Errorf("backend returned status %d: %w", resp.StatusCode, model.ErrRejected)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("could not decode response: %w", err)
		}
	}

	return nil
}

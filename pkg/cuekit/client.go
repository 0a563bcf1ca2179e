package cuekit

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultBaseURL is the production ClickUp API endpoint.
const DefaultBaseURL = "https://api.clickup.com/api/v2"

// Client is an HTTP client for the ClickUp API.
type Client struct {
	baseURL string
	apiKey  string
	teamID  string
	http    *http.Client
}

// NewClient creates a new ClickUp API client.
//
// Required options:
//   - WithAPIKey: sets the API token
//
// Optional options:
//   - WithTeamID: sets the workspace ID used by team-scoped calls
//   - WithBaseURL: overrides the API endpoint (default: DefaultBaseURL)
//   - WithTimeout: sets the HTTP client timeout (default: 30s)
//   - WithHTTPClient: supplies a custom HTTP client
//
// Example:
//
//	client, err := cuekit.NewClient(
//	    cuekit.WithAPIKey(os.Getenv("CLICKUP_API_KEY")),
//	    cuekit.WithTeamID(os.Getenv("CLICKUP_TEAM_ID")),
//	)
func NewClient(opts ...ClientOption) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.apiKey == "" {
		return nil, fmt.Errorf("api key is required: use WithAPIKey option")
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	return &Client{
		baseURL: cfg.baseURL,
		apiKey:  cfg.apiKey,
		teamID:  cfg.teamID,
		http:    hc,
	}, nil
}

// GetTask retrieves a task by ID. Pass WithSubtasks to embed the task's
// subtask records and enable subtask access on the returned view.
func (c *Client) GetTask(ctx context.Context, id string, opts ...GetTaskOption) (*Task, error) {
	options := &getTaskOptions{}
	for _, opt := range opts {
		opt(options)
	}

	path := "/task/" + id
	if options.includeSubtasks {
		path += "?include_subtasks=true&subtasks=true"
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var raw RawTask
	if err := c.do(req, &raw); err != nil {
		return nil, fmt.Errorf("get task %s failed: %w", id, err)
	}

	t := NewTask(raw)
	if options.includeSubtasks {
		// The API omits the subtasks array entirely for leaf tasks even
		// when inclusion was requested.
		t.subtasksLoaded = true
	}
	return t, nil
}

// ListTasks retrieves every task in a list, following the API's page-based
// pagination until the last page.
func (c *Client) ListTasks(ctx context.Context, listID string, opts ...ListTasksOption) (*TaskSet, error) {
	options := &listTasksOptions{}
	for _, opt := range opts {
		opt(options)
	}

	set := NewTaskSet()
	for page := 0; ; page++ {
		params := url.Values{}
		params.Set("page", strconv.Itoa(page))
		if options.subtasks {
			params.Set("subtasks", "true")
		}
		if options.includeClosed {
			params.Set("include_closed", "true")
		}

		req, err := c.newRequest(ctx, http.MethodGet, "/list/"+listID+"/task?"+params.Encode(), nil)
		if err != nil {
			return nil, err
		}

		var resp tasksResponse
		if err := c.do(req, &resp); err != nil {
			return nil, fmt.Errorf("list tasks for %s failed: %w", listID, err)
		}

		for _, raw := range resp.Tasks {
			set.Add(NewTask(raw))
		}

		if resp.LastPage == nil || *resp.LastPage || len(resp.Tasks) == 0 {
			break
		}
	}

	return set, nil
}

// TaskCount returns the number of tasks in a list.
func (c *Client) TaskCount(ctx context.Context, listID string, opts ...ListTasksOption) (int, error) {
	set, err := c.ListTasks(ctx, listID, opts...)
	if err != nil {
		return 0, err
	}
	return set.Count(), nil
}

// CreateTask creates a new task in a list.
func (c *Client) CreateTask(ctx context.Context, listID, name string, opts ...CreateTaskOption) (*Task, error) {
	options := &createTaskOptions{}
	for _, opt := range opts {
		opt(options)
	}

	body := createTaskRequest{
		Name:        name,
		Description: options.description,
		Status:      options.status,
		Tags:        options.tags,
	}

	req, err := c.newJSONRequest(ctx, http.MethodPost, "/list/"+listID+"/task", body)
	if err != nil {
		return nil, err
	}

	var raw RawTask
	if err := c.do(req, &raw); err != nil {
		return nil, fmt.Errorf("create task failed: %w", err)
	}

	return NewTask(raw), nil
}

// PostComment posts a comment on a task.
func (c *Client) PostComment(ctx context.Context, taskID, comment string, notifyAll bool) error {
	body := postCommentRequest{
		CommentText: comment,
		NotifyAll:   notifyAll,
	}

	req, err := c.newJSONRequest(ctx, http.MethodPost, "/task/"+taskID+"/comment", body)
	if err != nil {
		return err
	}

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("post comment on %s failed: %w", taskID, err)
	}

	return nil
}

// SetCustomField sets a custom field's value on a task. The field ID can be
// looked up by name with Task.FieldID.
func (c *Client) SetCustomField(ctx context.Context, taskID, fieldID string, value any) error {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/task/"+taskID+"/field/"+fieldID, setFieldRequest{Value: value})
	if err != nil {
		return err
	}

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("set field %s on %s failed: %w", fieldID, taskID, err)
	}

	return nil
}

// Teams returns the workspaces the API token can see.
func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/team", nil)
	if err != nil {
		return nil, err
	}

	var resp teamsResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("list teams failed: %w", err)
	}

	return resp.Teams, nil
}

// teamScopedID returns the configured team ID or an error when the client
// was built without one.
func (c *Client) teamScopedID() (string, error) {
	if c.teamID == "" {
		return "", fmt.Errorf("team ID is required for this call: use WithTeamID option")
	}
	return c.teamID, nil
}

package cuekit

import (
	"net/http"
	"time"
)

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

// clientConfig holds the configuration for a Client.
type clientConfig struct {
	baseURL    string
	apiKey     string
	teamID     string
	timeout    time.Duration
	httpClient *http.Client
}

// defaultConfig returns the default client configuration.
func defaultConfig() *clientConfig {
	return &clientConfig{
		baseURL: DefaultBaseURL,
		timeout: 30 * time.Second,
	}
}

// WithAPIKey sets the API token sent in the Authorization header.
func WithAPIKey(key string) ClientOption {
	return func(c *clientConfig) {
		c.apiKey = key
	}
}

// WithTeamID sets the workspace (team) ID used by team-scoped calls such as
// Spaces.
func WithTeamID(teamID string) ClientOption {
	return func(c *clientConfig) {
		c.teamID = teamID
	}
}

// WithBaseURL overrides the API endpoint. Useful for tests and proxies.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *clientConfig) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithHTTPClient supplies a custom HTTP client. WithTimeout is ignored when
// this option is used.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}

// GetTaskOption configures a GetTask call.
type GetTaskOption func(*getTaskOptions)

type getTaskOptions struct {
	includeSubtasks bool
}

// WithSubtasks requests the task's subtask records, enabling Subtasks and
// FilteredSubtasks on the returned view.
func WithSubtasks() GetTaskOption {
	return func(o *getTaskOptions) {
		o.includeSubtasks = true
	}
}

// ListTasksOption configures a ListTasks call.
type ListTasksOption func(*listTasksOptions)

type listTasksOptions struct {
	subtasks      bool
	includeClosed bool
}

// WithSubtaskRecords includes each task's subtask records in the listing.
func WithSubtaskRecords() ListTasksOption {
	return func(o *listTasksOptions) {
		o.subtasks = true
	}
}

// WithClosed includes closed tasks in the listing.
func WithClosed() ListTasksOption {
	return func(o *listTasksOptions) {
		o.includeClosed = true
	}
}

// CreateTaskOption configures a CreateTask call.
type CreateTaskOption func(*createTaskOptions)

type createTaskOptions struct {
	description *string
	status      *string
	tags        []string
}

// WithDescription sets the new task's description.
func WithDescription(desc string) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.description = &desc
	}
}

// WithStatus sets the new task's initial status.
func WithStatus(status string) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.status = &status
	}
}

// WithTags sets the new task's tags.
func WithTags(names ...string) CreateTaskOption {
	return func(o *createTaskOptions) {
		o.tags = names
	}
}

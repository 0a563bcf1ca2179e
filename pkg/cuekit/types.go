package cuekit

import "encoding/json"

// RawTask is the task record as returned by the ClickUp API. The SDK treats
// it as read-only: filtering operations read records but never mutate them.
//
// Subtasks is nil when the task was fetched without subtask inclusion and an
// empty (non-nil) slice when subtasks were requested but the task has none.
type RawTask struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Status       Status        `json:"status"`
	Creator      Creator       `json:"creator"`
	Tags         []Tag         `json:"tags"`
	Parent       *string       `json:"parent,omitempty"`
	DateCreated  string        `json:"date_created,omitempty"`
	DateUpdated  string        `json:"date_updated,omitempty"`
	CustomFields []CustomField `json:"custom_fields"`
	Subtasks     []RawTask     `json:"subtasks,omitempty"`
	URL          string        `json:"url,omitempty"`
}

// Status is a task's workflow status.
type Status struct {
	Status string `json:"status"`
	Type   string `json:"type,omitempty"`
	Color  string `json:"color,omitempty"`
}

// Tag is a task tag.
type Tag struct {
	Name  string `json:"name"`
	TagFg string `json:"tag_fg,omitempty"`
	TagBg string `json:"tag_bg,omitempty"`
}

// Creator identifies the user that created a task.
type Creator struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// CustomField is one custom field declaration on a task, including its
// current value. Value stays raw JSON because its shape depends on Type:
// numbers arrive as numbers or quoted strings, drop_down values are option
// indexes, labels values are arrays of option IDs, and so on. The field
// accessor on Task decodes it per declared type.
type CustomField struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Value      json.RawMessage `json:"value,omitempty"`
	TypeConfig *TypeConfig     `json:"type_config,omitempty"`
}

// TypeConfig carries per-type field configuration. For drop_down and labels
// fields it holds the selectable options.
type TypeConfig struct {
	Options []FieldOption `json:"options,omitempty"`
}

// FieldOption is one selectable option of a drop_down or labels field.
// Drop_down options carry their text in "name", labels options in "label".
type FieldOption struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	Label      string `json:"label,omitempty"`
	OrderIndex int    `json:"orderindex,omitempty"`
}

func (o FieldOption) displayName() string {
	if o.Label != "" {
		return o.Label
	}
	return o.Name
}

// TaskRef is a lightweight reference to another task, used by "tasks"-typed
// custom fields.
type TaskRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Attachment is a file attached through an "attachment"-typed custom field.
type Attachment struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title,omitempty"`
	URL       string `json:"url,omitempty"`
	URLWQuery string `json:"url_w_query,omitempty"`
}

// Team is a ClickUp workspace (the API calls workspaces "teams").
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Space is a top-level container inside a team.
type Space struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Folder groups lists inside a space.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// List holds tasks, either inside a folder or directly inside a space.
type List struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Response envelopes.

type tasksResponse struct {
	Tasks    []RawTask `json:"tasks"`
	LastPage *bool     `json:"last_page,omitempty"`
}

type teamsResponse struct {
	Teams []Team `json:"teams"`
}

type spacesResponse struct {
	Spaces []Space `json:"spaces"`
}

type foldersResponse struct {
	Folders []Folder `json:"folders"`
}

type listsResponse struct {
	Lists []List `json:"lists"`
}

type tagsResponse struct {
	Tags []Tag `json:"tags"`
}

// Request bodies.

type createTaskRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type postCommentRequest struct {
	CommentText string `json:"comment_text"`
	NotifyAll   bool   `json:"notify_all"`
}

type setFieldRequest struct {
	Value any `json:"value"`
}

type createTagRequest struct {
	Tag Tag `json:"tag"`
}

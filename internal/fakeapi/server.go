// Package fakeapi is an in-process stand-in for the ClickUp API, covering the
// endpoint subset the SDK consumes. Integration tests point a real client at
// it instead of recording HTTP fixtures.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/cuekit/cuekit/pkg/cuekit"
)

// PageSize is how many tasks a list endpoint returns per page.
const PageSize = 2

// Server holds the fixture state served by the router.
type Server struct {
	mu sync.Mutex

	APIKey string

	Teams   []cuekit.Team
	Spaces  map[string][]cuekit.Space  // team ID -> spaces
	Folders map[string][]cuekit.Folder // space ID -> folders
	Lists   map[string][]cuekit.List   // folder ID -> lists
	SpaceLs map[string][]cuekit.List   // space ID -> folderless lists
	Tags    map[string][]cuekit.Tag    // space ID -> tags

	Tasks     map[string]cuekit.RawTask // task ID -> record
	ListTasks map[string][]string       // list ID -> task IDs

	Comments map[string][]string // task ID -> comment texts
	nextID   int
}

// New creates an empty fixture server expecting the given API key.
func New(apiKey string) *Server {
	return &Server{
		APIKey:    apiKey,
		Spaces:    make(map[string][]cuekit.Space),
		Folders:   make(map[string][]cuekit.Folder),
		Lists:     make(map[string][]cuekit.List),
		SpaceLs:   make(map[string][]cuekit.List),
		Tags:      make(map[string][]cuekit.Tag),
		Tasks:     make(map[string]cuekit.RawTask),
		ListTasks: make(map[string][]string),
		Comments:  make(map[string][]string),
		nextID:    1,
	}
}

// AddTask registers a task record and appends it to a list.
func (s *Server) AddTask(listID string, raw cuekit.RawTask) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Tasks[raw.ID] = raw
	s.ListTasks[listID] = append(s.ListTasks[listID], raw.ID)
}

// Router builds the HTTP router over the fixture state.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(s.auth)

	r.Get("/team", s.getTeams)
	r.Get("/team/{teamID}/space", s.getSpaces)
	r.Get("/space/{spaceID}/folder", s.getFolders)
	r.Get("/space/{spaceID}/list", s.getSpaceLists)
	r.Get("/space/{spaceID}/tag", s.getTags)
	r.Post("/space/{spaceID}/tag", s.createTag)
	r.Get("/folder/{folderID}/list", s.getLists)
	r.Get("/task/{taskID}", s.getTask)
	r.Post("/task/{taskID}/comment", s.postComment)
	r.Post("/task/{taskID}/field/{fieldID}", s.setField)
	r.Get("/list/{listID}/task", s.getListTasks)
	r.Post("/list/{listID}/task", s.createTask)

	return r
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != s.APIKey {
			writeError(w, http.StatusUnauthorized, "Token invalid", "OAUTH_019")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) getTeams(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, map[string]any{"teams": s.Teams})
}

func (s *Server) getSpaces(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, map[string]any{"spaces": s.Spaces[chi.URLParam(r, "teamID")]})
}

func (s *Server) getFolders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, map[string]any{"folders": s.Folders[chi.URLParam(r, "spaceID")]})
}

func (s *Server) getLists(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, map[string]any{"lists": s.Lists[chi.URLParam(r, "folderID")]})
}

func (s *Server) getSpaceLists(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, map[string]any{"lists": s.SpaceLs[chi.URLParam(r, "spaceID")]})
}

func (s *Server) getTags(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, map[string]any{"tags": s.Tags[chi.URLParam(r, "spaceID")]})
}

func (s *Server) createTag(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Tag cuekit.Tag `json:"tag"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "INPUT_005")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	spaceID := chi.URLParam(r, "spaceID")
	s.Tags[spaceID] = append(s.Tags[spaceID], body.Tag)
	writeJSON(w, map[string]any{})
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.Tasks[chi.URLParam(r, "taskID")]
	if !ok {
		writeError(w, http.StatusNotFound, "Task not found", "ITEM_013")
		return
	}

	// Without subtask inclusion the API omits the subtasks array.
	if r.URL.Query().Get("include_subtasks") != "true" {
		raw.Subtasks = nil
	}
	writeJSON(w, raw)
}

func (s *Server) getListTasks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.ListTasks[chi.URLParam(r, "listID")]
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	start := page * PageSize
	if start > len(ids) {
		start = len(ids)
	}
	end := start + PageSize
	if end > len(ids) {
		end = len(ids)
	}

	tasks := make([]cuekit.RawTask, 0, end-start)
	for _, id := range ids[start:end] {
		raw := s.Tasks[id]
		if r.URL.Query().Get("subtasks") != "true" {
			raw.Subtasks = nil
		}
		tasks = append(tasks, raw)
	}

	lastPage := end >= len(ids)
	writeJSON(w, map[string]any{"tasks": tasks, "last_page": lastPage})
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string   `json:"name"`
		Description *string  `json:"description"`
		Status      *string  `json:"status"`
		Tags        []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "INPUT_005")
		return
	}
	if body.Name == "" {
		writeError(w, http.StatusBadRequest, "Task name invalid", "INPUT_005")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw := cuekit.RawTask{
		ID:   "fake_" + strconv.Itoa(s.nextID),
		Name: body.Name,
	}
	s.nextID++
	if body.Status != nil {
		raw.Status = cuekit.Status{Status: *body.Status}
	}
	for _, name := range body.Tags {
		raw.Tags = append(raw.Tags, cuekit.Tag{Name: name})
	}

	listID := chi.URLParam(r, "listID")
	s.Tasks[raw.ID] = raw
	s.ListTasks[listID] = append(s.ListTasks[listID], raw.ID)
	writeJSON(w, raw)
}

func (s *Server) postComment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CommentText string `json:"comment_text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "INPUT_005")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	taskID := chi.URLParam(r, "taskID")
	if _, ok := s.Tasks[taskID]; !ok {
		writeError(w, http.StatusNotFound, "Task not found", "ITEM_013")
		return
	}
	s.Comments[taskID] = append(s.Comments[taskID], body.CommentText)
	writeJSON(w, map[string]string{"id": "comment_" + strconv.Itoa(len(s.Comments[taskID]))})
}

func (s *Server) setField(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "INPUT_005")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	taskID := chi.URLParam(r, "taskID")
	raw, ok := s.Tasks[taskID]
	if !ok {
		writeError(w, http.StatusNotFound, "Task not found", "ITEM_013")
		return
	}

	fieldID := chi.URLParam(r, "fieldID")
	for i, cf := range raw.CustomFields {
		if cf.ID == fieldID {
			raw.CustomFields[i].Value = body.Value
			s.Tasks[taskID] = raw
			writeJSON(w, map[string]any{})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Field not found", "FIELD_007")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, ecode string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"err": msg, "ECODE": ecode})
}

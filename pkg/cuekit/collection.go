package cuekit

// TaskSet is an insertion-ordered collection of task views keyed by task ID.
// Filtering methods return freshly allocated sets and never mutate the
// receiver, so a set can be filtered repeatedly and from multiple goroutines
// as long as the underlying records are not mutated.
type TaskSet struct {
	ids  []string
	byID map[string]*Task
}

// NewTaskSet builds a set from task views, preserving argument order.
func NewTaskSet(tasks ...*Task) *TaskSet {
	s := &TaskSet{byID: make(map[string]*Task, len(tasks))}
	for _, t := range tasks {
		s.Add(t)
	}
	return s
}

// Add inserts a task view. A duplicate ID replaces the stored view but keeps
// its original position.
func (s *TaskSet) Add(t *Task) {
	if _, ok := s.byID[t.ID()]; !ok {
		s.ids = append(s.ids, t.ID())
	}
	s.byID[t.ID()] = t
}

// Count returns the number of tasks held by the set. Filtering never changes
// this: filters produce new sets.
func (s *TaskSet) Count() int { return len(s.ids) }

// IDs returns the task identifiers in insertion order.
func (s *TaskSet) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Get returns the task with the given ID.
func (s *TaskSet) Get(id string) (*Task, bool) {
	t, ok := s.byID[id]
	return t, ok
}

// Tasks returns the task views in insertion order.
func (s *TaskSet) Tasks() []*Task {
	out := make([]*Task, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, s.byID[id])
	}
	return out
}

// FilterByTag returns the tasks carrying any of the given tag names. Matching
// is case-sensitive and exact. An empty name list matches nothing.
func (s *TaskSet) FilterByTag(names ...string) *TaskSet {
	matched := NewTaskSet()
	for _, t := range s.Tasks() {
		if tagsMatch(t.Raw(), names) {
			matched.Add(t)
		}
	}
	return matched
}

// FilterByTagWithSubtasks is FilterByTag extended to embedded subtask
// records: a subtask whose own tags match is included in the result as its
// own entry, keyed by the subtask's ID, regardless of whether its parent
// matched.
func (s *TaskSet) FilterByTagWithSubtasks(names ...string) *TaskSet {
	matched := NewTaskSet()
	for _, t := range s.Tasks() {
		if tagsMatch(t.Raw(), names) {
			matched.Add(t)
		}
		for _, sub := range t.Raw().Subtasks {
			if tagsMatch(&sub, names) {
				matched.Add(NewTask(sub))
			}
		}
	}
	return matched
}

// FilterByStatuses returns the tasks whose status equals any of the given
// status names. An empty name list matches nothing.
func (s *TaskSet) FilterByStatuses(names ...string) *TaskSet {
	matched := NewTaskSet()
	for _, t := range s.Tasks() {
		for _, name := range names {
			if t.StatusName() == name {
				matched.Add(t)
				break
			}
		}
	}
	return matched
}

// FilterByCustomFields returns the tasks for which every filter matches
// (vacuously all tasks for an empty filter list). Absent or valueless fields
// resolve to per-operator boolean outcomes; the only failure is a malformed
// regex filter.
func (s *TaskSet) FilterByCustomFields(filters ...CustomFieldFilter) (*TaskSet, error) {
	matched := NewTaskSet()
	for _, t := range s.Tasks() {
		ok, err := matchAll(t.Raw(), filters)
		if err != nil {
			return nil, err
		}
		if ok {
			matched.Add(t)
		}
	}
	return matched, nil
}

func tagsMatch(raw *RawTask, names []string) bool {
	for _, tag := range raw.Tags {
		for _, name := range names {
			if tag.Name == name {
				return true
			}
		}
	}
	return false
}

// TaskWithSubtasks pairs a matching parent task with all of its subtasks.
type TaskWithSubtasks struct {
	Task     *Task
	Subtasks []*Task
}

type subtaskQuery struct {
	fieldFilters []CustomFieldFilter
	hasFields    bool
	tagNames     []string
	statusNames  []string
}

// SubtaskQueryOption configures a WithSubtasks call.
type SubtaskQueryOption func(*subtaskQuery)

// WithFieldFilters restricts the parent set to tasks matching every filter.
func WithFieldFilters(filters ...CustomFieldFilter) SubtaskQueryOption {
	return func(q *subtaskQuery) {
		q.fieldFilters = filters
		q.hasFields = true
	}
}

// WithTagFilter restricts the parent set to tasks carrying any of the names.
func WithTagFilter(names ...string) SubtaskQueryOption {
	return func(q *subtaskQuery) {
		q.tagNames = names
	}
}

// WithStatusFilter restricts the parent set to tasks in any of the statuses.
func WithStatusFilter(names ...string) SubtaskQueryOption {
	return func(q *subtaskQuery) {
		q.statusNames = names
	}
}

// WithSubtasks returns each matching parent task together with its complete
// subtask list. The supplied filters gate only which parents are included;
// the subtask slice is always the parent's full list, unfiltered. Absent
// filters match every task, so calling with no options returns every task as
// a parent. A parent with no subtasks yields an empty slice.
func (s *TaskSet) WithSubtasks(opts ...SubtaskQueryOption) (map[string]TaskWithSubtasks, error) {
	var q subtaskQuery
	for _, opt := range opts {
		opt(&q)
	}

	parents := s
	if q.hasFields {
		filtered, err := parents.FilterByCustomFields(q.fieldFilters...)
		if err != nil {
			return nil, err
		}
		parents = filtered
	}
	if q.tagNames != nil {
		parents = parents.FilterByTag(q.tagNames...)
	}
	if q.statusNames != nil {
		parents = parents.FilterByStatuses(q.statusNames...)
	}

	result := make(map[string]TaskWithSubtasks, parents.Count())
	for _, t := range parents.Tasks() {
		subs := make([]*Task, 0, len(t.Raw().Subtasks))
		for _, sub := range t.Raw().Subtasks {
			subs = append(subs, NewTask(sub))
		}
		result[t.ID()] = TaskWithSubtasks{Task: t, Subtasks: subs}
	}
	return result, nil
}

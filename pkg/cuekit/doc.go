// Package cuekit provides a Go client for the ClickUp task API with a
// client-side filtering engine for tasks and subtasks.
//
// # Getting Started
//
// Create a client with an API token:
//
//	client, err := cuekit.NewClient(
//	    cuekit.WithAPIKey(os.Getenv("CLICKUP_API_KEY")),
//	    cuekit.WithTeamID(os.Getenv("CLICKUP_TEAM_ID")),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Fetching Tasks
//
// Fetch a single task, optionally with its subtasks:
//
//	task, err := client.GetTask(ctx, "868fqfdpt", cuekit.WithSubtasks())
//
// Fetch every task in a list:
//
//	tasks, err := client.ListTasks(ctx, "901112032115")
//
// Resolve a list by name through the space/folder hierarchy:
//
//	tasks, err := client.ListTasksByPath(ctx, "My Space", "My Folder", "My List")
//
// # Custom Fields
//
// Read a typed custom field value from a task:
//
//	v, err := task.Field("GUEST")
//	if cuekit.IsMissingField(err) || cuekit.IsMissingValue(err) {
//	    // field absent or empty on this task
//	}
//
// # Filtering
//
// Filter a task collection by tags, statuses, or custom-field criteria.
// Tag and status filters OR across their name lists; custom-field filters
// AND across the filter list:
//
//	urgent := tasks.FilterByTag("urgent", "bug")
//	open := tasks.FilterByStatuses("in progress", "review")
//
//	matched, err := tasks.FilterByCustomFields(
//	    cuekit.CustomFieldFilter{FieldName: "Priority", Operator: cuekit.OpEquals, Value: "High"},
//	    cuekit.CustomFieldFilter{FieldName: "EP_NUM", Operator: cuekit.OpGreaterThan, Value: 100},
//	)
//
// Operators on absent fields resolve to boolean outcomes rather than errors:
// OpIsNotSet and OpNotEquals match a task without the field, every other
// operator does not. Only a malformed OpRegex pattern fails.
//
// # Subtask Hierarchies
//
// Select parent tasks by filter and get each one's complete subtask list:
//
//	groups, err := tasks.WithSubtasks(
//	    cuekit.WithStatusFilter("complete"),
//	)
//	for id, g := range groups {
//	    fmt.Println(id, g.Task.Name(), len(g.Subtasks))
//	}
//
// Or filter the subtasks of one task:
//
//	task, err := client.GetTask(ctx, id, cuekit.WithSubtasks())
//	subs, err := task.FilteredSubtasks(
//	    cuekit.CustomFieldFilter{FieldName: "GUEST", Operator: cuekit.OpIsSet},
//	)
//
// # Error Handling
//
// The SDK provides typed errors with helper predicates:
//
//	if cuekit.IsNotFound(err) { ... }
//	if cuekit.IsRateLimited(err) { ... }
//	if cuekit.IsSubtasksNotLoaded(err) { ... }
package cuekit

package cuekit

// Version is the SDK version.
const Version = "0.4.0"

// Capabilities describes what the SDK can do, for discovery by tooling and
// the CLI's capabilities command.
type Capabilities struct {
	Version    string           `json:"version"`
	Operators  []FilterOperator `json:"operators"`
	FieldTypes []string         `json:"field_types"`
	Operations []string         `json:"operations"`
}

// GetCapabilities returns a structured description of the SDK surface.
func GetCapabilities() Capabilities {
	return Capabilities{
		Version:   Version,
		Operators: Operators(),
		FieldTypes: []string{
			"number", "text", "short_text", "url", "date",
			"drop_down", "labels", "tasks", "attachment", "checkbox",
		},
		Operations: []string{
			"GetTask", "ListTasks", "TaskCount", "CreateTask",
			"PostComment", "SetCustomField",
			"Teams", "Spaces", "Folders", "Lists", "SpaceLists",
			"SpaceTags", "CreateSpaceTag",
			"ListIDByPath", "ListTasksByPath",
			"FilterByTag", "FilterByTagWithSubtasks", "FilterByStatuses",
			"FilterByCustomFields", "WithSubtasks", "FilteredSubtasks",
		},
	}
}

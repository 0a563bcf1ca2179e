package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cuekit/cuekit/pkg/cuekit"
)

// printTask prints a single task to the writer
func printTask(w io.Writer, task *cuekit.Task, jsonOutput bool) {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(task.Raw())
		return
	}

	// Table format
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", task.ID())
	fmt.Fprintf(tw, "Name:\t%s\n", task.Name())
	fmt.Fprintf(tw, "Status:\t%s\n", task.StatusName())
	if creator := task.CreatorName(); creator != "" {
		fmt.Fprintf(tw, "Creator:\t%s\n", creator)
	}
	if tags := task.TagNames(); len(tags) > 0 {
		fmt.Fprintf(tw, "Tags:\t%s\n", strings.Join(tags, ", "))
	}
	if !task.Created().IsZero() {
		fmt.Fprintf(tw, "Created:\t%s\n", task.Created().Format("2006-01-02 15:04:05"))
	}
	if !task.Updated().IsZero() {
		fmt.Fprintf(tw, "Updated:\t%s\n", task.Updated().Format("2006-01-02 15:04:05"))
	}
	if names := task.FieldNames(); len(names) > 0 {
		fmt.Fprintf(tw, "Fields:\t%s\n", strings.Join(names, ", "))
	}
	tw.Flush()
}

// printTaskList prints a table of tasks
func printTaskList(w io.Writer, set *cuekit.TaskSet, jsonOutput bool) {
	tasks := set.Tasks()

	if jsonOutput {
		raws := make([]*cuekit.RawTask, 0, len(tasks))
		for _, t := range tasks {
			raws = append(raws, t.Raw())
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(raws)
		return
	}

	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tNAME\tSTATUS\tTAGS\n")
	fmt.Fprintf(tw, "--\t----\t------\t----\n")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			t.ID(), truncate(t.Name(), 40), t.StatusName(), strings.Join(t.TagNames(), ","))
	}
	tw.Flush()
}

// printFieldValue prints a typed custom field value
func printFieldValue(w io.Writer, name string, value any, jsonOutput bool) {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(map[string]any{"field": name, "value": value})
		return
	}

	switch v := value.(type) {
	case time.Time:
		fmt.Fprintln(w, v.Format("2006-01-02 15:04:05"))
	case []string:
		fmt.Fprintln(w, strings.Join(v, ", "))
	default:
		fmt.Fprintln(w, v)
	}
}

// printTags prints a tag table
func printTags(w io.Writer, tags []cuekit.Tag, jsonOutput bool) {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(tags)
		return
	}

	if len(tags) == 0 {
		fmt.Fprintln(w, "No tags found")
		return
	}

	for _, tag := range tags {
		fmt.Fprintln(w, tag.Name)
	}
}

// printNames prints a plain list of names
func printNames(w io.Writer, names []string, jsonOutput bool) {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(names)
		return
	}

	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}

// printCapabilities prints the SDK capability description
func printCapabilities(w io.Writer, caps cuekit.Capabilities, jsonOutput bool) {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(caps)
		return
	}

	ops := make([]string, 0, len(caps.Operators))
	for _, op := range caps.Operators {
		ops = append(ops, string(op))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Version:\t%s\n", caps.Version)
	fmt.Fprintf(tw, "Operators:\t%s\n", strings.Join(ops, ", "))
	fmt.Fprintf(tw, "Field types:\t%s\n", strings.Join(caps.FieldTypes, ", "))
	fmt.Fprintf(tw, "Operations:\t%s\n", strings.Join(caps.Operations, ", "))
	tw.Flush()
}

// printError prints an error message
func printError(w io.Writer, err error, jsonOutput bool) {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(map[string]any{
			"error": map[string]any{
				"message": err.Error(),
			},
		})
		return
	}

	fmt.Fprintf(w, "Error: %s\n", err.Error())
}

// printSuccess prints a success message
func printSuccess(w io.Writer, message string, jsonOutput bool) {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(map[string]any{
			"message": message,
		})
		return
	}

	fmt.Fprintln(w, message)
}

// truncate truncates a string to the specified length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cuekit/cuekit/pkg/cuekit"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Inspect and modify single tasks",
}

var taskShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show task details",
	Long:  `Display a task's name, status, tags, and declared custom fields.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withSubtasks, _ := cmd.Flags().GetBool("subtasks")
		cached, _ := cmd.Flags().GetBool("cached")

		task, err := fetchTask(args[0], withSubtasks, cached)
		if err != nil {
			handleError(err)
		}

		printTask(os.Stdout, task, jsonOutput)

		if withSubtasks {
			subs, err := task.Subtasks()
			if err != nil {
				handleError(err)
			}
			if !jsonOutput && len(subs) > 0 {
				fmt.Fprintf(os.Stdout, "\nSubtasks (%d):\n", len(subs))
				subSet := cuekit.NewTaskSet()
				for _, sub := range subs {
					subSet.Add(cuekit.NewTask(sub))
				}
				printTaskList(os.Stdout, subSet, false)
			}
		}
	},
}

var taskNameCmd = &cobra.Command{
	Use:   "name <id>",
	Short: "Print a task's name",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		task, err := fetchTask(args[0], false, false)
		if err != nil {
			handleError(err)
		}
		printSuccess(os.Stdout, task.Name(), jsonOutput)
	},
}

var taskStatusCmd = &cobra.Command{
	Use:   "status <id>",
	Short: "Print a task's status",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		task, err := fetchTask(args[0], false, false)
		if err != nil {
			handleError(err)
		}
		printSuccess(os.Stdout, task.StatusName(), jsonOutput)
	},
}

var taskFieldCmd = &cobra.Command{
	Use:   "field <id> [name]",
	Short: "Read a custom field value",
	Long: `Read a task's custom field by name, decoded per the field's declared
type. Without a field name, lists the task's declared field names.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		task, err := fetchTask(args[0], false, false)
		if err != nil {
			handleError(err)
		}

		if len(args) == 1 {
			printNames(os.Stdout, task.FieldNames(), jsonOutput)
			return
		}

		value, err := task.Field(args[1])
		if err != nil {
			handleError(err)
		}
		printFieldValue(os.Stdout, args[1], value, jsonOutput)
	},
}

var taskSetFieldCmd = &cobra.Command{
	Use:   "set-field <id> <name> <value>",
	Short: "Set a custom field value",
	Long:  `Set a task's custom field by name. The field ID is resolved from the task's declarations.`,
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := getClient()
		if err != nil {
			handleError(err)
		}

		task, err := c.GetTask(context.Background(), args[0])
		if err != nil {
			handleError(err)
		}

		fieldID, err := task.FieldID(args[1])
		if err != nil {
			handleError(err)
		}

		if err := c.SetCustomField(context.Background(), args[0], fieldID, args[2]); err != nil {
			handleError(err)
		}

		printSuccess(os.Stdout, fmt.Sprintf("Field %s set on task %s", args[1], args[0]), jsonOutput)
	},
}

var taskCommentCmd = &cobra.Command{
	Use:   "comment <id> <text>",
	Short: "Post a comment on a task",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		notify, _ := cmd.Flags().GetBool("notify")

		c, err := getClient()
		if err != nil {
			handleError(err)
		}

		if err := c.PostComment(context.Background(), args[0], args[1], notify); err != nil {
			handleError(err)
		}

		printSuccess(os.Stdout, fmt.Sprintf("Comment posted on task %s", args[0]), jsonOutput)
	},
}

var taskSubtasksCmd = &cobra.Command{
	Use:   "subtasks <id>",
	Short: "List a task's subtasks",
	Long: `List a task's subtasks, optionally narrowed with --where filters.
Every filter must match for a subtask to be shown.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exprs, _ := cmd.Flags().GetStringArray("where")

		filters := make([]cuekit.CustomFieldFilter, 0, len(exprs))
		for _, expr := range exprs {
			f, err := parseWhere(expr)
			if err != nil {
				handleError(err)
			}
			filters = append(filters, f)
		}

		task, err := fetchTask(args[0], true, false)
		if err != nil {
			handleError(err)
		}

		subs, err := task.FilteredSubtasks(filters...)
		if err != nil {
			handleError(err)
		}

		subSet := cuekit.NewTaskSet()
		for _, sub := range subs {
			subSet.Add(cuekit.NewTask(sub))
		}
		printTaskList(os.Stdout, subSet, jsonOutput)
	},
}

// fetchTask retrieves a task, consulting the local cache when asked. Cached
// records always carry subtasks when they were stored from a subtask fetch.
func fetchTask(id string, withSubtasks, cached bool) (*cuekit.Task, error) {
	if cached {
		cache, cfg, err := openCache()
		if err != nil {
			return nil, err
		}
		defer cache.Close()

		if raw, err := cache.GetTask(id, cfg.CacheMaxAge); err == nil {
			if !withSubtasks || raw.Subtasks != nil {
				return cuekit.NewTask(*raw), nil
			}
		}

		task, err := fetchTaskRemote(id, withSubtasks)
		if err != nil {
			return nil, err
		}
		if err := cache.PutTask(task.Raw()); err != nil {
			return nil, err
		}
		return task, nil
	}

	return fetchTaskRemote(id, withSubtasks)
}

func fetchTaskRemote(id string, withSubtasks bool) (*cuekit.Task, error) {
	c, err := getClient()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var opts []cuekit.GetTaskOption
	if withSubtasks {
		opts = append(opts, cuekit.WithSubtasks())
	}
	return c.GetTask(ctx, id, opts...)
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskShowCmd)
	taskCmd.AddCommand(taskNameCmd)
	taskCmd.AddCommand(taskStatusCmd)
	taskCmd.AddCommand(taskFieldCmd)
	taskCmd.AddCommand(taskSetFieldCmd)
	taskCmd.AddCommand(taskCommentCmd)
	taskCmd.AddCommand(taskSubtasksCmd)

	taskShowCmd.Flags().Bool("subtasks", false, "Include subtask records")
	taskShowCmd.Flags().Bool("cached", false, "Serve from the local cache when fresh")

	taskCommentCmd.Flags().Bool("notify", false, "Notify all task watchers")

	taskSubtasksCmd.Flags().StringArray("where", nil, `Custom field filter "FIELD OP VALUE" (repeatable)`)
}

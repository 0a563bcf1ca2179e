package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cuekit/cuekit/pkg/cuekit"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List and filter the tasks of a list",
	Long: `List the tasks of a ClickUp list, addressed either by --list ID or by
--path "Space/Folder/List" (use "Space//List" for a folderless list).

Filters compose: --tag and --status OR within their own values, --where
filters AND together, and a task must pass every filter kind given.`,
	Run: func(cmd *cobra.Command, args []string) {
		listID, _ := cmd.Flags().GetString("list")
		path, _ := cmd.Flags().GetString("path")
		tags, _ := cmd.Flags().GetStringSlice("tag")
		statuses, _ := cmd.Flags().GetStringSlice("status")
		exprs, _ := cmd.Flags().GetStringArray("where")
		countOnly, _ := cmd.Flags().GetBool("count")
		withSubtasks, _ := cmd.Flags().GetBool("subtasks")
		includeClosed, _ := cmd.Flags().GetBool("closed")
		cached, _ := cmd.Flags().GetBool("cached")

		filters := make([]cuekit.CustomFieldFilter, 0, len(exprs))
		for _, expr := range exprs {
			f, err := parseWhere(expr)
			if err != nil {
				handleError(err)
			}
			filters = append(filters, f)
		}

		set, err := fetchTasks(listID, path, withSubtasks, includeClosed, cached)
		if err != nil {
			handleError(err)
		}

		if len(tags) > 0 {
			if withSubtasks {
				set = set.FilterByTagWithSubtasks(tags...)
			} else {
				set = set.FilterByTag(tags...)
			}
		}
		if len(statuses) > 0 {
			set = set.FilterByStatuses(statuses...)
		}
		if len(filters) > 0 {
			set, err = set.FilterByCustomFields(filters...)
			if err != nil {
				handleError(err)
			}
		}

		if countOnly {
			printSuccess(os.Stdout, fmt.Sprintf("%d", set.Count()), jsonOutput)
			return
		}
		printTaskList(os.Stdout, set, jsonOutput)
	},
}

// fetchTasks loads a list's tasks by ID or hierarchy path, consulting the
// local cache when asked.
func fetchTasks(listID, path string, withSubtasks, includeClosed, cached bool) (*cuekit.TaskSet, error) {
	if listID == "" && path == "" {
		return nil, fmt.Errorf("either --list or --path is required")
	}

	c, err := getClient()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if listID == "" {
		space, folder, list, err := splitPath(path)
		if err != nil {
			return nil, err
		}
		listID, err = c.ListIDByPath(ctx, space, folder, list)
		if err != nil {
			return nil, err
		}
	}

	var opts []cuekit.ListTasksOption
	if withSubtasks {
		opts = append(opts, cuekit.WithSubtaskRecords())
	}
	if includeClosed {
		opts = append(opts, cuekit.WithClosed())
	}

	if cached {
		cache, cfg, err := openCache()
		if err != nil {
			return nil, err
		}
		defer cache.Close()

		if raws, err := cache.GetList(listID, cfg.CacheMaxAge); err == nil {
			set := cuekit.NewTaskSet()
			for _, raw := range raws {
				set.Add(cuekit.NewTask(raw))
			}
			return set, nil
		}

		set, err := c.ListTasks(ctx, listID, opts...)
		if err != nil {
			return nil, err
		}
		raws := make([]cuekit.RawTask, 0, set.Count())
		for _, t := range set.Tasks() {
			raws = append(raws, *t.Raw())
		}
		if err := cache.PutList(listID, raws); err != nil {
			return nil, err
		}
		return set, nil
	}

	return c.ListTasks(ctx, listID, opts...)
}

// splitPath splits "Space/Folder/List" into its parts. An empty folder part
// addresses a folderless list.
func splitPath(path string) (space, folder, list string, err error) {
	parts := strings.Split(path, "/")
	if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
		return "", "", "", fmt.Errorf(`invalid path %q: want "Space/Folder/List" (empty folder for folderless lists)`, path)
	}
	return parts[0], parts[1], parts[2], nil
}

func init() {
	rootCmd.AddCommand(tasksCmd)

	tasksCmd.Flags().String("list", "", "List ID")
	tasksCmd.Flags().String("path", "", `List path "Space/Folder/List"`)
	tasksCmd.Flags().StringSlice("tag", nil, "Keep tasks carrying any of these tags")
	tasksCmd.Flags().StringSlice("status", nil, "Keep tasks in any of these statuses")
	tasksCmd.Flags().StringArray("where", nil, `Custom field filter "FIELD OP VALUE" (repeatable, all must match)`)
	tasksCmd.Flags().Bool("count", false, "Print only the number of matching tasks")
	tasksCmd.Flags().Bool("subtasks", false, "Include subtask records; with --tag, matching subtasks are listed too")
	tasksCmd.Flags().Bool("closed", false, "Include closed tasks")
	tasksCmd.Flags().Bool("cached", false, "Serve from the local cache when fresh")
}

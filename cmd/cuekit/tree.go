package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cuekit/cuekit/pkg/cuekit"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the workspace hierarchy",
	Long: `Walk the workspace's spaces, folders, and lists and print them as an
indented tree. With --tasks, each list's tasks are printed too.`,
	Run: func(cmd *cobra.Command, args []string) {
		withTasks, _ := cmd.Flags().GetBool("tasks")

		c, err := getClient()
		if err != nil {
			handleError(err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		tree, err := buildTree(ctx, c, withTasks)
		if err != nil {
			handleError(err)
		}

		printTree(os.Stdout, tree, jsonOutput)
	},
}

type treeList struct {
	Name  string   `json:"name"`
	ID    string   `json:"id"`
	Tasks []string `json:"tasks,omitempty"`
}

type treeFolder struct {
	Name  string     `json:"name"`
	Lists []treeList `json:"lists"`
}

type treeSpace struct {
	Name    string       `json:"name"`
	Folders []treeFolder `json:"folders"`
	Lists   []treeList   `json:"lists"` // folderless
}

func buildTree(ctx context.Context, c *cuekit.Client, withTasks bool) ([]treeSpace, error) {
	spaces, err := c.Spaces(ctx)
	if err != nil {
		return nil, err
	}

	var tree []treeSpace
	for _, space := range spaces.All() {
		node := treeSpace{Name: space.Name}

		folders, err := c.Folders(ctx, space.ID)
		if err != nil {
			return nil, err
		}
		for _, folder := range folders.All() {
			fnode := treeFolder{Name: folder.Name}
			lists, err := c.Lists(ctx, folder.ID)
			if err != nil {
				return nil, err
			}
			for _, list := range lists.All() {
				lnode, err := buildListNode(ctx, c, list, withTasks)
				if err != nil {
					return nil, err
				}
				fnode.Lists = append(fnode.Lists, lnode)
			}
			node.Folders = append(node.Folders, fnode)
		}

		folderless, err := c.SpaceLists(ctx, space.ID)
		if err != nil {
			return nil, err
		}
		for _, list := range folderless.All() {
			lnode, err := buildListNode(ctx, c, list, withTasks)
			if err != nil {
				return nil, err
			}
			node.Lists = append(node.Lists, lnode)
		}

		tree = append(tree, node)
	}
	return tree, nil
}

func buildListNode(ctx context.Context, c *cuekit.Client, list cuekit.List, withTasks bool) (treeList, error) {
	node := treeList{Name: list.Name, ID: list.ID}
	if !withTasks {
		return node, nil
	}

	set, err := c.ListTasks(ctx, list.ID)
	if err != nil {
		return treeList{}, err
	}
	for _, t := range set.Tasks() {
		node.Tasks = append(node.Tasks, fmt.Sprintf("%s (%s)", t.Name(), t.ID()))
	}
	return node, nil
}

func printTree(w io.Writer, tree []treeSpace, jsonOutput bool) {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(tree)
		return
	}

	for _, space := range tree {
		fmt.Fprintln(w, space.Name)
		for _, folder := range space.Folders {
			fmt.Fprintf(w, "  %s\n", folder.Name)
			for _, list := range folder.Lists {
				printTreeList(w, list, "    ")
			}
		}
		for _, list := range space.Lists {
			printTreeList(w, list, "  ")
		}
	}
}

func printTreeList(w io.Writer, list treeList, indent string) {
	fmt.Fprintf(w, "%s%s [%s]\n", indent, list.Name, list.ID)
	for _, task := range list.Tasks {
		fmt.Fprintf(w, "%s  %s\n", indent, task)
	}
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().Bool("tasks", false, "Include each list's tasks")
}

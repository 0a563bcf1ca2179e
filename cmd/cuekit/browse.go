package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var spacesCmd = &cobra.Command{
	Use:   "spaces",
	Short: "List the workspace's spaces",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := getClient()
		if err != nil {
			handleError(err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		spaces, err := c.Spaces(ctx)
		if err != nil {
			handleError(err)
		}
		printNames(os.Stdout, spaces.Names(), jsonOutput)
	},
}

var foldersCmd = &cobra.Command{
	Use:   "folders <space>",
	Short: "List a space's folders",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := getClient()
		if err != nil {
			handleError(err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		spaces, err := c.Spaces(ctx)
		if err != nil {
			handleError(err)
		}
		spaceID, err := spaces.ID(args[0])
		if err != nil {
			handleError(err)
		}

		folders, err := c.Folders(ctx, spaceID)
		if err != nil {
			handleError(err)
		}
		printNames(os.Stdout, folders.Names(), jsonOutput)
	},
}

var listsCmd = &cobra.Command{
	Use:   "lists <space> [folder]",
	Short: "List the lists of a folder, or a space's folderless lists",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := getClient()
		if err != nil {
			handleError(err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		spaces, err := c.Spaces(ctx)
		if err != nil {
			handleError(err)
		}
		spaceID, err := spaces.ID(args[0])
		if err != nil {
			handleError(err)
		}

		if len(args) == 1 {
			lists, err := c.SpaceLists(ctx, spaceID)
			if err != nil {
				handleError(err)
			}
			printNames(os.Stdout, lists.Names(), jsonOutput)
			return
		}

		folders, err := c.Folders(ctx, spaceID)
		if err != nil {
			handleError(err)
		}
		folderID, err := folders.ID(args[1])
		if err != nil {
			handleError(err)
		}

		lists, err := c.Lists(ctx, folderID)
		if err != nil {
			handleError(err)
		}
		printNames(os.Stdout, lists.Names(), jsonOutput)
	},
}

var tagsCmd = &cobra.Command{
	Use:   "tags <space>",
	Short: "List a space's tags",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := getClient()
		if err != nil {
			handleError(err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		spaces, err := c.Spaces(ctx)
		if err != nil {
			handleError(err)
		}
		spaceID, err := spaces.ID(args[0])
		if err != nil {
			handleError(err)
		}

		tags, err := c.SpaceTags(ctx, spaceID)
		if err != nil {
			handleError(err)
		}
		printTags(os.Stdout, tags, jsonOutput)
	},
}

var tagCreateCmd = &cobra.Command{
	Use:   "create-tag <space> <name>",
	Short: "Create a tag in a space",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		c, err := getClient()
		if err != nil {
			handleError(err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		spaces, err := c.Spaces(ctx)
		if err != nil {
			handleError(err)
		}
		spaceID, err := spaces.ID(args[0])
		if err != nil {
			handleError(err)
		}

		if err := c.CreateSpaceTag(ctx, spaceID, args[1]); err != nil {
			handleError(err)
		}
		printSuccess(os.Stdout, fmt.Sprintf("Tag %q created in space %s", args[1], args[0]), jsonOutput)
	},
}

func init() {
	rootCmd.AddCommand(spacesCmd)
	rootCmd.AddCommand(foldersCmd)
	rootCmd.AddCommand(listsCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(tagCreateCmd)
}

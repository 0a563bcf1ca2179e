package cuekit

import (
	"context"
	"fmt"
	"net/http"
)

// SpaceIndex holds a team's spaces with a name-to-ID lookup.
type SpaceIndex struct {
	spaces []Space
	byName map[string]string
}

func newSpaceIndex(spaces []Space) *SpaceIndex {
	idx := &SpaceIndex{spaces: spaces, byName: make(map[string]string, len(spaces))}
	for _, s := range spaces {
		if _, ok := idx.byName[s.Name]; !ok {
			idx.byName[s.Name] = s.ID
		}
	}
	return idx
}

// All returns the spaces in API order.
func (i *SpaceIndex) All() []Space { return i.spaces }

// Names returns the space names in API order.
func (i *SpaceIndex) Names() []string {
	names := make([]string, 0, len(i.spaces))
	for _, s := range i.spaces {
		names = append(names, s.Name)
	}
	return names
}

// ID resolves a space name to its ID.
func (i *SpaceIndex) ID(name string) (string, error) {
	if id, ok := i.byName[name]; ok {
		return id, nil
	}
	return "", fmt.Errorf("no space named %q; space names are %v", name, i.Names())
}

// FolderIndex holds a space's folders with a name-to-ID lookup.
type FolderIndex struct {
	folders []Folder
	byName  map[string]string
}

func newFolderIndex(folders []Folder) *FolderIndex {
	idx := &FolderIndex{folders: folders, byName: make(map[string]string, len(folders))}
	for _, f := range folders {
		if _, ok := idx.byName[f.Name]; !ok {
			idx.byName[f.Name] = f.ID
		}
	}
	return idx
}

// All returns the folders in API order.
func (i *FolderIndex) All() []Folder { return i.folders }

// Names returns the folder names in API order.
func (i *FolderIndex) Names() []string {
	names := make([]string, 0, len(i.folders))
	for _, f := range i.folders {
		names = append(names, f.Name)
	}
	return names
}

// ID resolves a folder name to its ID.
func (i *FolderIndex) ID(name string) (string, error) {
	if id, ok := i.byName[name]; ok {
		return id, nil
	}
	return "", fmt.Errorf("no folder named %q; folder names are %v", name, i.Names())
}

// ListIndex holds a folder's (or space's folderless) lists with a name-to-ID
// lookup.
type ListIndex struct {
	lists  []List
	byName map[string]string
}

func newListIndex(lists []List) *ListIndex {
	idx := &ListIndex{lists: lists, byName: make(map[string]string, len(lists))}
	for _, l := range lists {
		if _, ok := idx.byName[l.Name]; !ok {
			idx.byName[l.Name] = l.ID
		}
	}
	return idx
}

// All returns the lists in API order.
func (i *ListIndex) All() []List { return i.lists }

// Names returns the list names in API order.
func (i *ListIndex) Names() []string {
	names := make([]string, 0, len(i.lists))
	for _, l := range i.lists {
		names = append(names, l.Name)
	}
	return names
}

// ID resolves a list name to its ID.
func (i *ListIndex) ID(name string) (string, error) {
	if id, ok := i.byName[name]; ok {
		return id, nil
	}
	return "", fmt.Errorf("no list named %q; list names are %v", name, i.Names())
}

// Spaces returns the configured team's spaces.
func (c *Client) Spaces(ctx context.Context) (*SpaceIndex, error) {
	teamID, err := c.teamScopedID()
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodGet, "/team/"+teamID+"/space?archived=false", nil)
	if err != nil {
		return nil, err
	}

	var resp spacesResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("list spaces failed: %w", err)
	}

	return newSpaceIndex(resp.Spaces), nil
}

// Folders returns a space's folders.
func (c *Client) Folders(ctx context.Context, spaceID string) (*FolderIndex, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/space/"+spaceID+"/folder?archived=false", nil)
	if err != nil {
		return nil, err
	}

	var resp foldersResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("list folders for space %s failed: %w", spaceID, err)
	}

	return newFolderIndex(resp.Folders), nil
}

// Lists returns a folder's lists.
func (c *Client) Lists(ctx context.Context, folderID string) (*ListIndex, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/folder/"+folderID+"/list?archived=false", nil)
	if err != nil {
		return nil, err
	}

	var resp listsResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("list lists for folder %s failed: %w", folderID, err)
	}

	return newListIndex(resp.Lists), nil
}

// SpaceLists returns a space's folderless lists.
func (c *Client) SpaceLists(ctx context.Context, spaceID string) (*ListIndex, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/space/"+spaceID+"/list?archived=false", nil)
	if err != nil {
		return nil, err
	}

	var resp listsResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("list folderless lists for space %s failed: %w", spaceID, err)
	}

	return newListIndex(resp.Lists), nil
}

// ListIDByPath resolves a list by space, folder, and list name. Pass an empty
// folder name for a folderless list.
func (c *Client) ListIDByPath(ctx context.Context, spaceName, folderName, listName string) (string, error) {
	spaces, err := c.Spaces(ctx)
	if err != nil {
		return "", err
	}
	spaceID, err := spaces.ID(spaceName)
	if err != nil {
		return "", err
	}

	var lists *ListIndex
	if folderName == "" {
		lists, err = c.SpaceLists(ctx, spaceID)
	} else {
		var folders *FolderIndex
		folders, err = c.Folders(ctx, spaceID)
		if err != nil {
			return "", err
		}
		var folderID string
		folderID, err = folders.ID(folderName)
		if err != nil {
			return "", err
		}
		lists, err = c.Lists(ctx, folderID)
	}
	if err != nil {
		return "", err
	}

	return lists.ID(listName)
}

// ListTasksByPath fetches the tasks of a list addressed by space, folder, and
// list name. Pass an empty folder name for a folderless list.
func (c *Client) ListTasksByPath(ctx context.Context, spaceName, folderName, listName string, opts ...ListTasksOption) (*TaskSet, error) {
	listID, err := c.ListIDByPath(ctx, spaceName, folderName, listName)
	if err != nil {
		return nil, err
	}
	return c.ListTasks(ctx, listID, opts...)
}

// SpaceTags returns a space's tags.
func (c *Client) SpaceTags(ctx context.Context, spaceID string) ([]Tag, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/space/"+spaceID+"/tag", nil)
	if err != nil {
		return nil, err
	}

	var resp tagsResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("list tags for space %s failed: %w", spaceID, err)
	}

	return resp.Tags, nil
}

// CreateSpaceTag creates a tag in a space.
func (c *Client) CreateSpaceTag(ctx context.Context, spaceID, name string) error {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/space/"+spaceID+"/tag", createTagRequest{Tag: Tag{Name: name}})
	if err != nil {
		return err
	}

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("create tag %q in space %s failed: %w", name, spaceID, err)
	}

	return nil
}

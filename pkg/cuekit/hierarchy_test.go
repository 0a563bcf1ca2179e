package cuekit

import (
	"context"
	"net/http"
	"strings"
	"testing"
)

// hierarchyHandler serves a fixed team/space/folder/list tree.
func hierarchyHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/team/9000/space":
			writeJSON(t, w, spacesResponse{Spaces: []Space{
				{ID: "sp1", Name: "Production"},
				{ID: "sp2", Name: "Archive"},
			}})
		case "/space/sp1/folder":
			writeJSON(t, w, foldersResponse{Folders: []Folder{
				{ID: "fo1", Name: "Episodes"},
			}})
		case "/space/sp1/list":
			writeJSON(t, w, listsResponse{Lists: []List{
				{ID: "li9", Name: "Inbox"},
			}})
		case "/folder/fo1/list":
			writeJSON(t, w, listsResponse{Lists: []List{
				{ID: "li1", Name: "Season 1"},
				{ID: "li2", Name: "Season 2"},
			}})
		case "/list/li2/task":
			writeJSON(t, w, tasksResponse{
				Tasks:    []RawTask{{ID: "t1"}, {ID: "t2"}},
				LastPage: boolPtr(true),
			})
		default:
			t.Errorf("unexpected request path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}
}

func TestSpaces(t *testing.T) {
	client := newTestClient(t, hierarchyHandler(t), WithTeamID("9000"))

	spaces, err := client.Spaces(context.Background())
	if err != nil {
		t.Fatalf("Spaces failed: %v", err)
	}

	names := spaces.Names()
	if len(names) != 2 || names[0] != "Production" || names[1] != "Archive" {
		t.Errorf("Names = %v", names)
	}

	id, err := spaces.ID("Production")
	if err != nil || id != "sp1" {
		t.Errorf("ID(Production) = %q, %v", id, err)
	}

	_, err = spaces.ID("Staging")
	if err == nil {
		t.Fatal("expected error for unknown space, got nil")
	}
	// The error lists the available names so a caller can correct a typo.
	if !strings.Contains(err.Error(), "Production") || !strings.Contains(err.Error(), "Archive") {
		t.Errorf("error does not list available names: %v", err)
	}
}

func TestSpacesRequiresTeamID(t *testing.T) {
	client := newTestClient(t, hierarchyHandler(t))

	_, err := client.Spaces(context.Background())
	if err == nil || !strings.Contains(err.Error(), "team ID") {
		t.Errorf("expected team ID error, got %v", err)
	}
}

func TestListIDByPath(t *testing.T) {
	client := newTestClient(t, hierarchyHandler(t), WithTeamID("9000"))

	t.Run("through a folder", func(t *testing.T) {
		id, err := client.ListIDByPath(context.Background(), "Production", "Episodes", "Season 2")
		if err != nil {
			t.Fatalf("ListIDByPath failed: %v", err)
		}
		if id != "li2" {
			t.Errorf("id = %q, want li2", id)
		}
	})

	t.Run("folderless", func(t *testing.T) {
		id, err := client.ListIDByPath(context.Background(), "Production", "", "Inbox")
		if err != nil {
			t.Fatalf("ListIDByPath failed: %v", err)
		}
		if id != "li9" {
			t.Errorf("id = %q, want li9", id)
		}
	})

	t.Run("unknown folder", func(t *testing.T) {
		_, err := client.ListIDByPath(context.Background(), "Production", "Nope", "Season 2")
		if err == nil || !strings.Contains(err.Error(), "no folder named") {
			t.Errorf("expected folder lookup error, got %v", err)
		}
	})

	t.Run("unknown list", func(t *testing.T) {
		_, err := client.ListIDByPath(context.Background(), "Production", "Episodes", "Season 9")
		if err == nil || !strings.Contains(err.Error(), "no list named") {
			t.Errorf("expected list lookup error, got %v", err)
		}
	})
}

func TestListTasksByPath(t *testing.T) {
	client := newTestClient(t, hierarchyHandler(t), WithTeamID("9000"))

	set, err := client.ListTasksByPath(context.Background(), "Production", "Episodes", "Season 2")
	if err != nil {
		t.Fatalf("ListTasksByPath failed: %v", err)
	}
	if set.Count() != 2 {
		t.Errorf("Count = %d, want 2", set.Count())
	}
}

func TestSpaceTags(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/space/sp1/tag":
			writeJSON(t, w, tagsResponse{Tags: []Tag{{Name: "urgent"}, {Name: "bug"}}})
		case r.Method == http.MethodPost && r.URL.Path == "/space/sp1/tag":
			w.Write([]byte("{}"))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	tags, err := client.SpaceTags(context.Background(), "sp1")
	if err != nil {
		t.Fatalf("SpaceTags failed: %v", err)
	}
	if len(tags) != 2 || tags[0].Name != "urgent" {
		t.Errorf("tags = %v", tags)
	}

	if err := client.CreateSpaceTag(context.Background(), "sp1", "new-tag"); err != nil {
		t.Fatalf("CreateSpaceTag failed: %v", err)
	}
}

func TestGetCapabilities(t *testing.T) {
	caps := GetCapabilities()

	if caps.Version != Version {
		t.Errorf("Version = %q", caps.Version)
	}
	if len(caps.Operators) != 12 {
		t.Errorf("expected 12 operators, got %d", len(caps.Operators))
	}

	ops := make(map[string]bool, len(caps.Operations))
	for _, op := range caps.Operations {
		ops[op] = true
	}
	for _, want := range []string{"GetTask", "FilterByCustomFields", "WithSubtasks"} {
		if !ops[want] {
			t.Errorf("operations missing %s", want)
		}
	}
}

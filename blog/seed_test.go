package blog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jacentio/quill/blog"
)

const seedYAML = `
users:
  - id: "1"
    name: Andrew
    email: andrew@example.com
    age: 27
  - name: Sarah
    email: sarah@example.com
posts:
  - id: p1
    title: First post test
    body: ""
    published: true
    author: "1"
comments:
  - id: c1
    text: Nice
    author: "1"
    post: p1
`

func TestLoadSeedFromReader(t *testing.T) {
	seed, err := blog.LoadSeedFromReader(strings.NewReader(seedYAML))
	if err != nil {
		t.Fatalf("LoadSeedFromReader: %v", err)
	}

	if len(seed.Users) != 2 || len(seed.Posts) != 1 || len(seed.Comments) != 1 {
		t.Fatalf("unexpected seed sizes: %d users, %d posts, %d comments",
			len(seed.Users), len(seed.Posts), len(seed.Comments))
	}
	if seed.Users[0].Age == nil || *seed.Users[0].Age != 27 {
		t.Errorf("expected age 27, got %v", seed.Users[0].Age)
	}
	if seed.Users[1].ID != "" || seed.Users[1].Age != nil {
		t.Errorf("expected second user without id or age, got %+v", seed.Users[1])
	}
	if !seed.Posts[0].Published || seed.Posts[0].Author != "1" {
		t.Errorf("unexpected post %+v", seed.Posts[0])
	}
}

func TestLoadSeedFromReader_Empty(t *testing.T) {
	seed, err := blog.LoadSeedFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadSeedFromReader: %v", err)
	}
	if len(seed.Users)+len(seed.Posts)+len(seed.Comments) != 0 {
		t.Errorf("expected empty seed, got %+v", seed)
	}
}

func TestLoadSeedFromReader_UnknownField(t *testing.T) {
	_, err := blog.LoadSeedFromReader(strings.NewReader("users:\n  - id: \"1\"\n    nickname: andy\n"))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(seedYAML), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	seed, err := blog.LoadSeed(path)
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	if len(seed.Users) != 2 {
		t.Errorf("expected 2 users, got %d", len(seed.Users))
	}
}

func TestLoadSeed_MissingFile(t *testing.T) {
	_, err := blog.LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestImport(t *testing.T) {
	g := newTestGraph(t)
	ctx := context.Background()

	seed, err := blog.LoadSeedFromReader(strings.NewReader(seedYAML))
	if err != nil {
		t.Fatalf("LoadSeedFromReader: %v", err)
	}

	res, err := g.Import(ctx, seed)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res != (blog.ImportResult{Users: 2, Posts: 1, Comments: 1}) || res.Total() != 4 {
		t.Errorf("unexpected result %+v", res)
	}

	// The user without an id got one from the generator.
	users := g.ListUsers(ctx, "sarah")
	if len(users) != 1 || users[0].ID == "" {
		t.Errorf("expected generated id for Sarah, got %+v", users)
	}
}

func TestImport_StopsAtFirstFailure(t *testing.T) {
	tests := []struct {
		name    string
		seed    *blog.Seed
		want    blog.ImportResult
		wantErr error
	}{
		{
			name: "duplicate email",
			seed: &blog.Seed{Users: []blog.User{
				{ID: "1", Name: "A", Email: "a@x"},
				{ID: "2", Name: "B", Email: "a@x"},
				{ID: "3", Name: "C", Email: "c@x"},
			}},
			want:    blog.ImportResult{Users: 1},
			wantErr: blog.ErrDuplicateEmail,
		},
		{
			name: "post by missing author",
			seed: &blog.Seed{
				Users: []blog.User{{ID: "1", Name: "A", Email: "a@x"}},
				Posts: []blog.Post{{ID: "p1", Title: "T", Author: "2"}},
			},
			want:    blog.ImportResult{Users: 1},
			wantErr: blog.ErrAuthorNotFound,
		},
		{
			name: "comment on draft",
			seed: &blog.Seed{
				Users:    []blog.User{{ID: "1", Name: "A", Email: "a@x"}},
				Posts:    []blog.Post{{ID: "p1", Title: "T", Published: false, Author: "1"}},
				Comments: []blog.Comment{{ID: "c1", Text: "x", Author: "1", Post: "p1"}},
			},
			want:    blog.ImportResult{Users: 1, Posts: 1},
			wantErr: blog.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGraph(t)

			res, err := g.Import(context.Background(), tt.seed)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if res != tt.want {
				t.Errorf("expected %+v created, got %+v", tt.want, res)
			}
		})
	}
}

func TestImport_NilSeed(t *testing.T) {
	g := newTestGraph(t)
	if _, err := g.Import(context.Background(), nil); err == nil {
		t.Error("expected error for nil seed")
	}
}

package blog_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/jacentio/quill/blog"
)

func TestResolver_Relations(t *testing.T) {
	g := newTestGraph(t)
	ctx := context.Background()

	_, err := g.Import(ctx, &blog.Seed{
		Users: []blog.User{
			{ID: "1", Name: "A", Email: "a@x"},
			{ID: "2", Name: "B", Email: "b@x"},
		},
		Posts: []blog.Post{
			{ID: "p1", Title: "One", Published: true, Author: "1"},
			{ID: "p2", Title: "Two", Published: true, Author: "2"},
			{ID: "p3", Title: "Three", Published: false, Author: "1"},
		},
		Comments: []blog.Comment{
			{ID: "c1", Text: "x", Author: "2", Post: "p1"},
			{ID: "c2", Text: "y", Author: "1", Post: "p2"},
			{ID: "c3", Text: "z", Author: "2", Post: "p1"},
		},
	})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}

	err = g.View(ctx, func(v *blog.View) error {
		u1, _ := v.User("1")
		u2, _ := v.User("2")
		p1, _ := v.Post("p1")
		p3, _ := v.Post("p3")

		if got := postIDs(v.UserPosts(u1)); !slices.Equal(got, []string{"p1", "p3"}) {
			t.Errorf("UserPosts(1) = %v", got)
		}
		if got := commentIDs(v.UserComments(u2)); !slices.Equal(got, []string{"c1", "c3"}) {
			t.Errorf("UserComments(2) = %v", got)
		}
		if got := commentIDs(v.PostComments(p1)); !slices.Equal(got, []string{"c1", "c3"}) {
			t.Errorf("PostComments(p1) = %v", got)
		}
		if got := v.PostComments(p3); got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil PostComments(p3), got %#v", got)
		}

		c2, _ := v.Comment("c2")
		author, err := v.CommentAuthor(c2)
		if err != nil || author.ID != "1" {
			t.Errorf("CommentAuthor(c2) = %+v, %v", author, err)
		}
		post, err := v.CommentPost(c2)
		if err != nil || post.ID != "p2" {
			t.Errorf("CommentPost(c2) = %+v, %v", post, err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
}

func TestResolver_DanglingReference(t *testing.T) {
	g := newTestGraph(t)

	// Insert bypasses foreign key checks, which is the only way to build a
	// dangling reference.
	orphan := blog.Post{ID: "p1", Title: "Orphan", Published: true, Author: "ghost"}
	if err := g.Store().Insert(orphan); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	stray := blog.Comment{ID: "c1", Text: "x", Author: "ghost", Post: "gone"}
	if err := g.Store().Insert(stray); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	err := g.View(context.Background(), func(v *blog.View) error {
		if _, err := v.PostAuthor(orphan); !errors.Is(err, blog.ErrDanglingReference) {
			t.Errorf("PostAuthor: expected ErrDanglingReference, got %v", err)
		}
		if _, err := v.CommentAuthor(stray); !errors.Is(err, blog.ErrDanglingReference) {
			t.Errorf("CommentAuthor: expected ErrDanglingReference, got %v", err)
		}
		if _, err := v.CommentPost(stray); !errors.Is(err, blog.ErrDanglingReference) {
			t.Errorf("CommentPost: expected ErrDanglingReference, got %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if got := blog.Kind(fmt.Errorf("wrapped: %w", blog.ErrDanglingReference)); got != blog.KindDanglingReference {
		t.Errorf("Kind = %q", got)
	}
}

func TestNewResolver_OverStore(t *testing.T) {
	g := newTestGraph(t)
	seedGraph(t, g)

	res := blog.NewResolver(g.Store())
	u, err := res.PostAuthor(blog.Post{ID: "p1", Author: "1"})
	if err != nil || u.Email != "a@x" {
		t.Errorf("PostAuthor = %+v, %v", u, err)
	}
}

func TestNewRegistry_Relationships(t *testing.T) {
	r := blog.NewRegistry()

	if got := r.Types(); !slices.Equal(got, []string{blog.TypeUser, blog.TypePost, blog.TypeComment}) {
		t.Errorf("Types() = %v", got)
	}
	if got := len(r.ChildrenOf(blog.TypeUser)); got != 2 {
		t.Errorf("expected user to own 2 relationships, got %d", got)
	}
	if got := len(r.ChildrenOf(blog.TypePost)); got != 1 {
		t.Errorf("expected post to own 1 relationship, got %d", got)
	}
	if got := len(r.ChildrenOf(blog.TypeComment)); got != 0 {
		t.Errorf("expected comment to own no relationships, got %d", got)
	}
	if got := r.Depth(); got != 2 {
		t.Errorf("expected depth 2, got %d", got)
	}
}

package store_test

import (
	"slices"
	"testing"

	"github.com/jacentio/quill/store"
)

func TestNewRegistry(t *testing.T) {
	r := store.NewRegistry()
	if r == nil {
		t.Fatal("expected non-nil Registry")
	}
}

func TestRegistry_Register(t *testing.T) {
	r := store.NewRegistry()

	r.Register(store.Relationship{
		ParentType:    "user",
		ChildType:     "post",
		ParentKeyAttr: "author",
	})

	rels := r.ChildrenOf("user")
	if len(rels) != 1 {
		t.Fatalf("expected 1 relationship, got %d", len(rels))
	}
	if rels[0].ChildType != "post" {
		t.Errorf("expected ChildType 'post', got %q", rels[0].ChildType)
	}
}

func TestRegistry_ChildrenOf(t *testing.T) {
	r := store.NewRegistry()
	r.Register(store.Relationship{ParentType: "user", ChildType: "post", ParentKeyAttr: "author"})
	r.Register(store.Relationship{ParentType: "post", ChildType: "comment", ParentKeyAttr: "post"})

	userChildren := r.ChildrenOf("user")
	if len(userChildren) != 1 || userChildren[0].ChildType != "post" {
		t.Errorf("expected [post] for user, got %+v", userChildren)
	}

	postChildren := r.ChildrenOf("post")
	if len(postChildren) != 1 || postChildren[0].ChildType != "comment" {
		t.Errorf("expected [comment] for post, got %+v", postChildren)
	}

	if children := r.ChildrenOf("comment"); len(children) != 0 {
		t.Errorf("expected 0 children for comment, got %d", len(children))
	}
}

func TestRegistry_ChildrenOf_RegistrationOrder(t *testing.T) {
	r := store.NewRegistry()
	r.Register(store.Relationship{ParentType: "user", ChildType: "post", ParentKeyAttr: "author"})
	r.Register(store.Relationship{ParentType: "post", ChildType: "comment", ParentKeyAttr: "post"})
	r.Register(store.Relationship{ParentType: "user", ChildType: "comment", ParentKeyAttr: "author"})

	children := r.ChildrenOf("user")
	if len(children) != 2 {
		t.Fatalf("expected 2 children for user, got %d", len(children))
	}
	if children[0].ChildType != "post" || children[1].ChildType != "comment" {
		t.Errorf("expected [post comment], got [%s %s]", children[0].ChildType, children[1].ChildType)
	}
}

func TestRegistry_Empty(t *testing.T) {
	r := store.NewRegistry()

	if d := r.Depth(); d != 0 {
		t.Errorf("expected depth 0, got %d", d)
	}
	if types := r.Types(); len(types) != 0 {
		t.Errorf("expected no types, got %v", types)
	}
	// nil slice is acceptable - len(nil) == 0 and range works on nil slices
	if children := r.ChildrenOf("nonexistent"); len(children) != 0 {
		t.Errorf("expected 0 children for nonexistent parent, got %d", len(children))
	}
}

func TestRegistry_Types(t *testing.T) {
	r := store.NewRegistry()
	r.Register(store.Relationship{ParentType: "user", ChildType: "post", ParentKeyAttr: "author"})
	r.Register(store.Relationship{ParentType: "post", ChildType: "comment", ParentKeyAttr: "post"})
	r.Register(store.Relationship{ParentType: "user", ChildType: "comment", ParentKeyAttr: "author"})

	if got := r.Types(); !slices.Equal(got, []string{"user", "post", "comment"}) {
		t.Errorf("expected [user post comment], got %v", got)
	}
}

func TestRegistry_SelfReference(t *testing.T) {
	r := store.NewRegistry()
	r.Register(store.Relationship{ParentType: "comment", ChildType: "comment", ParentKeyAttr: "reply_to"})

	if got := r.Types(); !slices.Equal(got, []string{"comment"}) {
		t.Errorf("expected [comment], got %v", got)
	}
	if children := r.ChildrenOf("comment"); len(children) != 1 {
		t.Errorf("expected comment to own 1 relationship, got %d", len(children))
	}
	if d := r.Depth(); d != 1 {
		t.Errorf("expected depth 1, got %d", d)
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := store.NewRegistry()
	rel := store.Relationship{ParentType: "user", ChildType: "post", ParentKeyAttr: "author"}
	r.Register(rel)
	r.Register(rel)

	if n := len(r.ChildrenOf("user")); n != 1 {
		t.Errorf("expected duplicate registration to be ignored, got %d relationships", n)
	}
}

func TestRegistry_Depth(t *testing.T) {
	tests := []struct {
		name string
		rels []store.Relationship
		want int
	}{
		{"single level", []store.Relationship{
			{ParentType: "user", ChildType: "post", ParentKeyAttr: "author"},
		}, 1},
		{"chain", []store.Relationship{
			{ParentType: "user", ChildType: "post", ParentKeyAttr: "author"},
			{ParentType: "post", ChildType: "comment", ParentKeyAttr: "post"},
			{ParentType: "user", ChildType: "comment", ParentKeyAttr: "author"},
		}, 2},
		{"registered child first", []store.Relationship{
			{ParentType: "post", ChildType: "comment", ParentKeyAttr: "post"},
			{ParentType: "user", ChildType: "post", ParentKeyAttr: "author"},
		}, 2},
		{"cycle", []store.Relationship{
			{ParentType: "a", ChildType: "b", ParentKeyAttr: "a"},
			{ParentType: "b", ChildType: "a", ParentKeyAttr: "b"},
		}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := store.NewRegistry()
			for _, rel := range tt.rels {
				r.Register(rel)
			}
			if got := r.Depth(); got != tt.want {
				t.Errorf("Depth() = %d, want %d", got, tt.want)
			}
		})
	}
}

package blog

import (
	"strings"

	"github.com/jacentio/quill/store"
)

// View is a consistent read of the graph: the list queries and every
// relation resolved through the embedded Resolver see the same state.
type View struct {
	*Resolver
	r store.Reader
}

func newView(r store.Reader) *View {
	return &View{Resolver: NewResolver(r), r: r}
}

// ListUsers returns all users, or those whose name contains query
// (case-insensitive) when query is non-empty.
func (v *View) ListUsers(query string) []User {
	users := collect[User](v.r.Scan(TypeUser))
	if query == "" {
		return users
	}
	return filter(users, func(u User) bool {
		return containsFold(u.Name, query)
	})
}

// ListPosts returns all posts, or those whose title or body contains query
// (case-insensitive) when query is non-empty.
func (v *View) ListPosts(query string) []Post {
	posts := collect[Post](v.r.Scan(TypePost))
	if query == "" {
		return posts
	}
	return filter(posts, func(p Post) bool {
		return containsFold(p.Title, query) || containsFold(p.Body, query)
	})
}

// ListComments returns all comments.
func (v *View) ListComments() []Comment {
	return collect[Comment](v.r.Scan(TypeComment))
}

// User returns the user with the given ID.
func (v *View) User(id string) (User, error) {
	return get[User](v.r, TypeUser, id)
}

// Post returns the post with the given ID.
func (v *View) Post(id string) (Post, error) {
	return get[Post](v.r, TypePost, id)
}

// Comment returns the comment with the given ID.
func (v *View) Comment(id string) (Comment, error) {
	return get[Comment](v.r, TypeComment, id)
}

func get[T store.Entity](r store.Reader, entityType, id string) (T, error) {
	var zero T
	e, err := r.Get(entityType, id)
	if err != nil {
		return zero, err
	}
	t, ok := e.(T)
	if !ok {
		return zero, ErrNotFound
	}
	return detach(t), nil
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := []T{}
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

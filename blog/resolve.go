package blog

import (
	"errors"
	"fmt"
	"iter"

	"github.com/jacentio/quill/internal/keys"
	"github.com/jacentio/quill/store"
)

// Resolver follows foreign keys between entities. It holds no state besides
// the reader and is meant to be called per requested field.
type Resolver struct {
	r store.Reader
}

// NewResolver returns a Resolver reading from r.
func NewResolver(r store.Reader) *Resolver {
	return &Resolver{r: r}
}

// PostAuthor returns the user who wrote p.
func (res *Resolver) PostAuthor(p Post) (User, error) {
	return lookup[User](res.r, TypeUser, p.Author, p)
}

// CommentAuthor returns the user who wrote c.
func (res *Resolver) CommentAuthor(c Comment) (User, error) {
	return lookup[User](res.r, TypeUser, c.Author, c)
}

// CommentPost returns the post c was written on.
func (res *Resolver) CommentPost(c Comment) (Post, error) {
	return lookup[Post](res.r, TypePost, c.Post, c)
}

// UserPosts returns the posts written by u, in insertion order.
func (res *Resolver) UserPosts(u User) []Post {
	return collect[Post](store.Children(res.r, userPosts, u.ID))
}

// UserComments returns the comments written by u, in insertion order.
func (res *Resolver) UserComments(u User) []Comment {
	return collect[Comment](store.Children(res.r, userComments, u.ID))
}

// PostComments returns the comments on p, in insertion order.
func (res *Resolver) PostComments(p Post) []Comment {
	return collect[Comment](store.Children(res.r, postComments, p.ID))
}

func lookup[T store.Entity](r store.Reader, entityType, id string, from store.Entity) (T, error) {
	var zero T
	e, err := r.Get(entityType, id)
	if errors.Is(err, store.ErrNotFound) {
		return zero, fmt.Errorf("%w: %s -> %s", ErrDanglingReference, store.Ref(from), keys.EntityRef(entityType, id))
	}
	if err != nil {
		return zero, err
	}
	t, ok := e.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s holds %T", ErrDanglingReference, keys.EntityRef(entityType, id), e)
	}
	return detach(t), nil
}

// collect gathers the entities of type T from seq. Entities of other types
// are skipped.
func collect[T store.Entity](seq iter.Seq[store.Entity]) []T {
	out := []T{}
	for e := range seq {
		if t, ok := e.(T); ok {
			out = append(out, detach(t))
		}
	}
	return out
}

// Package blog implements the user/post/comment graph on top of [store].
//
// Mutations go through [Graph], which checks foreign keys before insert and
// cascades deletes: removing a user removes its posts, every comment on those
// posts and every comment the user wrote elsewhere; removing a post removes
// its comments. Reads go through [View], whose [Resolver] follows foreign
// keys only for the relations a caller asks for.
package blog

import (
	"context"
	"log/slog"
	"time"

	"github.com/jacentio/quill/internal/idgen"
	"github.com/jacentio/quill/internal/observe"
	"github.com/jacentio/quill/store"
)

// Graph is the entry point for all operations. It is safe for concurrent
// use; mutations are serialized by the store.
type Graph struct {
	store   *store.Store
	ids     idgen.Generator
	logger  *slog.Logger
	metrics *observe.Metrics
}

// Option configures a Graph.
type Option func(*Graph)

// WithIDGenerator sets the identifier source. Default: random UUIDs.
func WithIDGenerator(g idgen.Generator) Option {
	return func(gr *Graph) { gr.ids = g }
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(gr *Graph) { gr.logger = l }
}

// WithMetrics sets the metric instruments. Default: observe.DefaultMetrics().
func WithMetrics(m *observe.Metrics) Option {
	return func(gr *Graph) { gr.metrics = m }
}

// New creates an empty Graph. A positive config.MaxCascadeDepth below the
// depth of the user/post/comment relationships is raised to that depth so
// that deleting a user always reaches the comments on its posts.
func New(config store.Config, opts ...Option) *Graph {
	registry := NewRegistry()
	if d := registry.Depth(); config.MaxCascadeDepth > 0 && config.MaxCascadeDepth < d {
		config.MaxCascadeDepth = d
	}
	g := &Graph{
		store: store.NewWithRegistry(config, registry),
		ids:   idgen.UUID{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	if g.metrics == nil {
		g.metrics = observe.DefaultMetrics()
	}
	return g
}

// Store returns the underlying store.
func (g *Graph) Store() *store.Store {
	return g.store
}

// View runs fn against a consistent snapshot of the graph. Mutations wait
// until fn returns; fn must not call mutating Graph methods.
func (g *Graph) View(ctx context.Context, fn func(*View) error) error {
	return g.store.View(func(r store.Reader) error {
		return fn(newView(r))
	})
}

// ListUsers returns all users, or those whose name contains query.
func (g *Graph) ListUsers(ctx context.Context, query string) []User {
	var users []User
	_ = g.View(ctx, func(v *View) error {
		users = v.ListUsers(query)
		return nil
	})
	return users
}

// ListPosts returns all posts, or those whose title or body contains query.
func (g *Graph) ListPosts(ctx context.Context, query string) []Post {
	var posts []Post
	_ = g.View(ctx, func(v *View) error {
		posts = v.ListPosts(query)
		return nil
	})
	return posts
}

// ListComments returns all comments.
func (g *Graph) ListComments(ctx context.Context) []Comment {
	var comments []Comment
	_ = g.View(ctx, func(v *View) error {
		comments = v.ListComments()
		return nil
	})
	return comments
}

// CreateUserInput holds the fields of a new user.
type CreateUserInput struct {
	Name  string
	Email string
	Age   *int
}

// CreateUser stores a new user. Fails with ErrDuplicateEmail when another
// user has exactly the same email.
func (g *Graph) CreateUser(ctx context.Context, in CreateUserInput) (User, error) {
	u := User{
		ID:    g.ids.Next(),
		Name:  in.Name,
		Email: in.Email,
		Age:   in.Age,
	}.clone()
	if err := g.create(ctx, "createUser", u); err != nil {
		return User{}, err
	}
	return u.clone(), nil
}

// CreatePostInput holds the fields of a new post.
type CreatePostInput struct {
	Title     string
	Body      string
	Published bool
	Author    string
}

// CreatePost stores a new post. Fails with ErrAuthorNotFound when the
// author does not exist.
func (g *Graph) CreatePost(ctx context.Context, in CreatePostInput) (Post, error) {
	p := Post{
		ID:        g.ids.Next(),
		Title:     in.Title,
		Body:      in.Body,
		Published: in.Published,
		Author:    in.Author,
	}
	if err := g.create(ctx, "createPost", p); err != nil {
		return Post{}, err
	}
	return p, nil
}

// CreateCommentInput holds the fields of a new comment.
type CreateCommentInput struct {
	Text   string
	Author string
	Post   string
}

// CreateComment stores a new comment. Fails with ErrAuthorNotFound when the
// author does not exist, then with ErrPostNotFound when the post does not
// exist or is not published.
func (g *Graph) CreateComment(ctx context.Context, in CreateCommentInput) (Comment, error) {
	c := Comment{
		ID:     g.ids.Next(),
		Text:   in.Text,
		Author: in.Author,
		Post:   in.Post,
	}
	if err := g.create(ctx, "createComment", c); err != nil {
		return Comment{}, err
	}
	return c, nil
}

func (g *Graph) create(ctx context.Context, op string, e store.Entity) (err error) {
	start := time.Now()
	defer func() { g.finish(ctx, op, start, err) }()

	if err = mapCreateError(g.store.Create(e)); err != nil {
		return err
	}
	g.metrics.RecordCreated(ctx, e.EntityType(), 1)
	observe.Logger(ctx, g.logger).Info("entity created", "entityRef", store.Ref(e))
	return nil
}

// DeleteUser removes a user along with its posts, the comments on those
// posts and the comments it wrote on other posts.
func (g *Graph) DeleteUser(ctx context.Context, id string) (User, error) {
	return deleteCascade[User](ctx, g, "deleteUser", TypeUser, id)
}

// DeletePost removes a post and its comments.
func (g *Graph) DeletePost(ctx context.Context, id string) (Post, error) {
	return deleteCascade[Post](ctx, g, "deletePost", TypePost, id)
}

// DeleteComment removes a comment.
func (g *Graph) DeleteComment(ctx context.Context, id string) (Comment, error) {
	return deleteCascade[Comment](ctx, g, "deleteComment", TypeComment, id)
}

func deleteCascade[T store.Entity](ctx context.Context, g *Graph, op, entityType, id string) (_ T, err error) {
	var zero T
	start := time.Now()
	defer func() { g.finish(ctx, op, start, err) }()

	removed, err := g.store.Delete(entityType, id, store.DeleteOptions{Cascade: true})
	if err != nil {
		return zero, err
	}

	removedTypes := make([]string, len(removed))
	for i, e := range removed {
		removedTypes[i] = e.EntityType()
	}
	g.metrics.RecordRemoved(ctx, removedTypes)

	target := removed[len(removed)-1]
	observe.Logger(ctx, g.logger).Info("cascade delete completed",
		"entityRef", store.Ref(target),
		"removed", len(removed),
	)

	t, ok := target.(T)
	if !ok {
		return zero, ErrNotFound
	}
	return detach(t), nil
}

func (g *Graph) finish(ctx context.Context, op string, start time.Time, err error) {
	status := observe.StatusOK
	if err != nil {
		status = Kind(err)
		observe.Logger(ctx, g.logger).Debug("operation rejected", "op", op, "kind", status, "error", err)
	}
	g.metrics.RecordOperation(ctx, op, status, time.Since(start))
}

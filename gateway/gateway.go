// Package gateway serves graph operations by name.
//
// A [Request] names an operation, carries its arguments as JSON and lists
// the relations to include in the result as dotted paths ("author",
// "comments.author"). Only selected relations are resolved. Every request
// yields a [Response]; failures are reported as an [Error] kind and never
// affect later requests.
package gateway

import (
	"context"
	"encoding/json"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jacentio/quill/blog"
	"github.com/jacentio/quill/internal/observe"
)

// Operation names.
const (
	OpUsers         = "users"
	OpPosts         = "posts"
	OpComments      = "comments"
	OpCreateUser    = "createUser"
	OpDeleteUser    = "deleteUser"
	OpCreatePost    = "createPost"
	OpDeletePost    = "deletePost"
	OpCreateComment = "createComment"
	OpDeleteComment = "deleteComment"
)

// resultTypes maps each operation to the entity type it returns.
var resultTypes = map[string]string{
	OpUsers:         blog.TypeUser,
	OpPosts:         blog.TypePost,
	OpComments:      blog.TypeComment,
	OpCreateUser:    blog.TypeUser,
	OpDeleteUser:    blog.TypeUser,
	OpCreatePost:    blog.TypePost,
	OpDeletePost:    blog.TypePost,
	OpCreateComment: blog.TypeComment,
	OpDeleteComment: blog.TypeComment,
}

// Request is one operation invocation.
type Request struct {
	Op     string          `json:"op"`
	Args   json.RawMessage `json:"args,omitempty"`
	Select []string        `json:"select,omitempty"`
}

// Response carries either Data or Error.
type Response struct {
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// Error is a failed request's kind and message.
type Error struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Handler dispatches requests to a [blog.Graph].
type Handler struct {
	graph   *blog.Graph
	logger  *slog.Logger
	metrics *observe.Metrics
}

// Option configures a Handler.
type Option func(*Handler)

// WithMetrics sets the metric instruments. Default: observe.DefaultMetrics().
func WithMetrics(m *observe.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// NewHandler creates a Handler serving g. A nil logger means slog.Default().
func NewHandler(g *blog.Graph, logger *slog.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		graph:  g,
		logger: logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.metrics == nil {
		h.metrics = observe.DefaultMetrics()
	}
	return h
}

// Handle serves one request.
func (h *Handler) Handle(ctx context.Context, req Request) Response {
	ctx, span := observe.StartSpan(ctx, "gateway "+req.Op)
	defer span.End()
	span.SetAttributes(attribute.String("quill.op", req.Op))

	data, err := h.serve(ctx, req)
	if err == nil {
		span.SetStatus(codes.Ok, "")
		h.metrics.RecordRequest(ctx, req.Op, observe.StatusOK)
		return Response{Data: data}
	}

	kind := Kind(err)
	span.SetStatus(codes.Error, kind)
	span.RecordError(err)
	h.metrics.RecordRequest(ctx, req.Op, kind)

	logger := observe.Logger(ctx, h.logger)
	if kind == blog.KindInternal || kind == blog.KindDanglingReference {
		logger.Error("request failed", "op", req.Op, "kind", kind, "error", err)
	} else {
		logger.Debug("request rejected", "op", req.Op, "kind", kind, "error", err)
	}
	return Response{Error: &Error{Kind: kind, Message: err.Error()}}
}

func (h *Handler) serve(ctx context.Context, req Request) (any, error) {
	resultType, ok := resultTypes[req.Op]
	if !ok {
		return nil, unknownOperation(req.Op)
	}
	sel, err := parseSelection(req.Select, resultType)
	if err != nil {
		return nil, err
	}

	switch req.Op {
	case OpUsers:
		var args listArgs
		if err := decodeArgs(req.Args, &args); err != nil {
			return nil, err
		}
		return h.query(ctx, func(v *blog.View) ([]node, error) {
			return renderAll(v, v.ListUsers(args.Query), sel)
		})

	case OpPosts:
		var args listArgs
		if err := decodeArgs(req.Args, &args); err != nil {
			return nil, err
		}
		return h.query(ctx, func(v *blog.View) ([]node, error) {
			return renderAll(v, v.ListPosts(args.Query), sel)
		})

	case OpComments:
		if err := decodeArgs(req.Args, &struct{}{}); err != nil {
			return nil, err
		}
		return h.query(ctx, func(v *blog.View) ([]node, error) {
			return renderAll(v, v.ListComments(), sel)
		})

	case OpCreateUser:
		var args createUserArgs
		if err := decodeArgs(req.Args, &args); err != nil {
			return nil, err
		}
		u, err := h.graph.CreateUser(ctx, args.input())
		if err != nil {
			return nil, err
		}
		return renderOne(ctx, h.graph, u, sel)

	case OpCreatePost:
		var args createPostArgs
		if err := decodeArgs(req.Args, &args); err != nil {
			return nil, err
		}
		p, err := h.graph.CreatePost(ctx, args.input())
		if err != nil {
			return nil, err
		}
		return renderOne(ctx, h.graph, p, sel)

	case OpCreateComment:
		var args createCommentArgs
		if err := decodeArgs(req.Args, &args); err != nil {
			return nil, err
		}
		c, err := h.graph.CreateComment(ctx, args.input())
		if err != nil {
			return nil, err
		}
		return renderOne(ctx, h.graph, c, sel)

	case OpDeleteUser:
		var args deleteArgs
		if err := decodeArgs(req.Args, &args); err != nil {
			return nil, err
		}
		u, err := h.graph.DeleteUser(ctx, *args.ID)
		if err != nil {
			return nil, err
		}
		return renderOne(ctx, h.graph, u, sel)

	case OpDeletePost:
		var args deleteArgs
		if err := decodeArgs(req.Args, &args); err != nil {
			return nil, err
		}
		p, err := h.graph.DeletePost(ctx, *args.ID)
		if err != nil {
			return nil, err
		}
		return renderOne(ctx, h.graph, p, sel)

	default: // OpDeleteComment
		var args deleteArgs
		if err := decodeArgs(req.Args, &args); err != nil {
			return nil, err
		}
		c, err := h.graph.DeleteComment(ctx, *args.ID)
		if err != nil {
			return nil, err
		}
		return renderOne(ctx, h.graph, c, sel)
	}
}

// query runs a list read and renders its selection in one view.
func (h *Handler) query(ctx context.Context, fn func(*blog.View) ([]node, error)) ([]node, error) {
	var nodes []node
	err := h.graph.View(ctx, func(v *blog.View) error {
		var err error
		nodes, err = fn(v)
		return err
	})
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

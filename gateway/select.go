package gateway

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/jacentio/quill/blog"
	"github.com/jacentio/quill/store"
)

// relations lists the selectable relations of each entity type and the
// type each one leads to.
var relations = map[string]map[string]string{
	blog.TypeUser: {
		"posts":    blog.TypePost,
		"comments": blog.TypeComment,
	},
	blog.TypePost: {
		"author":   blog.TypeUser,
		"comments": blog.TypeComment,
	},
	blog.TypeComment: {
		"author": blog.TypeUser,
		"post":   blog.TypePost,
	},
}

// selection is a tree of relation names to resolve.
type selection map[string]selection

// parseSelection builds a selection from dotted paths and checks every
// segment against the relations reachable from entityType.
func parseSelection(paths []string, entityType string) (selection, error) {
	root := selection{}
	for _, path := range paths {
		cur, curType := root, entityType
		for _, field := range strings.Split(path, ".") {
			next, ok := relations[curType][field]
			if !ok {
				return nil, invalidArgument("select %q: %s has no relation %q", path, curType, field)
			}
			sub, ok := cur[field]
			if !ok {
				sub = selection{}
				cur[field] = sub
			}
			cur, curType = sub, next
		}
	}
	return root, nil
}

// node is a rendered entity. Scalars are always present. A selected
// relation replaces the foreign key of the same name, if any.
type node map[string]any

func renderOne(ctx context.Context, g *blog.Graph, e store.Entity, sel selection) (node, error) {
	var n node
	err := g.View(ctx, func(v *blog.View) error {
		var err error
		n, err = render(v, e, sel)
		return err
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

func renderAll[T store.Entity](v *blog.View, items []T, sel selection) ([]node, error) {
	out := make([]node, 0, len(items))
	for _, item := range items {
		n, err := render(v, item, sel)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func render(v *blog.View, e store.Entity, sel selection) (node, error) {
	var n node
	switch e := e.(type) {
	case blog.User:
		n = node{"id": e.ID, "name": e.Name, "email": e.Email, "age": e.Age}
	case blog.Post:
		n = node{"id": e.ID, "title": e.Title, "body": e.Body, "published": e.Published, "author": e.Author}
	case blog.Comment:
		n = node{"id": e.ID, "text": e.Text, "author": e.Author, "post": e.Post}
	default:
		n = node{"id": e.EntityID()}
	}

	// Sorted so that the first dangling reference reported is stable.
	for _, field := range slices.Sorted(maps.Keys(sel)) {
		value, err := resolve(v, e, field, sel[field])
		if err != nil {
			return nil, err
		}
		n[field] = value
	}
	return n, nil
}

func resolve(v *blog.View, e store.Entity, field string, sel selection) (any, error) {
	switch e := e.(type) {
	case blog.User:
		switch field {
		case "posts":
			return renderAll(v, v.UserPosts(e), sel)
		case "comments":
			return renderAll(v, v.UserComments(e), sel)
		}
	case blog.Post:
		switch field {
		case "author":
			u, err := v.PostAuthor(e)
			if err != nil {
				return nil, err
			}
			return render(v, u, sel)
		case "comments":
			return renderAll(v, v.PostComments(e), sel)
		}
	case blog.Comment:
		switch field {
		case "author":
			u, err := v.CommentAuthor(e)
			if err != nil {
				return nil, err
			}
			return render(v, u, sel)
		case "post":
			p, err := v.CommentPost(e)
			if err != nil {
				return nil, err
			}
			return render(v, p, sel)
		}
	}
	return nil, invalidArgument("%s has no relation %q", e.EntityType(), field)
}

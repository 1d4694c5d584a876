package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jacentio/quill/blog"
)

// argsValidate checks decoded arguments. Required fields are pointers so
// that an absent field fails "required" while an empty string passes unless
// the field also carries "min=1".
var argsValidate *validator.Validate

func init() {
	argsValidate = validator.New(validator.WithRequiredStructEnabled())
	argsValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

type listArgs struct {
	Query string `json:"query"`
}

type createUserArgs struct {
	Name  *string `json:"name" validate:"required,min=1"`
	Email *string `json:"email" validate:"required"`
	Age   *int    `json:"age"`
}

func (a createUserArgs) input() blog.CreateUserInput {
	return blog.CreateUserInput{Name: *a.Name, Email: *a.Email, Age: a.Age}
}

type createPostArgs struct {
	Title     *string `json:"title" validate:"required"`
	Body      *string `json:"body" validate:"required"`
	Published *bool   `json:"published" validate:"required"`
	Author    *string `json:"author" validate:"required"`
}

func (a createPostArgs) input() blog.CreatePostInput {
	return blog.CreatePostInput{Title: *a.Title, Body: *a.Body, Published: *a.Published, Author: *a.Author}
}

type createCommentArgs struct {
	Text   *string `json:"text" validate:"required"`
	Author *string `json:"author" validate:"required"`
	Post   *string `json:"post" validate:"required"`
}

func (a createCommentArgs) input() blog.CreateCommentInput {
	return blog.CreateCommentInput{Text: *a.Text, Author: *a.Author, Post: *a.Post}
}

type deleteArgs struct {
	ID *string `json:"id" validate:"required"`
}

// decodeArgs decodes raw into dst, a pointer to an args struct, and
// validates it. Missing args decode as an empty object; anything after the
// object is rejected.
func decodeArgs(raw json.RawMessage, dst any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = []byte("{}")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return invalidArgument("decode args: %v", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return invalidArgument("decode args: unexpected data after the args object")
	}

	if err := argsValidate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = describeField(fe)
			}
			return invalidArgument("%s", strings.Join(msgs, "; "))
		}
		return invalidArgument("validate args: %v", err)
	}
	return nil
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must not be empty"
	default:
		return fe.Field() + " failed " + fe.Tag()
	}
}

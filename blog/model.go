package blog

import "github.com/jacentio/quill/store"

// Entity type names.
const (
	TypeUser    = "user"
	TypePost    = "post"
	TypeComment = "comment"
)

// Foreign key field names.
const (
	fieldAuthor = "author"
	fieldPost   = "post"
	fieldEmail  = "email"
)

var (
	userPosts    = store.Relationship{ParentType: TypeUser, ChildType: TypePost, ParentKeyAttr: fieldAuthor}
	postComments = store.Relationship{ParentType: TypePost, ChildType: TypeComment, ParentKeyAttr: fieldPost}
	userComments = store.Relationship{ParentType: TypeUser, ChildType: TypeComment, ParentKeyAttr: fieldAuthor}
)

// NewRegistry returns the relationships between users, posts and comments.
// A user's posts (with their comments) cascade before the user's remaining
// comments.
func NewRegistry() *store.Registry {
	r := store.NewRegistry()
	r.Register(userPosts)
	r.Register(postComments)
	r.Register(userComments)
	return r
}

// User is an author of posts and comments.
type User struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Email string `yaml:"email" json:"email"`
	Age   *int   `yaml:"age,omitempty" json:"age,omitempty"`
}

func (u User) EntityType() string { return TypeUser }
func (u User) EntityID() string   { return u.ID }

// clone returns u with its own copy of Age.
func (u User) clone() User {
	if u.Age != nil {
		age := *u.Age
		u.Age = &age
	}
	return u
}

// UniqueFields implements [store.UniqueFielder]. Emails compare exactly,
// case included.
func (u User) UniqueFields() map[string]string {
	return map[string]string{fieldEmail: u.Email}
}

// Post is written by a user.
type Post struct {
	ID        string `yaml:"id" json:"id"`
	Title     string `yaml:"title" json:"title"`
	Body      string `yaml:"body" json:"body"`
	Published bool   `yaml:"published" json:"published"`
	Author    string `yaml:"author" json:"author"`
}

func (p Post) EntityType() string { return TypePost }
func (p Post) EntityID() string   { return p.ID }

func (p Post) ParentChecks() []store.ParentCheck {
	return []store.ParentCheck{
		{Field: fieldAuthor, ParentType: TypeUser, ParentID: p.Author},
	}
}

// Comment is written by a user on a post.
type Comment struct {
	ID     string `yaml:"id" json:"id"`
	Text   string `yaml:"text" json:"text"`
	Author string `yaml:"author" json:"author"`
	Post   string `yaml:"post" json:"post"`
}

func (c Comment) EntityType() string { return TypeComment }
func (c Comment) EntityID() string   { return c.ID }

// ParentChecks implements [store.ParentReferrer]. The author is checked
// before the post; only published posts accept comments.
func (c Comment) ParentChecks() []store.ParentCheck {
	return []store.ParentCheck{
		{Field: fieldAuthor, ParentType: TypeUser, ParentID: c.Author},
		{Field: fieldPost, ParentType: TypePost, ParentID: c.Post, Condition: isPublished},
	}
}

// detach returns e without pointers shared with the stored value.
func detach[T store.Entity](e T) T {
	if u, ok := any(e).(User); ok {
		return any(u.clone()).(T)
	}
	return e
}

func isPublished(e store.Entity) bool {
	p, ok := e.(Post)
	return ok && p.Published
}

var (
	_ store.UniqueFielder  = User{}
	_ store.ParentReferrer = Post{}
	_ store.ParentReferrer = Comment{}
)

package blog

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jacentio/quill/store"
)

// Seed is a fixture of entities with explicit IDs.
//
// Example:
//
//	users:
//	  - id: "1"
//	    name: Andrew
//	    email: andrew@example.com
//	posts:
//	  - id: p1
//	    title: First post
//	    body: ""
//	    published: true
//	    author: "1"
//	comments:
//	  - id: c1
//	    text: Nice
//	    author: "1"
//	    post: p1
type Seed struct {
	Users    []User    `yaml:"users"`
	Posts    []Post    `yaml:"posts"`
	Comments []Comment `yaml:"comments"`
}

// LoadSeed reads and parses a seed YAML file from disk.
func LoadSeed(path string) (*Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("blog: open seed file %q: %w", path, err)
	}
	defer f.Close()

	seed, err := LoadSeedFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("blog: parse seed file %q: %w", path, err)
	}
	return seed, nil
}

// LoadSeedFromReader parses seed YAML from r. Unknown keys are rejected.
func LoadSeedFromReader(r io.Reader) (*Seed, error) {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && err != io.EOF {
		return nil, fmt.Errorf("blog: decode seed yaml: %w", err)
	}
	return &seed, nil
}

// ImportResult counts the entities created by Import.
type ImportResult struct {
	Users    int
	Posts    int
	Comments int
}

// Total returns the number of entities created.
func (r ImportResult) Total() int {
	return r.Users + r.Posts + r.Comments
}

// Import creates the seed's users, then posts, then comments, with the same
// checks as the Create methods. Entities without an ID get a generated one.
// The import stops at the first failure; entities created before it remain.
func (g *Graph) Import(ctx context.Context, seed *Seed) (res ImportResult, err error) {
	start := time.Now()
	defer func() { g.finish(ctx, "import", start, err) }()

	if seed == nil {
		return res, fmt.Errorf("blog: seed must not be nil")
	}

	entities := make([]store.Entity, 0, len(seed.Users)+len(seed.Posts)+len(seed.Comments))
	for _, u := range seed.Users {
		if u.ID == "" {
			u.ID = g.ids.Next()
		}
		entities = append(entities, u.clone())
	}
	for _, p := range seed.Posts {
		if p.ID == "" {
			p.ID = g.ids.Next()
		}
		entities = append(entities, p)
	}
	for _, c := range seed.Comments {
		if c.ID == "" {
			c.ID = g.ids.Next()
		}
		entities = append(entities, c)
	}

	n, err := g.store.CreateAll(entities)
	for _, e := range entities[:n] {
		switch e.EntityType() {
		case TypeUser:
			res.Users++
		case TypePost:
			res.Posts++
		case TypeComment:
			res.Comments++
		}
		g.metrics.RecordCreated(ctx, e.EntityType(), 1)
	}
	if err != nil {
		return res, fmt.Errorf("blog: import entity %d: %w", n, mapCreateError(err))
	}

	g.logger.Info("seed imported",
		"users", res.Users,
		"posts", res.Posts,
		"comments", res.Comments,
	)
	return res, nil
}

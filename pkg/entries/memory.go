package entries

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/optimade/optimade-go/pkg/errors"
)

// MemoryCollection serves a fixed set of resources from memory.
type MemoryCollection struct {
	name string
	docs []Resource
	byID map[string]int
}

// NewMemoryCollection creates a collection. Every resource must carry the
// collection's type and a unique id.
func NewMemoryCollection(name string, docs []Resource) (*MemoryCollection, error) {
	c := &MemoryCollection{
		name: name,
		docs: slices.Clone(docs),
		byID: make(map[string]int, len(docs)),
	}
	for i, d := range c.docs {
		if d.Type != name {
			return nil, errors.NewResourceError("load", name, d.ID,
				fmt.Errorf("resource has type %q", d.Type))
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, errors.NewResourceError("load", name, d.ID, fmt.Errorf("duplicate id"))
		}
		c.byID[d.ID] = i
	}
	return c, nil
}

// Name implements Collection.
func (c *MemoryCollection) Name() string { return c.name }

// Count implements Collection.
func (c *MemoryCollection) Count(context.Context) (int, error) {
	return len(c.docs), nil
}

// Find implements Collection. Filter expressions are not supported.
func (c *MemoryCollection) Find(_ context.Context, q Query) (Result, error) {
	if q.Filter != "" {
		return Result{}, fmt.Errorf("%w: filtering %s", errors.ErrNotImplemented, c.name)
	}

	docs := slices.Clone(c.docs)
	if len(q.Sort) > 0 {
		slices.SortStableFunc(docs, func(a, b Resource) int {
			for _, key := range q.Sort {
				if n := compareValues(fieldValue(a, key), fieldValue(b, key)); n != 0 {
					return n
				}
			}
			return 0
		})
	}

	total := len(docs)
	start := min(max(q.Offset, 0), total)
	end := min(start+max(q.Limit, 0), total)

	page := make([]Resource, 0, end-start)
	for _, d := range docs[start:end] {
		page = append(page, Project(d, q.Fields))
	}

	return Result{
		Data:          page,
		Available:     total,
		MoreAvailable: end < total,
	}, nil
}

// Get implements Collection.
func (c *MemoryCollection) Get(_ context.Context, id string) (Resource, error) {
	i, ok := c.byID[id]
	if !ok {
		return Resource{}, errors.NewNotFoundError(c.name, id)
	}
	return c.docs[i], nil
}

// Project keeps only the requested attributes. id and type are always kept.
func Project(d Resource, fields []string) Resource {
	if len(fields) == 0 {
		return d
	}
	out := d
	out.Attributes = make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := d.Attributes[f]; ok {
			out.Attributes[f] = v
		}
	}
	out.Relationships = maps.Clone(d.Relationships)
	return out
}

func fieldValue(d Resource, key string) any {
	switch key {
	case "id":
		return d.ID
	case "type":
		return d.Type
	}
	return d.Attributes[key]
}

// compareValues orders numbers before strings; missing values sort last.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	af, aNum := a.(float64)
	bf, bNum := b.(float64)
	if aNum && bNum {
		return cmp.Compare(af, bf)
	}
	if aNum != bNum {
		if aNum {
			return -1
		}
		return 1
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

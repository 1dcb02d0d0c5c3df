// Package entries holds the resource collections served by the API and the
// registry that maps each resource type to its collection.
package entries

import "context"

// Resource types served by the API.
const (
	TypeLinks        = "links"
	TypeReferences   = "references"
	TypeStructures   = "structures"
	TypeTrajectories = "trajectories"
)

// Types returns every resource type, in registration order.
func Types() []string {
	return []string{TypeLinks, TypeReferences, TypeStructures, TypeTrajectories}
}

// Identifier is a JSON:API resource identifier.
type Identifier struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Relationship is the linkage of one relationship name.
type Relationship struct {
	Data []Identifier `json:"data"`
}

// Resource is a JSON:API resource object.
type Resource struct {
	ID            string                  `json:"id"`
	Type          string                  `json:"type"`
	Attributes    map[string]any          `json:"attributes,omitempty"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
}

// Query is a validated request against one collection.
type Query struct {
	Filter string
	Limit  int
	Offset int
	Sort   []string // attribute names, ascending
	Fields []string // attributes to keep; empty keeps all
}

// Result is one page of a collection.
type Result struct {
	Data          []Resource
	Available     int  // matches before paging
	MoreAvailable bool // entries exist past this page
}

// Collection is the backing store of one resource type.
type Collection interface {
	Name() string
	Count(ctx context.Context) (int, error)
	Find(ctx context.Context, q Query) (Result, error)
	Get(ctx context.Context, id string) (Resource, error)
}

package entries

import (
	"context"
	"fmt"
	"strings"

	"github.com/optimade/optimade-go/pkg/errors"
)

// IncludedResources resolves the relationships named by include across docs
// and returns the related resources, each once, in first-seen order.
// A relationship path that is not a registered resource type is a
// *errors.ValidationError on the include field. Dangling references are skipped.
func IncludedResources(ctx context.Context, reg *Registry, docs []Resource, include []string) ([]Resource, error) {
	var unknown []string
	for _, path := range include {
		if _, ok := reg.Get(path); !ok {
			unknown = append(unknown, path)
		}
	}
	if len(unknown) > 0 {
		return nil, errors.NewValidationError("include", strings.Join(unknown, ","), "relationship",
			fmt.Sprintf("unknown relationship type(s) %s; known types are %s",
				strings.Join(unknown, ", "), strings.Join(reg.Names(), ", ")))
	}

	seen := make(map[Identifier]bool)
	var out []Resource
	for _, path := range include {
		coll := reg.MustGet(path)
		for _, d := range docs {
			for _, ref := range d.Relationships[path].Data {
				if seen[ref] {
					continue
				}
				seen[ref] = true
				res, err := coll.Get(ctx, ref.ID)
				if errors.IsNotFound(err) {
					continue
				}
				if err != nil {
					return nil, err
				}
				out = append(out, res)
			}
		}
	}
	return out, nil
}

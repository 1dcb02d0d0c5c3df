package entries

import (
	"encoding/json"
	"io/fs"

	"github.com/optimade/optimade-go/pkg/errors"
)

// Fixtures holds the resources of each type loaded from a fixture directory.
type Fixtures struct {
	Links        []Resource
	References   []Resource
	Structures   []Resource
	Trajectories []Resource
}

// LoadFixtures reads links.json, references.json, structures.json and
// trajectories.json from fsys. Each file is a JSON array of resource objects.
func LoadFixtures(fsys fs.FS) (*Fixtures, error) {
	f := &Fixtures{}
	targets := []struct {
		name string
		dst  *[]Resource
	}{
		{TypeLinks, &f.Links},
		{TypeReferences, &f.References},
		{TypeStructures, &f.Structures},
		{TypeTrajectories, &f.Trajectories},
	}
	for _, t := range targets {
		data, err := fs.ReadFile(fsys, t.name+".json")
		if err != nil {
			return nil, errors.WrapResource("load", "fixture", t.name, err)
		}
		if err := json.Unmarshal(data, t.dst); err != nil {
			return nil, errors.WrapParse("json", t.name+".json", err)
		}
	}
	return f, nil
}

// Registry builds a registry with one MemoryCollection per resource type.
func (f *Fixtures) Registry() (*Registry, error) {
	reg := NewRegistry()
	sets := []struct {
		name string
		docs []Resource
	}{
		{TypeLinks, f.Links},
		{TypeReferences, f.References},
		{TypeStructures, f.Structures},
		{TypeTrajectories, f.Trajectories},
	}
	for _, s := range sets {
		c, err := NewMemoryCollection(s.name, s.docs)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Package routes provides route sources for the route agent: a fixed
// fixture set and a YAML file loader.
package routes

import (
	"context"
	"fmt"
	"os"

	"github.com/dusk-indust/planit/internal/route"
	"gopkg.in/yaml.v3"
)

// DefaultCandidates returns the built-in three-route fixture.
func DefaultCandidates() []route.Candidate {
	return []route.Candidate{
		{ID: "Route A", Distance: 10, Time: 20},
		{ID: "Route B", Distance: 14, Time: 15},
		{ID: "Route C", Distance: 8, Time: 25},
	}
}

// Static returns the same candidate set for every request.
type Static struct {
	candidates []route.Candidate
}

// NewStatic creates a Static source. With no candidates it serves
// DefaultCandidates.
func NewStatic(cands ...route.Candidate) *Static {
	if len(cands) == 0 {
		cands = DefaultCandidates()
	}
	return &Static{candidates: route.Clone(cands)}
}

// Generate returns a fresh copy of the configured candidates.
func (s *Static) Generate(ctx context.Context, _ route.Request) ([]route.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return route.Clone(s.candidates), nil
}

// fileSchema is the on-disk layout of a routes file.
//
//	routes:
//	  - route: Route A
//	    distance: 10
//	    time: 20
type fileSchema struct {
	Routes []route.Candidate `yaml:"routes"`
}

// File loads candidates from a YAML file on every call.
type File struct {
	path string
}

// NewFile creates a File source reading path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Generate reads and parses the routes file.
func (f *File) Generate(ctx context.Context, _ route.Request) ([]route.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cands, err := Load(f.path)
	if err != nil {
		return nil, err
	}
	if len(cands) == 0 {
		return nil, fmt.Errorf("%s: %w", f.path, route.ErrNoRoutes)
	}
	return cands, nil
}

// Load parses a routes file and validates the generated fields of every
// candidate.
func Load(path string) ([]route.Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routes file: %w", err)
	}
	var doc fileSchema
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse routes file %s: %v", route.ErrValidation, path, err)
	}
	if err := route.ValidateSet(doc.Routes); err != nil {
		return nil, fmt.Errorf("routes file %s: %w", path, err)
	}
	return doc.Routes, nil
}

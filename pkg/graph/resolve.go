package graph

import "github.com/graphtools/graphmark/pkg/errors"

// Resolve binds every edge's endpoint names to node ids using the graph's
// name-to-id map. An endpoint whose name was never defined produces an
// UNRESOLVED_ENDPOINT error and keeps an empty id; the renderer later skips
// edges with an empty endpoint. Resolution is idempotent: an already-bound
// endpoint is left untouched.
func (g *Graph) Resolve() []error {
	var errs []error

	for _, e := range g.edges {
		if e.FromID == "" {
			if id, ok := g.nameToID[e.FromName]; ok {
				e.FromID = id
			} else {
				errs = append(errs, errors.New(errors.ErrCodeUnresolvedEndpoint,
					"edge \"fromnodename\" name never defined as a node: %q", e.FromName))
			}
		}

		if e.ToID == "" {
			if id, ok := g.nameToID[e.ToName]; ok {
				e.ToID = id
			} else {
				errs = append(errs, errors.New(errors.ErrCodeUnresolvedEndpoint,
					"edge \"tonodename\" name never defined as a node: %q", e.ToName))
			}
		}
	}

	return errs
}

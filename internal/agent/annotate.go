package agent

import (
	"context"

	"github.com/dusk-indust/planit/internal/route"
	"golang.org/x/sync/errgroup"
)

// annotateFunc derives an annotated copy of a single candidate.
type annotateFunc func(ctx context.Context, c route.Candidate) (route.Candidate, error)

// annotateEach applies fn to every candidate and returns the results in
// input order. When parallel is set the candidates are processed
// concurrently and the first failure cancels the rest. The input slice is
// never written to.
func annotateEach(ctx context.Context, cands []route.Candidate, parallel bool, fn annotateFunc) ([]route.Candidate, error) {
	out := make([]route.Candidate, len(cands))

	if !parallel {
		for i, c := range cands {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			annotated, err := fn(ctx, c)
			if err != nil {
				return nil, err
			}
			out[i] = annotated
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range cands {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			annotated, err := fn(gctx, c)
			if err != nil {
				return err
			}
			out[i] = annotated
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package psychro

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Map applies fn to every element of in on up to GOMAXPROCS goroutines and
// returns the results in input order. The first error or the cancellation
// of ctx abandons the elements not yet started.
func Map[In, Out any](ctx context.Context, in []In, fn func(In) (Out, error)) ([]Out, error) {
	out := make([]Out, len(in))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, v := range in {
		if gctx.Err() != nil {
			break
		}
		i, v := i, v
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := fn(v)
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Package lifecycle exposes batch progress to github.com/aretw0/lifecycle
// consumers.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/ciphergen/pkg/core"
)

type progressSource struct {
	events <-chan core.Progress
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits batch progress events.
// The source ends when events is closed or the Start context is done.
func NewSource(events <-chan core.Progress) lifecycle.Source {
	return &progressSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *progressSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *progressSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case p, ok := <-s.events:
				if !ok {
					return nil
				}
				// core.Progress implements lifecycle.Event (has String())
				select {
				case s.out <- p:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}

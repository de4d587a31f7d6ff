// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import "context"

type emitterKey struct{}

// WithEmitter returns a context carrying emit so that retry/backoff
// decisions made deep inside the client surface as progress lines for the
// job that triggered them. Aggregate installs its own emitter; callers
// invoking the client directly may install one too.
func WithEmitter(ctx context.Context, emit Emitter) context.Context {
	return context.WithValue(ctx, emitterKey{}, emit)
}

// emitterFrom extracts the emitter installed by WithEmitter, or nil.
func emitterFrom(ctx context.Context) Emitter {
	emit, _ := ctx.Value(emitterKey{}).(Emitter)
	return emit
}

package app

import "context"

type ctxKey struct{}

// WithApp returns a copy of ctx carrying the App
func WithApp(ctx context.Context, a *App) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// FromContext returns the App stored by WithApp. It fails with
// ErrNotInitialized when the context carries none, which happens for
// commands that ran without the root pre-run hook.
func FromContext(ctx context.Context) (*App, error) {
	a, ok := ctx.Value(ctxKey{}).(*App)
	if !ok || a == nil {
		return nil, ErrNotInitialized
	}
	return a, nil
}

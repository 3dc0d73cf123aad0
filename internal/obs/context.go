package obs

import "context"

type routeKey struct{}

// WithRoutePattern stores the matched chi route pattern on the context so
// downstream middleware can label metrics and spans with it.
func WithRoutePattern(ctx context.Context, pattern string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, routeKey{}, pattern)
}

// RoutePatternFromContext returns the stored route pattern, or "".
func RoutePatternFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	pattern, _ := ctx.Value(routeKey{}).(string)
	return pattern
}

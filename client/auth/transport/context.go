package transport

import "context"

type contextKey string

const contextPublicKey contextKey = "publicEndpoint"

// WithPublic marks the request context as targeting a public endpoint:
// no credential is attached and an unauthorized response never triggers
// renewal. Sign-in, sign-up and the renewal exchange itself use it.
func WithPublic(ctx context.Context) context.Context {
	return context.WithValue(ctx, contextPublicKey, true)
}

func isPublic(ctx context.Context) bool {
	value, _ := ctx.Value(contextPublicKey).(bool)
	return value
}

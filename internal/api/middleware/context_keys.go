package middleware

// ContextKey is a private key type to avoid context collisions.
type ContextKey string

const (
	// IdentityCtxKey holds the verified *auth.Identity for the request.
	IdentityCtxKey = ContextKey("identity")
)

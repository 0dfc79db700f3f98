package domain

// Roles carried in JWT claims. Tokens are provisioned out-of-band; the API
// only validates and scopes them.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

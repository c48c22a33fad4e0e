package constants

// Context keys set by the auth middleware
const (
	ContextKeyPrincipal = "principal"
	ContextKeyPost      = "post"
)

// Token header used by clients
const AuthTokenHeader = "x-auth-token"

// Validation limits
const (
	MinPasswordLength = 5
	MaxTagsPerAccount = 20
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Upload limits
const MaxUploadSizeBytes = 5 << 20 // 5 MiB

package service

import "errors"

// Sentinel errors shared across services. Handlers map these onto HTTP
// statuses: validation errors to 400, ErrNotAuthenticated to 401,
// ErrPermissionDenied to 403; not-found and conflict cases reuse the
// repository sentinels.
var (
	ErrNotAuthenticated = errors.New("authentication required")
	ErrPermissionDenied = errors.New("permission denied")

	ErrInvalidUsername  = errors.New("username contains invalid characters")
	ErrReservedUsername = errors.New("username 'me' is reserved")
	ErrCredentialsTaken = errors.New("username or email already bound to another account")
	ErrInvalidCode      = errors.New("confirmation code is not valid")
	ErrInvalidRole      = errors.New("unknown role")
	ErrInvalidSlug      = errors.New("slug contains invalid characters")
	ErrFutureYear       = errors.New("year cannot be in the future")
	ErrScoreOutOfRange  = errors.New("score must be between 0 and 10")
	ErrReviewExists     = errors.New("only one review per title is allowed")
)

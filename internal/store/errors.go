package store

import "errors"

// Sentinel errors returned by repository and file storage methods to signal
// well-known failure conditions. Callers should use [errors.Is] to match
// against these values.
var (
	// ErrUserAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same username already exists.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserNotFound is returned when no registry record matches the
	// requested username.
	ErrUserNotFound = errors.New("user was not found")

	// ErrVaultNotFound is returned when a registry record points to a vault
	// file that does not exist.
	ErrVaultNotFound = errors.New("vault file was not found")

	// ErrVaultIO is returned when a vault file cannot be read or atomically
	// replaced. After a failed write the previous vault is still in place.
	ErrVaultIO = errors.New("vault file io failure")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning column values from a result
	// row fails.
	ErrScanningRow = errors.New("failed to scan user row")

	// ErrUnsupportedDSN is returned when no database driver matches the DSN.
	ErrUnsupportedDSN = errors.New("unsupported database dsn")
)

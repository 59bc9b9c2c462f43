package domain

import (
	"context"
	"time"
)

// Role is the access level of a user account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a user entity in the system.
// A user can register, login, write blogs, comment and like.
type User struct {
	ID        int64     // Unique identifier
	Name      string    // Display name
	Email     string    // Login email (unique)
	Password  string    // Bcrypt hashed password, never serialized
	Image     string    // Avatar URL
	Bio       string    // Short profile text
	Role      Role      // USER or ADMIN
	CreatedAt time.Time // Account creation timestamp
	UpdatedAt time.Time // Last profile update timestamp
}

// UserStats is a user annotated with content counts, used by the back-office.
type UserStats struct {
	User
	BlogsCount    int64
	CommentsCount int64
	LikesCount    int64
}

// UserRepository defines the contract for user data persistence.
type UserRepository interface {
	// GetByID retrieves a user by their ID.
	// Returns ErrNotFound if the user doesn't exist.
	GetByID(ctx context.Context, id int64) (User, error)

	// GetByEmail retrieves a user by their email.
	// Used during login to verify credentials.
	GetByEmail(ctx context.Context, email string) (User, error)

	// GetStats retrieves one user annotated with their blog, comment
	// and like counts.
	// Returns ErrNotFound if the user doesn't exist.
	GetStats(ctx context.Context, id int64) (UserStats, error)

	// Insert creates a new user account.
	// Backfills the ID in the provided User object upon success.
	Insert(ctx context.Context, u *User) error

	// Update modifies an existing user's information.
	Update(ctx context.Context, u *User) error

	// List returns one page of users matched by name or email, with
	// per-user content counts and the total match count.
	List(ctx context.Context, q PageQuery) ([]UserStats, int64, error)

	// DeleteCascade removes a user together with their comments, likes
	// and blogs in a single transaction.
	DeleteCascade(ctx context.Context, id int64) error

	// Count returns the total number of user accounts.
	Count(ctx context.Context) (int64, error)

	// MostActive returns up to limit users ordered by blog count then
	// comment count, annotated with their content counts.
	MostActive(ctx context.Context, limit int64) ([]UserStats, error)
}

// UserUsecase defines the business logic contract for user operations.
// Handles authentication, registration, and profile management.
type UserUsecase interface {
	// Register creates a new user account and returns a JWT token.
	// Returns ErrConflict if the email already exists.
	Register(ctx context.Context, name, email, password string) (string, error)

	// Login verifies user credentials and returns a JWT token.
	// Returns ErrNotFound if the user doesn't exist.
	// Returns ErrBadParamInput if the password is incorrect.
	Login(ctx context.Context, email, password string) (string, User, error)

	// Profile returns the full account of the given user.
	Profile(ctx context.Context, id int64) (User, error)

	// UpdateProfile applies the non-zero fields of patch to the account.
	UpdateProfile(ctx context.Context, id int64, patch UserPatch) (User, error)
}

// UserPatch carries the optional profile fields of an update request.
// Empty fields are left untouched.
type UserPatch struct {
	Name     string
	Email    string
	Password string
	Image    string
	Bio      string
}

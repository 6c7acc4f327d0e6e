package user

import "context"

// Repository defines persistence operations for users.
// Implementations return a not-found application error when no row matches.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*User, error)
	Update(ctx context.Context, u *User) error
	// Delete hard-deletes the user; the schema cascades to the user's
	// reports and comments. Not used in normal operation.
	Delete(ctx context.Context, id uint) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error)
}

package user

import (
	"fmt"
	"time"
)

const (
	DefaultDepartment = "Engineering"
	DefaultPosition   = "Member"
)

// User is an employee account. Credentials are managed by the auth
// infrastructure; the entity only carries the stored hash.
type User struct {
	id           uint
	username     string
	passwordHash string
	employeeID   string
	department   string
	position     string
	bio          string
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(username, passwordHash, employeeID, department, position, bio string) (*User, error) {
	if len(username) == 0 {
		return nil, fmt.Errorf("username is required")
	}
	if len(username) > 150 {
		return nil, fmt.Errorf("username exceeds maximum length of 150 characters")
	}
	if len(passwordHash) == 0 {
		return nil, fmt.Errorf("password hash is required")
	}
	if len(employeeID) == 0 {
		return nil, fmt.Errorf("employee ID is required")
	}
	if len(employeeID) > 20 {
		return nil, fmt.Errorf("employee ID exceeds maximum length of 20 characters")
	}
	if department == "" {
		department = DefaultDepartment
	}
	if position == "" {
		position = DefaultPosition
	}

	now := time.Now()
	return &User{
		username:     username,
		passwordHash: passwordHash,
		employeeID:   employeeID,
		department:   department,
		position:     position,
		bio:          bio,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructUser(
	id uint,
	username string,
	passwordHash string,
	employeeID string,
	department string,
	position string,
	bio string,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if len(username) == 0 {
		return nil, fmt.Errorf("username is required")
	}
	if len(employeeID) == 0 {
		return nil, fmt.Errorf("employee ID is required")
	}

	return &User{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
		employeeID:   employeeID,
		department:   department,
		position:     position,
		bio:          bio,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint {
	return u.id
}

func (u *User) Username() string {
	return u.username
}

func (u *User) PasswordHash() string {
	return u.passwordHash
}

func (u *User) EmployeeID() string {
	return u.employeeID
}

func (u *User) Department() string {
	return u.department
}

func (u *User) Position() string {
	return u.position
}

func (u *User) Bio() string {
	return u.bio
}

func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

// UpdateProfile mutates the organizational attributes a user may edit.
func (u *User) UpdateProfile(department, position, bio string) error {
	if len(department) > 100 {
		return fmt.Errorf("department exceeds maximum length of 100 characters")
	}
	if len(position) > 50 {
		return fmt.Errorf("position exceeds maximum length of 50 characters")
	}
	if department != "" {
		u.department = department
	}
	if position != "" {
		u.position = position
	}
	u.bio = bio
	u.updatedAt = time.Now()
	return nil
}

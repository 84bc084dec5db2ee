package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of user types. The role gate compares for
// equality only, an admin never satisfies a user-gated route.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	Usertype  Role      `json:"usertype"`
	BranchID  int64     `json:"branch_id"`
	IsOnline  bool      `json:"is_online"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

type UserCreateRequest struct {
	Name     string
	Email    string
	Password string
	Usertype Role
	BranchID int64
}

func (p UserCreateRequest) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		return errors.New("email is required")
	}
	if len(p.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if !p.Usertype.Valid() {
		return fmt.Errorf("usertype %q is not valid", p.Usertype)
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p LoginRequest) Validate() error {
	if p.Email == "" {
		return errors.New("email is required")
	}
	if p.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	User     *User  `json:"user"`
	Token    string `json:"token"`
	Redirect string `json:"redirect"`
}

package models

import (
	"github.com/google/uuid"
)

// User is the single operator allowed to use the assistant when auth is on.
// The id is derived from the username so tokens survive restarts.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
}

func NewUser(username, passwordHash string) *User {
	return &User{
		ID:           uuid.NewSHA1(uuid.NameSpaceURL, []byte("firefly-assistant:"+username)),
		Username:     username,
		PasswordHash: passwordHash,
	}
}

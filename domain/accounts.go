package domain

import (
	"fmt"
	"github.com/google/uuid"
	"time"
)

type Account struct {
	Id           uuid.UUID
	Username     string
	DisplayName  string
	Email        string
	Publickey    string
	PasswordHash string
	Signature    Signature
	CreatedAt    time.Time
}

func (acc *Account) ToString() string {
	return fmt.Sprintf("\n\tId: %s \n\tUsername: %s \n\tEmail: %s \n\tCreatedAt: %s)", acc.Id, acc.Username, acc.Email, acc.CreatedAt)
}

// BlockedUser is one entry of an account's block list.
type BlockedUser struct {
	TargetId   uuid.UUID
	TargetName string
}

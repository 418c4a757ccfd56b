package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin    = "ADMIN"
	RoleSupport  = "SUPPORT"
	RolePartner  = "PARTNER"
	RoleCustomer = "CUSTOMER"
)

type User struct {
	UserId       uuid.UUID `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	VerificationPending  = "PENDING"
	VerificationApproved = "APPROVED"
	VerificationRejected = "REJECTED"
)

type Driver struct {
	ID                 uuid.UUID `json:"id"`
	FullName           string    `json:"full_name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	VehicleType        string    `json:"vehicle_type"`
	VerificationStatus string    `json:"verification_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

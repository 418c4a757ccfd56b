package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingRequested  = "REQUESTED"
	BookingConfirmed  = "CONFIRMED"
	BookingInProgress = "IN_PROGRESS"
	BookingCompleted  = "COMPLETED"
	BookingCancelled  = "CANCELLED"
)

// BookingTransitions lists the allowed next statuses per current status.
var BookingTransitions = map[string][]string{
	BookingRequested:  {BookingConfirmed, BookingCancelled},
	BookingConfirmed:  {BookingInProgress, BookingCancelled},
	BookingInProgress: {BookingCompleted, BookingCancelled},
	BookingCompleted:  {},
	BookingCancelled:  {},
}

type Booking struct {
	ID            uuid.UUID  `json:"id"`
	BookingNumber string     `json:"booking_number"`
	CustomerID    uuid.UUID  `json:"customer_id"`
	DriverID      *uuid.UUID `json:"driver_id,omitempty"`
	OriginName    string     `json:"origin_name"`
	Destination   string     `json:"destination_name"`
	VehicleType   string     `json:"vehicle_type"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

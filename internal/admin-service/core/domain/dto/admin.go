package dto

type BookingStatusUpdateDto struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type DriverVerificationDto struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

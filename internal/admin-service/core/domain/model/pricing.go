package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VehicleBasePrice struct {
	ID             uuid.UUID       `json:"id"`
	VehicleType    string          `json:"vehicle_type"`
	BasePricePerKm decimal.Decimal `json:"base_price_per_km"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type ZoneMultiplier struct {
	ID         uuid.UUID       `json:"id"`
	ZoneID     uuid.UUID       `json:"zone_id"`
	Multiplier decimal.Decimal `json:"multiplier"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type FixedRoute struct {
	ID              uuid.UUID       `json:"id"`
	OriginName      string          `json:"origin_name"`
	DestinationName string          `json:"destination_name"`
	VehicleType     string          `json:"vehicle_type"`
	FixedPrice      decimal.Decimal `json:"fixed_price"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type ChangeType string

const (
	ChangeBasePrice      ChangeType = "base_price"
	ChangeZoneMultiplier ChangeType = "zone_multiplier"
	ChangeFixedRoute     ChangeType = "fixed_route"
)

// PricingChangeLog is append-only. Read in creation order, the entries for a
// row reconstruct its full value history: each entry's PreviousValue equals
// the prior entry's NewValue, and a created row starts from the empty snapshot.
type PricingChangeLog struct {
	ID            uuid.UUID  `json:"id"`
	ChangedBy     uuid.UUID  `json:"changed_by"`
	ChangeType    ChangeType `json:"change_type"`
	PreviousValue []byte     `json:"previous_value"`
	NewValue      []byte     `json:"new_value"`
	Notes         string     `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Snapshots are the JSON shapes stored in pricing_change_logs. Snapshots of a
// missing row (the previous_value of a create) are the zero value of the
// snapshot type, never null, so log entries stay structurally uniform.

type VehicleBasePriceSnapshot struct {
	VehicleType    string `json:"vehicle_type"`
	BasePricePerKm string `json:"base_price_per_km"`
}

type ZoneMultiplierSnapshot struct {
	ZoneID     string `json:"zone_id"`
	Multiplier string `json:"multiplier"`
}

type FixedRouteSnapshot struct {
	OriginName      string `json:"origin_name"`
	DestinationName string `json:"destination_name"`
	VehicleType     string `json:"vehicle_type"`
	FixedPrice      string `json:"fixed_price"`
}

func SnapshotVehicleBasePrice(m VehicleBasePrice) VehicleBasePriceSnapshot {
	return VehicleBasePriceSnapshot{
		VehicleType:    m.VehicleType,
		BasePricePerKm: m.BasePricePerKm.String(),
	}
}

func SnapshotZoneMultiplier(m ZoneMultiplier) ZoneMultiplierSnapshot {
	return ZoneMultiplierSnapshot{
		ZoneID:     m.ZoneID.String(),
		Multiplier: m.Multiplier.String(),
	}
}

func SnapshotFixedRoute(m FixedRoute) FixedRouteSnapshot {
	return FixedRouteSnapshot{
		OriginName:      m.OriginName,
		DestinationName: m.DestinationName,
		VehicleType:     m.VehicleType,
		FixedPrice:      m.FixedPrice.String(),
	}
}

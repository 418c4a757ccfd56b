package dto

import (
	"encoding/json"
	"fmt"
	"strings"

	"transfer-admin/internal/admin-service/core/domain/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// newRowPrefix marks client-side rows that have never been persisted. The
// admin UI assigns these ids to rows added in the grid before saving.
const newRowPrefix = "new-"

// RowRef distinguishes an unsaved client-side row from a persisted one.
// A pending ref carries the client's temp id; a persisted ref carries the
// row's UUID.
type RowRef struct {
	pending bool
	tempID  string
	id      uuid.UUID
}

func PendingRef(tempID string) RowRef {
	return RowRef{pending: true, tempID: tempID}
}

func PersistedRef(id uuid.UUID) RowRef {
	return RowRef{id: id}
}

func (r RowRef) IsPending() bool { return r.pending }

func (r RowRef) ID() uuid.UUID { return r.id }

func (r RowRef) String() string {
	if r.pending {
		return r.tempID
	}
	return r.id.String()
}

func (r *RowRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" || strings.HasPrefix(s, newRowPrefix) {
		*r = RowRef{pending: true, tempID: s}
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return fmt.Errorf("row id %q is neither a new-row marker nor a UUID: %w", s, err)
	}
	*r = RowRef{id: id}
	return nil
}

func (r RowRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

type QuoteRequestDto struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	VehicleType string `json:"vehicleType"`
}

type BreakdownLine struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// PriceQuoteDto is transient; quotes are never persisted.
type PriceQuoteDto struct {
	DistanceKm     float64         `json:"distance_km"`
	BasePrice      decimal.Decimal `json:"base_price"`
	ZoneMultiplier decimal.Decimal `json:"zone_multiplier"`
	FinalPrice     decimal.Decimal `json:"final_price"`
	Breakdown      []BreakdownLine `json:"breakdown"`
	IsFixedRoute   bool            `json:"is_fixed_route"`
}

type VehiclePriceInput struct {
	Ref            RowRef          `json:"id"`
	VehicleType    string          `json:"vehicle_type"`
	BasePricePerKm decimal.Decimal `json:"base_price_per_km"`
}

type ZoneMultiplierInput struct {
	Ref        RowRef          `json:"id"`
	ZoneID     uuid.UUID       `json:"zone_id"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

type FixedRouteInput struct {
	Ref             RowRef          `json:"id"`
	OriginName      string          `json:"origin_name"`
	DestinationName string          `json:"destination_name"`
	VehicleType     string          `json:"vehicle_type"`
	FixedPrice      decimal.Decimal `json:"fixed_price"`
}

type PricingUpdateRequestDto struct {
	VehiclePrices   []VehiclePriceInput   `json:"vehiclePrices"`
	ZoneMultipliers []ZoneMultiplierInput `json:"zoneMultipliers"`
	FixedRoutes     []FixedRouteInput     `json:"fixedRoutes"`
	Notes           string                `json:"notes"`
}

func (r PricingUpdateRequestDto) Empty() bool {
	return len(r.VehiclePrices) == 0 && len(r.ZoneMultipliers) == 0 && len(r.FixedRoutes) == 0
}

// CollectionResult counts per-row outcomes inside one collection. A row's
// failure never aborts the batch; it only shows up here.
type CollectionResult struct {
	Success int `json:"success"`
	Error   int `json:"error"`
}

type PricingUpdateResults struct {
	VehiclePrices   CollectionResult `json:"vehiclePrices"`
	ZoneMultipliers CollectionResult `json:"zoneMultipliers"`
	FixedRoutes     CollectionResult `json:"fixedRoutes"`
}

type PricingUpdateResponseDto struct {
	Success bool                 `json:"success"`
	Results PricingUpdateResults `json:"results"`
}

type PricingTablesDto struct {
	VehiclePrices   []model.VehicleBasePrice `json:"vehiclePrices"`
	ZoneMultipliers []model.ZoneMultiplier   `json:"zoneMultipliers"`
	FixedRoutes     []model.FixedRoute       `json:"fixedRoutes"`
}

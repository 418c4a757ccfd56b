package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"transfer-admin/internal/admin-service/core/domain/dto"
	"transfer-admin/internal/admin-service/core/domain/model"
	"transfer-admin/internal/admin-service/core/myerrors"
	"transfer-admin/internal/admin-service/core/ports"
	"transfer-admin/internal/mylogger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PricingService struct {
	mylog     mylogger.Logger
	repo      ports.IPricingRepo
	changeLog ports.IChangeLogRepo
	distance  ports.IDistanceEstimator
	zones     ports.IZoneResolver
	refresher ports.ICacheRefresher
	broker    ports.IEventsBroker
}

func NewPricingService(
	log mylogger.Logger,
	repo ports.IPricingRepo,
	changeLog ports.IChangeLogRepo,
	distance ports.IDistanceEstimator,
	zones ports.IZoneResolver,
	refresher ports.ICacheRefresher,
	broker ports.IEventsBroker,
) ports.IPricingService {
	return &PricingService{
		mylog:     log,
		repo:      repo,
		changeLog: changeLog,
		distance:  distance,
		zones:     zones,
		refresher: refresher,
		broker:    broker,
	}
}

var one = decimal.NewFromInt(1)

// Quote prefers an exact fixed-route match; otherwise it prices per kilometer
// with the zone adjustment. Read-only.
func (ps *PricingService) Quote(ctx context.Context, origin, destination, vehicleType string) (dto.PriceQuoteDto, error) {
	log := ps.mylog.Action("Quote")

	if origin == "" || destination == "" || vehicleType == "" {
		return dto.PriceQuoteDto{}, fmt.Errorf("origin, destination and vehicleType are required: %w", myerrors.ErrValidation)
	}

	route, err := ps.repo.GetFixedRoute(ctx, origin, destination, vehicleType)
	switch {
	case err == nil:
		return dto.PriceQuoteDto{
			DistanceKm:     0,
			BasePrice:      route.FixedPrice,
			ZoneMultiplier: one,
			FinalPrice:     route.FixedPrice,
			Breakdown: []dto.BreakdownLine{
				{Description: "Fixed Route Price", Amount: route.FixedPrice},
			},
			IsFixedRoute: true,
		}, nil
	case !errors.Is(err, myerrors.ErrNotFound):
		log.Error("fixed route lookup failed", err)
		return dto.PriceQuoteDto{}, err
	}

	base, err := ps.repo.GetVehicleBasePrice(ctx, vehicleType)
	if err != nil {
		if errors.Is(err, myerrors.ErrNotFound) {
			return dto.PriceQuoteDto{}, fmt.Errorf("vehicle type %q is not configured: %w", vehicleType, myerrors.ErrNotFound)
		}
		log.Error("vehicle base price lookup failed", err)
		return dto.PriceQuoteDto{}, err
	}

	distanceKm, err := ps.distance.EstimateKm(ctx, origin, destination)
	if err != nil {
		log.Error("distance estimation failed", err)
		return dto.PriceQuoteDto{}, err
	}

	multiplier, err := ps.zones.Multiplier(ctx, origin, destination)
	if err != nil {
		log.Error("zone multiplier resolution failed", err)
		return dto.PriceQuoteDto{}, err
	}

	basePrice := base.BasePricePerKm.Mul(decimal.NewFromFloat(distanceKm))
	adjustment := basePrice.Mul(multiplier.Sub(one))
	finalPrice := basePrice.Add(adjustment)

	return dto.PriceQuoteDto{
		DistanceKm:     distanceKm,
		BasePrice:      basePrice,
		ZoneMultiplier: multiplier,
		FinalPrice:     finalPrice,
		Breakdown: []dto.BreakdownLine{
			{
				Description: fmt.Sprintf("Base Rate (%skm × €%s/km)", formatKm(distanceKm), base.BasePricePerKm.String()),
				Amount:      basePrice,
			},
			{
				Description: "Zone Multiplier Adjustment",
				Amount:      adjustment,
			},
		},
		IsFixedRoute: false,
	}, nil
}

// ApplyUpdate applies the admin's bulk edit. The three collections are
// independent and run concurrently; rows within one collection stay
// sequential because each one is a read-modify-write. A row's failure is
// counted, never fatal to the batch.
func (ps *PricingService) ApplyUpdate(ctx context.Context, actor uuid.UUID, req dto.PricingUpdateRequestDto) (dto.PricingUpdateResponseDto, error) {
	if req.Empty() {
		return dto.PricingUpdateResponseDto{}, fmt.Errorf("at least one pricing change is required: %w", myerrors.ErrValidation)
	}

	var res dto.PricingUpdateResults
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		res.VehiclePrices = ps.applyVehiclePrices(ctx, actor, req.VehiclePrices, req.Notes)
	}()
	go func() {
		defer wg.Done()
		res.ZoneMultipliers = ps.applyZoneMultipliers(ctx, actor, req.ZoneMultipliers, req.Notes)
	}()
	go func() {
		defer wg.Done()
		res.FixedRoutes = ps.applyFixedRoutes(ctx, actor, req.FixedRoutes, req.Notes)
	}()
	wg.Wait()

	ps.signalDownstream(ctx, req)

	return dto.PricingUpdateResponseDto{Success: true, Results: res}, nil
}

func (ps *PricingService) applyVehiclePrices(ctx context.Context, actor uuid.UUID, items []dto.VehiclePriceInput, notes string) dto.CollectionResult {
	log := ps.mylog.Action("applyVehiclePrices")

	var res dto.CollectionResult
	for _, item := range items {
		if item.VehicleType == "" || item.BasePricePerKm.IsNegative() {
			log.Warn("skipping invalid vehicle price row", "row_id", item.Ref.String())
			res.Error++
			continue
		}

		if item.Ref.IsPending() {
			m := model.VehicleBasePrice{
				VehicleType:    item.VehicleType,
				BasePricePerKm: item.BasePricePerKm,
			}
			id, err := ps.repo.InsertVehicleBasePrice(ctx, m)
			if err != nil {
				log.Error("insert vehicle base price failed", err, "row_id", item.Ref.String())
				res.Error++
				continue
			}
			m.ID = id
			ps.appendChangeLog(ctx, actor, model.ChangeBasePrice,
				model.VehicleBasePriceSnapshot{}, model.SnapshotVehicleBasePrice(m), notes)
			res.Success++
			continue
		}

		current, err := ps.repo.GetVehicleBasePriceByID(ctx, item.Ref.ID())
		if err != nil {
			log.Error("fetch vehicle base price failed", err, "id", item.Ref.String())
			res.Error++
			continue
		}

		if current.VehicleType == item.VehicleType && current.BasePricePerKm.Equal(item.BasePricePerKm) {
			// No-op rows are counted as success but never logged.
			res.Success++
			continue
		}

		prev := model.SnapshotVehicleBasePrice(current)
		current.VehicleType = item.VehicleType
		current.BasePricePerKm = item.BasePricePerKm
		if err := ps.repo.UpdateVehicleBasePrice(ctx, current); err != nil {
			log.Error("update vehicle base price failed", err, "id", item.Ref.String())
			res.Error++
			continue
		}
		ps.appendChangeLog(ctx, actor, model.ChangeBasePrice, prev, model.SnapshotVehicleBasePrice(current), notes)
		res.Success++
	}
	return res
}

func (ps *PricingService) applyZoneMultipliers(ctx context.Context, actor uuid.UUID, items []dto.ZoneMultiplierInput, notes string) dto.CollectionResult {
	log := ps.mylog.Action("applyZoneMultipliers")

	var res dto.CollectionResult
	for _, item := range items {
		if item.ZoneID == uuid.Nil || !item.Multiplier.IsPositive() {
			log.Warn("skipping invalid zone multiplier row", "row_id", item.Ref.String())
			res.Error++
			continue
		}

		if item.Ref.IsPending() {
			m := model.ZoneMultiplier{
				ZoneID:     item.ZoneID,
				Multiplier: item.Multiplier,
			}
			id, err := ps.repo.InsertZoneMultiplier(ctx, m)
			if err != nil {
				log.Error("insert zone multiplier failed", err, "row_id", item.Ref.String())
				res.Error++
				continue
			}
			m.ID = id
			ps.appendChangeLog(ctx, actor, model.ChangeZoneMultiplier,
				model.ZoneMultiplierSnapshot{}, model.SnapshotZoneMultiplier(m), notes)
			res.Success++
			continue
		}

		current, err := ps.repo.GetZoneMultiplierByID(ctx, item.Ref.ID())
		if err != nil {
			log.Error("fetch zone multiplier failed", err, "id", item.Ref.String())
			res.Error++
			continue
		}

		if current.ZoneID == item.ZoneID && current.Multiplier.Equal(item.Multiplier) {
			res.Success++
			continue
		}

		prev := model.SnapshotZoneMultiplier(current)
		current.ZoneID = item.ZoneID
		current.Multiplier = item.Multiplier
		if err := ps.repo.UpdateZoneMultiplier(ctx, current); err != nil {
			log.Error("update zone multiplier failed", err, "id", item.Ref.String())
			res.Error++
			continue
		}
		ps.appendChangeLog(ctx, actor, model.ChangeZoneMultiplier, prev, model.SnapshotZoneMultiplier(current), notes)
		res.Success++
	}
	return res
}

func (ps *PricingService) applyFixedRoutes(ctx context.Context, actor uuid.UUID, items []dto.FixedRouteInput, notes string) dto.CollectionResult {
	log := ps.mylog.Action("applyFixedRoutes")

	var res dto.CollectionResult
	for _, item := range items {
		if item.OriginName == "" || item.DestinationName == "" || item.VehicleType == "" || item.FixedPrice.IsNegative() {
			log.Warn("skipping invalid fixed route row", "row_id", item.Ref.String())
			res.Error++
			continue
		}

		if item.Ref.IsPending() {
			m := model.FixedRoute{
				OriginName:      item.OriginName,
				DestinationName: item.DestinationName,
				VehicleType:     item.VehicleType,
				FixedPrice:      item.FixedPrice,
			}
			id, err := ps.repo.InsertFixedRoute(ctx, m)
			if err != nil {
				log.Error("insert fixed route failed", err, "row_id", item.Ref.String())
				res.Error++
				continue
			}
			m.ID = id
			ps.appendChangeLog(ctx, actor, model.ChangeFixedRoute,
				model.FixedRouteSnapshot{}, model.SnapshotFixedRoute(m), notes)
			res.Success++
			continue
		}

		current, err := ps.repo.GetFixedRouteByID(ctx, item.Ref.ID())
		if err != nil {
			log.Error("fetch fixed route failed", err, "id", item.Ref.String())
			res.Error++
			continue
		}

		if current.OriginName == item.OriginName &&
			current.DestinationName == item.DestinationName &&
			current.VehicleType == item.VehicleType &&
			current.FixedPrice.Equal(item.FixedPrice) {
			res.Success++
			continue
		}

		prev := model.SnapshotFixedRoute(current)
		current.OriginName = item.OriginName
		current.DestinationName = item.DestinationName
		current.VehicleType = item.VehicleType
		current.FixedPrice = item.FixedPrice
		if err := ps.repo.UpdateFixedRoute(ctx, current); err != nil {
			log.Error("update fixed route failed", err, "id", item.Ref.String())
			res.Error++
			continue
		}
		ps.appendChangeLog(ctx, actor, model.ChangeFixedRoute, prev, model.SnapshotFixedRoute(current), notes)
		res.Success++
	}
	return res
}

func (ps *PricingService) Tables(ctx context.Context) (dto.PricingTablesDto, error) {
	log := ps.mylog.Action("PricingTables")

	vehiclePrices, err := ps.repo.ListVehicleBasePrices(ctx)
	if err != nil {
		log.Error("list vehicle base prices failed", err)
		return dto.PricingTablesDto{}, err
	}
	zoneMultipliers, err := ps.repo.ListZoneMultipliers(ctx)
	if err != nil {
		log.Error("list zone multipliers failed", err)
		return dto.PricingTablesDto{}, err
	}
	fixedRoutes, err := ps.repo.ListFixedRoutes(ctx)
	if err != nil {
		log.Error("list fixed routes failed", err)
		return dto.PricingTablesDto{}, err
	}

	return dto.PricingTablesDto{
		VehiclePrices:   vehiclePrices,
		ZoneMultipliers: zoneMultipliers,
		FixedRoutes:     fixedRoutes,
	}, nil
}

func (ps *PricingService) RecentChanges(ctx context.Context, limit int) ([]model.PricingChangeLog, error) {
	return ps.changeLog.ListRecent(ctx, limit)
}

// appendChangeLog writes the before/after audit record. The audit trail is a
// side effect: a write failure is logged and swallowed so it never fails the
// row it describes.
func (ps *PricingService) appendChangeLog(ctx context.Context, actor uuid.UUID, changeType model.ChangeType, prev, next any, notes string) {
	log := ps.mylog.Action("appendChangeLog")

	prevJSON, err := json.Marshal(prev)
	if err != nil {
		log.Error("marshal previous snapshot failed", err)
		return
	}
	nextJSON, err := json.Marshal(next)
	if err != nil {
		log.Error("marshal new snapshot failed", err)
		return
	}

	entry := model.PricingChangeLog{
		ChangedBy:     actor,
		ChangeType:    changeType,
		PreviousValue: prevJSON,
		NewValue:      nextJSON,
		Notes:         notes,
	}
	if err := ps.changeLog.Append(ctx, entry); err != nil {
		log.Error("append pricing change log failed", err, "change_type", string(changeType))
	}
}

// signalDownstream is the post-mutation fan-out: the quote-cache refresh and
// the broker event. Both are best-effort and never affect the reported outcome.
func (ps *PricingService) signalDownstream(ctx context.Context, req dto.PricingUpdateRequestDto) {
	log := ps.mylog.Action("signalDownstream")

	if err := ps.refresher.Refresh(ctx); err != nil {
		log.Warn("quote cache refresh failed", "reason", err.Error())
	}

	var changed []model.ChangeType
	if len(req.VehiclePrices) > 0 {
		changed = append(changed, model.ChangeBasePrice)
	}
	if len(req.ZoneMultipliers) > 0 {
		changed = append(changed, model.ChangeZoneMultiplier)
	}
	if len(req.FixedRoutes) > 0 {
		changed = append(changed, model.ChangeFixedRoute)
	}
	if err := ps.broker.PublishPricingChanged(ctx, changed); err != nil {
		log.Warn("publish pricing.updated failed", "reason", err.Error())
	}
}

func formatKm(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64)
}

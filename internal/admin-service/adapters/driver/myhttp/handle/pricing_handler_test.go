package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"transfer-admin/internal/admin-service/core/domain/dto"
	"transfer-admin/internal/admin-service/core/domain/model"
	"transfer-admin/internal/admin-service/core/myerrors"
	"transfer-admin/internal/mylogger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPricingService struct {
	quote      dto.PriceQuoteDto
	quoteErr   error
	updateResp dto.PricingUpdateResponseDto
	updateErr  error
	gotActor   uuid.UUID
	gotReq     dto.PricingUpdateRequestDto
}

func (s *stubPricingService) Quote(_ context.Context, origin, destination, vehicleType string) (dto.PriceQuoteDto, error) {
	return s.quote, s.quoteErr
}

func (s *stubPricingService) ApplyUpdate(_ context.Context, actor uuid.UUID, req dto.PricingUpdateRequestDto) (dto.PricingUpdateResponseDto, error) {
	s.gotActor = actor
	s.gotReq = req
	return s.updateResp, s.updateErr
}

func (s *stubPricingService) Tables(_ context.Context) (dto.PricingTablesDto, error) {
	return dto.PricingTablesDto{}, nil
}

func (s *stubPricingService) RecentChanges(_ context.Context, limit int) ([]model.PricingChangeLog, error) {
	return nil, nil
}

func testLogger(t *testing.T) mylogger.Logger {
	t.Helper()
	log, err := mylogger.New(mylogger.LevelError)
	require.NoError(t, err)
	return log
}

func TestQuoteHandler_OK(t *testing.T) {
	svc := &stubPricingService{quote: dto.PriceQuoteDto{
		DistanceKm:     20,
		BasePrice:      decimal.NewFromInt(40),
		ZoneMultiplier: decimal.RequireFromString("1.2"),
		FinalPrice:     decimal.NewFromInt(48),
	}}
	h := NewPricingHandler(svc, testLogger(t))

	body := `{"origin":"Airport","destination":"City Center","vehicleType":"SEDAN"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/pricing/quote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Quote().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var got dto.PriceQuoteDto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.FinalPrice.Equal(decimal.NewFromInt(48)))
}

func TestQuoteHandler_UnknownVehicleTypeIs404(t *testing.T) {
	svc := &stubPricingService{quoteErr: myerrors.ErrNotFound}
	h := NewPricingHandler(svc, testLogger(t))

	body := `{"origin":"Airport","destination":"City Center","vehicleType":"HOVERCRAFT"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/pricing/quote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Quote().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQuoteHandler_MalformedBody(t *testing.T) {
	h := NewPricingHandler(&stubPricingService{}, testLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/admin/pricing/quote", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Quote().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateHandler_ForwardsActor(t *testing.T) {
	svc := &stubPricingService{updateResp: dto.PricingUpdateResponseDto{Success: true}}
	h := NewPricingHandler(svc, testLogger(t))

	actor := uuid.New()
	body := `{"vehiclePrices":[{"id":"new-1","vehicle_type":"SEDAN","base_price_per_km":"2.00"}]}`
	req := httptest.NewRequest(http.MethodPost, "/admin/pricing", strings.NewReader(body))
	req.Header.Set("X-UserId", actor.String())
	rec := httptest.NewRecorder()
	h.Update().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, actor, svc.gotActor)
	require.Len(t, svc.gotReq.VehiclePrices, 1)
	assert.True(t, svc.gotReq.VehiclePrices[0].Ref.IsPending())
}

func TestUpdateHandler_MissingActorIs401(t *testing.T) {
	h := NewPricingHandler(&stubPricingService{}, testLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/admin/pricing", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Update().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateHandler_ValidationErrorIs400(t *testing.T) {
	svc := &stubPricingService{updateErr: myerrors.ErrValidation}
	h := NewPricingHandler(svc, testLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/admin/pricing", strings.NewReader(`{}`))
	req.Header.Set("X-UserId", uuid.NewString())
	rec := httptest.NewRecorder()
	h.Update().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServiceError_UnknownErrorHidesDetails(t *testing.T) {
	svc := &stubPricingService{quoteErr: assert.AnError}
	h := NewPricingHandler(svc, testLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/admin/pricing/quote", strings.NewReader(`{"origin":"a","destination":"b","vehicleType":"SEDAN"}`))
	rec := httptest.NewRecorder()
	h.Quote().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

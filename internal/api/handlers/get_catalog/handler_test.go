package get_catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type staticPolicy struct{ policy domain.Policy }

func (p staticPolicy) Policy() domain.Policy { return p.policy }

func TestHandle(t *testing.T) {
	loc := time.FixedZone("MYT", 8*60*60)
	h := NewHandler(staticPolicy{policy: domain.NewPolicy(3, 24, loc)}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body CatalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Len(t, body.Services, 2)
	assert.Equal(t, "kpz_walkin", body.Services[0].ID)
	assert.InDelta(t, 13, body.Services[0].Price, 1e-9)
	assert.Equal(t, domain.TimeSlots, body.TimeSlots)
	assert.InDelta(t, 3, body.Policy.CancellationWindowHours, 1e-9)
	assert.InDelta(t, 24, body.Policy.StalenessWindowHours, 1e-9)
	assert.Equal(t, "MYT", body.Policy.TimeZone)
	assert.Contains(t, body.Policy.Text, "up to 3 hours before")
}

func TestBuildCatalogResponse_DoesNotAliasDomainSlices(t *testing.T) {
	resp := BuildCatalogResponse(domain.DefaultPolicy())
	resp.TimeSlots[0] = "00:00"

	assert.Equal(t, "10:00", domain.TimeSlots[0])
	assert.Equal(t, "UTC", resp.Policy.TimeZone)
}

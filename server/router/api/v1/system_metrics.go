package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/parentcopilot/plugin/ai"
	"github.com/hrygo/parentcopilot/plugin/ai/advice"
	"github.com/hrygo/parentcopilot/server/internal/observability"
)

// MetricsOverviewResponse reports how advice was produced since start-up.
type MetricsOverviewResponse struct {
	Tiers                  []observability.TierSnapshot `json:"tiers"`
	TotalRequests          int64                        `json:"totalRequests"`
	OfflineRate            float64                      `json:"offlineRate"`
	ProviderConfigured     bool                         `json:"providerConfigured"`
	TranscriptionAvailable bool                         `json:"transcriptionAvailable"`
}

// GetMetrics returns the per-tier generation counters.
// GET /api/v1/metrics
func (s *APIV1Service) GetMetrics(c echo.Context) error {
	tiers := s.Metrics.Snapshot()

	// Every request ends in exactly one successful tier.
	var total, offline int64
	for _, t := range tiers {
		total += t.SuccessCount
		if t.Tier == string(advice.TierOffline) {
			offline = t.SuccessCount
		}
	}
	resp := MetricsOverviewResponse{
		Tiers:                  tiers,
		TotalRequests:          total,
		ProviderConfigured:     s.Generator.HasProvider(),
		TranscriptionAvailable: ai.IsTranscriptionAvailable(s.Transcriber),
	}
	if total > 0 {
		resp.OfflineRate = float64(offline) / float64(total)
	}
	return c.JSON(http.StatusOK, resp)
}

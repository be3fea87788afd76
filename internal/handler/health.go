package handler

import (
	"net/http"

	"github.com/jask/devreports/internal/service"
)

type healthResponse struct {
	Status   string         `json:"status"`
	Provider providerStatus `json:"provider"`
	Sources  int            `json:"sources"`
}

type providerStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// Health reports process liveness, provider availability, and how many
// sources the catalog discovered ("All" included).
func Health(svc *service.ExplorerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, healthResponse{
			Status: "ok",
			Provider: providerStatus{
				Name:      svc.ProviderName(),
				Available: svc.ProviderAvailable(),
			},
			Sources: len(svc.Sources()),
		})
	}
}

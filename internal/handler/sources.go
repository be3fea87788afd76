package handler

import (
	"net/http"

	"github.com/jask/devreports/internal/service"
)

type sourcesResponse struct {
	Sources []string `json:"sources"`
}

// Sources lists the selectable data sources, "All" first.
func Sources(svc *service.ExplorerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, sourcesResponse{Sources: svc.Sources()})
	}
}

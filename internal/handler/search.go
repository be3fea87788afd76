package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jask/devreports/internal/metrics"
	"github.com/jask/devreports/internal/report"
	"github.com/jask/devreports/internal/service"
)

const maxTopicLength = 200

type searchRequest struct {
	Source string `json:"source"`
	Topic  string `json:"topic"`
	Page   int    `json:"page"`
}

type searchRow struct {
	ID        string `json:"id"`
	Synthesis string `json:"synthesis"`
	Reference string `json:"reference"`
	Paragraph string `json:"paragraph"`
	Error     string `json:"error,omitempty"`
}

type paginationInfo struct {
	Page         int  `json:"page"`
	TotalPages   int  `json:"total_pages"`
	TotalResults int  `json:"total_results"`
	ShowingFrom  int  `json:"showing_from"`
	ShowingTo    int  `json:"showing_to"`
	HasPrev      bool `json:"has_prev"`
	HasNext      bool `json:"has_next"`
}

type searchResponse struct {
	Source     string         `json:"source"`
	Topic      string         `json:"topic"`
	Results    []searchRow    `json:"results"`
	Pagination paginationInfo `json:"pagination"`
	Warnings   []string       `json:"warnings,omitempty"`
}

// Search filters a source by topic and returns one page of results, each
// augmented with its one-line synthesis. Synthesis failures degrade
// per-row rather than failing the request.
func Search(svc *service.ExplorerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if req.Topic == "" {
			writeError(w, http.StatusBadRequest, "topic is required")
			return
		}
		if len(req.Topic) > maxTopicLength {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("topic too long: %d characters (max %d)", len(req.Topic), maxTopicLength))
			return
		}
		if req.Source == "" {
			req.Source = report.SourceAll
		}

		result, err := svc.Search(req.Source, req.Topic, req.Page)
		if err != nil {
			switch {
			case errors.Is(err, report.ErrUnknownSource):
				writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown source: %s", req.Source))
			case errors.Is(err, service.ErrEmptyTopic):
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, fmt.Sprintf("load data: %v", err))
			}
			return
		}
		metrics.SearchResults.Observe(float64(result.Page.Results))

		rows := make([]searchRow, 0, len(result.Results))
		for _, res := range result.Results {
			start := time.Now()
			line, synthErr := svc.Synthesize(r.Context(), res.Paragraph.Text, req.Topic)
			metrics.SynthesisDuration.WithLabelValues(svc.ProviderName()).Observe(time.Since(start).Seconds())
			row := searchRow{
				ID:        res.ID,
				Synthesis: line,
				Reference: res.Reference,
				Paragraph: res.Paragraph.Text,
			}
			if synthErr != nil {
				row.Error = synthErr.Error()
			}
			rows = append(rows, row)
		}

		writeJSON(w, http.StatusOK, searchResponse{
			Source:  result.Source,
			Topic:   result.Topic,
			Results: rows,
			Pagination: paginationInfo{
				Page:         result.Page.Number,
				TotalPages:   result.Page.Total,
				TotalResults: result.Page.Results,
				ShowingFrom:  result.Page.ShowingFrom(),
				ShowingTo:    result.Page.ShowingTo(),
				HasPrev:      result.Page.HasPrev(),
				HasNext:      result.Page.HasNext(),
			},
			Warnings: result.Warnings,
		})
	}
}

package http

import (
	"net/http"

	"cluster-analytics/internal/ingestors"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

type ingestSessionsHandler struct {
	ingestionService ingestors.IngestionService
}

func NewIngestSessionsHandler(ingestionService ingestors.IngestionService) AppHttpHandler {
	return &ingestSessionsHandler{
		ingestionService: ingestionService,
	}
}

// Handle processes POST /v1/sessions requests. The snapshot is accepted for
// asynchronous recomputation; the report endpoint reflects it shortly after.
func (h *ingestSessionsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	_, err := h.ingestionService.IngestSnapshot(r.Context(), idempotencyKey(r), contentType(r), r.Body)
	if err != nil {
		return err
	}

	w.WriteHeader(http.StatusAccepted)
	return nil
}

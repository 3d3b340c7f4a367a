package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/etnz/wealth"
	"github.com/etnz/wealth/date"
	"github.com/etnz/wealth/session"
)

// maxRecordSize bounds the body of PUT /api/record.
const maxRecordSize = 1 << 20

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger  *slog.Logger
	session *session.Session
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, s *session.Session) *APIHandlers {
	return &APIHandlers{
		logger:  logger,
		session: s,
	}
}

func (h *APIHandlers) handleRecord(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getRecord(w, r)
	case http.MethodPut:
		h.putRecord(w, r)
	case http.MethodDelete:
		h.deleteRecord(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (h *APIHandlers) getRecord(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.active(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (h *APIHandlers) putRecord(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRecordSize))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "record is too large")
		return
	}
	rec, err := h.session.Replace(r.Context(), body)
	switch {
	case errors.Is(err, session.ErrInvalidRecord):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("failed to replace record", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save record")
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (h *APIHandlers) deleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Clear(r.Context()); err != nil {
		h.logger.Error("failed to clear record", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear record")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandlers) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	rec, ok := h.active(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, wealth.Summarize(rec))
}

type cashFlowResponse struct {
	Currency string        `json:"currency"`
	Period   string        `json:"period"`
	Flows    []wealth.Flow `json:"flows"`
	Skipped  int           `json:"skipped"`
}

func (h *APIHandlers) handleCashFlow(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	period := date.Monthly
	if v := strings.TrimSpace(r.URL.Query().Get("period")); v != "" {
		p, err := date.ParsePeriod(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		period = p
	}
	rec, ok := h.active(w, r)
	if !ok {
		return
	}
	flows, skipped := wealth.CashFlow(rec, period)
	if flows == nil {
		flows = []wealth.Flow{}
	}
	respondJSON(w, http.StatusOK, cashFlowResponse{
		Currency: rec.Currency,
		Period:   period.String(),
		Flows:    flows,
		Skipped:  skipped,
	})
}

func (h *APIHandlers) handleAdviceContext(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	rec, ok := h.active(w, r)
	if !ok {
		return
	}
	data, err := wealth.AdviceContext(rec)
	if err != nil {
		h.logger.Error("failed to build advice context", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build advice context")
		return
	}
	respondJSON(w, http.StatusOK, json.RawMessage(data))
}

type profilesResponse struct {
	Profiles []string `json:"profiles"`
}

func (h *APIHandlers) handleProfiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	ids := h.session.Bundle().ProfileIDs()
	if ids == nil {
		ids = []string{}
	}
	respondJSON(w, http.StatusOK, profilesResponse{Profiles: ids})
}

func (h *APIHandlers) handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/profiles/")
	id = strings.Trim(id, "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "profile ID is required")
		return
	}

	rec, err := h.session.UseProfile(r.Context(), id)
	switch {
	case errors.Is(err, session.ErrUnknownProfile):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		h.logger.Error("failed to use profile", "error", err, "profileId", id)
		writeError(w, http.StatusInternalServerError, "failed to save record")
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// active writes an error and returns false when the active record cannot be
// read.
func (h *APIHandlers) active(w http.ResponseWriter, r *http.Request) (*wealth.Record, bool) {
	rec, err := h.session.Active(r.Context())
	if err != nil {
		h.logger.Error("failed to read active record", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read record")
		return nil, false
	}
	return rec, true
}

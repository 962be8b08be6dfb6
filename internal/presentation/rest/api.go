package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/yadav-krish/ticket-booking-prediction/internal/application/dto"
	"github.com/yadav-krish/ticket-booking-prediction/internal/application/usecase"
)

const maxBodyBytes = 64 << 10

// PredictionHandler serves the JSON prediction API.
type PredictionHandler struct {
	predictBooking  *usecase.PredictBooking
	getPrediction   *usecase.GetPrediction
	listPredictions *usecase.ListPredictions
	logger          *slog.Logger
}

// NewPredictionHandler creates a new JSON API handler.
func NewPredictionHandler(
	predictBooking *usecase.PredictBooking,
	getPrediction *usecase.GetPrediction,
	listPredictions *usecase.ListPredictions,
	logger *slog.Logger,
) *PredictionHandler {
	return &PredictionHandler{
		predictBooking:  predictBooking,
		getPrediction:   getPrediction,
		listPredictions: listPredictions,
		logger:          logger,
	}
}

// RegisterRoutes registers the API routes on the provided ServeMux.
func (h *PredictionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/predictions", h.Predict)
	mux.HandleFunc("GET /api/v1/predictions/{id}", h.Get)
	mux.HandleFunc("GET /api/v1/predictions", h.List)
}

// Predict scores a booking submitted as JSON. Out of range values are
// rejected rather than clamped.
func (h *PredictionHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req dto.PredictBookingRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.predictBooking.Execute(r.Context(), req)
	if err != nil {
		h.fail(w, r, "failed to predict booking", err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// Get returns a stored prediction.
func (h *PredictionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id: "+err.Error())
		return
	}

	resp, err := h.getPrediction.Execute(r.Context(), dto.GetPredictionRequest{ID: id})
	if err != nil {
		h.fail(w, r, "failed to get prediction", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// List returns recent predictions, newest first.
func (h *PredictionHandler) List(w http.ResponseWriter, r *http.Request) {
	req := dto.ListPredictionsRequest{}
	q := r.URL.Query()
	var err error
	if v := q.Get("limit"); v != "" {
		if req.Limit, err = strconv.Atoi(v); err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
	}
	if v := q.Get("offset"); v != "" {
		if req.Offset, err = strconv.Atoi(v); err != nil {
			writeError(w, http.StatusBadRequest, "offset must be an integer")
			return
		}
	}

	resp, err := h.listPredictions.Execute(r.Context(), req)
	if err != nil {
		h.fail(w, r, "failed to list predictions", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *PredictionHandler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	code, text := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), msg, "error", err)
	} else {
		h.logger.InfoContext(r.Context(), msg, "error", err, "status", code)
	}
	writeError(w, code, text)
}

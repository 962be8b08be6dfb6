package rest

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/yadav-krish/ticket-booking-prediction/internal/application/dto"
	"github.com/yadav-krish/ticket-booking-prediction/internal/application/usecase"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/valueobject"
)

//go:embed templates/*.html
var templateFS embed.FS

var formTemplate = template.Must(template.ParseFS(templateFS, "templates/form.html"))

// formView is the data rendered into the booking form page.
type formView struct {
	Result        *dto.PredictionResponse
	Error         string
	Form          dto.PredictBookingRequest
	SalesChannels []string
	TripTypes     []string
	FlightDays    []string
	Bounds        formBounds
	Threshold     string
}

type formBounds struct {
	NumPassengers  model.IntRange
	PurchaseLead   model.IntRange
	LengthOfStay   model.IntRange
	FlightHour     model.IntRange
	FlightDuration model.FloatRange
}

// FormHandler serves the single page booking form.
type FormHandler struct {
	predictBooking *usecase.PredictBooking
	logger         *slog.Logger
}

// NewFormHandler creates a new form handler.
func NewFormHandler(predictBooking *usecase.PredictBooking, logger *slog.Logger) *FormHandler {
	return &FormHandler{predictBooking: predictBooking, logger: logger}
}

// RegisterRoutes registers the form routes on the provided ServeMux.
func (h *FormHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Show)
	mux.HandleFunc("POST /predict", h.Submit)
}

// Show renders the empty form with default values.
func (h *FormHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, h.view(dto.RequestFromQuery(model.DefaultBookingQuery())))
}

// Submit scores the posted form and renders the result panel below it.
// Numeric values are clamped to the widget bounds.
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		v := h.view(dto.RequestFromQuery(model.DefaultBookingQuery()))
		v.Error = "could not read the submitted form"
		h.render(w, r, http.StatusBadRequest, v)
		return
	}

	req, err := parseBookingForm(r)
	v := h.view(req)
	if err != nil {
		v.Error = err.Error()
		h.render(w, r, http.StatusBadRequest, v)
		return
	}

	req.ClampToBounds = true
	resp, err := h.predictBooking.Execute(r.Context(), req)
	if err != nil {
		code, msg := statusFor(err)
		if code >= http.StatusInternalServerError {
			h.logger.ErrorContext(r.Context(), "failed to predict booking", "error", err)
		}
		v.Error = msg
		h.render(w, r, code, v)
		return
	}

	v.Form = resp.Query
	v.Result = &resp
	h.render(w, r, http.StatusOK, v)
}

func (h *FormHandler) view(form dto.PredictBookingRequest) formView {
	v := formView{
		Form:      form,
		Threshold: h.predictBooking.Threshold().String(),
		Bounds: formBounds{
			NumPassengers:  model.NumPassengersRange,
			PurchaseLead:   model.PurchaseLeadRange,
			LengthOfStay:   model.LengthOfStayRange,
			FlightHour:     model.FlightHourRange,
			FlightDuration: model.FlightDurationRange,
		},
	}
	for _, c := range valueobject.SalesChannels() {
		v.SalesChannels = append(v.SalesChannels, c.String())
	}
	for _, t := range valueobject.TripTypes() {
		v.TripTypes = append(v.TripTypes, t.String())
	}
	for _, d := range valueobject.FlightDays() {
		v.FlightDays = append(v.FlightDays, d.String())
	}
	return v
}

func (h *FormHandler) render(w http.ResponseWriter, r *http.Request, code int, v formView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := formTemplate.Execute(w, v); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render form", "error", err)
	}
}

// parseBookingForm reads the posted fields. Only malformed numbers are
// rejected here; range and category checks belong to the domain.
func parseBookingForm(r *http.Request) (dto.PredictBookingRequest, error) {
	req := dto.PredictBookingRequest{
		SalesChannel:       strings.TrimSpace(r.PostFormValue("sales_channel")),
		TripType:           strings.TrimSpace(r.PostFormValue("trip_type")),
		FlightDay:          strings.TrimSpace(r.PostFormValue("flight_day")),
		Route:              strings.TrimSpace(r.PostFormValue("route")),
		BookingOrigin:      strings.TrimSpace(r.PostFormValue("booking_origin")),
		WantsExtraBaggage:  parseYesNo(r.PostFormValue("wants_extra_baggage")),
		WantsPreferredSeat: parseYesNo(r.PostFormValue("wants_preferred_seat")),
		WantsInFlightMeals: parseYesNo(r.PostFormValue("wants_in_flight_meals")),
	}

	ints := []struct {
		dst  *int
		name string
	}{
		{&req.NumPassengers, model.ColumnNumPassengers},
		{&req.PurchaseLead, model.ColumnPurchaseLead},
		{&req.LengthOfStay, model.ColumnLengthOfStay},
		{&req.FlightHour, model.ColumnFlightHour},
	}
	for _, f := range ints {
		n, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue(f.name)))
		if err != nil {
			return req, fmt.Errorf("%s must be a whole number", f.name)
		}
		*f.dst = n
	}

	d, err := strconv.ParseFloat(strings.TrimSpace(r.PostFormValue(model.ColumnFlightDuration)), 64)
	if err != nil {
		return req, fmt.Errorf("%s must be a number", model.ColumnFlightDuration)
	}
	req.FlightDuration = d
	return req, nil
}

func parseYesNo(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "on", "1":
		return true
	default:
		return false
	}
}

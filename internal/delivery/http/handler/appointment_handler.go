package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"medicitas-api/internal/delivery/dto"
	"medicitas-api/internal/domain/entity"
	"medicitas-api/internal/usecase"
	"medicitas-api/pkg/response"
	"medicitas-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

// List supports the admin table: newest first, conjunctive query
// filters, free-text search.
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := &entity.AppointmentFilter{
		Status:   entity.AppointmentStatus(r.URL.Query().Get("status")),
		DateFrom: r.URL.Query().Get("date_from"),
		DateTo:   r.URL.Query().Get("date_to"),
		Search:   r.URL.Query().Get("search"),
	}

	if filter.Status != "" && !entity.IsValidAppointmentStatus(filter.Status) {
		response.Error(w, http.StatusBadRequest, "Unknown appointment status", nil)
		return
	}

	if raw := r.URL.Query().Get("patient_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
			return
		}
		filter.PatientID = &id
	}
	if raw := r.URL.Query().Get("practitioner_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid practitioner ID", nil)
			return
		}
		filter.PractitionerID = &id
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			response.Error(w, http.StatusBadRequest, "Invalid limit", nil)
			return
		}
		filter.Limit = limit
	}

	appointments, err := h.appointmentUsecase.List(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	if err := h.appointmentUsecase.Cancel(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	if err := h.appointmentUsecase.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}

func (h *AppointmentHandler) FindByDateRange(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	appointments, err := h.appointmentUsecase.FindByDateRange(r.Context(), vars["from"], vars["to"])
	if err != nil {
		if err == usecase.ErrInvalidDateFormat {
			response.Error(w, http.StatusBadRequest, "Dates must be in YYYY-MM-DD format", nil)
			return
		}
		response.InternalServerError(w, "Failed to find appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// CheckAvailability probes a slot without reserving it. The answer is
// advisory: the booking path re-checks transactionally.
func (h *AppointmentHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req dto.AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	available, err := h.appointmentUsecase.CheckAvailability(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to check availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability checked successfully", dto.AvailabilityResponse{Available: available})
}

func (h *AppointmentHandler) writeError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrSlotConflict:
		response.Conflict(w, "Practitioner is not available at that date and time")
	case usecase.ErrAppointmentClosed:
		response.Conflict(w, "Appointment is already completed, cancelled or marked as no-show")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrPractitionerNotFound:
		response.NotFound(w, "Practitioner not found")
	case usecase.ErrSpecialtyNotFound:
		response.NotFound(w, "Specialty not found")
	case usecase.ErrNotPractitioner:
		response.Error(w, http.StatusBadRequest, "User cannot be booked for appointments", nil)
	case usecase.ErrInvalidDateFormat:
		response.Error(w, http.StatusBadRequest, "Date must be in YYYY-MM-DD format", nil)
	default:
		response.InternalServerError(w, "Failed to process appointment")
	}
}

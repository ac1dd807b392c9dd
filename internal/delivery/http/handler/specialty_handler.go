package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"medicitas-api/internal/delivery/dto"
	"medicitas-api/internal/usecase"
	"medicitas-api/pkg/response"
	"medicitas-api/pkg/validator"

	"github.com/gorilla/mux"
)

type SpecialtyHandler struct {
	specialtyUsecase usecase.SpecialtyUsecase
	validator        *validator.CustomValidator
}

func NewSpecialtyHandler(specialtyUsecase usecase.SpecialtyUsecase, validator *validator.CustomValidator) *SpecialtyHandler {
	return &SpecialtyHandler{
		specialtyUsecase: specialtyUsecase,
		validator:        validator,
	}
}

func (h *SpecialtyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSpecialtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	specialty, err := h.specialtyUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrSpecialtyAlreadyExists:
			response.Conflict(w, "Specialty name already exists")
		default:
			response.InternalServerError(w, "Failed to create specialty")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Specialty created successfully", specialty)
}

func (h *SpecialtyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid specialty ID", nil)
		return
	}

	specialty, err := h.specialtyUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrSpecialtyNotFound:
			response.NotFound(w, "Specialty not found")
		default:
			response.InternalServerError(w, "Failed to get specialty")
		}
		return
	}

	response.Success(w, http.StatusOK, "Specialty retrieved successfully", specialty)
}

func (h *SpecialtyHandler) List(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.specialtyUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list specialties")
		return
	}

	response.Success(w, http.StatusOK, "Specialties retrieved successfully", specialties)
}

func (h *SpecialtyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid specialty ID", nil)
		return
	}

	var req dto.UpdateSpecialtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	specialty, err := h.specialtyUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrSpecialtyNotFound:
			response.NotFound(w, "Specialty not found")
		case usecase.ErrSpecialtyAlreadyExists:
			response.Conflict(w, "Specialty name already exists")
		default:
			response.InternalServerError(w, "Failed to update specialty")
		}
		return
	}

	response.Success(w, http.StatusOK, "Specialty updated successfully", specialty)
}

func (h *SpecialtyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid specialty ID", nil)
		return
	}

	if err := h.specialtyUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrSpecialtyNotFound:
			response.NotFound(w, "Specialty not found")
		case usecase.ErrSpecialtyInUse:
			response.Conflict(w, "Specialty has appointments and cannot be deleted")
		default:
			response.InternalServerError(w, "Failed to delete specialty")
		}
		return
	}

	response.Success(w, http.StatusOK, "Specialty deleted successfully", nil)
}

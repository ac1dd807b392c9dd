package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"medicitas-api/internal/delivery/dto"
	"medicitas-api/internal/delivery/http/middleware"
	"medicitas-api/internal/domain/entity"
	"medicitas-api/internal/usecase"
	"medicitas-api/pkg/response"
	"medicitas-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type PrototypeHandler struct {
	prototypeUsecase usecase.PrototypeUsecase
	validator        *validator.CustomValidator
}

func NewPrototypeHandler(prototypeUsecase usecase.PrototypeUsecase, validator *validator.CustomValidator) *PrototypeHandler {
	return &PrototypeHandler{
		prototypeUsecase: prototypeUsecase,
		validator:        validator,
	}
}

func (h *PrototypeHandler) Create(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreatePrototypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	prototype, err := h.prototypeUsecase.Create(r.Context(), creatorID, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create prototype")
		return
	}

	response.Success(w, http.StatusCreated, "Prototype created successfully", prototype)
}

func (h *PrototypeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid prototype ID", nil)
		return
	}

	prototype, err := h.prototypeUsecase.Get(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrPrototypeNotFound:
			response.NotFound(w, "Prototype not found")
		default:
			response.InternalServerError(w, "Failed to get prototype")
		}
		return
	}

	response.Success(w, http.StatusOK, "Prototype retrieved successfully", prototype)
}

func (h *PrototypeHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := &entity.PrototypeFilter{
		Category:  r.URL.Query().Get("category"),
		Device:    r.URL.Query().Get("device"),
		CreatedBy: r.URL.Query().Get("created_by"),
		Search:    r.URL.Query().Get("search"),
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			response.Error(w, http.StatusBadRequest, "Invalid limit", nil)
			return
		}
		filter.Limit = limit
	}

	prototypes, err := h.prototypeUsecase.List(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list prototypes")
		return
	}

	response.Success(w, http.StatusOK, "Prototypes retrieved successfully", prototypes)
}

func (h *PrototypeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid prototype ID", nil)
		return
	}

	var req dto.UpdatePrototypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	prototype, err := h.prototypeUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrPrototypeNotFound:
			response.NotFound(w, "Prototype not found")
		default:
			response.InternalServerError(w, "Failed to update prototype")
		}
		return
	}

	response.Success(w, http.StatusOK, "Prototype updated successfully", prototype)
}

func (h *PrototypeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid prototype ID", nil)
		return
	}

	if err := h.prototypeUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrPrototypeNotFound:
			response.NotFound(w, "Prototype not found")
		default:
			response.InternalServerError(w, "Failed to delete prototype")
		}
		return
	}

	response.Success(w, http.StatusOK, "Prototype deleted successfully", nil)
}

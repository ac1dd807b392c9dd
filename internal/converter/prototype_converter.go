package converter

import (
	"medicitas-api/internal/delivery/dto"
	"medicitas-api/internal/domain/entity"

	"github.com/google/uuid"
)

func PrototypeToResponse(prototype *entity.Prototype) *dto.PrototypeResponse {
	if prototype == nil {
		return nil
	}

	response := &dto.PrototypeResponse{
		ID:          prototype.ID,
		Title:       prototype.Title,
		Description: prototype.Description,
		Category:    prototype.Category,
		Device:      prototype.Device,
		ImageURL:    prototype.ImageURL,
		CreatedBy:   prototype.CreatedBy,
		CreatedAt:   prototype.CreatedAt,
		UpdatedAt:   prototype.UpdatedAt,
	}

	if prototype.Creator.ID != uuid.Nil {
		response.CreatorName = prototype.Creator.Name
	}

	return response
}

func PrototypesToResponses(prototypes []entity.Prototype) []dto.PrototypeResponse {
	responses := make([]dto.PrototypeResponse, len(prototypes))
	for i := range prototypes {
		responses[i] = *PrototypeToResponse(&prototypes[i])
	}
	return responses
}

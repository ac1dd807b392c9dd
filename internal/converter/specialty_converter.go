package converter

import (
	"medicitas-api/internal/delivery/dto"
	"medicitas-api/internal/domain/entity"
)

func SpecialtyToResponse(specialty *entity.Specialty) *dto.SpecialtyResponse {
	if specialty == nil {
		return nil
	}

	isActive := specialty.IsActive != nil && *specialty.IsActive

	return &dto.SpecialtyResponse{
		ID:          specialty.ID,
		Name:        specialty.Name,
		Description: specialty.Description,
		IsActive:    isActive,
		CreatedAt:   specialty.CreatedAt,
		UpdatedAt:   specialty.UpdatedAt,
	}
}

func SpecialtiesToResponses(specialties []entity.Specialty) []dto.SpecialtyResponse {
	responses := make([]dto.SpecialtyResponse, len(specialties))
	for i := range specialties {
		responses[i] = *SpecialtyToResponse(&specialties[i])
	}
	return responses
}

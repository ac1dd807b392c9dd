package converter

import (
	"medicitas-api/internal/delivery/dto"
	"medicitas-api/internal/domain/entity"
)

// UserToResponse converts a User entity to a UserResponse DTO. The
// password hash never leaves the entity.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           user.Role,
		Address:        user.Address,
		Phone:          user.Phone,
		EmergencyPhone: user.EmergencyPhone,
		Sex:            user.Sex,
		Disability:     user.Disability,
		MaritalStatus:  user.MaritalStatus,
		Department:     user.Department,
		Specialty:      user.Specialty,
		LicenseNumber:  user.LicenseNumber,
		IsActive:       user.Active(),
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}

	if user.BirthDate != nil {
		response.BirthDate = user.BirthDate.Format("2006-01-02")
	}

	return response
}

// UsersToResponses converts a slice of User entities.
func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}

package converter

import (
	"medicitas-api/internal/delivery/dto"
	"medicitas-api/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to its DTO.
// Joined names are attached for display when the relationships were
// preloaded; identity stays in the id fields.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:             appointment.ID,
		PatientID:      appointment.PatientID,
		PractitionerID: appointment.PractitionerID,
		SpecialtyID:    appointment.SpecialtyID,
		Date:           appointment.Date.Format("2006-01-02"),
		Time:           appointment.Time,
		Status:         string(appointment.Status),
		Reason:         appointment.Reason,
		Notes:          appointment.Notes,
		CreatedAt:      appointment.CreatedAt,
		UpdatedAt:      appointment.UpdatedAt,
	}

	if appointment.Patient.ID != uuid.Nil {
		response.PatientName = appointment.Patient.Name
	}
	if appointment.Practitioner.ID != uuid.Nil {
		response.PractitionerName = appointment.Practitioner.Name
	}
	if appointment.Specialty.ID != 0 {
		response.SpecialtyName = appointment.Specialty.Name
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities.
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

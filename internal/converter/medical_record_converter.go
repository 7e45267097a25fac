package converter

import (
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/domain/entity"

	"github.com/google/uuid"
)

// MedicalRecordToResponse converts a MedicalRecord entity to its DTO
func MedicalRecordToResponse(record *entity.MedicalRecord) *dto.MedicalRecordResponse {
	if record == nil {
		return nil
	}

	response := &dto.MedicalRecordResponse{
		ID:           record.ID,
		PetID:        record.PetID,
		VetID:        record.VetID,
		VisitDate:    record.VisitDate.Format(entity.DateLayout),
		Diagnosis:    record.Diagnosis,
		Treatment:    record.Treatment,
		Prescription: record.Prescription,
		Notes:        record.Notes,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}

	if record.Vet.ID != uuid.Nil {
		response.VetName = record.Vet.FullName
	}

	return response
}

// MedicalRecordsToResponses converts a slice of records to response DTOs
func MedicalRecordsToResponses(records []entity.MedicalRecord) []dto.MedicalRecordResponse {
	responses := make([]dto.MedicalRecordResponse, len(records))
	for i := range records {
		resp := MedicalRecordToResponse(&records[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

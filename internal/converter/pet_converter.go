package converter

import (
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/domain/entity"
)

// PetToResponse converts a Pet entity to PetResponse DTO
func PetToResponse(pet *entity.Pet) *dto.PetResponse {
	if pet == nil {
		return nil
	}

	response := &dto.PetResponse{
		ID:        pet.ID,
		OwnerID:   pet.OwnerID,
		Name:      pet.Name,
		Species:   pet.Species,
		Breed:     pet.Breed,
		CreatedAt: pet.CreatedAt,
		UpdatedAt: pet.UpdatedAt,
	}

	if pet.BirthDate != nil {
		response.BirthDate = pet.BirthDate.Format(entity.DateLayout)
	}

	return response
}

// PetsToResponses converts a slice of Pet entities to response DTOs
func PetsToResponses(pets []entity.Pet) []dto.PetResponse {
	responses := make([]dto.PetResponse, len(pets))
	for i := range pets {
		resp := PetToResponse(&pets[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

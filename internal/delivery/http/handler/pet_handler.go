package handler

import (
	"encoding/json"
	"net/http"

	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/delivery/http/middleware"
	"vetclinic-booking/internal/usecase"
	"vetclinic-booking/pkg/response"
	"vetclinic-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type PetHandler struct {
	petUsecase usecase.PetUseCase
	validator  *validator.CustomValidator
}

func NewPetHandler(petUsecase usecase.PetUseCase, validator *validator.CustomValidator) *PetHandler {
	return &PetHandler{
		petUsecase: petUsecase,
		validator:  validator,
	}
}

func (h *PetHandler) CreatePet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreatePetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	pet, err := h.petUsecase.Create(r.Context(), &req, userID)
	if err != nil {
		response.InternalServerError(w, "Failed to create pet")
		return
	}

	response.Success(w, http.StatusCreated, "Pet created successfully", pet)
}

func (h *PetHandler) GetMyPets(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	pets, err := h.petUsecase.List(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get pets")
		return
	}

	response.Success(w, http.StatusOK, "Pets retrieved successfully", pets)
}

func (h *PetHandler) GetPet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}
	roleID, _ := middleware.GetRoleIDFromContext(r.Context())

	petID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid pet ID", nil)
		return
	}

	pet, err := h.petUsecase.GetByID(r.Context(), petID, userID, roleID)
	if err != nil {
		switch err {
		case usecase.ErrPetNotFound:
			response.NotFound(w, "Pet not found")
		case usecase.ErrNotPetOwner:
			response.Forbidden(w, "Pet does not belong to you")
		default:
			response.InternalServerError(w, "Failed to get pet")
		}
		return
	}

	response.Success(w, http.StatusOK, "Pet retrieved successfully", pet)
}

func (h *PetHandler) UpdatePet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	petID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid pet ID", nil)
		return
	}

	var req dto.UpdatePetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	pet, err := h.petUsecase.Update(r.Context(), petID, &req, userID)
	if err != nil {
		switch err {
		case usecase.ErrPetNotFound:
			response.NotFound(w, "Pet not found")
		case usecase.ErrNotPetOwner:
			response.Forbidden(w, "Pet does not belong to you")
		default:
			response.InternalServerError(w, "Failed to update pet")
		}
		return
	}

	response.Success(w, http.StatusOK, "Pet updated successfully", pet)
}

func (h *PetHandler) DeletePet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	petID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid pet ID", nil)
		return
	}

	if err := h.petUsecase.Delete(r.Context(), petID, userID); err != nil {
		switch err {
		case usecase.ErrPetNotFound:
			response.NotFound(w, "Pet not found")
		case usecase.ErrNotPetOwner:
			response.Forbidden(w, "Pet does not belong to you")
		default:
			response.InternalServerError(w, "Failed to delete pet")
		}
		return
	}

	response.Success(w, http.StatusOK, "Pet deleted successfully", nil)
}

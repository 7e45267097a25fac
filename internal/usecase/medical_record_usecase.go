package usecase

import (
	"context"
	"errors"
	"time"

	"vetclinic-booking/internal/converter"
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/domain/entity"
	"vetclinic-booking/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound  = errors.New("medical record not found")
	ErrNotRecordAuthor = errors.New("medical record was written by another vet")
)

type MedicalRecordUseCase interface {
	Create(ctx context.Context, request *dto.CreateMedicalRecordRequest, vetID uuid.UUID) (*dto.MedicalRecordResponse, error)
	ListByPet(ctx context.Context, petID, actorID uuid.UUID, actorRoleID int) (*dto.MedicalRecordListResponse, error)
	Update(ctx context.Context, id uuid.UUID, request *dto.UpdateMedicalRecordRequest, actorID uuid.UUID, actorRoleID int) (*dto.MedicalRecordResponse, error)
	Delete(ctx context.Context, id, actorID uuid.UUID, actorRoleID int) error
}

type medicalRecordUseCase struct {
	db         *gorm.DB
	log        *logrus.Logger
	recordRepo repository.MedicalRecordRepository
	petRepo    repository.PetRepository
}

func NewMedicalRecordUseCase(
	db *gorm.DB,
	log *logrus.Logger,
	recordRepo repository.MedicalRecordRepository,
	petRepo repository.PetRepository,
) MedicalRecordUseCase {
	return &medicalRecordUseCase{
		db:         db,
		log:        log,
		recordRepo: recordRepo,
		petRepo:    petRepo,
	}
}

func (u *medicalRecordUseCase) Create(ctx context.Context, request *dto.CreateMedicalRecordRequest, vetID uuid.UUID) (*dto.MedicalRecordResponse, error) {
	db := u.db.WithContext(ctx)

	pet, err := u.petRepo.FindByID(db, request.PetID)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, ErrPetNotFound
	}

	visitDate, err := time.Parse(entity.DateLayout, request.VisitDate)
	if err != nil {
		return nil, err
	}

	record := &entity.MedicalRecord{
		PetID:        request.PetID,
		VetID:        vetID,
		VisitDate:    visitDate,
		Diagnosis:    request.Diagnosis,
		Treatment:    request.Treatment,
		Prescription: request.Prescription,
		Notes:        request.Notes,
	}

	if err := u.recordRepo.Create(db, record); err != nil {
		u.log.Warnf("Failed to create medical record: %+v", err)
		return nil, err
	}

	return converter.MedicalRecordToResponse(record), nil
}

// ListByPet returns a pet's history. Clients may only read records for
// their own pets.
func (u *medicalRecordUseCase) ListByPet(ctx context.Context, petID, actorID uuid.UUID, actorRoleID int) (*dto.MedicalRecordListResponse, error) {
	db := u.db.WithContext(ctx)

	pet, err := u.petRepo.FindByID(db, petID)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, ErrPetNotFound
	}

	isStaff := actorRoleID == entity.RoleIDAdmin || actorRoleID == entity.RoleIDVet
	if !isStaff && pet.OwnerID != actorID {
		return nil, ErrNotPetOwner
	}

	records, err := u.recordRepo.FindByPetID(db, petID)
	if err != nil {
		u.log.Warnf("Failed to list medical records for pet %s: %+v", petID, err)
		return nil, err
	}

	return &dto.MedicalRecordListResponse{
		Records: converter.MedicalRecordsToResponses(records),
		Total:   len(records),
	}, nil
}

// Update edits a record. Only the authoring vet or an admin may edit.
func (u *medicalRecordUseCase) Update(ctx context.Context, id uuid.UUID, request *dto.UpdateMedicalRecordRequest, actorID uuid.UUID, actorRoleID int) (*dto.MedicalRecordResponse, error) {
	db := u.db.WithContext(ctx)

	record, err := u.recordRepo.FindByID(db, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}

	if record.VetID != actorID && actorRoleID != entity.RoleIDAdmin {
		return nil, ErrNotRecordAuthor
	}

	if request.Diagnosis != "" {
		record.Diagnosis = request.Diagnosis
	}
	if request.Treatment != "" {
		record.Treatment = request.Treatment
	}
	if request.Prescription != "" {
		record.Prescription = request.Prescription
	}
	if request.Notes != "" {
		record.Notes = request.Notes
	}

	if err := u.recordRepo.Update(db, record); err != nil {
		u.log.Warnf("Failed to update medical record %s: %+v", id, err)
		return nil, err
	}

	return converter.MedicalRecordToResponse(record), nil
}

func (u *medicalRecordUseCase) Delete(ctx context.Context, id, actorID uuid.UUID, actorRoleID int) error {
	db := u.db.WithContext(ctx)

	record, err := u.recordRepo.FindByID(db, id)
	if err != nil {
		return err
	}
	if record == nil {
		return ErrRecordNotFound
	}

	if record.VetID != actorID && actorRoleID != entity.RoleIDAdmin {
		return ErrNotRecordAuthor
	}

	if err := u.recordRepo.Delete(db, id); err != nil {
		u.log.Warnf("Failed to delete medical record %s: %+v", id, err)
		return err
	}

	return nil
}

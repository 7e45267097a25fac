package usecase

import (
	"context"
	"errors"
	"time"

	"vetclinic-booking/internal/converter"
	"vetclinic-booking/internal/delivery/dto"
	"vetclinic-booking/internal/domain/entity"
	"vetclinic-booking/internal/domain/repository"
	"vetclinic-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrUnavailabilityNotFound = errors.New("unavailability period not found")
	ErrNotPeriodOwner         = errors.New("unavailability period belongs to another clinician")
	ErrInvalidTimeWindow      = errors.New("end time must be after start time")
)

type UnavailabilityUseCase interface {
	Create(ctx context.Context, request *dto.CreateUnavailabilityRequest, clinicianID uuid.UUID) (*dto.UnavailabilityResponse, error)
	List(ctx context.Context, startDate, endDate string) (*dto.UnavailabilityListResponse, error)
	Delete(ctx context.Context, id int, actorID uuid.UUID, actorRoleID int) error
}

type unavailabilityUseCase struct {
	db          *gorm.DB
	log         *logrus.Logger
	unavailRepo repository.UnavailabilityRepository
	index       *service.AvailabilityIndex
}

func NewUnavailabilityUseCase(
	db *gorm.DB,
	log *logrus.Logger,
	unavailRepo repository.UnavailabilityRepository,
	index *service.AvailabilityIndex,
) UnavailabilityUseCase {
	return &unavailabilityUseCase{
		db:          db,
		log:         log,
		unavailRepo: unavailRepo,
		index:       index,
	}
}

// Create declares a block of unavailable time and invalidates the date's
// availability snapshot.
func (u *unavailabilityUseCase) Create(ctx context.Context, request *dto.CreateUnavailabilityRequest, clinicianID uuid.UUID) (*dto.UnavailabilityResponse, error) {
	date, err := time.Parse(entity.DateLayout, request.Date)
	if err != nil {
		return nil, err
	}

	period := &entity.UnavailabilityPeriod{
		ClinicianID: clinicianID,
		Date:        date,
		IsAllDay:    request.IsAllDay,
		Reason:      request.Reason,
	}

	if !request.IsAllDay {
		startMin, err := entity.ParseClockMinute(request.StartTime)
		if err != nil {
			return nil, err
		}
		endMin, err := entity.ParseClockMinute(request.EndTime)
		if err != nil {
			return nil, err
		}
		if endMin <= startMin {
			return nil, ErrInvalidTimeWindow
		}
		period.StartTime = request.StartTime
		period.EndTime = request.EndTime
	}

	if err := u.unavailRepo.Create(u.db.WithContext(ctx), period); err != nil {
		u.log.Warnf("Failed to create unavailability period: %+v", err)
		return nil, err
	}

	u.index.NotifyChange(service.ChangeEvent{Date: request.Date})

	return converter.UnavailabilityToResponse(period), nil
}

// List returns periods within an inclusive date range. An empty range
// defaults to the coming two weeks.
func (u *unavailabilityUseCase) List(ctx context.Context, startDate, endDate string) (*dto.UnavailabilityListResponse, error) {
	if startDate == "" {
		startDate = time.Now().Format(entity.DateLayout)
	}
	if endDate == "" {
		endDate = time.Now().AddDate(0, 0, 14).Format(entity.DateLayout)
	}

	if _, err := time.Parse(entity.DateLayout, startDate); err != nil {
		return nil, err
	}
	if _, err := time.Parse(entity.DateLayout, endDate); err != nil {
		return nil, err
	}

	periods, err := u.unavailRepo.FindByRange(u.db.WithContext(ctx), startDate, endDate)
	if err != nil {
		u.log.Warnf("Failed to list unavailability periods: %+v", err)
		return nil, err
	}

	return &dto.UnavailabilityListResponse{
		Periods: converter.UnavailabilitiesToResponses(periods),
		Total:   len(periods),
	}, nil
}

// Delete removes a period. Only the declaring clinician or an admin may
// remove it.
func (u *unavailabilityUseCase) Delete(ctx context.Context, id int, actorID uuid.UUID, actorRoleID int) error {
	db := u.db.WithContext(ctx)

	period, err := u.unavailRepo.FindByID(db, id)
	if err != nil {
		return err
	}
	if period == nil {
		return ErrUnavailabilityNotFound
	}

	if period.ClinicianID != actorID && actorRoleID != entity.RoleIDAdmin {
		return ErrNotPeriodOwner
	}

	if err := u.unavailRepo.Delete(db, id); err != nil {
		u.log.Warnf("Failed to delete unavailability period %d: %+v", id, err)
		return err
	}

	u.index.NotifyChange(service.ChangeEvent{Date: period.DateKey()})

	return nil
}

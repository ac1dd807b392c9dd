package usecase

import (
	"context"
	"errors"

	"medicitas-api/internal/converter"
	"medicitas-api/internal/delivery/dto"
	"medicitas-api/internal/domain/entity"
	"medicitas-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSpecialtyNotFound      = errors.New("specialty not found")
	ErrSpecialtyAlreadyExists = errors.New("specialty name already exists")
	ErrSpecialtyInUse         = errors.New("specialty has appointments and cannot be deleted")
)

type SpecialtyUsecase interface {
	Create(ctx context.Context, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	Get(ctx context.Context, id int) (*dto.SpecialtyResponse, error)
	List(ctx context.Context) (*dto.SpecialtyListResponse, error)
	Update(ctx context.Context, id int, req *dto.UpdateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	Delete(ctx context.Context, id int) error
}

type specialtyUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	specialtyRepo   repository.SpecialtyRepository
	appointmentRepo repository.AppointmentRepository
}

func NewSpecialtyUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	specialtyRepo repository.SpecialtyRepository,
	appointmentRepo repository.AppointmentRepository,
) SpecialtyUsecase {
	return &specialtyUsecase{
		db:              db,
		log:             log,
		specialtyRepo:   specialtyRepo,
		appointmentRepo: appointmentRepo,
	}
}

func (u *specialtyUsecase) Create(ctx context.Context, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	specialty := &entity.Specialty{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := u.specialtyRepo.Create(u.db.WithContext(ctx), specialty); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrSpecialtyAlreadyExists
		}
		u.log.Warnf("Failed to create specialty: %+v", err)
		return nil, err
	}

	return converter.SpecialtyToResponse(specialty), nil
}

func (u *specialtyUsecase) Get(ctx context.Context, id int) (*dto.SpecialtyResponse, error) {
	specialty, err := u.specialtyRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find specialty %d: %+v", id, err)
		return nil, err
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}

	return converter.SpecialtyToResponse(specialty), nil
}

func (u *specialtyUsecase) List(ctx context.Context) (*dto.SpecialtyListResponse, error) {
	specialties, err := u.specialtyRepo.FindAllActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list specialties: %+v", err)
		return nil, err
	}

	return &dto.SpecialtyListResponse{
		Specialties: converter.SpecialtiesToResponses(specialties),
		Total:       len(specialties),
	}, nil
}

func (u *specialtyUsecase) Update(ctx context.Context, id int, req *dto.UpdateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	specialty, err := u.specialtyRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find specialty %d: %+v", id, err)
		return nil, err
	}
	if specialty == nil {
		return nil, ErrSpecialtyNotFound
	}

	if req.Name != nil {
		specialty.Name = *req.Name
	}
	if req.Description != nil {
		specialty.Description = *req.Description
	}
	if req.IsActive != nil {
		specialty.IsActive = req.IsActive
	}

	if err := u.specialtyRepo.Update(u.db.WithContext(ctx), specialty); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrSpecialtyAlreadyExists
		}
		u.log.Warnf("Failed to update specialty %d: %+v", id, err)
		return nil, err
	}

	return converter.SpecialtyToResponse(specialty), nil
}

// Delete refuses to remove a specialty that appointments still reference.
// Deactivate it instead to hide it from new bookings.
func (u *specialtyUsecase) Delete(ctx context.Context, id int) error {
	count, err := u.appointmentRepo.CountBySpecialty(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to count appointments for specialty %d: %+v", id, err)
		return err
	}
	if count > 0 {
		return ErrSpecialtyInUse
	}

	affected, err := u.specialtyRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		if isForeignKeyError(err, "specialty") {
			return ErrSpecialtyInUse
		}
		u.log.Warnf("Failed to delete specialty %d: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrSpecialtyNotFound
	}
	return nil
}

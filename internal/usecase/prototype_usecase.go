package usecase

import (
	"context"
	"errors"

	"medicitas-api/internal/converter"
	"medicitas-api/internal/delivery/dto"
	"medicitas-api/internal/domain/entity"
	"medicitas-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrPrototypeNotFound = errors.New("prototype not found")

type PrototypeUsecase interface {
	Create(ctx context.Context, creatorID uuid.UUID, req *dto.CreatePrototypeRequest) (*dto.PrototypeResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PrototypeResponse, error)
	List(ctx context.Context, filter *entity.PrototypeFilter) (*dto.PrototypeListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePrototypeRequest) (*dto.PrototypeResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type prototypeUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	prototypeRepo repository.PrototypeRepository
}

func NewPrototypeUsecase(db *gorm.DB, log *logrus.Logger, prototypeRepo repository.PrototypeRepository) PrototypeUsecase {
	return &prototypeUsecase{
		db:            db,
		log:           log,
		prototypeRepo: prototypeRepo,
	}
}

func (u *prototypeUsecase) Create(ctx context.Context, creatorID uuid.UUID, req *dto.CreatePrototypeRequest) (*dto.PrototypeResponse, error) {
	prototype := &entity.Prototype{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Device:      req.Device,
		ImageURL:    req.ImageURL,
		CreatedBy:   creatorID,
	}

	if err := u.prototypeRepo.Create(u.db.WithContext(ctx), prototype); err != nil {
		u.log.Warnf("Failed to create prototype: %+v", err)
		return nil, err
	}

	return converter.PrototypeToResponse(prototype), nil
}

func (u *prototypeUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.PrototypeResponse, error) {
	prototype, err := u.prototypeRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find prototype %s: %+v", id, err)
		return nil, err
	}
	if prototype == nil {
		return nil, ErrPrototypeNotFound
	}

	return converter.PrototypeToResponse(prototype), nil
}

func (u *prototypeUsecase) List(ctx context.Context, filter *entity.PrototypeFilter) (*dto.PrototypeListResponse, error) {
	prototypes, err := u.prototypeRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list prototypes: %+v", err)
		return nil, err
	}

	return &dto.PrototypeListResponse{
		Prototypes: converter.PrototypesToResponses(prototypes),
		Total:      len(prototypes),
	}, nil
}

func (u *prototypeUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdatePrototypeRequest) (*dto.PrototypeResponse, error) {
	prototype, err := u.prototypeRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find prototype %s: %+v", id, err)
		return nil, err
	}
	if prototype == nil {
		return nil, ErrPrototypeNotFound
	}

	if req.Title != nil {
		prototype.Title = *req.Title
	}
	if req.Description != nil {
		prototype.Description = *req.Description
	}
	if req.Category != nil {
		prototype.Category = *req.Category
	}
	if req.Device != nil {
		prototype.Device = *req.Device
	}
	if req.ImageURL != nil {
		prototype.ImageURL = *req.ImageURL
	}

	if err := u.prototypeRepo.Update(u.db.WithContext(ctx), prototype); err != nil {
		u.log.Warnf("Failed to update prototype %s: %+v", id, err)
		return nil, err
	}

	return converter.PrototypeToResponse(prototype), nil
}

func (u *prototypeUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := u.prototypeRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete prototype %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrPrototypeNotFound
	}
	return nil
}

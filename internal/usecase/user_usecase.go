package usecase

import (
	"context"
	"time"

	"medicitas-api/internal/converter"
	"medicitas-api/internal/delivery/dto"
	"medicitas-api/internal/domain/entity"
	"medicitas-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type UserUsecase interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	List(ctx context.Context, filter *entity.UserFilter) (*dto.UserListResponse, error)
	ListPractitioners(ctx context.Context, specialty string) (*dto.UserListResponse, error)
	ListPatients(ctx context.Context) (*dto.UserListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id uuid.UUID) (deactivated bool, err error)
}

type userUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	userRepo        repository.UserRepository
	appointmentRepo repository.AppointmentRepository
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
) UserUsecase {
	return &userUsecase{
		db:              db,
		log:             log,
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
	}
}

func (u *userUsecase) Create(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !entity.IsValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	hashedPassword, err := bcryptHash(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	isActive := req.IsActive
	if isActive == nil {
		active := true
		isActive = &active
	}

	user := &entity.User{
		Name:           req.Name,
		Email:          req.Email,
		Password:       hashedPassword,
		Role:           req.Role,
		BirthDate:      &birthDate,
		Address:        req.Address,
		Phone:          req.Phone,
		EmergencyPhone: req.EmergencyPhone,
		Sex:            req.Sex,
		Disability:     req.Disability,
		MaritalStatus:  req.MaritalStatus,
		Department:     req.Department,
		Specialty:      req.Specialty,
		LicenseNumber:  req.LicenseNumber,
		IsActive:       isActive,
	}

	if err := u.userRepo.Create(u.db.WithContext(ctx), user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", id, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) List(ctx context.Context, filter *entity.UserFilter) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: len(users),
	}, nil
}

// ListPractitioners returns active clinical staff, optionally narrowed to
// a specialty name. This feeds booking forms.
func (u *userUsecase) ListPractitioners(ctx context.Context, specialty string) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindPractitionersBySpecialty(u.db.WithContext(ctx), specialty)
	if err != nil {
		u.log.Warnf("Failed to list practitioners: %+v", err)
		return nil, err
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: len(users),
	}, nil
}

func (u *userUsecase) ListPatients(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindPatients(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: len(users),
	}, nil
}

func (u *userUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", id, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := applyUserPatch(user, req); err != nil {
		return nil, err
	}

	if err := u.userRepo.Update(u.db.WithContext(ctx), user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update user %s: %+v", id, err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

// Delete removes a user with no appointment history outright. A user
// that appointments reference is deactivated instead, which keeps the
// history intact and blocks further logins.
func (u *userUsecase) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	count, err := u.appointmentRepo.CountByUser(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to count appointments for user %s: %+v", id, err)
		return false, err
	}

	if count > 0 {
		affected, err := u.userRepo.Deactivate(u.db.WithContext(ctx), id)
		if err != nil {
			u.log.Warnf("Failed to deactivate user %s: %+v", id, err)
			return false, err
		}
		if affected == 0 {
			return false, ErrUserNotFound
		}
		return true, nil
	}

	affected, err := u.userRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete user %s: %+v", id, err)
		return false, err
	}
	if affected == 0 {
		return false, ErrUserNotFound
	}
	return false, nil
}

func applyUserPatch(user *entity.User, req *dto.UpdateUserRequest) error {
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hashed, err := bcryptHash(*req.Password)
		if err != nil {
			return err
		}
		user.Password = hashed
	}
	if req.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return ErrInvalidDateFormat
		}
		user.BirthDate = &birthDate
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.EmergencyPhone != nil {
		user.EmergencyPhone = *req.EmergencyPhone
	}
	if req.Sex != nil {
		user.Sex = *req.Sex
	}
	if req.Disability != nil {
		user.Disability = *req.Disability
	}
	if req.MaritalStatus != nil {
		user.MaritalStatus = *req.MaritalStatus
	}
	if req.Role != nil {
		if !entity.IsValidRole(*req.Role) {
			return ErrInvalidRole
		}
		user.Role = *req.Role
	}
	if req.Department != nil {
		user.Department = *req.Department
	}
	if req.Specialty != nil {
		user.Specialty = *req.Specialty
	}
	if req.LicenseNumber != nil {
		user.LicenseNumber = *req.LicenseNumber
	}
	if req.IsActive != nil {
		user.IsActive = req.IsActive
	}
	return nil
}

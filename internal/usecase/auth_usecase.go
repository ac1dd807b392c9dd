package usecase

import (
	"context"
	"errors"
	"time"

	"medicitas-api/internal/converter"
	"medicitas-api/internal/delivery/dto"
	"medicitas-api/internal/domain/entity"
	"medicitas-api/internal/domain/repository"
	"medicitas-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveAccount    = errors.New("account is deactivated")
	ErrSessionRevoked     = errors.New("session has been revoked")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("unknown role")
	ErrInvalidDateFormat  = errors.New("invalid date format, use YYYY-MM-DD")
)

// SessionCache is the Redis-backed fast path for session liveness.
// The sessions table remains the source of truth; cache failures are
// logged and the database answers instead.
type SessionCache interface {
	Store(ctx context.Context, tokenID string, ttl time.Duration) error
	Exists(ctx context.Context, tokenID string) (bool, error)
	Drop(ctx context.Context, tokenID string) error
}

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, tokenID string) error
	RefreshToken(ctx context.Context, rawToken string) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	ValidateSession(ctx context.Context, tokenID string) error
}

type authUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtService  *jwt.JWTService
	cache       SessionCache
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	jwtService *jwt.JWTService,
	cache SessionCache,
) AuthUsecase {
	return &authUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
		cache:       cache,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
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

	active := true
	user := &entity.User{
		Name:           req.Name,
		Email:          req.Email,
		Password:       hashedPassword,
		Role:           req.Role,
		IsActive:       &active,
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

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcryptCompare(user.Password, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.Active() {
		return nil, ErrInactiveAccount
	}

	token, tokenID, expiresAt, err := u.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		u.log.Warnf("Failed to generate token: %+v", err)
		return nil, err
	}

	session := &entity.Session{
		UserID:    user.ID,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}

	if err := u.sessionRepo.Create(u.db.WithContext(ctx), session); err != nil {
		u.log.Warnf("Failed to create session: %+v", err)
		return nil, err
	}

	if err := u.cache.Store(ctx, tokenID, u.jwtService.GetTokenExpiry()); err != nil {
		// Cache is an optimization only; the session row already exists.
		u.log.Warnf("Failed to cache session %s: %+v", tokenID, err)
	}

	return &dto.TokenResponse{
		Token:     token,
		ExpiresIn: int64(u.jwtService.GetTokenExpiry().Seconds()),
		User:      converter.UserToResponse(user),
	}, nil
}

// ValidateSession is the server-side half of token validation: a token
// whose signature and expiry check out is still honored only while its
// session row is active and unexpired. This is what makes logout take
// effect immediately.
func (u *authUsecase) ValidateSession(ctx context.Context, tokenID string) error {
	hit, err := u.cache.Exists(ctx, tokenID)
	if err != nil {
		u.log.Warnf("Session cache lookup failed, falling back to database: %+v", err)
	} else if hit {
		return nil
	}

	session, err := u.sessionRepo.FindActiveByTokenID(u.db.WithContext(ctx), tokenID)
	if err != nil {
		u.log.Warnf("Failed to look up session %s: %+v", tokenID, err)
		return err
	}
	if session == nil || !session.Valid(time.Now()) {
		return ErrSessionRevoked
	}

	// Re-prime the cache for the remaining lifetime.
	if ttl := time.Until(session.ExpiresAt); ttl > 0 {
		if err := u.cache.Store(ctx, tokenID, ttl); err != nil {
			u.log.Warnf("Failed to re-cache session %s: %+v", tokenID, err)
		}
	}

	return nil
}

func (u *authUsecase) Logout(ctx context.Context, tokenID string) error {
	// Idempotent: deactivating an unknown or already-revoked token
	// affects zero rows and succeeds.
	if _, err := u.sessionRepo.Deactivate(u.db.WithContext(ctx), tokenID); err != nil {
		u.log.Warnf("Failed to deactivate session %s: %+v", tokenID, err)
		return err
	}

	if err := u.cache.Drop(ctx, tokenID); err != nil {
		u.log.Warnf("Failed to drop cached session %s: %+v", tokenID, err)
	}

	return nil
}

// RefreshToken rotates the token on an active session. The presented
// token may be expired but must carry a valid signature; the session row
// keeps its identity and gets a fresh token id and expiration.
func (u *authUsecase) RefreshToken(ctx context.Context, rawToken string) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ParseExpired(rawToken)
	if err != nil {
		return nil, err
	}

	session, err := u.sessionRepo.FindActiveByTokenID(u.db.WithContext(ctx), claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to look up session %s: %+v", claims.TokenID, err)
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionRevoked
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), session.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", session.UserID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.Active() {
		return nil, ErrInactiveAccount
	}

	token, tokenID, expiresAt, err := u.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		u.log.Warnf("Failed to generate token: %+v", err)
		return nil, err
	}

	oldTokenID := session.TokenID
	session.TokenID = tokenID
	session.ExpiresAt = expiresAt

	if err := u.sessionRepo.Update(u.db.WithContext(ctx), session); err != nil {
		u.log.Warnf("Failed to rotate session %s: %+v", oldTokenID, err)
		return nil, err
	}

	if err := u.cache.Drop(ctx, oldTokenID); err != nil {
		u.log.Warnf("Failed to drop cached session %s: %+v", oldTokenID, err)
	}
	if err := u.cache.Store(ctx, tokenID, u.jwtService.GetTokenExpiry()); err != nil {
		u.log.Warnf("Failed to cache session %s: %+v", tokenID, err)
	}

	return &dto.TokenResponse{
		Token:     token,
		ExpiresIn: int64(u.jwtService.GetTokenExpiry().Seconds()),
		User:      converter.UserToResponse(user),
	}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

package usecase

import (
	"context"
	"testing"
	"time"

	"medicitas-api/config"
	"medicitas-api/internal/delivery/dto"
	"medicitas-api/internal/domain/entity"
	"medicitas-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{
		Secret:      "test-secret",
		TokenExpiry: 24 * time.Hour,
	})
}

func boolPtr(b bool) *bool { return &b }

func activeUser(t *testing.T, password string) *entity.User {
	t.Helper()
	hashed, err := bcryptHash(password)
	require.NoError(t, err)
	return &entity.User{
		ID:       uuid.New(),
		Name:     "Ana Torres",
		Email:    "ana@example.com",
		Password: hashed,
		Role:     entity.RolePatient,
		IsActive: boolPtr(true),
	}
}

func TestAuthUsecase_Register_UnknownRole(t *testing.T) {
	db, _ := newTestDB(t)
	uc := NewAuthUsecase(db, newTestLogger(), new(MockUserRepository), new(MockSessionRepository), newTestJWTService(), new(MockSessionCache))

	_, err := uc.Register(context.Background(), &dto.RegisterRequest{
		Name:      "Ana Torres",
		Email:     "ana@example.com",
		Password:  "secret123",
		BirthDate: "1990-05-01",
		Role:      "astronaut",
	})

	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAuthUsecase_Register_DuplicateEmail(t *testing.T) {
	db, _ := newTestDB(t)
	userRepo := new(MockUserRepository)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{
		Code:           "23505",
		ConstraintName: "uq_users_email",
	})

	uc := NewAuthUsecase(db, newTestLogger(), userRepo, new(MockSessionRepository), newTestJWTService(), new(MockSessionCache))

	_, err := uc.Register(context.Background(), &dto.RegisterRequest{
		Name:      "Ana Torres",
		Email:     "ana@example.com",
		Password:  "secret123",
		BirthDate: "1990-05-01",
		Role:      entity.RolePatient,
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthUsecase_Login_UnknownEmail(t *testing.T) {
	db, _ := newTestDB(t)
	userRepo := new(MockUserRepository)
	userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	uc := NewAuthUsecase(db, newTestLogger(), userRepo, new(MockSessionRepository), newTestJWTService(), new(MockSessionCache))

	_, err := uc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	db, _ := newTestDB(t)
	user := activeUser(t, "secret123")
	userRepo := new(MockUserRepository)
	userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)

	uc := NewAuthUsecase(db, newTestLogger(), userRepo, new(MockSessionRepository), newTestJWTService(), new(MockSessionCache))

	_, err := uc.Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: "not-the-password"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthUsecase_Login_InactiveAccount(t *testing.T) {
	db, _ := newTestDB(t)
	user := activeUser(t, "secret123")
	user.IsActive = boolPtr(false)
	userRepo := new(MockUserRepository)
	userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)

	uc := NewAuthUsecase(db, newTestLogger(), userRepo, new(MockSessionRepository), newTestJWTService(), new(MockSessionCache))

	_, err := uc.Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: "secret123"})

	assert.ErrorIs(t, err, ErrInactiveAccount)
}

func TestAuthUsecase_Login_CreatesSessionAndCachesIt(t *testing.T) {
	db, _ := newTestDB(t)
	user := activeUser(t, "secret123")

	userRepo := new(MockUserRepository)
	userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)

	sessionRepo := new(MockSessionRepository)
	sessionRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *entity.Session) bool {
		return s.UserID == user.ID && s.TokenID != "" && s.ExpiresAt.After(time.Now())
	})).Return(nil)

	cache := new(MockSessionCache)
	cache.On("Store", mock.Anything, mock.Anything, 24*time.Hour).Return(nil)

	uc := NewAuthUsecase(db, newTestLogger(), userRepo, sessionRepo, newTestJWTService(), cache)

	token, err := uc.Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: "secret123"})

	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.Equal(t, int64((24 * time.Hour).Seconds()), token.ExpiresIn)
	require.NotNil(t, token.User)
	assert.Equal(t, user.Email, token.User.Email)
	sessionRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestAuthUsecase_Login_SucceedsWhenCacheIsDown(t *testing.T) {
	db, _ := newTestDB(t)
	user := activeUser(t, "secret123")

	userRepo := new(MockUserRepository)
	userRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)

	sessionRepo := new(MockSessionRepository)
	sessionRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	cache := new(MockSessionCache)
	cache.On("Store", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	uc := NewAuthUsecase(db, newTestLogger(), userRepo, sessionRepo, newTestJWTService(), cache)

	token, err := uc.Login(context.Background(), &dto.LoginRequest{Email: user.Email, Password: "secret123"})

	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
}

func TestAuthUsecase_ValidateSession_CacheHitSkipsDatabase(t *testing.T) {
	db, _ := newTestDB(t)
	sessionRepo := new(MockSessionRepository)
	cache := new(MockSessionCache)
	cache.On("Exists", mock.Anything, "tok-1").Return(true, nil)

	uc := NewAuthUsecase(db, newTestLogger(), new(MockUserRepository), sessionRepo, newTestJWTService(), cache)

	err := uc.ValidateSession(context.Background(), "tok-1")

	require.NoError(t, err)
	sessionRepo.AssertNotCalled(t, "FindActiveByTokenID", mock.Anything, mock.Anything)
}

func TestAuthUsecase_ValidateSession_RevokedSession(t *testing.T) {
	db, _ := newTestDB(t)
	sessionRepo := new(MockSessionRepository)
	sessionRepo.On("FindActiveByTokenID", mock.Anything, "tok-1").Return(nil, nil)

	cache := new(MockSessionCache)
	cache.On("Exists", mock.Anything, "tok-1").Return(false, nil)

	uc := NewAuthUsecase(db, newTestLogger(), new(MockUserRepository), sessionRepo, newTestJWTService(), cache)

	err := uc.ValidateSession(context.Background(), "tok-1")

	assert.ErrorIs(t, err, ErrSessionRevoked)
}

func TestAuthUsecase_ValidateSession_ExpiredRow(t *testing.T) {
	db, _ := newTestDB(t)
	session := &entity.Session{
		UserID:    uuid.New(),
		TokenID:   "tok-1",
		ExpiresAt: time.Now().Add(-time.Minute),
		Active:    boolPtr(true),
	}
	sessionRepo := new(MockSessionRepository)
	sessionRepo.On("FindActiveByTokenID", mock.Anything, "tok-1").Return(session, nil)

	cache := new(MockSessionCache)
	cache.On("Exists", mock.Anything, "tok-1").Return(false, nil)

	uc := NewAuthUsecase(db, newTestLogger(), new(MockUserRepository), sessionRepo, newTestJWTService(), cache)

	err := uc.ValidateSession(context.Background(), "tok-1")

	assert.ErrorIs(t, err, ErrSessionRevoked)
}

func TestAuthUsecase_ValidateSession_DatabaseFallbackReprimesCache(t *testing.T) {
	db, _ := newTestDB(t)
	session := &entity.Session{
		UserID:    uuid.New(),
		TokenID:   "tok-1",
		ExpiresAt: time.Now().Add(time.Hour),
		Active:    boolPtr(true),
	}
	sessionRepo := new(MockSessionRepository)
	sessionRepo.On("FindActiveByTokenID", mock.Anything, "tok-1").Return(session, nil)

	cache := new(MockSessionCache)
	cache.On("Exists", mock.Anything, "tok-1").Return(false, nil)
	cache.On("Store", mock.Anything, "tok-1", mock.Anything).Return(nil)

	uc := NewAuthUsecase(db, newTestLogger(), new(MockUserRepository), sessionRepo, newTestJWTService(), cache)

	err := uc.ValidateSession(context.Background(), "tok-1")

	require.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestAuthUsecase_Logout_IsIdempotent(t *testing.T) {
	db, _ := newTestDB(t)
	sessionRepo := new(MockSessionRepository)
	sessionRepo.On("Deactivate", mock.Anything, "tok-1").Return(int64(0), nil)

	cache := new(MockSessionCache)
	cache.On("Drop", mock.Anything, "tok-1").Return(nil)

	uc := NewAuthUsecase(db, newTestLogger(), new(MockUserRepository), sessionRepo, newTestJWTService(), cache)

	assert.NoError(t, uc.Logout(context.Background(), "tok-1"))
	assert.NoError(t, uc.Logout(context.Background(), "tok-1"))
}

func TestAuthUsecase_RefreshToken_RevokedSession(t *testing.T) {
	db, _ := newTestDB(t)
	jwtService := newTestJWTService()
	user := activeUser(t, "secret123")
	rawToken, tokenID, _, err := jwtService.GenerateToken(user.ID, user.Email, user.Role)
	require.NoError(t, err)

	sessionRepo := new(MockSessionRepository)
	sessionRepo.On("FindActiveByTokenID", mock.Anything, tokenID).Return(nil, nil)

	uc := NewAuthUsecase(db, newTestLogger(), new(MockUserRepository), sessionRepo, jwtService, new(MockSessionCache))

	_, err = uc.RefreshToken(context.Background(), rawToken)

	assert.ErrorIs(t, err, ErrSessionRevoked)
}

func TestAuthUsecase_RefreshToken_RotatesTokenID(t *testing.T) {
	db, _ := newTestDB(t)
	jwtService := newTestJWTService()
	user := activeUser(t, "secret123")
	rawToken, oldTokenID, _, err := jwtService.GenerateToken(user.ID, user.Email, user.Role)
	require.NoError(t, err)

	session := &entity.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenID:   oldTokenID,
		ExpiresAt: time.Now().Add(time.Hour),
		Active:    boolPtr(true),
	}

	sessionRepo := new(MockSessionRepository)
	sessionRepo.On("FindActiveByTokenID", mock.Anything, oldTokenID).Return(session, nil)
	sessionRepo.On("Update", mock.Anything, mock.MatchedBy(func(s *entity.Session) bool {
		return s.ID == session.ID && s.TokenID != oldTokenID
	})).Return(nil)

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	cache := new(MockSessionCache)
	cache.On("Drop", mock.Anything, oldTokenID).Return(nil)
	cache.On("Store", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	uc := NewAuthUsecase(db, newTestLogger(), userRepo, sessionRepo, jwtService, cache)

	token, err := uc.RefreshToken(context.Background(), rawToken)

	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.NotEqual(t, rawToken, token.Token)
	sessionRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestAuthUsecase_RefreshToken_GarbageToken(t *testing.T) {
	db, _ := newTestDB(t)
	uc := NewAuthUsecase(db, newTestLogger(), new(MockUserRepository), new(MockSessionRepository), newTestJWTService(), new(MockSessionCache))

	_, err := uc.RefreshToken(context.Background(), "not.a.token")

	assert.ErrorIs(t, err, jwt.ErrMalformed)
}

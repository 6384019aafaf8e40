package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/coaching-center-api/internal/models"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
)

const notAuthorizedMessage = "not authorized to access this route"

type adminRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	FindByID(ctx context.Context, id string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
	UpdatePassword(ctx context.Context, id, hash string) error
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	Secret string
	Expiry time.Duration
}

// AuthService provides admin authentication use cases.
type AuthService struct {
	repo      adminRepository
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo adminRepository, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if config.Expiry <= 0 {
		config.Expiry = 24 * time.Hour
	}
	return &AuthService{repo: repo, validator: validate, logger: logger, config: config, now: time.Now}
}

// Login authenticates an admin and issues a signed token. Unknown emails and
// wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}

	admin, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch admin")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	issuedAt := s.now().UTC()
	token, err := s.generateToken(admin, issuedAt)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create token")
	}

	return &models.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.config.Expiry.Seconds()),
		Admin:     *admin,
		IssuedAt:  issuedAt,
	}, nil
}

// ValidateToken parses and validates a token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, notAuthorizedMessage)
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || claims.AdminID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, notAuthorizedMessage)
	}
	return claims, nil
}

// Authenticate validates the token and loads the admin it names. Every
// failure is reported as unauthorized.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.Admin, *models.JWTClaims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, nil, err
	}
	admin, err := s.repo.FindByID(ctx, claims.AdminID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("failed to load admin for token", zap.Error(err))
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, notAuthorizedMessage)
	}
	return admin, claims, nil
}

// Me returns the admin for the given id.
func (s *AuthService) Me(ctx context.Context, adminID string) (*models.Admin, error) {
	admin, err := s.repo.FindByID(ctx, adminID)
	if err != nil {
		return nil, storeError(err, "admin not found", "load admin")
	}
	return admin, nil
}

// ChangePassword re-verifies the current password before storing the new one.
func (s *AuthService) ChangePassword(ctx context.Context, adminID string, req models.ChangePasswordRequest) error {
	if err := validateStruct(s.validator, req); err != nil {
		return err
	}

	admin, err := s.repo.FindByID(ctx, adminID)
	if err != nil {
		return storeError(err, "admin not found", "load admin")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return appErrors.Clone(appErrors.ErrUnauthorized, "current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	if err := s.repo.UpdatePassword(ctx, adminID, string(hash)); err != nil {
		return storeError(err, "admin not found", "update password")
	}
	return nil
}

// EnsureAdmin creates the admin account unless one with the same email
// exists. It reports whether a record was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, req models.SeedAdminRequest) (bool, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := validateStruct(s.validator, req); err != nil {
		return false, err
	}

	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return false, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check admin")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	admin := &models.Admin{Email: req.Email, Name: req.Name, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, admin); err != nil {
		if errors.Is(err, appErrors.ErrDuplicate) {
			return false, nil
		}
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create admin")
	}
	return true, nil
}

func (s *AuthService) generateToken(admin *models.Admin, issuedAt time.Time) (string, error) {
	claims := &models.JWTClaims{
		AdminID: admin.ID,
		Email:   admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.Expiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

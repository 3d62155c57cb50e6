package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/examly-api/internal/apperror"
	"github.com/saulo-duarte/examly-api/internal/auth"
	"github.com/saulo-duarte/examly-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = apperror.Validation("email already registered")
	ErrInvalidCredentials = apperror.Unauthenticated("invalid email or password")
	ErrUserNotFound       = apperror.NotFound("user not found")

	ErrAdminSignupDisabled = apperror.Forbidden("admin self-registration is disabled")
)

type UserService interface {
	Register(ctx context.Context, dto RegisterDTO) (*AuthResponse, error)
	Login(ctx context.Context, dto LoginDTO) (*AuthResponse, error)
	GetCurrent(ctx context.Context) (*UserResponse, error)
}

type userService struct {
	repo             UserRepository
	tokenTTL         time.Duration
	allowAdminSignup bool
}

func NewService(repo UserRepository, tokenTTL time.Duration, allowAdminSignup bool) UserService {
	return &userService{repo: repo, tokenTTL: tokenTTL, allowAdminSignup: allowAdminSignup}
}

func (s *userService) Register(ctx context.Context, dto RegisterDTO) (*AuthResponse, error) {
	log := config.WithContext(ctx)

	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	dto.Name = strings.TrimSpace(dto.Name)
	if err := config.Validate(dto); err != nil {
		return nil, err
	}

	role := auth.RoleStudent
	if dto.Role != "" {
		role = auth.Role(dto.Role)
	}
	if role == auth.RoleAdmin && !s.allowAdminSignup {
		log.WithField("email", dto.Email).Warn("Admin self-registration rejected")
		return nil, ErrAdminSignupDisabled
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Name:         dto.Name,
		Email:        dto.Email,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			log.WithField("email", dto.Email).Warn("Registration with existing email")
			return nil, ErrEmailTaken
		}
		log.WithError(err).Error("Failed to create user")
		return nil, err
	}

	log.WithField("new_user_id", u.ID).Info("User registered")
	return s.issue(u)
}

func (s *userService) Login(ctx context.Context, dto LoginDTO) (*AuthResponse, error) {
	log := config.WithContext(ctx)

	dto.Email = strings.ToLower(strings.TrimSpace(dto.Email))
	if err := config.Validate(dto); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, dto.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.WithField("email", dto.Email).Warn("Login for unknown email")
			return nil, ErrInvalidCredentials
		}
		log.WithError(err).Error("Failed to find user by email")
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		log.WithField("login_user_id", u.ID).Warn("Login with wrong password")
		return nil, ErrInvalidCredentials
	}

	return s.issue(u)
}

func (s *userService) GetCurrent(ctx context.Context) (*UserResponse, error) {
	log := config.WithContext(ctx)

	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, auth.ErrUnauthenticated
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUserNotFound
		}
		log.WithError(err).Error("Failed to load current user")
		return nil, err
	}

	resp := ToResponse(u)
	return &resp, nil
}

func (s *userService) issue(u *User) (*AuthResponse, error) {
	token, err := auth.GenerateJWT(u.ID.String(), string(u.Role), s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:     token,
		ExpiresIn: int64(s.tokenTTL.Seconds()),
		User:      ToResponse(u),
	}, nil
}

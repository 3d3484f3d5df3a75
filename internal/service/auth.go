package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"silent-library-backend/internal/domain"
	"silent-library-backend/internal/logger"
	"silent-library-backend/internal/repository"
	"silent-library-backend/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrResetTokenInvalid  = errors.New("reset token is invalid or expired")
)

const resetTokenTTL = 24 * time.Hour

type authService struct {
	userRepo  repository.UserRepository
	resetRepo repository.PasswordResetRepository
	tokenMgr  security.TokenManager
	emailSvc  EmailService
}

func NewAuthService(
	userRepo repository.UserRepository,
	resetRepo repository.PasswordResetRepository,
	tokenMgr security.TokenManager,
	emailSvc EmailService,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		resetRepo: resetRepo,
		tokenMgr:  tokenMgr,
		emailSvc:  emailSvc,
	}
}

func (s *authService) Register(ctx context.Context, username, email, password, firstName, lastName string, dateOfBirth *time.Time) (*domain.User, error) {
	if username == "" || email == "" {
		return nil, errors.New("username and email are required")
	}
	if err := security.ValidatePassword(password); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		DateOfBirth:  dateOfBirth,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Best effort; registration succeeds even if the welcome mail bounces.
	if err := s.emailSvc.SendRegistrationConfirmation(ctx, user.Email, user.FirstName); err != nil {
		logger.Warn("welcome email failed", "user_id", user.ID, "error", err)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, string, *domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", nil, ErrInvalidCredentials
		}
		return "", "", nil, err
	}
	if !user.IsActive {
		return "", "", nil, ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	access, err := s.tokenMgr.GenerateAccessToken(user.ID, user.Email, user.IsStaff)
	if err != nil {
		return "", "", nil, err
	}
	refresh, err := s.tokenMgr.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", nil, err
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		logger.Warn("last login update failed", "user_id", user.ID, "error", err)
	}

	return access, refresh, user, nil
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokenMgr.ValidateToken(refresh)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", err
	}
	if !user.IsActive {
		return "", "", ErrAccountDisabled
	}

	access, err := s.tokenMgr.GenerateAccessToken(user.ID, user.Email, user.IsStaff)
	if err != nil {
		return "", "", err
	}
	newRefresh, err := s.tokenMgr.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, newRefresh, nil
}

func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Do not reveal whether the address exists.
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}

	reset := &domain.PasswordReset{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresOn: time.Now().Add(resetTokenTTL),
	}
	if err := s.resetRepo.Create(ctx, reset); err != nil {
		return err
	}

	return s.emailSvc.SendPasswordReset(ctx, user.Email, user.FirstName, reset.Token)
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	reset, err := s.resetRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrResetTokenInvalid
		}
		return err
	}
	if reset.UsedOn != nil || time.Now().After(reset.ExpiresOn) {
		return ErrResetTokenInvalid
	}

	if err := security.ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePassword(ctx, reset.UserID, string(hash)); err != nil {
		return err
	}
	return s.resetRepo.MarkUsed(ctx, reset.ID)
}

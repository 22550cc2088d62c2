package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ruedo-cms/logging"
	"ruedo-cms/metrics"
	"ruedo-cms/models"
	"ruedo-cms/repositories"
)

const msgEmailTaken = "Ya existe un usuario con este correo."

type AuthService interface {
	Register(req models.RegisterRequest) (*models.Profile, error)
	Login(req models.LoginRequest) (*models.LoginResponse, error)
	Refresh(req models.RefreshRequest) (*models.TokenPair, error)
	Logout(req models.RefreshRequest) error
	ChangePassword(user *models.User, req models.ChangePasswordRequest) error
	GetUserByID(id uint) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
	tokens   TokenService
}

func NewAuthService(userRepo repositories.UserRepository, tokens TokenService) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

// Register always creates a regular, active account whatever role was sent.
func (s *authService) Register(req models.RegisterRequest) (*models.Profile, error) {
	if req.Password != req.Password2 {
		return nil, models.NewValidationError("password", models.MsgPasswordsDontMatch)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, models.ErrorConflict{Message: msgEmailTaken}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError(err, msgEmailTaken)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     email,
		Password:  string(hashedPassword),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Phone:     req.Phone,
		City:      strings.TrimSpace(req.City),
		Role:      models.RoleRegular,
		Interests: []string{},
		IsActive:  true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, storeError(err, msgEmailTaken)
	}

	if req.Role != "" && req.Role != models.RoleRegular {
		logging.Info().Uint("user_id", user.ID).Str("requested_role", string(req.Role)).Msg("ignored role on registration")
	}
	profile := user.Profile()
	return &profile, nil
}

// Login rejects unknown emails, wrong passwords and inactive accounts with
// the same message.
func (s *authService) Login(req models.LoginRequest) (*models.LoginResponse, error) {
	invalid := models.ErrorUnauthorized{Message: models.MsgInvalidCredentials}

	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.RecordLoginAttempt("unknown_user")
			return nil, invalid
		}
		return nil, storeError(err, "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		metrics.RecordLoginAttempt("bad_password")
		return nil, invalid
	}
	if !user.IsActive {
		metrics.RecordLoginAttempt("inactive")
		return nil, invalid
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		logging.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to record last login")
	} else {
		user.LastLogin = &now
	}
	metrics.RecordLoginAttempt("success")

	return &models.LoginResponse{TokenPair: pair, User: user.Profile()}, nil
}

func (s *authService) Refresh(req models.RefreshRequest) (*models.TokenPair, error) {
	pair, err := s.tokens.Rotate(req.Refresh)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

func (s *authService) Logout(req models.RefreshRequest) error {
	return s.tokens.Revoke(req.Refresh)
}

// ChangePassword leaves other sessions untouched.
func (s *authService) ChangePassword(user *models.User, req models.ChangePasswordRequest) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return models.NewValidationError("password_actual", models.MsgWrongCurrentPassword)
	}
	if req.NewPassword != req.NewPassword2 {
		return models.NewValidationError("password_nuevo", models.MsgPasswordsDontMatch)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	return storeError(s.userRepo.Update(user), "")
}

func (s *authService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

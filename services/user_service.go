package services

import (
	"strings"

	"ruedo-cms/authz"
	"ruedo-cms/logging"
	"ruedo-cms/models"
	"ruedo-cms/repositories"
)

type UserService interface {
	List(principal *models.User, page models.Page) ([]models.Profile, int64, error)
	Get(principal *models.User, id uint) (*models.Profile, error)
	Update(principal *models.User, id uint, req models.ProfileUpdateRequest) (*models.Profile, error)
	Delete(principal *models.User, id uint) error
}

type userService struct {
	userRepo repositories.UserRepository
	engine   *authz.Engine
}

func NewUserService(userRepo repositories.UserRepository, engine *authz.Engine) UserService {
	return &userService{userRepo: userRepo, engine: engine}
}

func (s *userService) List(principal *models.User, page models.Page) ([]models.Profile, int64, error) {
	if _, dec := s.engine.CanList(principal, authz.ResourceUser); !dec.Allowed() {
		return nil, 0, dec.Err()
	}
	users, total, err := s.userRepo.List(page)
	if err != nil {
		return nil, 0, storeError(err, "")
	}
	profiles := make([]models.Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile())
	}
	return profiles, total, nil
}

func (s *userService) Get(principal *models.User, id uint) (*models.Profile, error) {
	target, err := s.load(principal, id)
	if err != nil {
		return nil, err
	}
	if dec := s.engine.CanReadOne(principal, authz.ResourceUser, target); !dec.Allowed() {
		return nil, dec.Err()
	}
	profile := target.Profile()
	return &profile, nil
}

// Update applies a profile edit. Role and active flag are silently dropped
// unless the principal is an admin.
func (s *userService) Update(principal *models.User, id uint, req models.ProfileUpdateRequest) (*models.Profile, error) {
	target, err := s.load(principal, id)
	if err != nil {
		return nil, err
	}
	if dec := s.engine.CanEditProfile(principal, target); !dec.Allowed() {
		return nil, dec.Err()
	}

	s.engine.GuardProfileUpdate(principal, &req)
	if req.Role != nil && !req.Role.Valid() {
		return nil, models.NewValidationError("rol", "Rol no válido.")
	}

	if req.FirstName != nil {
		target.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		target.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		target.Phone = *req.Phone
	}
	if req.City != nil {
		target.City = strings.TrimSpace(*req.City)
	}
	if req.Avatar != nil {
		target.AvatarURL = *req.Avatar
	}
	if req.Interests != nil {
		target.Interests = *req.Interests
		if target.Interests == nil {
			target.Interests = []string{}
		}
	}
	if req.Role != nil && *req.Role != target.Role {
		logging.Info().Uint("user_id", target.ID).Str("from", string(target.Role)).Str("to", string(*req.Role)).Msg("role changed")
		target.Role = *req.Role
	}
	if req.IsActive != nil {
		target.IsActive = *req.IsActive
	}

	if err := s.userRepo.Update(target); err != nil {
		return nil, storeError(err, msgEmailTaken)
	}
	profile := target.Profile()
	return &profile, nil
}

// Delete removes an account; the content it created is kept without a creator.
func (s *userService) Delete(principal *models.User, id uint) error {
	target, err := s.load(principal, id)
	if err != nil {
		return err
	}
	if dec := s.engine.CanDelete(principal, authz.ResourceUser, target); !dec.Allowed() {
		return dec.Err()
	}
	return storeError(s.userRepo.Delete(target.ID), "")
}

// load returns the principal itself without a query when it is the target.
func (s *userService) load(principal *models.User, id uint) (*models.User, error) {
	if principal != nil && principal.ID == id {
		return principal, nil
	}
	// decide on other accounts before revealing whether id exists
	if dec := s.engine.CanReadOne(principal, authz.ResourceUser, &models.User{ID: id}); !dec.Allowed() {
		return nil, dec.Err()
	}
	target, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, storeError(err, "")
	}
	return target, nil
}

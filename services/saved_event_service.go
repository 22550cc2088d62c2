package services

import (
	"errors"

	"gorm.io/gorm"

	"ruedo-cms/authz"
	"ruedo-cms/models"
	"ruedo-cms/repositories"
)

const (
	msgAlreadySaved  = "Ya guardaste este evento."
	msgEventMissing  = "El evento seleccionado no existe."
	msgInvalidStatus = "Estado no válido."
)

type SavedEventService interface {
	List(principal *models.User, page models.Page) ([]models.SavedEventView, int64, error)
	Get(principal *models.User, id uint) (*models.SavedEventView, error)
	Create(principal *models.User, req models.SavedEventRequest) (*models.SavedEventView, error)
	Update(principal *models.User, id uint, req models.SavedEventUpdateRequest) (*models.SavedEventView, error)
	Delete(principal *models.User, id uint) error
}

type savedEventService struct {
	savedRepo repositories.SavedEventRepository
	eventRepo repositories.EventRepository
	engine    *authz.Engine
}

func NewSavedEventService(savedRepo repositories.SavedEventRepository, eventRepo repositories.EventRepository, engine *authz.Engine) SavedEventService {
	return &savedEventService{savedRepo: savedRepo, eventRepo: eventRepo, engine: engine}
}

func (s *savedEventService) List(principal *models.User, page models.Page) ([]models.SavedEventView, int64, error) {
	pred, dec := s.engine.CanList(principal, authz.ResourceSavedEvent)
	if !dec.Allowed() {
		return nil, 0, dec.Err()
	}
	saved, total, err := s.savedRepo.List(pred, page)
	if err != nil {
		return nil, 0, storeError(err, "")
	}
	views := make([]models.SavedEventView, 0, len(saved))
	for i := range saved {
		views = append(views, saved[i].View())
	}
	return views, total, nil
}

func (s *savedEventService) Get(principal *models.User, id uint) (*models.SavedEventView, error) {
	saved, err := s.owned(principal, id)
	if err != nil {
		return nil, err
	}
	view := saved.View()
	return &view, nil
}

// Create saves an event for the principal. Saving the same event twice is a
// conflict reported by the store's unique index.
func (s *savedEventService) Create(principal *models.User, req models.SavedEventRequest) (*models.SavedEventView, error) {
	if dec := s.engine.CanCreate(principal, authz.ResourceSavedEvent); !dec.Allowed() {
		return nil, dec.Err()
	}

	status := req.Status
	if status == "" {
		status = models.StatusSaved
	}
	if !status.Valid() {
		return nil, models.NewValidationError("estado", msgInvalidStatus)
	}
	if _, err := s.eventRepo.GetByID(req.EventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewValidationError("evento_id", msgEventMissing)
		}
		return nil, storeError(err, "")
	}

	saved := &models.SavedEvent{UserID: principal.ID, EventID: req.EventID, Status: status}
	if err := s.savedRepo.Create(saved); err != nil {
		return nil, storeError(err, msgAlreadySaved)
	}
	return s.reload(saved.ID)
}

func (s *savedEventService) Update(principal *models.User, id uint, req models.SavedEventUpdateRequest) (*models.SavedEventView, error) {
	saved, err := s.owned(principal, id)
	if err != nil {
		return nil, err
	}
	if dec := s.engine.CanModify(principal, authz.ResourceSavedEvent, saved); !dec.Allowed() {
		return nil, dec.Err()
	}
	if !req.Status.Valid() {
		return nil, models.NewValidationError("estado", msgInvalidStatus)
	}

	saved.Status = req.Status
	if err := s.savedRepo.Update(saved); err != nil {
		return nil, storeError(err, "")
	}
	return s.reload(saved.ID)
}

func (s *savedEventService) Delete(principal *models.User, id uint) error {
	saved, err := s.owned(principal, id)
	if err != nil {
		return err
	}
	if dec := s.engine.CanDelete(principal, authz.ResourceSavedEvent, saved); !dec.Allowed() {
		return dec.Err()
	}
	return storeError(s.savedRepo.Delete(saved.ID), "")
}

// owned loads a saved event; rows of other principals are reported as missing.
func (s *savedEventService) owned(principal *models.User, id uint) (*models.SavedEvent, error) {
	saved, err := s.savedRepo.GetByID(id)
	if err != nil {
		return nil, storeError(err, "")
	}
	if dec := s.engine.CanReadOne(principal, authz.ResourceSavedEvent, saved); !dec.Allowed() {
		return nil, dec.Err()
	}
	return saved, nil
}

func (s *savedEventService) reload(id uint) (*models.SavedEventView, error) {
	saved, err := s.savedRepo.GetByID(id)
	if err != nil {
		return nil, storeError(err, "")
	}
	view := saved.View()
	return &view, nil
}

package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"ruedo-cms/authz"
	"ruedo-cms/models"
	"ruedo-cms/repositories"
)

const msgCategoryMissing = "La categoría seleccionada no existe."

type EventService interface {
	List(principal *models.User, filter models.EventFilter, page models.Page) ([]models.EventSummary, int64, error)
	Get(principal *models.User, id uint) (*models.EventDetail, error)
	Create(principal *models.User, req models.EventRequest) (*models.EventDetail, error)
	Update(principal *models.User, id uint, req models.EventUpdateRequest) (*models.EventDetail, error)
	Delete(principal *models.User, id uint) error
}

type eventService struct {
	eventRepo    repositories.EventRepository
	categoryRepo repositories.CategoryRepository
	engine       *authz.Engine
}

func NewEventService(eventRepo repositories.EventRepository, categoryRepo repositories.CategoryRepository, engine *authz.Engine) EventService {
	return &eventService{eventRepo: eventRepo, categoryRepo: categoryRepo, engine: engine}
}

func (s *eventService) List(principal *models.User, filter models.EventFilter, page models.Page) ([]models.EventSummary, int64, error) {
	pred, dec := s.engine.CanList(principal, authz.ResourceEvent)
	if !dec.Allowed() {
		return nil, 0, dec.Err()
	}
	events, total, err := s.eventRepo.List(pred, filter, page)
	if err != nil {
		return nil, 0, storeError(err, "")
	}
	summaries := make([]models.EventSummary, 0, len(events))
	for i := range events {
		summaries = append(summaries, events[i].Summary())
	}
	return summaries, total, nil
}

func (s *eventService) Get(principal *models.User, id uint) (*models.EventDetail, error) {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return nil, storeError(err, "")
	}
	if dec := s.engine.CanReadOne(principal, authz.ResourceEvent, event); !dec.Allowed() {
		return nil, dec.Err()
	}
	detail := event.Detail()
	return &detail, nil
}

func (s *eventService) Create(principal *models.User, req models.EventRequest) (*models.EventDetail, error) {
	if dec := s.engine.CanCreate(principal, authz.ResourceEvent); !dec.Allowed() {
		return nil, dec.Err()
	}
	if err := s.checkCategory(req.CategoryID); err != nil {
		return nil, err
	}

	categoryID := req.CategoryID
	creatorID := principal.ID
	event := &models.Event{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		CategoryID:  &categoryID,
		ImageURL:    req.ImageURL,
		Date:        req.Date,
		Venue:       strings.TrimSpace(req.Venue),
		VenueDetail: req.VenueDetail,
		City:        strings.TrimSpace(req.City),
		Open:        boolOr(req.Open, true),
		Featured:    boolOr(req.Featured, false),
		Free:        boolOr(req.Free, true),
		Price:       req.Price,
		CreatorID:   &creatorID,
	}
	if event.City == "" {
		event.City = models.DefaultCity
	}

	if err := s.eventRepo.Create(event); err != nil {
		return nil, storeError(err, msgCategoryMissing)
	}
	return s.reload(event.ID)
}

func (s *eventService) Update(principal *models.User, id uint, req models.EventUpdateRequest) (*models.EventDetail, error) {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return nil, storeError(err, "")
	}
	if dec := s.engine.CanModify(principal, authz.ResourceEvent, event); !dec.Allowed() {
		return nil, dec.Err()
	}

	if req.CategoryID != nil {
		if err := s.checkCategory(*req.CategoryID); err != nil {
			return nil, err
		}
		categoryID := *req.CategoryID
		event.CategoryID = &categoryID
		event.Category = nil
	}
	if req.Title != nil {
		event.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.ImageURL != nil {
		event.ImageURL = *req.ImageURL
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.Venue != nil {
		event.Venue = strings.TrimSpace(*req.Venue)
	}
	if req.VenueDetail != nil {
		event.VenueDetail = *req.VenueDetail
	}
	if req.City != nil {
		event.City = strings.TrimSpace(*req.City)
	}
	if req.Open != nil {
		event.Open = *req.Open
	}
	if req.Featured != nil {
		event.Featured = *req.Featured
	}
	if req.Free != nil {
		event.Free = *req.Free
	}
	if req.Price != nil {
		event.Price = req.Price
	}

	if err := s.eventRepo.Update(event); err != nil {
		return nil, storeError(err, msgCategoryMissing)
	}
	return s.reload(event.ID)
}

func (s *eventService) Delete(principal *models.User, id uint) error {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return storeError(err, "")
	}
	if dec := s.engine.CanDelete(principal, authz.ResourceEvent, event); !dec.Allowed() {
		return dec.Err()
	}
	return storeError(s.eventRepo.Delete(event.ID), "")
}

func (s *eventService) checkCategory(id uint) error {
	_, err := s.categoryRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewValidationError("categoria_id", msgCategoryMissing)
	}
	return storeError(err, "")
}

func (s *eventService) reload(id uint) (*models.EventDetail, error) {
	event, err := s.eventRepo.GetByID(id)
	if err != nil {
		return nil, storeError(err, "")
	}
	detail := event.Detail()
	return &detail, nil
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

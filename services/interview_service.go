package services

import (
	"strings"

	"ruedo-cms/authz"
	"ruedo-cms/models"
	"ruedo-cms/repositories"
)

const msgInterviewSlugTaken = "Ya existe una entrevista con este slug."

type InterviewService interface {
	List(principal *models.User, filter models.PublicationFilter, page models.Page) ([]models.InterviewSummary, int64, error)
	Get(principal *models.User, slug string) (*models.InterviewDetail, error)
	Create(principal *models.User, req models.InterviewRequest) (*models.InterviewDetail, error)
	Update(principal *models.User, slug string, req models.InterviewUpdateRequest) (*models.InterviewDetail, error)
	Delete(principal *models.User, slug string) error
}

type interviewService struct {
	interviewRepo repositories.InterviewRepository
	engine        *authz.Engine
}

func NewInterviewService(interviewRepo repositories.InterviewRepository, engine *authz.Engine) InterviewService {
	return &interviewService{interviewRepo: interviewRepo, engine: engine}
}

func (s *interviewService) List(principal *models.User, filter models.PublicationFilter, page models.Page) ([]models.InterviewSummary, int64, error) {
	pred, dec := s.engine.CanList(principal, authz.ResourceInterview)
	if !dec.Allowed() {
		return nil, 0, dec.Err()
	}
	interviews, total, err := s.interviewRepo.List(pred, filter, page)
	if err != nil {
		return nil, 0, storeError(err, "")
	}
	summaries := make([]models.InterviewSummary, 0, len(interviews))
	for i := range interviews {
		summaries = append(summaries, interviews[i].ToSummary())
	}
	return summaries, total, nil
}

func (s *interviewService) Get(principal *models.User, slug string) (*models.InterviewDetail, error) {
	interview, err := s.visible(principal, slug)
	if err != nil {
		return nil, err
	}
	detail := interview.ToDetail()
	return &detail, nil
}

func (s *interviewService) Create(principal *models.User, req models.InterviewRequest) (*models.InterviewDetail, error) {
	if dec := s.engine.CanCreate(principal, authz.ResourceInterview); !dec.Allowed() {
		return nil, dec.Err()
	}

	category := req.Category
	if category == "" {
		category = models.InterviewMasters
	}
	if !category.Valid() {
		return nil, models.NewValidationError("categoria", "Categoría no válida.")
	}

	creatorID := principal.ID
	interview := &models.Interview{
		Interviewee:     strings.TrimSpace(req.Interviewee),
		IntervieweeRole: strings.TrimSpace(req.IntervieweeRole),
		Title:           strings.TrimSpace(req.Title),
		Slug:            req.Slug,
		Summary:         strings.TrimSpace(req.Summary),
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		AudioURL:        req.AudioURL,
		Duration:        req.Duration,
		Category:        category,
		CategoryColor:   colorOrDefault(req.CategoryColor),
		Published:       req.Published,
		Featured:        req.Featured,
		CreatorID:       &creatorID,
		PublishedOn:     publicationDate(req.PublishedOn.TimePtr(), req.Published),
	}
	if err := fillSlug(&interview.Slug, interview.Title, slugMaxLength); err != nil {
		return nil, err
	}

	if err := s.interviewRepo.Create(interview); err != nil {
		return nil, storeError(err, msgInterviewSlugTaken)
	}
	return s.reload(interview.Slug)
}

func (s *interviewService) Update(principal *models.User, slug string, req models.InterviewUpdateRequest) (*models.InterviewDetail, error) {
	interview, err := s.visible(principal, slug)
	if err != nil {
		return nil, err
	}
	if dec := s.engine.CanModify(principal, authz.ResourceInterview, interview); !dec.Allowed() {
		return nil, dec.Err()
	}

	if req.Category != nil {
		if !req.Category.Valid() {
			return nil, models.NewValidationError("categoria", "Categoría no válida.")
		}
		interview.Category = *req.Category
	}
	if req.Interviewee != nil {
		interview.Interviewee = strings.TrimSpace(*req.Interviewee)
	}
	if req.IntervieweeRole != nil {
		interview.IntervieweeRole = strings.TrimSpace(*req.IntervieweeRole)
	}
	if req.Title != nil {
		interview.Title = strings.TrimSpace(*req.Title)
	}
	if req.Slug != nil {
		interview.Slug = *req.Slug
		if err := fillSlug(&interview.Slug, interview.Title, slugMaxLength); err != nil {
			return nil, err
		}
	}
	if req.Summary != nil {
		interview.Summary = strings.TrimSpace(*req.Summary)
	}
	if req.Description != nil {
		interview.Description = *req.Description
	}
	if req.ImageURL != nil {
		interview.ImageURL = *req.ImageURL
	}
	if req.AudioURL != nil {
		interview.AudioURL = *req.AudioURL
	}
	if req.Duration != nil {
		interview.Duration = *req.Duration
	}
	if req.CategoryColor != nil {
		interview.CategoryColor = colorOrDefault(*req.CategoryColor)
	}
	if req.Featured != nil {
		interview.Featured = *req.Featured
	}
	if req.PublishedOn != nil {
		interview.PublishedOn = req.PublishedOn.TimePtr()
	}
	if req.Published != nil {
		interview.Published = *req.Published
		interview.PublishedOn = publicationDate(interview.PublishedOn, interview.Published)
	}

	if err := s.interviewRepo.Update(interview); err != nil {
		return nil, storeError(err, msgInterviewSlugTaken)
	}
	return s.reload(interview.Slug)
}

func (s *interviewService) Delete(principal *models.User, slug string) error {
	interview, err := s.visible(principal, slug)
	if err != nil {
		return err
	}
	if dec := s.engine.CanDelete(principal, authz.ResourceInterview, interview); !dec.Allowed() {
		return dec.Err()
	}
	return storeError(s.interviewRepo.Delete(interview.ID), "")
}

func (s *interviewService) visible(principal *models.User, slug string) (*models.Interview, error) {
	interview, err := s.interviewRepo.GetBySlug(slug)
	if err != nil {
		return nil, storeError(err, "")
	}
	if dec := s.engine.CanReadOne(principal, authz.ResourceInterview, interview); !dec.Allowed() {
		return nil, dec.Err()
	}
	return interview, nil
}

func (s *interviewService) reload(slug string) (*models.InterviewDetail, error) {
	interview, err := s.interviewRepo.GetBySlug(slug)
	if err != nil {
		return nil, storeError(err, "")
	}
	detail := interview.ToDetail()
	return &detail, nil
}

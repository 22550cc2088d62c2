package services

import (
	"strings"
	"time"

	"ruedo-cms/authz"
	"ruedo-cms/models"
	"ruedo-cms/repositories"
)

const (
	msgNewsSlugTaken = "Ya existe una noticia con este slug."
	slugMaxLength    = 320
)

type NewsService interface {
	List(principal *models.User, filter models.PublicationFilter, page models.Page) ([]models.NewsSummary, int64, error)
	Get(principal *models.User, slug string) (*models.NewsDetail, error)
	Create(principal *models.User, req models.NewsRequest) (*models.NewsDetail, error)
	Update(principal *models.User, slug string, req models.NewsUpdateRequest) (*models.NewsDetail, error)
	Delete(principal *models.User, slug string) error
}

type newsService struct {
	newsRepo repositories.NewsRepository
	engine   *authz.Engine
}

func NewNewsService(newsRepo repositories.NewsRepository, engine *authz.Engine) NewsService {
	return &newsService{newsRepo: newsRepo, engine: engine}
}

func (s *newsService) List(principal *models.User, filter models.PublicationFilter, page models.Page) ([]models.NewsSummary, int64, error) {
	pred, dec := s.engine.CanList(principal, authz.ResourceNews)
	if !dec.Allowed() {
		return nil, 0, dec.Err()
	}
	articles, total, err := s.newsRepo.List(pred, filter, page)
	if err != nil {
		return nil, 0, storeError(err, "")
	}
	summaries := make([]models.NewsSummary, 0, len(articles))
	for i := range articles {
		summaries = append(summaries, articles[i].ToSummary())
	}
	return summaries, total, nil
}

func (s *newsService) Get(principal *models.User, slug string) (*models.NewsDetail, error) {
	article, err := s.visible(principal, slug)
	if err != nil {
		return nil, err
	}
	detail := article.ToDetail()
	return &detail, nil
}

func (s *newsService) Create(principal *models.User, req models.NewsRequest) (*models.NewsDetail, error) {
	if dec := s.engine.CanCreate(principal, authz.ResourceNews); !dec.Allowed() {
		return nil, dec.Err()
	}

	category := req.Category
	if category == "" {
		category = models.NewsChronicle
	}
	if !category.Valid() {
		return nil, models.NewValidationError("categoria", "Categoría no válida.")
	}

	authorID := principal.ID
	article := &models.NewsArticle{
		Slug:          req.Slug,
		Title:         strings.TrimSpace(req.Title),
		Summary:       strings.TrimSpace(req.Summary),
		CoverImageURL: req.CoverImageURL,
		Category:      category,
		CategoryColor: colorOrDefault(req.CategoryColor),
		AuthorID:      &authorID,
		ReadingTime:   models.DefaultReadingTime,
		Published:     req.Published,
		Featured:      req.Featured,
		PublishedOn:   publicationDate(req.PublishedOn.TimePtr(), req.Published),
	}
	if req.ReadingTime != nil {
		article.ReadingTime = *req.ReadingTime
	}
	if err := fillSlug(&article.Slug, article.Title, slugMaxLength); err != nil {
		return nil, err
	}

	if err := s.newsRepo.Create(article); err != nil {
		return nil, storeError(err, msgNewsSlugTaken)
	}
	return s.reload(article.Slug)
}

func (s *newsService) Update(principal *models.User, slug string, req models.NewsUpdateRequest) (*models.NewsDetail, error) {
	article, err := s.visible(principal, slug)
	if err != nil {
		return nil, err
	}
	if dec := s.engine.CanModify(principal, authz.ResourceNews, article); !dec.Allowed() {
		return nil, dec.Err()
	}

	if req.Category != nil {
		if !req.Category.Valid() {
			return nil, models.NewValidationError("categoria", "Categoría no válida.")
		}
		article.Category = *req.Category
	}
	if req.Title != nil {
		article.Title = strings.TrimSpace(*req.Title)
	}
	if req.Slug != nil {
		article.Slug = *req.Slug
		if err := fillSlug(&article.Slug, article.Title, slugMaxLength); err != nil {
			return nil, err
		}
	}
	if req.Summary != nil {
		article.Summary = strings.TrimSpace(*req.Summary)
	}
	if req.CategoryColor != nil {
		article.CategoryColor = colorOrDefault(*req.CategoryColor)
	}
	if req.CoverImageURL != nil {
		article.CoverImageURL = *req.CoverImageURL
	}
	if req.ReadingTime != nil {
		article.ReadingTime = *req.ReadingTime
	}
	if req.Featured != nil {
		article.Featured = *req.Featured
	}
	if req.PublishedOn != nil {
		article.PublishedOn = req.PublishedOn.TimePtr()
	}
	if req.Published != nil {
		article.Published = *req.Published
		article.PublishedOn = publicationDate(article.PublishedOn, article.Published)
	}

	if err := s.newsRepo.Update(article); err != nil {
		return nil, storeError(err, msgNewsSlugTaken)
	}
	return s.reload(article.Slug)
}

// Delete removes the article and every block in it.
func (s *newsService) Delete(principal *models.User, slug string) error {
	article, err := s.visible(principal, slug)
	if err != nil {
		return err
	}
	if dec := s.engine.CanDelete(principal, authz.ResourceNews, article); !dec.Allowed() {
		return dec.Err()
	}
	return storeError(s.newsRepo.Delete(article.ID), "")
}

// visible loads the article and hides it as not found from callers who may
// not see it.
func (s *newsService) visible(principal *models.User, slug string) (*models.NewsArticle, error) {
	article, err := s.newsRepo.GetBySlug(slug)
	if err != nil {
		return nil, storeError(err, "")
	}
	if dec := s.engine.CanReadOne(principal, authz.ResourceNews, article); !dec.Allowed() {
		return nil, dec.Err()
	}
	return article, nil
}

func (s *newsService) reload(slug string) (*models.NewsDetail, error) {
	article, err := s.newsRepo.GetBySlug(slug)
	if err != nil {
		return nil, storeError(err, "")
	}
	detail := article.ToDetail()
	return &detail, nil
}

func colorOrDefault(color string) string {
	if color == "" {
		return models.DefaultColor
	}
	return color
}

// publicationDate stamps today on content published without a date.
func publicationDate(date *time.Time, published bool) *time.Time {
	if date != nil || !published {
		return date
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	return &today
}

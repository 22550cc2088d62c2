package services

import (
	"strings"

	"ruedo-cms/authz"
	"ruedo-cms/helper"
	"ruedo-cms/models"
	"ruedo-cms/repositories"
)

const msgCategoryTaken = "Ya existe una categoría con este nombre o slug."

type CategoryService interface {
	List(principal *models.User, page models.Page) ([]models.Category, int64, error)
	Get(principal *models.User, slug string) (*models.Category, error)
	Create(principal *models.User, req models.CategoryRequest) (*models.Category, error)
	Update(principal *models.User, slug string, req models.CategoryUpdateRequest) (*models.Category, error)
	Delete(principal *models.User, slug string) error
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
	engine       *authz.Engine
}

func NewCategoryService(categoryRepo repositories.CategoryRepository, engine *authz.Engine) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, engine: engine}
}

func (s *categoryService) List(principal *models.User, page models.Page) ([]models.Category, int64, error) {
	if _, dec := s.engine.CanList(principal, authz.ResourceEventCategory); !dec.Allowed() {
		return nil, 0, dec.Err()
	}
	categories, total, err := s.categoryRepo.List(page)
	if err != nil {
		return nil, 0, storeError(err, "")
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, total, nil
}

func (s *categoryService) Get(principal *models.User, slug string) (*models.Category, error) {
	if dec := s.engine.CanReadOne(principal, authz.ResourceEventCategory, nil); !dec.Allowed() {
		return nil, dec.Err()
	}
	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		return nil, storeError(err, "")
	}
	return category, nil
}

func (s *categoryService) Create(principal *models.User, req models.CategoryRequest) (*models.Category, error) {
	if dec := s.engine.CanCreate(principal, authz.ResourceEventCategory); !dec.Allowed() {
		return nil, dec.Err()
	}

	category := &models.Category{
		Name:  strings.TrimSpace(req.Name),
		Color: req.Color,
		Slug:  req.Slug,
	}
	if category.Color == "" {
		category.Color = models.DefaultColor
	}
	if err := fillSlug(&category.Slug, category.Name, 60); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, storeError(err, msgCategoryTaken)
	}
	return category, nil
}

func (s *categoryService) Update(principal *models.User, slug string, req models.CategoryUpdateRequest) (*models.Category, error) {
	if dec := s.engine.CanModify(principal, authz.ResourceEventCategory, nil); !dec.Allowed() {
		return nil, dec.Err()
	}
	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		return nil, storeError(err, "")
	}

	if req.Name != nil {
		category.Name = strings.TrimSpace(*req.Name)
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.Slug != nil {
		category.Slug = *req.Slug
		if err := fillSlug(&category.Slug, category.Name, 60); err != nil {
			return nil, err
		}
	}
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, storeError(err, msgCategoryTaken)
	}
	return category, nil
}

// Delete leaves the category's events in place without a category.
func (s *categoryService) Delete(principal *models.User, slug string) error {
	if dec := s.engine.CanDelete(principal, authz.ResourceEventCategory, nil); !dec.Allowed() {
		return dec.Err()
	}
	category, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		return storeError(err, "")
	}
	return storeError(s.categoryRepo.Delete(category.ID), "")
}

// fillSlug derives the slug from source when empty and validates the result.
func fillSlug(slug *string, source string, limit int) error {
	*slug = strings.TrimSpace(*slug)
	if *slug == "" {
		*slug = helper.TruncateSlug(helper.Slugify(source), limit)
	}
	if !helper.IsValidSlug(*slug) {
		return models.NewValidationError("slug", "Introduzca un slug válido: letras minúsculas, números y guiones.")
	}
	return nil
}

package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ruedo-cms/authz"
	"ruedo-cms/models"
)

type InterviewRepository interface {
	Create(interview *models.Interview) error
	GetBySlug(slug string) (*models.Interview, error)
	List(pred authz.QueryPredicate, filter models.PublicationFilter, page models.Page) ([]models.Interview, int64, error)
	Update(interview *models.Interview) error
	Delete(id uint) error
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(interview *models.Interview) error {
	return r.db.Omit(clause.Associations).Create(interview).Error
}

func (r *interviewRepository) GetBySlug(slug string) (*models.Interview, error) {
	var interview models.Interview
	err := r.db.Preload("Creator").Where("slug = ?", slug).First(&interview).Error
	return &interview, err
}

func (r *interviewRepository) List(pred authz.QueryPredicate, filter models.PublicationFilter, page models.Page) ([]models.Interview, int64, error) {
	query := r.db.Model(&models.Interview{}).Scopes(
		visibleTo(pred, "published", "creator_id"),
		boolFilter("featured", filter.Featured),
		search(filter.Search, "title", "interviewee", "summary"),
	)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var interviews []models.Interview
	order := orderBy(filter.Ordering, publicationOrdering, defaultPublicationOrdering)
	total, err := findPage(query, order, page, &interviews)
	return interviews, total, err
}

func (r *interviewRepository) Update(interview *models.Interview) error {
	return r.db.Omit(clause.Associations).Save(interview).Error
}

func (r *interviewRepository) Delete(id uint) error {
	return r.db.Delete(&models.Interview{}, id).Error
}

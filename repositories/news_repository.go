package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ruedo-cms/authz"
	"ruedo-cms/models"
)

type NewsRepository interface {
	Create(article *models.NewsArticle) error
	GetBySlug(slug string) (*models.NewsArticle, error)
	List(pred authz.QueryPredicate, filter models.PublicationFilter, page models.Page) ([]models.NewsArticle, int64, error)
	Update(article *models.NewsArticle) error
	Delete(id uint) error
}

type newsRepository struct {
	db *gorm.DB
}

func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) Create(article *models.NewsArticle) error {
	return r.db.Omit(clause.Associations).Create(article).Error
}

// GetBySlug loads the article with its author and blocks.
func (r *newsRepository) GetBySlug(slug string) (*models.NewsArticle, error) {
	var article models.NewsArticle
	err := r.db.Preload("Author").
		Preload("Blocks", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Where("slug = ?", slug).
		First(&article).Error
	return &article, err
}

func (r *newsRepository) List(pred authz.QueryPredicate, filter models.PublicationFilter, page models.Page) ([]models.NewsArticle, int64, error) {
	query := r.db.Model(&models.NewsArticle{}).Scopes(
		visibleTo(pred, "published", "author_id"),
		boolFilter("featured", filter.Featured),
		search(filter.Search, "title", "summary"),
	)
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	var articles []models.NewsArticle
	order := orderBy(filter.Ordering, publicationOrdering, defaultPublicationOrdering)
	total, err := findPage(query, order, page, &articles, "Author")
	return articles, total, err
}

func (r *newsRepository) Update(article *models.NewsArticle) error {
	return r.db.Omit(clause.Associations).Save(article).Error
}

// Delete removes the article together with its blocks.
func (r *newsRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&models.ContentBlock{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.NewsArticle{}, id).Error
	})
}

package repositories

import (
	"database/sql"

	"gorm.io/gorm"

	"ruedo-cms/models"
)

type ContentBlockRepository interface {
	Create(block *models.ContentBlock) error
	GetByID(articleID, blockID uint) (*models.ContentBlock, error)
	ListByArticle(articleID uint) ([]models.ContentBlock, error)
	NextOrder(articleID uint) (int, error)
	Update(block *models.ContentBlock) error
	Delete(articleID, blockID uint) error
}

type contentBlockRepository struct {
	db *gorm.DB
}

func NewContentBlockRepository(db *gorm.DB) ContentBlockRepository {
	return &contentBlockRepository{db: db}
}

func (r *contentBlockRepository) Create(block *models.ContentBlock) error {
	return r.db.Create(block).Error
}

func (r *contentBlockRepository) GetByID(articleID, blockID uint) (*models.ContentBlock, error) {
	var block models.ContentBlock
	err := r.db.Where("article_id = ? AND id = ?", articleID, blockID).First(&block).Error
	return &block, err
}

func (r *contentBlockRepository) ListByArticle(articleID uint) ([]models.ContentBlock, error) {
	var blocks []models.ContentBlock
	err := r.db.Where("article_id = ?", articleID).
		Order("sort_order ASC, id ASC").
		Find(&blocks).Error
	return blocks, err
}

// NextOrder is one past the highest position used in the article.
func (r *contentBlockRepository) NextOrder(articleID uint) (int, error) {
	var highest sql.NullInt64
	row := r.db.Model(&models.ContentBlock{}).
		Where("article_id = ?", articleID).
		Select("MAX(sort_order)").
		Row()
	if err := row.Scan(&highest); err != nil {
		return 0, err
	}
	if !highest.Valid {
		return 0, nil
	}
	return int(highest.Int64) + 1, nil
}

func (r *contentBlockRepository) Update(block *models.ContentBlock) error {
	return r.db.Save(block).Error
}

func (r *contentBlockRepository) Delete(articleID, blockID uint) error {
	res := r.db.Where("article_id = ? AND id = ?", articleID, blockID).Delete(&models.ContentBlock{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

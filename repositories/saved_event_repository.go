package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ruedo-cms/authz"
	"ruedo-cms/models"
)

type SavedEventRepository interface {
	Create(saved *models.SavedEvent) error
	GetByID(id uint) (*models.SavedEvent, error)
	List(pred authz.QueryPredicate, page models.Page) ([]models.SavedEvent, int64, error)
	Update(saved *models.SavedEvent) error
	Delete(id uint) error
}

type savedEventRepository struct {
	db *gorm.DB
}

func NewSavedEventRepository(db *gorm.DB) SavedEventRepository {
	return &savedEventRepository{db: db}
}

// Create relies on the (user, event) unique index; a second save of the same
// pair fails with gorm.ErrDuplicatedKey.
func (r *savedEventRepository) Create(saved *models.SavedEvent) error {
	return r.db.Omit(clause.Associations).Create(saved).Error
}

func (r *savedEventRepository) GetByID(id uint) (*models.SavedEvent, error) {
	var saved models.SavedEvent
	err := r.db.Preload("Event.Category").First(&saved, id).Error
	return &saved, err
}

func (r *savedEventRepository) List(pred authz.QueryPredicate, page models.Page) ([]models.SavedEvent, int64, error) {
	query := r.db.Model(&models.SavedEvent{}).Scopes(visibleTo(pred, "", "user_id"))

	var saved []models.SavedEvent
	total, err := findPage(query, "created_at DESC, id DESC", page, &saved, "Event.Category")
	return saved, total, err
}

func (r *savedEventRepository) Update(saved *models.SavedEvent) error {
	return r.db.Omit(clause.Associations).Save(saved).Error
}

func (r *savedEventRepository) Delete(id uint) error {
	return r.db.Delete(&models.SavedEvent{}, id).Error
}

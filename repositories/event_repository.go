package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ruedo-cms/authz"
	"ruedo-cms/models"
)

type EventRepository interface {
	Create(event *models.Event) error
	GetByID(id uint) (*models.Event, error)
	List(pred authz.QueryPredicate, filter models.EventFilter, page models.Page) ([]models.Event, int64, error)
	Update(event *models.Event) error
	Delete(id uint) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

var eventOrdering = map[string]string{
	"fecha":      "date ASC, id ASC",
	"-fecha":     "date DESC, id DESC",
	"creado_en":  "created_at ASC, id ASC",
	"-creado_en": "created_at DESC, id DESC",
}

func (r *eventRepository) Create(event *models.Event) error {
	return r.db.Omit(clause.Associations).Create(event).Error
}

func (r *eventRepository) GetByID(id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.Preload("Category").Preload("Creator").First(&event, id).Error
	return &event, err
}

func (r *eventRepository) List(pred authz.QueryPredicate, filter models.EventFilter, page models.Page) ([]models.Event, int64, error) {
	query := r.db.Model(&models.Event{}).Scopes(
		visibleTo(pred, "", "creator_id"),
		boolFilter("featured", filter.Featured),
		boolFilter("open", filter.Open),
		boolFilter("free", filter.Free),
		search(filter.Search, "title", "description", "venue"),
	)
	if filter.CategorySlug != "" {
		query = query.Where("category_id IN (?)", r.db.Model(&models.Category{}).Select("id").Where("slug = ?", filter.CategorySlug))
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}

	var events []models.Event
	total, err := findPage(query, orderBy(filter.Ordering, eventOrdering, "fecha"), page, &events, "Category")
	return events, total, err
}

func (r *eventRepository) Update(event *models.Event) error {
	return r.db.Omit(clause.Associations).Save(event).Error
}

func (r *eventRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.SavedEvent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Event{}, id).Error
	})
}

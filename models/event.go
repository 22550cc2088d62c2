package models

import (
	"time"
)

type Category struct {
	ID    uint   `json:"id" gorm:"primarykey"`
	Name  string `json:"nombre" gorm:"uniqueIndex;not null;size:50"`
	Color string `json:"color" gorm:"size:7;not null"`
	Slug  string `json:"slug" gorm:"uniqueIndex;not null;size:60"`
}

const DefaultColor = "#C8572A"

type Event struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Title       string    `json:"titulo" gorm:"not null;size:200"`
	Description string    `json:"descripcion" gorm:"type:text;not null"`
	CategoryID  *uint     `json:"-" gorm:"index"`
	Category    *Category `json:"categoria" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	ImageURL    string    `json:"imagen_url"`
	Date        time.Time `json:"fecha" gorm:"not null;index"`
	Venue       string    `json:"lugar" gorm:"not null;size:200"`
	VenueDetail string    `json:"detalle_lugar" gorm:"size:300"`
	City        string    `json:"ciudad" gorm:"size:100;index"`
	Open        bool      `json:"abierto"`
	Featured    bool      `json:"destacado"`
	Free        bool      `json:"gratuito"`
	Price       *float64  `json:"precio" gorm:"type:numeric(10,2)"`
	CreatorID   *uint     `json:"-" gorm:"index"`
	Creator     *User     `json:"-" gorm:"foreignKey:CreatorID;constraint:OnDelete:SET NULL"`
	CreatedAt   time.Time `json:"creado_en"`
	UpdatedAt   time.Time `json:"actualizado"`
}

const DefaultCity = "Bogotá"

// OwnerID is the nullable creator reference used by modify checks.
func (e *Event) OwnerID() *uint { return e.CreatorID }

func (e *Event) FinalImage() *string {
	if e.ImageURL == "" {
		return nil
	}
	return &e.ImageURL
}

// EventSummary is the compact list view.
type EventSummary struct {
	ID         uint      `json:"id"`
	Title      string    `json:"titulo"`
	Category   *Category `json:"categoria"`
	Date       time.Time `json:"fecha"`
	Venue      string    `json:"lugar"`
	City       string    `json:"ciudad"`
	Open       bool      `json:"abierto"`
	Featured   bool      `json:"destacado"`
	Free       bool      `json:"gratuito"`
	FinalImage *string   `json:"imagen_final"`
}

func (e *Event) Summary() EventSummary {
	return EventSummary{
		ID:         e.ID,
		Title:      e.Title,
		Category:   e.Category,
		Date:       e.Date,
		Venue:      e.Venue,
		City:       e.City,
		Open:       e.Open,
		Featured:   e.Featured,
		Free:       e.Free,
		FinalImage: e.FinalImage(),
	}
}

// EventDetail is the full view returned by create, update and retrieve.
type EventDetail struct {
	ID          uint      `json:"id"`
	Title       string    `json:"titulo"`
	Description string    `json:"descripcion"`
	Category    *Category `json:"categoria"`
	ImageURL    string    `json:"imagen_url"`
	FinalImage  *string   `json:"imagen_final"`
	Date        time.Time `json:"fecha"`
	Venue       string    `json:"lugar"`
	VenueDetail string    `json:"detalle_lugar"`
	City        string    `json:"ciudad"`
	Open        bool      `json:"abierto"`
	Featured    bool      `json:"destacado"`
	Free        bool      `json:"gratuito"`
	Price       *float64  `json:"precio"`
	CreatorName *string   `json:"creado_por_nombre"`
	CreatedAt   time.Time `json:"creado_en"`
	UpdatedAt   time.Time `json:"actualizado"`
}

func (e *Event) Detail() EventDetail {
	var creatorName *string
	if e.Creator != nil {
		name := e.Creator.FullName()
		creatorName = &name
	}
	return EventDetail{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Category:    e.Category,
		ImageURL:    e.ImageURL,
		FinalImage:  e.FinalImage(),
		Date:        e.Date,
		Venue:       e.Venue,
		VenueDetail: e.VenueDetail,
		City:        e.City,
		Open:        e.Open,
		Featured:    e.Featured,
		Free:        e.Free,
		Price:       e.Price,
		CreatorName: creatorName,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

type SavedEventStatus string

const (
	StatusSaved    SavedEventStatus = "GUARDADO"
	StatusAttended SavedEventStatus = "ASISTIDO"
)

func (s SavedEventStatus) Valid() bool {
	return s == StatusSaved || s == StatusAttended
}

// SavedEvent links a user to an event; (user, event) is unique.
type SavedEvent struct {
	ID        uint             `json:"id" gorm:"primarykey"`
	UserID    uint             `json:"-" gorm:"not null;uniqueIndex:idx_saved_events_user_event"`
	User      *User            `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	EventID   uint             `json:"-" gorm:"not null;uniqueIndex:idx_saved_events_user_event"`
	Event     *Event           `json:"-" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	Status    SavedEventStatus `json:"estado" gorm:"size:10;not null"`
	CreatedAt time.Time        `json:"fecha_alta"`
}

func (s *SavedEvent) OwnerID() *uint { return &s.UserID }

type SavedEventView struct {
	ID        uint             `json:"id"`
	Event     *EventSummary    `json:"evento"`
	Status    SavedEventStatus `json:"estado"`
	CreatedAt time.Time        `json:"fecha_alta"`
}

func (s *SavedEvent) View() SavedEventView {
	var summary *EventSummary
	if s.Event != nil {
		sum := s.Event.Summary()
		summary = &sum
	}
	return SavedEventView{ID: s.ID, Event: summary, Status: s.Status, CreatedAt: s.CreatedAt}
}

package models

import (
	"time"
)

type InterviewCategory string

const (
	InterviewMasters       InterviewCategory = "MAESTROS"
	InterviewNewVoices     InterviewCategory = "VOCES NUEVAS"
	InterviewInternational InterviewCategory = "INTERNACIONAL"
	InterviewExperimental  InterviewCategory = "EXPERIMENTALES"
)

func (c InterviewCategory) Valid() bool {
	switch c {
	case InterviewMasters, InterviewNewVoices, InterviewInternational, InterviewExperimental:
		return true
	}
	return false
}

type Interview struct {
	ID              uint              `gorm:"primarykey"`
	Interviewee     string            `gorm:"not null;size:200"`
	IntervieweeRole string            `gorm:"not null;size:200"`
	Title           string            `gorm:"not null;size:300"`
	Slug            string            `gorm:"uniqueIndex;not null;size:320"`
	Summary         string            `gorm:"not null;size:500"`
	Description     string            `gorm:"type:text;not null"`
	ImageURL        string            `gorm:"size:500"`
	AudioURL        string            `gorm:"size:500"`
	Duration        string            `gorm:"size:10"`
	Category        InterviewCategory `gorm:"size:20;not null;index"`
	CategoryColor   string            `gorm:"size:7;not null"`
	Published       bool              `gorm:"not null;index"`
	Featured        bool              `gorm:"not null"`
	CreatorID       *uint             `gorm:"index"`
	Creator         *User             `gorm:"foreignKey:CreatorID;constraint:OnDelete:SET NULL"`
	PublishedOn     *time.Time        `gorm:"type:date;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (i *Interview) OwnerID() *uint    { return i.CreatorID }
func (i *Interview) IsPublished() bool { return i.Published }

func optionalURL(u string) *string {
	if u == "" {
		return nil
	}
	return &u
}

type InterviewSummary struct {
	ID              uint              `json:"id"`
	Slug            string            `json:"slug"`
	Title           string            `json:"titulo"`
	Interviewee     string            `json:"entrevistado"`
	IntervieweeRole string            `json:"rol"`
	Summary         string            `json:"resumen"`
	Category        InterviewCategory `json:"categoria"`
	CategoryColor   string            `json:"categoria_color"`
	FinalImage      *string           `json:"imagen_final"`
	Duration        string            `json:"duracion"`
	PublishedOn     *Date             `json:"fecha_publicacion"`
}

func (i *Interview) ToSummary() InterviewSummary {
	return InterviewSummary{
		ID:              i.ID,
		Slug:            i.Slug,
		Title:           i.Title,
		Interviewee:     i.Interviewee,
		IntervieweeRole: i.IntervieweeRole,
		Summary:         i.Summary,
		Category:        i.Category,
		CategoryColor:   i.CategoryColor,
		FinalImage:      optionalURL(i.ImageURL),
		Duration:        i.Duration,
		PublishedOn:     DateFromTime(i.PublishedOn),
	}
}

type InterviewDetail struct {
	ID              uint              `json:"id"`
	Slug            string            `json:"slug"`
	Title           string            `json:"titulo"`
	Interviewee     string            `json:"entrevistado"`
	IntervieweeRole string            `json:"rol"`
	Summary         string            `json:"resumen"`
	Description     string            `json:"descripcion_larga"`
	Category        InterviewCategory `json:"categoria"`
	CategoryColor   string            `json:"categoria_color"`
	ImageURL        string            `json:"imagen_url"`
	FinalImage      *string           `json:"imagen_final"`
	AudioURL        string            `json:"audio_url"`
	FinalAudio      *string           `json:"audio_final"`
	Duration        string            `json:"duracion"`
	Published       bool              `json:"publicada"`
	Featured        bool              `json:"destacada"`
	Creator         *PublicUser       `json:"creado_por"`
	PublishedOn     *Date             `json:"fecha_publicacion"`
	CreatedAt       time.Time         `json:"creada_en"`
	UpdatedAt       time.Time         `json:"actualizada"`
}

func (i *Interview) ToDetail() InterviewDetail {
	return InterviewDetail{
		ID:              i.ID,
		Slug:            i.Slug,
		Title:           i.Title,
		Interviewee:     i.Interviewee,
		IntervieweeRole: i.IntervieweeRole,
		Summary:         i.Summary,
		Description:     i.Description,
		Category:        i.Category,
		CategoryColor:   i.CategoryColor,
		ImageURL:        i.ImageURL,
		FinalImage:      optionalURL(i.ImageURL),
		AudioURL:        i.AudioURL,
		FinalAudio:      optionalURL(i.AudioURL),
		Duration:        i.Duration,
		Published:       i.Published,
		Featured:        i.Featured,
		Creator:         i.Creator.Public(),
		PublishedOn:     DateFromTime(i.PublishedOn),
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}

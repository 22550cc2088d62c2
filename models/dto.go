package models

import "time"

type RegisterRequest struct {
	Email     string `json:"correo" binding:"required,email,max=254"`
	FirstName string `json:"nombres" binding:"required,max=100"`
	LastName  string `json:"apellidos" binding:"required,max=100"`
	Phone     string `json:"telefono" binding:"max=20"`
	City      string `json:"ciudad" binding:"max=100"`
	Password  string `json:"password" binding:"required,min=8"`
	Password2 string `json:"password2" binding:"required"`
	// Role is accepted so clients sending it don't fail, but registration never honours it.
	Role UserRole `json:"rol,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"correo" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type LoginResponse struct {
	TokenPair
	User Profile `json:"usuario"`
}

type ProfileUpdateRequest struct {
	FirstName *string   `json:"nombres" binding:"omitempty,max=100"`
	LastName  *string   `json:"apellidos" binding:"omitempty,max=100"`
	Phone     *string   `json:"telefono" binding:"omitempty,max=20"`
	City      *string   `json:"ciudad" binding:"omitempty,max=100"`
	Avatar    *string   `json:"avatar" binding:"omitempty,url"`
	Interests *[]string `json:"gustos"`
	Role      *UserRole `json:"rol"`
	IsActive  *bool     `json:"is_active"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"password_actual" binding:"required"`
	NewPassword     string `json:"password_nuevo" binding:"required,min=8"`
	NewPassword2    string `json:"password_nuevo2" binding:"required"`
}

type CategoryRequest struct {
	Name  string `json:"nombre" binding:"required,max=50"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
	Slug  string `json:"slug" binding:"omitempty,max=60"`
}

type CategoryUpdateRequest struct {
	Name  *string `json:"nombre" binding:"omitempty,max=50"`
	Color *string `json:"color" binding:"omitempty,hexcolor"`
	Slug  *string `json:"slug" binding:"omitempty,max=60"`
}

type EventRequest struct {
	Title       string    `json:"titulo" binding:"required,max=200"`
	Description string    `json:"descripcion" binding:"required"`
	CategoryID  uint      `json:"categoria_id" binding:"required"`
	ImageURL    string    `json:"imagen_url" binding:"omitempty,url"`
	Date        time.Time `json:"fecha" binding:"required"`
	Venue       string    `json:"lugar" binding:"required,max=200"`
	VenueDetail string    `json:"detalle_lugar" binding:"max=300"`
	City        string    `json:"ciudad" binding:"max=100"`
	Open        *bool     `json:"abierto"`
	Featured    *bool     `json:"destacado"`
	Free        *bool     `json:"gratuito"`
	Price       *float64  `json:"precio" binding:"omitempty,gte=0"`
}

type EventUpdateRequest struct {
	Title       *string    `json:"titulo" binding:"omitempty,max=200"`
	Description *string    `json:"descripcion"`
	CategoryID  *uint      `json:"categoria_id"`
	ImageURL    *string    `json:"imagen_url" binding:"omitempty,url"`
	Date        *time.Time `json:"fecha"`
	Venue       *string    `json:"lugar" binding:"omitempty,max=200"`
	VenueDetail *string    `json:"detalle_lugar" binding:"omitempty,max=300"`
	City        *string    `json:"ciudad" binding:"omitempty,max=100"`
	Open        *bool      `json:"abierto"`
	Featured    *bool      `json:"destacado"`
	Free        *bool      `json:"gratuito"`
	Price       *float64   `json:"precio" binding:"omitempty,gte=0"`
}

type NewsRequest struct {
	Title         string       `json:"titulo" binding:"required,max=300"`
	Slug          string       `json:"slug" binding:"omitempty,max=320"`
	Summary       string       `json:"resumen" binding:"required,max=500"`
	Category      NewsCategory `json:"categoria"`
	CategoryColor string       `json:"categoria_color" binding:"omitempty,hexcolor"`
	CoverImageURL string       `json:"imagen_portada_url" binding:"omitempty,url"`
	ReadingTime   *int         `json:"tiempo_lectura" binding:"omitempty,gte=0"`
	Published     bool         `json:"publicada"`
	Featured      bool         `json:"destacada"`
	PublishedOn   *Date        `json:"fecha_publicacion"`
}

type NewsUpdateRequest struct {
	Title         *string       `json:"titulo" binding:"omitempty,max=300"`
	Slug          *string       `json:"slug" binding:"omitempty,max=320"`
	Summary       *string       `json:"resumen" binding:"omitempty,max=500"`
	Category      *NewsCategory `json:"categoria"`
	CategoryColor *string       `json:"categoria_color" binding:"omitempty,hexcolor"`
	CoverImageURL *string       `json:"imagen_portada_url" binding:"omitempty,url"`
	ReadingTime   *int          `json:"tiempo_lectura" binding:"omitempty,gte=0"`
	Published     *bool         `json:"publicada"`
	Featured      *bool         `json:"destacada"`
	PublishedOn   *Date         `json:"fecha_publicacion"`
}

// BlockRequest is the wire form of a content block; which fields apply depends on Type.
type BlockRequest struct {
	Type    BlockType `json:"tipo" binding:"required,oneof=parrafo subtitulo imagen cita"`
	Order   *int      `json:"orden" binding:"omitempty,gte=0"`
	Text    string    `json:"texto"`
	Author  string    `json:"autor" binding:"max=200"`
	Src     string    `json:"src" binding:"omitempty,url"`
	Caption string    `json:"pie" binding:"max=300"`
}

// Content converts the request into its typed variant, reporting the
// fields the chosen type requires.
func (r BlockRequest) Content() (BlockContent, error) {
	switch r.Type {
	case BlockParagraph:
		if r.Text == "" {
			return nil, NewValidationError("texto", "Este campo es requerido para bloques de tipo parrafo.")
		}
		return Paragraph{Text: r.Text}, nil
	case BlockSubheading:
		if r.Text == "" {
			return nil, NewValidationError("texto", "Este campo es requerido para bloques de tipo subtitulo.")
		}
		return Subheading{Text: r.Text}, nil
	case BlockImage:
		if r.Src == "" {
			return nil, NewValidationError("src", "Este campo es requerido para bloques de tipo imagen.")
		}
		return Image{Src: r.Src, Caption: r.Caption}, nil
	case BlockQuote:
		if r.Text == "" {
			return nil, NewValidationError("texto", "Este campo es requerido para bloques de tipo cita.")
		}
		return Quote{Text: r.Text, Author: r.Author}, nil
	}
	return nil, NewValidationError("tipo", "Tipo de bloque no válido.")
}

type InterviewRequest struct {
	Interviewee     string            `json:"entrevistado" binding:"required,max=200"`
	IntervieweeRole string            `json:"rol" binding:"required,max=200"`
	Title           string            `json:"titulo" binding:"required,max=300"`
	Slug            string            `json:"slug" binding:"omitempty,max=320"`
	Summary         string            `json:"resumen" binding:"required,max=500"`
	Description     string            `json:"descripcion_larga" binding:"required"`
	ImageURL        string            `json:"imagen_url" binding:"omitempty,url"`
	AudioURL        string            `json:"audio_url" binding:"omitempty,url"`
	Duration        string            `json:"duracion" binding:"omitempty,max=10"`
	Category        InterviewCategory `json:"categoria"`
	CategoryColor   string            `json:"categoria_color" binding:"omitempty,hexcolor"`
	Published       bool              `json:"publicada"`
	Featured        bool              `json:"destacada"`
	PublishedOn     *Date             `json:"fecha_publicacion"`
}

type InterviewUpdateRequest struct {
	Interviewee     *string            `json:"entrevistado" binding:"omitempty,max=200"`
	IntervieweeRole *string            `json:"rol" binding:"omitempty,max=200"`
	Title           *string            `json:"titulo" binding:"omitempty,max=300"`
	Slug            *string            `json:"slug" binding:"omitempty,max=320"`
	Summary         *string            `json:"resumen" binding:"omitempty,max=500"`
	Description     *string            `json:"descripcion_larga"`
	ImageURL        *string            `json:"imagen_url" binding:"omitempty,url"`
	AudioURL        *string            `json:"audio_url" binding:"omitempty,url"`
	Duration        *string            `json:"duracion" binding:"omitempty,max=10"`
	Category        *InterviewCategory `json:"categoria"`
	CategoryColor   *string            `json:"categoria_color" binding:"omitempty,hexcolor"`
	Published       *bool              `json:"publicada"`
	Featured        *bool              `json:"destacada"`
	PublishedOn     *Date              `json:"fecha_publicacion"`
}

type SavedEventRequest struct {
	EventID uint             `json:"evento_id" binding:"required"`
	Status  SavedEventStatus `json:"estado"`
}

type SavedEventUpdateRequest struct {
	Status SavedEventStatus `json:"estado" binding:"required"`
}

// EventFilter holds the optional list constraints for events. Nil and empty
// values mean "no constraint".
type EventFilter struct {
	CategorySlug string
	City         string
	Featured     *bool
	Open         *bool
	Free         *bool
	Search       string
	Ordering     string
}

// PublicationFilter is shared by news and interview listings.
type PublicationFilter struct {
	Category string
	Featured *bool
	Search   string
	Ordering string
}

type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	if p.Number < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

package models

import (
	"encoding/json"
	"sort"
	"time"
)

type NewsCategory string

const (
	NewsChronicle NewsCategory = "CRÓNICA"
	NewsGuide     NewsCategory = "GUÍA"
	NewsEvent     NewsCategory = "EVENTO"
	NewsReport    NewsCategory = "REPORTAJE"
)

func (c NewsCategory) Valid() bool {
	switch c {
	case NewsChronicle, NewsGuide, NewsEvent, NewsReport:
		return true
	}
	return false
}

type NewsArticle struct {
	ID            uint           `gorm:"primarykey"`
	Slug          string         `gorm:"uniqueIndex;not null;size:320"`
	Title         string         `gorm:"not null;size:300"`
	Summary       string         `gorm:"type:text;not null"`
	CoverImageURL string         `gorm:"size:500"`
	Category      NewsCategory   `gorm:"size:20;not null;index"`
	CategoryColor string         `gorm:"size:7;not null"`
	AuthorID      *uint          `gorm:"index"`
	Author        *User          `gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL"`
	ReadingTime   int            `gorm:"not null"`
	Published     bool           `gorm:"not null;index"`
	Featured      bool           `gorm:"not null"`
	PublishedOn   *time.Time     `gorm:"type:date;index"`
	Blocks        []ContentBlock `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const DefaultReadingTime = 5

func (n *NewsArticle) OwnerID() *uint    { return n.AuthorID }
func (n *NewsArticle) IsPublished() bool { return n.Published }

func (n *NewsArticle) FinalCoverImage() *string {
	if n.CoverImageURL == "" {
		return nil
	}
	return &n.CoverImageURL
}

// SortedBlocks returns the blocks ordered by position, ties kept in insertion order.
func (n *NewsArticle) SortedBlocks() []ContentBlock {
	blocks := make([]ContentBlock, len(n.Blocks))
	copy(blocks, n.Blocks)
	SortBlocks(blocks)
	return blocks
}

// SortBlocks orders blocks by position; blocks with equal position keep id order.
func SortBlocks(blocks []ContentBlock) {
	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].Order != blocks[j].Order {
			return blocks[i].Order < blocks[j].Order
		}
		return blocks[i].ID < blocks[j].ID
	})
}

type NewsSummary struct {
	ID              uint         `json:"id"`
	Slug            string       `json:"slug"`
	Title           string       `json:"titulo"`
	Summary         string       `json:"resumen"`
	Category        NewsCategory `json:"categoria"`
	CategoryColor   string       `json:"categoria_color"`
	Author          *PublicUser  `json:"autor"`
	ReadingTime     int          `json:"tiempo_lectura"`
	FinalCoverImage *string      `json:"imagen_portada_final"`
	PublishedOn     *Date        `json:"fecha_publicacion"`
}

func (n *NewsArticle) ToSummary() NewsSummary {
	return NewsSummary{
		ID:              n.ID,
		Slug:            n.Slug,
		Title:           n.Title,
		Summary:         n.Summary,
		Category:        n.Category,
		CategoryColor:   n.CategoryColor,
		Author:          n.Author.Public(),
		ReadingTime:     n.ReadingTime,
		FinalCoverImage: n.FinalCoverImage(),
		PublishedOn:     DateFromTime(n.PublishedOn),
	}
}

type NewsDetail struct {
	ID              uint           `json:"id"`
	Slug            string         `json:"slug"`
	Title           string         `json:"titulo"`
	Summary         string         `json:"resumen"`
	Category        NewsCategory   `json:"categoria"`
	CategoryColor   string         `json:"categoria_color"`
	CoverImageURL   string         `json:"imagen_portada_url"`
	FinalCoverImage *string        `json:"imagen_portada_final"`
	Author          *PublicUser    `json:"autor"`
	ReadingTime     int            `json:"tiempo_lectura"`
	Published       bool           `json:"publicada"`
	Featured        bool           `json:"destacada"`
	PublishedOn     *Date          `json:"fecha_publicacion"`
	CreatedAt       time.Time      `json:"creada_en"`
	UpdatedAt       time.Time      `json:"actualizada"`
	Blocks          []ContentBlock `json:"bloques"`
}

func (n *NewsArticle) ToDetail() NewsDetail {
	return NewsDetail{
		ID:              n.ID,
		Slug:            n.Slug,
		Title:           n.Title,
		Summary:         n.Summary,
		Category:        n.Category,
		CategoryColor:   n.CategoryColor,
		CoverImageURL:   n.CoverImageURL,
		FinalCoverImage: n.FinalCoverImage(),
		Author:          n.Author.Public(),
		ReadingTime:     n.ReadingTime,
		Published:       n.Published,
		Featured:        n.Featured,
		PublishedOn:     DateFromTime(n.PublishedOn),
		CreatedAt:       n.CreatedAt,
		UpdatedAt:       n.UpdatedAt,
		Blocks:          n.SortedBlocks(),
	}
}

type BlockType string

const (
	BlockParagraph  BlockType = "parrafo"
	BlockSubheading BlockType = "subtitulo"
	BlockImage      BlockType = "imagen"
	BlockQuote      BlockType = "cita"
)

// BlockContent is the payload of one content block. Only the four variants
// declared in this package implement it.
type BlockContent interface {
	Type() BlockType
	isBlockContent()
}

type Paragraph struct{ Text string }
type Subheading struct{ Text string }
type Image struct{ Src, Caption string }
type Quote struct{ Text, Author string }

func (Paragraph) Type() BlockType  { return BlockParagraph }
func (Subheading) Type() BlockType { return BlockSubheading }
func (Image) Type() BlockType      { return BlockImage }
func (Quote) Type() BlockType      { return BlockQuote }

func (Paragraph) isBlockContent()  {}
func (Subheading) isBlockContent() {}
func (Image) isBlockContent()      {}
func (Quote) isBlockContent()      {}

// ContentBlock is the stored row. Which columns carry meaning depends on Kind;
// use Content and SetContent rather than the raw columns.
type ContentBlock struct {
	ID        uint      `gorm:"primarykey"`
	ArticleID uint      `gorm:"not null;index"`
	Kind      BlockType `gorm:"column:kind;size:15;not null"`
	Order     int       `gorm:"column:sort_order;not null"`
	Text      string    `gorm:"type:text"`
	Author    string    `gorm:"size:200"`
	Src       string    `gorm:"size:500"`
	Caption   string    `gorm:"size:300"`
}

func NewContentBlock(articleID uint, order int, content BlockContent) ContentBlock {
	b := ContentBlock{ArticleID: articleID, Order: order}
	b.SetContent(content)
	return b
}

// Content returns the typed payload of the block, nil for an unknown kind.
func (b *ContentBlock) Content() BlockContent {
	switch b.Kind {
	case BlockParagraph:
		return Paragraph{Text: b.Text}
	case BlockSubheading:
		return Subheading{Text: b.Text}
	case BlockImage:
		return Image{Src: b.Src, Caption: b.Caption}
	case BlockQuote:
		return Quote{Text: b.Text, Author: b.Author}
	}
	return nil
}

// SetContent replaces the payload and clears columns the new kind does not use.
func (b *ContentBlock) SetContent(content BlockContent) {
	b.Text, b.Author, b.Src, b.Caption = "", "", "", ""
	b.Kind = content.Type()
	switch c := content.(type) {
	case Paragraph:
		b.Text = c.Text
	case Subheading:
		b.Text = c.Text
	case Image:
		b.Src, b.Caption = c.Src, c.Caption
	case Quote:
		b.Text, b.Author = c.Text, c.Author
	}
}

func (b ContentBlock) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"id":    b.ID,
		"tipo":  b.Kind,
		"orden": b.Order,
	}
	switch c := b.Content().(type) {
	case Paragraph:
		out["texto"] = c.Text
	case Subheading:
		out["texto"] = c.Text
	case Image:
		out["src"] = c.Src
		out["pie"] = c.Caption
		if c.Src != "" {
			out["src_final"] = c.Src
		} else {
			out["src_final"] = nil
		}
	case Quote:
		out["texto"] = c.Text
		out["autor"] = c.Author
	}
	return json.Marshal(out)
}

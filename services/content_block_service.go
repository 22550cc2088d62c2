package services

import (
	"strings"

	"ruedo-cms/authz"
	"ruedo-cms/helper"
	"ruedo-cms/models"
	"ruedo-cms/repositories"
)

// ContentBlockService manages the blocks of one article. Visibility and
// ownership always come from the parent article.
type ContentBlockService interface {
	List(principal *models.User, slug string) ([]models.ContentBlock, error)
	Get(principal *models.User, slug string, id uint) (*models.ContentBlock, error)
	Create(principal *models.User, slug string, req models.BlockRequest) (*models.ContentBlock, error)
	Update(principal *models.User, slug string, id uint, req models.BlockRequest) (*models.ContentBlock, error)
	Delete(principal *models.User, slug string, id uint) error
}

type contentBlockService struct {
	newsRepo  repositories.NewsRepository
	blockRepo repositories.ContentBlockRepository
	engine    *authz.Engine
}

func NewContentBlockService(newsRepo repositories.NewsRepository, blockRepo repositories.ContentBlockRepository, engine *authz.Engine) ContentBlockService {
	return &contentBlockService{newsRepo: newsRepo, blockRepo: blockRepo, engine: engine}
}

func (s *contentBlockService) List(principal *models.User, slug string) ([]models.ContentBlock, error) {
	article, err := s.parent(principal, slug)
	if err != nil {
		return nil, err
	}
	blocks, err := s.blockRepo.ListByArticle(article.ID)
	if err != nil {
		return nil, storeError(err, "")
	}
	if blocks == nil {
		blocks = []models.ContentBlock{}
	}
	models.SortBlocks(blocks)
	return blocks, nil
}

func (s *contentBlockService) Get(principal *models.User, slug string, id uint) (*models.ContentBlock, error) {
	article, err := s.parent(principal, slug)
	if err != nil {
		return nil, err
	}
	block, err := s.blockRepo.GetByID(article.ID, id)
	if err != nil {
		return nil, storeError(err, "")
	}
	return block, nil
}

func (s *contentBlockService) Create(principal *models.User, slug string, req models.BlockRequest) (*models.ContentBlock, error) {
	if dec := s.engine.CanCreate(principal, authz.ResourceContentBlock); !dec.Allowed() {
		return nil, dec.Err()
	}
	article, err := s.modifiableParent(principal, slug)
	if err != nil {
		return nil, err
	}
	content, err := sanitizeBlock(req)
	if err != nil {
		return nil, err
	}

	order := 0
	if req.Order != nil {
		order = *req.Order
	} else if order, err = s.blockRepo.NextOrder(article.ID); err != nil {
		return nil, storeError(err, "")
	}

	block := models.NewContentBlock(article.ID, order, content)
	if err := s.blockRepo.Create(&block); err != nil {
		return nil, storeError(err, "")
	}
	return &block, nil
}

// Update replaces the block's payload; a missing order keeps the current one.
func (s *contentBlockService) Update(principal *models.User, slug string, id uint, req models.BlockRequest) (*models.ContentBlock, error) {
	article, err := s.modifiableParent(principal, slug)
	if err != nil {
		return nil, err
	}
	block, err := s.blockRepo.GetByID(article.ID, id)
	if err != nil {
		return nil, storeError(err, "")
	}
	content, err := sanitizeBlock(req)
	if err != nil {
		return nil, err
	}

	block.SetContent(content)
	if req.Order != nil {
		block.Order = *req.Order
	}
	if err := s.blockRepo.Update(block); err != nil {
		return nil, storeError(err, "")
	}
	return block, nil
}

func (s *contentBlockService) Delete(principal *models.User, slug string, id uint) error {
	article, err := s.modifiableParent(principal, slug)
	if err != nil {
		return err
	}
	return storeError(s.blockRepo.Delete(article.ID, id), "")
}

func (s *contentBlockService) parent(principal *models.User, slug string) (*models.NewsArticle, error) {
	article, err := s.newsRepo.GetBySlug(slug)
	if err != nil {
		return nil, storeError(err, "")
	}
	if dec := s.engine.CanReadOne(principal, authz.ResourceContentBlock, article); !dec.Allowed() {
		return nil, dec.Err()
	}
	return article, nil
}

func (s *contentBlockService) modifiableParent(principal *models.User, slug string) (*models.NewsArticle, error) {
	article, err := s.parent(principal, slug)
	if err != nil {
		return nil, err
	}
	if dec := s.engine.CanModify(principal, authz.ResourceContentBlock, article); !dec.Allowed() {
		return nil, dec.Err()
	}
	return article, nil
}

// sanitizeBlock cleans the HTML fragments a block may carry and only then
// checks the required fields, so markup that sanitizes to nothing counts as
// missing text.
func sanitizeBlock(req models.BlockRequest) (models.BlockContent, error) {
	switch req.Type {
	case models.BlockParagraph, models.BlockQuote:
		req.Text = helper.SanitizeRichText(req.Text)
		if strings.TrimSpace(helper.StripTags(req.Text)) == "" {
			req.Text = ""
		}
	case models.BlockSubheading:
		req.Text = strings.TrimSpace(helper.StripTags(req.Text))
	}
	req.Author = helper.StripTags(req.Author)
	req.Caption = helper.StripTags(req.Caption)
	return req.Content()
}

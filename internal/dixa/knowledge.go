package dixa

import (
	"context"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// KnowledgeService handles knowledge base articles and categories.
type KnowledgeService service

// CreateArticleParams is the body of POST /knowledge/articles.
type CreateArticleParams struct {
	Title      string `json:"title"                mapstructure:"title"`
	Content    string `json:"content"              mapstructure:"content"`
	CategoryID string `json:"categoryId,omitempty" mapstructure:"category_id"`
	Published  *bool  `json:"published,omitempty"  mapstructure:"published"`
	Extra      Extra  `json:"-"                    mapstructure:"extra_fields"`
}

// PatchArticleParams is the body of PATCH /knowledge/articles/{id}. Every field is sent whenever set.
type PatchArticleParams struct {
	Title      *string `json:"title,omitempty"      mapstructure:"title"`
	Content    *string `json:"content,omitempty"    mapstructure:"content"`
	CategoryID *string `json:"categoryId,omitempty" mapstructure:"category_id"`
	Published  *bool   `json:"published,omitempty"  mapstructure:"published"`
	Extra      Extra   `json:"-"                    mapstructure:"extra_fields"`
}

// CreateCategoryParams is the body of POST /knowledge/categories.
type CreateCategoryParams struct {
	Name     string `json:"name"               mapstructure:"name"`
	ParentID string `json:"parentId,omitempty" mapstructure:"parent_id"`
	Extra    Extra  `json:"-"                  mapstructure:"extra_fields"`
}

func (p CreateArticleParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Content, validation.Required),
	)
}

func (p CreateCategoryParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
	)
}

func (s *KnowledgeService) ListArticles(ctx context.Context, page Page) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("knowledge", "articles"), query: page.values()})
}

func (s *KnowledgeService) GetArticle(ctx context.Context, articleID string) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("knowledge", "articles", articleID)})
}

func (s *KnowledgeService) CreateArticle(ctx context.Context, p CreateArticleParams) (any, error) {
	if err := validate(p); err != nil {
		return nil, err
	}

	body, err := p.Extra.merge(p)
	if err != nil {
		return nil, err
	}

	return s.client.do(ctx, request{method: http.MethodPost, path: endpoint("knowledge", "articles"), body: body})
}

func (s *KnowledgeService) PatchArticle(ctx context.Context, articleID string, p PatchArticleParams) (any, error) {
	body, err := p.Extra.merge(p)
	if err != nil {
		return nil, err
	}

	return s.client.do(ctx, request{
		method: http.MethodPatch,
		path:   endpoint("knowledge", "articles", articleID),
		body:   body,
	})
}

func (s *KnowledgeService) DeleteArticle(ctx context.Context, articleID string) (any, error) {
	return s.client.do(ctx, request{
		method:           http.MethodDelete,
		path:             endpoint("knowledge", "articles", articleID),
		noContentMessage: "Knowledge article deleted successfully",
	})
}

func (s *KnowledgeService) ListCategories(ctx context.Context, page Page) (any, error) {
	return s.client.do(ctx, request{
		method: http.MethodGet,
		path:   endpoint("knowledge", "categories"),
		query:  page.values(),
	})
}

func (s *KnowledgeService) CreateCategory(ctx context.Context, p CreateCategoryParams) (any, error) {
	if err := validate(p); err != nil {
		return nil, err
	}

	body, err := p.Extra.merge(p)
	if err != nil {
		return nil, err
	}

	return s.client.do(ctx, request{method: http.MethodPost, path: endpoint("knowledge", "categories"), body: body})
}

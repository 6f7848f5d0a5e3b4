package dixa

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// TagsService handles conversation tags.
type TagsService service

// CreateTagParams is the body of POST /tags.
type CreateTagParams struct {
	Name  string `json:"name"            mapstructure:"name"`
	Color string `json:"color,omitempty" mapstructure:"color"`
}

func (p CreateTagParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
	)
}

// List returns the tags of the organization. Deactivated tags are included only when includeDeactivated is set.
func (s *TagsService) List(ctx context.Context, includeDeactivated *bool) (any, error) {
	q := url.Values{}
	if includeDeactivated != nil {
		q.Set("includeDeactivated", strconv.FormatBool(*includeDeactivated))
	}

	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("tags"), query: q})
}

func (s *TagsService) Get(ctx context.Context, tagID string) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("tags", tagID)})
}

func (s *TagsService) Create(ctx context.Context, p CreateTagParams) (any, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	return s.client.do(ctx, request{method: http.MethodPost, path: endpoint("tags"), body: p})
}

func (s *TagsService) Activate(ctx context.Context, tagID string) (any, error) {
	return s.client.do(ctx, request{
		method:           http.MethodPatch,
		path:             endpoint("tags", tagID, "activate"),
		noContentMessage: "Tag activated successfully",
	})
}

func (s *TagsService) Deactivate(ctx context.Context, tagID string) (any, error) {
	return s.client.do(ctx, request{
		method:           http.MethodPatch,
		path:             endpoint("tags", tagID, "deactivate"),
		noContentMessage: "Tag deactivated successfully",
	})
}

func (s *TagsService) Delete(ctx context.Context, tagID string) (any, error) {
	return s.client.do(ctx, request{
		method:           http.MethodDelete,
		path:             endpoint("tags", tagID),
		noContentMessage: "Tag deleted successfully",
	})
}

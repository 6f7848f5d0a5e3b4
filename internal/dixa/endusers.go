package dixa

import (
	"context"
	"net/http"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// EndUsersService handles end users (contacts).
type EndUsersService service

// CustomAttributesService handles custom attribute definitions.
type CustomAttributesService service

// CreateEndUserParams is the body of POST /endusers. Every optional field is sent only when non-empty.
type CreateEndUserParams struct {
	DisplayName            string   `json:"displayName"                      mapstructure:"display_name"`
	Email                  string   `json:"email,omitempty"                  mapstructure:"email"`
	PhoneNumber            string   `json:"phoneNumber,omitempty"            mapstructure:"phone_number"`
	AdditionalEmails       []string `json:"additionalEmails,omitempty"       mapstructure:"additional_emails"`
	AdditionalPhoneNumbers []string `json:"additionalPhoneNumbers,omitempty" mapstructure:"additional_phone_numbers"`
	FirstName              string   `json:"firstName,omitempty"              mapstructure:"first_name"`
	LastName               string   `json:"lastName,omitempty"               mapstructure:"last_name"`
	MiddleNames            []string `json:"middleNames,omitempty"            mapstructure:"middle_names"`
	AvatarURL              string   `json:"avatarUrl,omitempty"              mapstructure:"avatar_url"`
	ExternalID             string   `json:"externalId,omitempty"             mapstructure:"external_id"`
}

// PatchEndUserParams is the body of PATCH /endusers/{id}.
// Strings are sent only when non-empty, lists whenever set (an empty list clears the field).
type PatchEndUserParams struct {
	DisplayName            string   `json:"displayName,omitempty"           mapstructure:"display_name"`
	Email                  string   `json:"email,omitempty"                 mapstructure:"email"`
	PhoneNumber            string   `json:"phoneNumber,omitempty"           mapstructure:"phone_number"`
	AdditionalEmails       []string `json:"additionalEmails,omitzero"       mapstructure:"additional_emails"`
	AdditionalPhoneNumbers []string `json:"additionalPhoneNumbers,omitzero" mapstructure:"additional_phone_numbers"`
	FirstName              string   `json:"firstName,omitempty"             mapstructure:"first_name"`
	LastName               string   `json:"lastName,omitempty"              mapstructure:"last_name"`
	MiddleNames            []string `json:"middleNames,omitzero"            mapstructure:"middle_names"`
	AvatarURL              string   `json:"avatarUrl,omitempty"             mapstructure:"avatar_url"`
	ExternalID             string   `json:"externalId,omitempty"            mapstructure:"external_id"`
}

// UpdateEndUserParams is the body of PUT /endusers/{id}. It follows the PatchEndUserParams rules
// and additionally requires a display name.
type UpdateEndUserParams struct {
	DisplayName            string   `json:"displayName"                     mapstructure:"display_name"`
	Email                  string   `json:"email,omitempty"                 mapstructure:"email"`
	PhoneNumber            string   `json:"phoneNumber,omitempty"           mapstructure:"phone_number"`
	AdditionalEmails       []string `json:"additionalEmails,omitzero"       mapstructure:"additional_emails"`
	AdditionalPhoneNumbers []string `json:"additionalPhoneNumbers,omitzero" mapstructure:"additional_phone_numbers"`
	FirstName              string   `json:"firstName,omitempty"             mapstructure:"first_name"`
	LastName               string   `json:"lastName,omitempty"              mapstructure:"last_name"`
	MiddleNames            []string `json:"middleNames,omitzero"            mapstructure:"middle_names"`
	AvatarURL              string   `json:"avatarUrl,omitempty"             mapstructure:"avatar_url"`
	ExternalID             string   `json:"externalId,omitempty"            mapstructure:"external_id"`
}

func (p CreateEndUserParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.DisplayName, validation.Required),
	)
}

func (p UpdateEndUserParams) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.DisplayName, validation.Required),
	)
}

func (s *EndUsersService) List(ctx context.Context, page Page) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("endusers"), query: page.values()})
}

func (s *EndUsersService) Get(ctx context.Context, userID string) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("endusers", userID)})
}

// Conversations lists the conversations requested by an end user.
func (s *EndUsersService) Conversations(ctx context.Context, userID string, page Page) (any, error) {
	return s.client.do(ctx, request{
		method: http.MethodGet,
		path:   endpoint("endusers", userID, "conversations"),
		query:  page.values(),
	})
}

func (s *EndUsersService) Create(ctx context.Context, p CreateEndUserParams) (any, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	return s.client.do(ctx, request{method: http.MethodPost, path: endpoint("endusers"), body: p})
}

// CreateBulk creates several end users. Items are forwarded with their wire field names.
func (s *EndUsersService) CreateBulk(ctx context.Context, users []map[string]any) (*BulkResult, error) {
	return s.bulk(ctx, http.MethodPost, users)
}

// PatchBulk partially updates several end users.
func (s *EndUsersService) PatchBulk(ctx context.Context, users []map[string]any) (*BulkResult, error) {
	return s.bulk(ctx, http.MethodPatch, users)
}

// UpdateBulk replaces several end users.
func (s *EndUsersService) UpdateBulk(ctx context.Context, users []map[string]any) (*BulkResult, error) {
	return s.bulk(ctx, http.MethodPut, users)
}

func (s *EndUsersService) Patch(ctx context.Context, userID string, p PatchEndUserParams) (any, error) {
	return s.client.do(ctx, request{method: http.MethodPatch, path: endpoint("endusers", userID), body: p})
}

func (s *EndUsersService) Update(ctx context.Context, userID string, p UpdateEndUserParams) (any, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	return s.client.do(ctx, request{method: http.MethodPut, path: endpoint("endusers", userID), body: p})
}

// Anonymize requests anonymization of an end user. force=true is only sent when set.
func (s *EndUsersService) Anonymize(ctx context.Context, userID string, force bool) (any, error) {
	q := url.Values{}
	if force {
		q.Set("force", "true")
	}

	return s.client.do(ctx, request{
		method: http.MethodPatch,
		path:   endpoint("endusers", userID, "anonymize"),
		query:  q,
	})
}

func (s *EndUsersService) bulk(ctx context.Context, method string, users []map[string]any) (*BulkResult, error) {
	if users == nil {
		users = []map[string]any{}
	}

	return s.client.doBulk(ctx, request{
		method: method,
		path:   endpoint("endusers", "bulk"),
		body:   bulk[map[string]any]{Data: users},
	})
}

func (s *CustomAttributesService) List(ctx context.Context) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("custom-attributes")})
}

func (s *CustomAttributesService) Get(ctx context.Context, customAttributeID string) (any, error) {
	return s.client.do(ctx, request{method: http.MethodGet, path: endpoint("custom-attributes", customAttributeID)})
}

// PatchEndUser updates custom attributes of an end user. The attributes are the request body.
func (s *CustomAttributesService) PatchEndUser(ctx context.Context, userID string, attrs map[string]any) (any, error) {
	if attrs == nil {
		attrs = map[string]any{}
	}

	return s.client.do(ctx, request{
		method: http.MethodPatch,
		path:   endpoint("endusers", userID, "custom-attributes"),
		body:   attrs,
	})
}

package tools

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/dixa-mcp/internal/credentials"
	"github.com/mozilla-ai/dixa-mcp/internal/dixa"
	"github.com/mozilla-ai/dixa-mcp/internal/errors"
)

const processKey = "process-key"

type captured struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	Body          map[string]any
}

type fakeDixa struct {
	mu       sync.Mutex
	requests []captured
}

func (f *fakeDixa) all() []captured {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]captured(nil), f.requests...)
}

// newTestRegistry returns a registry whose clients talk to a fake Dixa API answering every request with status and body.
func newTestRegistry(t *testing.T, status int, body string, opt ...RegistryOption) (*Registry, *fakeDixa) {
	t.Helper()

	fake := &fakeDixa{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := captured{
			Method:        r.Method,
			Path:          r.URL.EscapedPath(),
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
		}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &c.Body)
		}

		fake.mu.Lock()
		fake.requests = append(fake.requests, c)
		fake.mu.Unlock()

		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	resolver, err := credentials.NewResolver(processKey, credentials.WithGetenv(func(string) string { return "" }))
	require.NoError(t, err)

	opts := append([]RegistryOption{WithClientOptions(dixa.WithBaseURL(srv.URL))}, opt...)
	r, err := NewRegistry(resolver, opts...)
	require.NoError(t, err)

	return r, fake
}

func toolNames(tools []mcp.Tool) []string {
	names := make([]string, 0, len(tools))
	for _, t := range tools {
		names = append(names, t.Name)
	}
	return names
}

func TestCatalogue(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, tool := range catalogue() {
		require.NotEmpty(t, tool.Name)
		require.False(t, seen[tool.Name], "duplicate tool %s", tool.Name)
		seen[tool.Name] = true

		require.NotEmpty(t, tool.Annotations.Title, tool.Name)
		require.NotNil(t, tool.run, tool.Name)

		_, err := compileSchema(tool.Tool)
		require.NoError(t, err, tool.Name)

		for _, req := range tool.InputSchema.Required {
			require.Contains(t, tool.InputSchema.Properties, req, tool.Name)
		}

		if tool.ReadOnly() {
			require.NotContains(t, tool.Description, modifiesData, tool.Name)
		} else {
			require.Contains(t, tool.Description, modifiesData, tool.Name)
		}
	}

	for _, name := range []string{
		"fetch_organization_details",
		"list_agents",
		"set_agent_working_channel",
		"remove_agents_from_team",
		"list_tags",
		"start_conversation",
		"tag_conversation_bulk",
		"add_end_users_bulk",
		"update_end_user",
		"update_end_user_custom_attributes",
		"modify_knowledge_article",
		"add_queue",
		"check_business_hours_status",
		"fetch_aggregated_data",
		"fetch_unaggregated_data",
		"prepare_analytics_record_query",
	} {
		require.True(t, seen[name], "missing tool %s", name)
	}
}

func TestNewRegistry_Filtering(t *testing.T) {
	t.Parallel()

	resolver, err := credentials.NewResolver(processKey)
	require.NoError(t, err)

	t.Run("everything by default", func(t *testing.T) {
		t.Parallel()

		r, err := NewRegistry(resolver)
		require.NoError(t, err)
		require.Len(t, r.Tools(), len(catalogue()))
	})

	t.Run("allow list", func(t *testing.T) {
		t.Parallel()

		r, err := NewRegistry(resolver, WithAllowed("list_tags", "add_tag"))
		require.NoError(t, err)
		require.Equal(t, []string{"add_tag", "list_tags"}, toolNames(r.Tools()))
	})

	t.Run("deny list", func(t *testing.T) {
		t.Parallel()

		r, err := NewRegistry(resolver, WithDenied("anonymize_end_user"))
		require.NoError(t, err)

		_, err = r.Get("anonymize_end_user")
		require.ErrorIs(t, err, errors.ErrToolNotFound)
		require.Len(t, r.Tools(), len(catalogue())-1)
	})

	t.Run("read only", func(t *testing.T) {
		t.Parallel()

		r, err := NewRegistry(resolver, WithReadOnly(true), WithAllowed("list_tags", "add_tag", "remove_tag"))
		require.NoError(t, err)
		require.Equal(t, []string{"list_tags"}, toolNames(r.Tools()))
	})

	t.Run("unknown tool", func(t *testing.T) {
		t.Parallel()

		_, err := NewRegistry(resolver, WithDenied("drop_database"))
		require.ErrorIs(t, err, errors.ErrConfiguration)
		require.ErrorContains(t, err, "drop_database")
	})

	t.Run("nil resolver", func(t *testing.T) {
		t.Parallel()

		_, err := NewRegistry(nil)
		require.Error(t, err)
	})

	t.Run("nil logger", func(t *testing.T) {
		t.Parallel()

		_, err := NewRegistry(resolver, WithLogger(nil))
		require.EqualError(t, err, "logger cannot be nil")
	})
}

func TestRegistry_Call(t *testing.T) {
	t.Parallel()

	t.Run("dispatches to the client with the process key", func(t *testing.T) {
		t.Parallel()

		r, fake := newTestRegistry(t, http.StatusOK, `{"data": [{"id": "a1"}]}`)

		res, err := r.Call(t.Context(), "list_agents", map[string]any{
			"email":      "jane@example.com",
			"page_limit": float64(10),
			"phone":      nil,
		}, "")
		require.NoError(t, err)
		require.Equal(t, map[string]any{"data": []any{map[string]any{"id": "a1"}}}, res)

		reqs := fake.all()
		require.Len(t, reqs, 1)
		require.Equal(t, http.MethodGet, reqs[0].Method)
		require.Equal(t, "/agents", reqs[0].Path)
		require.Equal(t, "email=jane%40example.com&pageLimit=10", reqs[0].Query)
		require.Equal(t, processKey, reqs[0].Authorization)
	})

	t.Run("explicit key wins over the request key", func(t *testing.T) {
		t.Parallel()

		r, fake := newTestRegistry(t, http.StatusOK, `{}`)

		ctx := credentials.WithAPIKey(t.Context(), "request-key")
		_, err := r.Call(ctx, "fetch_organization_details", nil, "explicit-key")
		require.NoError(t, err)
		require.Equal(t, "explicit-key", fake.all()[0].Authorization)

		_, err = r.Call(ctx, "fetch_organization_details", nil, "")
		require.NoError(t, err)
		require.Equal(t, "request-key", fake.all()[1].Authorization)
	})

	t.Run("decodes typed arguments into the request body", func(t *testing.T) {
		t.Parallel()

		r, fake := newTestRegistry(t, http.StatusNoContent, "")

		res, err := r.Call(t.Context(), "set_agent_working_channel", map[string]any{
			"agent_id": "a/1",
			"channel":  "Email",
			"working":  true,
		}, "")
		require.NoError(t, err)
		require.Equal(t, dixa.NoContent("Agent working channel updated successfully"), res)

		req := fake.all()[0]
		require.Equal(t, http.MethodPut, req.Method)
		require.Equal(t, "/agents/a%2F1/presence/working-channel", req.Path)
		require.Equal(t, map[string]any{"channel": "Email", "working": true}, req.Body)
	})

	t.Run("bulk results return the raw body", func(t *testing.T) {
		t.Parallel()

		body := `{"data": [
			{"_type": "BulkActionSuccess", "data": {"id": "u1"}},
			{"_type": "BulkActionFailure", "error": {"message": "duplicate"}}
		]}`
		r, fake := newTestRegistry(t, http.StatusOK, body)

		res, err := r.Call(t.Context(), "add_end_users_bulk", map[string]any{
			"end_users": []any{
				map[string]any{"displayName": "Jane"},
				map[string]any{"displayName": "John"},
			},
		}, "")
		require.NoError(t, err)

		raw, ok := res.(map[string]any)
		require.True(t, ok)
		require.Len(t, raw["data"], 2)

		req := fake.all()[0]
		require.Equal(t, http.MethodPost, req.Method)
		require.Equal(t, "/endusers/bulk", req.Path)
		require.Len(t, req.Body["data"], 2)
	})

	t.Run("analytics scope accepts JSON strings", func(t *testing.T) {
		t.Parallel()

		r, fake := newTestRegistry(t, http.StatusOK, `{"data": {}}`)

		_, err := r.Call(t.Context(), "fetch_aggregated_data", map[string]any{
			"metric_id":     "closed_conversations",
			"timezone":      "UTC",
			"period_filter": `{"_type": "Preset", "value": {"_type": "PreviousWeek"}}`,
			"filters":       []any{map[string]any{"attribute": "channel", "values": []any{"email"}}},
			"aggregations":  []any{"Count"},
		}, "")
		require.NoError(t, err)

		req := fake.all()[0]
		require.Equal(t, "/analytics/metrics", req.Path)
		require.Equal(t, "closed_conversations", req.Body["id"])
		require.Equal(t, map[string]any{"_type": "Preset", "value": map[string]any{"_type": "PreviousWeek"}}, req.Body["periodFilter"])
		require.Equal(t, []any{"Count"}, req.Body["aggregations"])
		require.NotContains(t, req.Body, "csidFilter")
	})
}

func TestRegistry_Call_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tool     string
		args     map[string]any
		status   int
		body     string
		wantErr  error
		contains string
		requests int
	}{
		{
			name:     "unknown tool",
			tool:     "drop_database",
			wantErr:  errors.ErrToolNotFound,
			requests: 0,
		},
		{
			name:     "missing required argument",
			tool:     "fetch_agent_by_id",
			args:     map[string]any{},
			wantErr:  errors.ErrValidation,
			contains: "agent_id",
			requests: 0,
		},
		{
			name:     "wrong argument type",
			tool:     "list_agents",
			args:     map[string]any{"page_limit": "ten"},
			wantErr:  errors.ErrValidation,
			contains: "page_limit",
			requests: 0,
		},
		{
			name:     "enum violation",
			tool:     "set_agent_working_channel",
			args:     map[string]any{"agent_id": "a1", "channel": "Fax", "working": true},
			wantErr:  errors.ErrValidation,
			contains: "channel",
			requests: 0,
		},
		{
			name:     "client side validation",
			tool:     "list_agents",
			args:     map[string]any{"email": "a@example.com", "phone": "+4512345678"},
			wantErr:  errors.ErrValidation,
			contains: "mutually exclusive",
			requests: 0,
		},
		{
			name:     "remote error",
			tool:     "fetch_tag_by_id",
			args:     map[string]any{"tag_id": "t1"},
			status:   http.StatusNotFound,
			body:     `{"message": "Tag not found"}`,
			wantErr:  errors.ErrRemote,
			contains: "HTTP 404",
			requests: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			status := tc.status
			if status == 0 {
				status = http.StatusOK
			}
			r, fake := newTestRegistry(t, status, tc.body)

			_, err := r.Call(t.Context(), tc.tool, tc.args, "")
			require.ErrorIs(t, err, tc.wantErr)
			if tc.contains != "" {
				require.ErrorContains(t, err, tc.contains)
			}
			require.Len(t, fake.all(), tc.requests)
		})
	}
}

func TestRegistry_Call_NoAPIKey(t *testing.T) {
	t.Parallel()

	resolver, err := credentials.NewResolver("", credentials.WithGetenv(func(string) string { return "" }))
	require.NoError(t, err)

	r, err := NewRegistry(resolver)
	require.NoError(t, err)

	_, err = r.Call(context.Background(), "list_teams", nil, "")
	require.ErrorIs(t, err, errors.ErrConfiguration)
	require.ErrorContains(t, err, credentials.EnvVarAPIKey)
}

func TestRegistry_Handler(t *testing.T) {
	t.Parallel()

	r, _ := newTestRegistry(t, http.StatusOK, `{"data": {"id": 42}}`)

	t.Run("success is returned as JSON text", func(t *testing.T) {
		t.Parallel()

		var req mcp.CallToolRequest
		req.Params.Name = "fetch_team_by_id"
		req.Params.Arguments = map[string]any{"team_id": "t1"}

		res, err := r.handler("fetch_team_by_id")(t.Context(), req)
		require.NoError(t, err)
		require.False(t, res.IsError)
		require.Len(t, res.Content, 1)

		text, ok := res.Content[0].(mcp.TextContent)
		require.True(t, ok)
		require.JSONEq(t, `{"data": {"id": 42}}`, text.Text)
	})

	t.Run("failure is returned as an error result", func(t *testing.T) {
		t.Parallel()

		var req mcp.CallToolRequest
		req.Params.Name = "fetch_team_by_id"
		req.Params.Arguments = map[string]any{}

		res, err := r.handler("fetch_team_by_id")(t.Context(), req)
		require.NoError(t, err)
		require.True(t, res.IsError)

		text, ok := res.Content[0].(mcp.TextContent)
		require.True(t, ok)
		require.True(t, strings.HasPrefix(text.Text, errors.ErrValidation.Error()))
	})
}

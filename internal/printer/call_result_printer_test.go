package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCallResultPrinter_Item(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		result   CallResult
		expected string
	}{
		{
			name:     "object",
			result:   CallResult{Tool: "fetch_tag_by_id", Data: map[string]any{"id": "t1", "name": "vip"}},
			expected: "{\n  \"id\": \"t1\",\n  \"name\": \"vip\"\n}\n",
		},
		{
			name:     "nil data",
			result:   CallResult{Tool: "remove_tag"},
			expected: "null\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, (&CallResultPrinter{}).Item(&buf, tc.result))
			require.Equal(t, tc.expected, buf.String())
		})
	}
}

func TestCallResultPrinter_Item_Unencodable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := (&CallResultPrinter{}).Item(&buf, CallResult{Tool: "list_tags", Data: make(chan int)})
	require.ErrorContains(t, err, "tool 'list_tags'")
	require.Empty(t, buf.String())
}

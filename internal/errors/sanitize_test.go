package errors

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

type nestedInput struct {
	Name    string            `json:"name"`
	APIKey  string            `json:"apiKey"`
	Headers map[string]string `json:"headers"`
	Ignored string            `json:"-"`
	private string
}

func TestSanitizeArguments(t *testing.T) {
	deep := map[string]any{"password": "deep"}
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name string
		args []any
		want []any
	}{
		{
			name: "scalars pass through",
			args: []any{"p1", 3, true, []string{"a"}},
			want: []any{"p1", 3, true, []string{"a"}},
		},
		{
			name: "flat mapping",
			args: []any{map[string]any{"username": "a", "password": "x", "Token": "t"}},
			want: []any{map[string]any{"username": "a", "password": Redacted, "Token": Redacted}},
		},
		{
			name: "one nested level",
			args: []any{map[string]any{"auth": map[string]any{"secret": "s", "deeper": deep}}},
			want: []any{map[string]any{"auth": map[string]any{"secret": Redacted, "deeper": deep}}},
		},
		{
			name: "struct projected by json names",
			args: []any{nestedInput{
				Name:    "n",
				APIKey:  "k",
				Headers: map[string]string{"Authorization": "Bearer x", "Accept": "json"},
				Ignored: "i",
				private: "p",
			}},
			want: []any{map[string]any{
				"name":    "n",
				"apiKey":  Redacted,
				"headers": map[string]any{"Authorization": Redacted, "Accept": "json"},
			}},
		},
		{
			name: "marshalers stay scalar",
			args: []any{created},
			want: []any{created},
		},
		{
			name: "context dropped",
			args: []any{context.Background(), "p1"},
			want: []any{"p1"},
		},
		{
			name: "nil pointer",
			args: []any{(*nestedInput)(nil)},
			want: []any{(*nestedInput)(nil)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SanitizeArguments(tc.args...)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("SanitizeArguments() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSanitizeArguments_DoesNotMutate(t *testing.T) {
	in := map[string]any{"password": "x", "nested": map[string]any{"token": "y"}}

	SanitizeArguments(in)

	assert.Equal(t, "x", in["password"])
	assert.Equal(t, "y", in["nested"].(map[string]any)["token"])
}

func TestIsSensitiveKey(t *testing.T) {
	for _, k := range []string{"password", "PASSWORD", "token", "secret", "apiKey", "apikey", "authorization"} {
		assert.True(t, IsSensitiveKey(k), k)
	}

	for _, k := range []string{"username", "passwordHint", "tokens", ""} {
		assert.False(t, IsSensitiveKey(k), k)
	}
}

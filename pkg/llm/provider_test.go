package llm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveModelID(t *testing.T) {
	tests := []struct {
		name  string
		alias string
		cfg   ModelConfig
		want  string
	}{
		{
			name:  "alias resolves through config",
			alias: "mini",
			cfg:   ModelConfig{Provider: "openai", ModelName: "gpt-4o-mini"},
			want:  "openai/gpt-4o-mini",
		},
		{
			name:  "qualified alias passes through",
			alias: "openai/gpt-4o-mini",
			cfg:   ModelConfig{Provider: "google", ModelName: "gemini-2.0-flash-001"},
			want:  "openai/gpt-4o-mini",
		},
		{
			name:  "qualified model name wins over provider",
			alias: "fast",
			cfg:   ModelConfig{Provider: "ignored", ModelName: "google/gemini-2.0-flash-001"},
			want:  "google/gemini-2.0-flash-001",
		},
		{
			name:  "no provider leaves name bare",
			alias: "mini",
			cfg:   ModelConfig{ModelName: "gpt-4o-mini"},
			want:  "gpt-4o-mini",
		},
		{
			name:  "empty config falls back to alias",
			alias: "gpt-4o-mini",
			cfg:   ModelConfig{},
			want:  "gpt-4o-mini",
		},
		{
			name:  "whitespace trimmed",
			alias: "  mini  ",
			cfg:   ModelConfig{Provider: " openai ", ModelName: " gpt-4o-mini "},
			want:  "openai/gpt-4o-mini",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ResolveModelID(tt.alias, tt.cfg))
		})
	}
}

func TestParseModelID(t *testing.T) {
	provider, name := ParseModelID("openai/gpt-4o-mini")
	require.Equal(t, "openai", provider)
	require.Equal(t, "gpt-4o-mini", name)

	provider, name = ParseModelID("gpt-4o-mini")
	require.Empty(t, provider)
	require.Equal(t, "gpt-4o-mini", name)

	// Only the first separator splits; the rest stays in the name.
	provider, name = ParseModelID("openrouter/openai/gpt-4o-mini")
	require.Equal(t, "openrouter", provider)
	require.Equal(t, "openai/gpt-4o-mini", name)
}

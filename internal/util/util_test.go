package util

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var generatedPattern = regexp.MustCompile(`^[a-z0-9]{6}$`)

func TestGenerateShortcode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		code := GenerateShortcode()
		assert.Regexp(t, generatedPattern, code)
		seen[code] = struct{}{}
	}
	// 36^6 вариантов, совпадения на тысяче попыток практически невозможны
	assert.Greater(t, len(seen), 990)
}

func TestResolveShortcode(t *testing.T) {
	tests := []struct {
		name      string
		useCustom bool
		custom    string
		want      string
	}{
		{name: "custom enabled", useCustom: true, custom: "my-link", want: "my-link"},
		{name: "custom kept verbatim", useCustom: true, custom: "Mixed_Case-1", want: "Mixed_Case-1"},
		{name: "custom disabled ignores value", useCustom: false, custom: "my-link"},
		{name: "custom disabled", useCustom: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveShortcode(tt.useCustom, tt.custom)
			if tt.want != "" {
				assert.Equal(t, tt.want, got)
				return
			}
			assert.Regexp(t, generatedPattern, got)
		})
	}
}

func TestBuildShortURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/abc123", BuildShortURL("http://localhost:8080", "abc123"))
	assert.Equal(t, "http://localhost:8080/abc123", BuildShortURL("http://localhost:8080/", "abc123"))
}

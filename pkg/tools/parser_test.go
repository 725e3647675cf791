package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXMLToMap(t *testing.T) {
	args := []byte(`<arguments>
  <session>abc-123</session>
  <tool>browser_fill</tool>
  <selector>#user</selector>
  <value>alice</value>
</arguments>`)

	got, err := XMLToMap(args)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"session":  "abc-123",
		"tool":     "browser_fill",
		"selector": "#user",
		"value":    "alice",
	}, got)
}

func TestXMLToMapIgnoresNestedElements(t *testing.T) {
	args := []byte(`<arguments><outer><inner>deep</inner></outer><flat>kept</flat></arguments>`)

	got, err := XMLToMap(args)
	require.NoError(t, err)
	assert.Equal(t, "kept", got["flat"])
	assert.NotContains(t, got, "inner")
}

func TestUnmarshalXMLWithFallbackEscapesAmpersands(t *testing.T) {
	var input struct {
		URL string `xml:"url"`
	}

	// Bare ampersand in a URL; the fallback escapes it
	err := UnmarshalXMLWithFallback([]byte(`<arguments><url>https://example.com?a=1&b=2</url></arguments>`), &input)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com?a=1&b=2", input.URL)

	// Existing entities survive untouched
	err = UnmarshalXMLWithFallback([]byte(`<arguments><url>https://example.com?a=1&amp;b=2</url></arguments>`), &input)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com?a=1&b=2", input.URL)
}

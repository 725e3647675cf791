package tools

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"
)

const argumentsTagName = "arguments"

// ampersandEntityRegex matches ampersands that are already part of XML entities
// to avoid double-escaping them. Matches: &amp; &lt; &gt; &quot; &apos; &#123; &#xAB;
var ampersandEntityRegex = regexp.MustCompile(`&(?:amp|lt|gt|quot|apos|#\d+|#x[0-9a-fA-F]+);`)

// UnmarshalXMLWithFallback attempts to unmarshal XML, with fallback to
// escape unescaped ampersands if the initial parse fails. This improves
// robustness when upstream callers generate unescaped & characters.
func UnmarshalXMLWithFallback(data []byte, v interface{}) error {
	err := xml.Unmarshal(data, v)
	if err == nil {
		return nil
	}

	escaped := escapeUnescapedAmpersands(data)
	return xml.Unmarshal(escaped, v)
}

// escapeUnescapedAmpersands replaces bare & with &amp; while preserving
// existing entities (&amp;, &lt;, &gt;, &quot;, &apos;, &#..;)
func escapeUnescapedAmpersands(data []byte) []byte {
	text := string(data)

	entityPositions := make(map[int]bool)
	matches := ampersandEntityRegex.FindAllStringIndex(text, -1)
	for _, match := range matches {
		entityPositions[match[0]] = true
	}

	var result strings.Builder
	result.Grow(len(text) + 20)

	for i := 0; i < len(text); i++ {
		if text[i] == '&' && !entityPositions[i] {
			result.WriteString("&amp;")
		} else {
			result.WriteByte(text[i])
		}
	}

	return []byte(result.String())
}

// XMLToMap converts an <arguments> block into a flat map of its direct
// children. The recording tools use this to capture an action's parameter
// bag without committing to a schema per action kind.
func XMLToMap(data []byte) (map[string]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	result := make(map[string]string)

	var currentPath []string
	var currentText strings.Builder

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse XML: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			currentPath = append(currentPath, t.Name.Local)
			currentText.Reset()

		case xml.EndElement:
			if len(currentPath) == 0 {
				continue
			}

			elementName := currentPath[len(currentPath)-1]
			currentPath = currentPath[:len(currentPath)-1]

			if elementName == argumentsTagName && len(currentPath) == 0 {
				continue
			}

			// Only direct children of <arguments> become parameters
			if len(currentPath) == 1 && currentPath[0] == argumentsTagName {
				text := strings.TrimSpace(currentText.String())
				if text != "" {
					result[elementName] = text
				}
			}
			currentText.Reset()

		case xml.CharData:
			currentText.Write(t)
		}
	}

	return result, nil
}

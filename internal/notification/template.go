package notification

import (
	"fmt"
	"os"
	"strings"
)

// RenderTemplate loads a text template and substitutes `{{ key }}` and
// `{{ key.sub_key }}` placeholders from the context. Values one level
// deep come from nested maps; slices are joined with ", ". There are no
// conditionals or loops; unknown placeholders are left untouched.
func RenderTemplate(path string, context map[string]any) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("notification: failed to load template %s: %w", path, err)
	}

	template := string(raw)
	for key, value := range context {
		switch nested := value.(type) {
		case map[string]any:
			for subKey, subValue := range nested {
				marker := "{{ " + key + "." + subKey + " }}"
				template = strings.ReplaceAll(template, marker, formatValue(subValue))
			}
		default:
			marker := "{{ " + key + " }}"
			template = strings.ReplaceAll(template, marker, formatValue(value))
		}
	}

	return template, nil
}

func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case float64:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprint(v)
	}
}

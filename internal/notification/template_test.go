package notification

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRenderTemplateFlatKeys(t *testing.T) {
	path := writeTemplate(t, "Olá {{ name }}, seu status é {{ status }}.")

	got, err := RenderTemplate(path, map[string]any{
		"name":   "Maria",
		"status": "Expirado",
	})
	require.NoError(t, err)
	assert.Equal(t, "Olá Maria, seu status é Expirado.", got)
}

func TestRenderTemplateNestedKeys(t *testing.T) {
	path := writeTemplate(t, "Total: {{ prices.total_price }} / Final: {{ prices.final_price }}")

	got, err := RenderTemplate(path, map[string]any{
		"prices": map[string]any{
			"total_price": 300.0,
			"final_price": 360.0,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Total: 300.00 / Final: 360.00", got)
}

func TestRenderTemplateJoinsLists(t *testing.T) {
	path := writeTemplate(t, "Serviços: {{ services }}")

	got, err := RenderTemplate(path, map[string]any{
		"services": []string{"A", "B", "Premium"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Serviços: A, B, Premium", got)
}

func TestRenderTemplateLeavesUnknownPlaceholders(t *testing.T) {
	path := writeTemplate(t, "{{ name }} / {{ missing }}")

	got, err := RenderTemplate(path, map[string]any{"name": "João"})
	require.NoError(t, err)
	assert.Equal(t, "João / {{ missing }}", got)
}

func TestRenderTemplateMissingFile(t *testing.T) {
	_, err := RenderTemplate(filepath.Join(t.TempDir(), "nope.txt"), map[string]any{})
	require.Error(t, err)
}

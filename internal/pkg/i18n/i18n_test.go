package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTranslations_ShippedLocales(t *testing.T) {
	require.NoError(t, LoadTranslations(filepath.Join("..", "..", "..", "locales")))

	assert.Equal(t, "برچسب", Translate("fa", "label"))
	assert.Equal(t, "Label", Translate("en", "label"))
	assert.Equal(t, "Completed", Translate("en", "Completed"))
	assert.Equal(t, "تکمیل شده", Translate("fa", "Completed"))
}

func TestTranslate_Fallbacks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "en"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "de"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en", "content_types.yaml"),
		[]byte("CONTENT_TYPES:\n  misc: Miscellaneous\n  flyer: Flyer\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "de", "content_types.yaml"),
		[]byte("CONTENT_TYPES:\n  flyer: Flugblatt\n"), 0o644))

	require.NoError(t, LoadTranslations(dir))

	assert.Equal(t, "Flugblatt", Translate("de", "flyer"))
	assert.Equal(t, "Miscellaneous", Translate("de", "misc"))
	assert.Equal(t, "unknown_key", Translate("de", "unknown_key"))
}

func TestLoadTranslations_RejectsBrokenYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "xx"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "xx", "content_types.yaml"), []byte("CONTENT_TYPES: [unclosed"), 0o644))

	assert.Error(t, LoadTranslations(dir))
}

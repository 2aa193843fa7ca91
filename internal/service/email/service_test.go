package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_DeadlineWarning(t *testing.T) {
	html, err := render("deadline_warning.html", deadlineData{
		Title:        "هشدار مهلت تحویل",
		Name:         "Sara",
		RequestTitle: "Tea <label>",
		Message:      "due soon",
		Link:         "https://example.com/requests",
	})

	require.NoError(t, err)
	assert.Contains(t, html, "Sara")
	assert.Contains(t, html, "due soon")
	assert.Contains(t, html, "Tea &lt;label&gt;")
	assert.Contains(t, html, `href="https://example.com/requests"`)
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := render("missing.html", nil)
	assert.Error(t, err)
}

package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/JonMunkholm/csvprofile/internal/core"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, c.Render(context.Background(), &b))
	return b.String()
}

func TestIndex(t *testing.T) {
	html := render(t, Index(`/data/"quoted".csv`, nil))

	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
	assert.True(t, strings.HasSuffix(html, "</html>"))
	assert.Contains(t, html, `value="/data/&#34;quoted&#34;.csv"`)
	assert.NotContains(t, html, `class="alert"`)
}

func TestIndex_WithAlert(t *testing.T) {
	html := render(t, Index("", ErrorAlert("File not found", "Check the path", "FILE006")))

	alert := strings.Index(html, `class="alert"`)
	form := strings.Index(html, "<form")
	require.NotEqual(t, -1, alert)
	assert.Less(t, alert, form, "alert renders above the form")
	assert.Contains(t, html, "Code: FILE006")
	assert.Contains(t, html, "Check the path")
}

func TestErrorAlert_OmitsEmptyParts(t *testing.T) {
	html := render(t, ErrorAlert("<b>bad</b>", "", ""))

	assert.Contains(t, html, "&lt;b&gt;bad&lt;/b&gt;")
	assert.NotContains(t, html, "Code:")
}

func TestResults(t *testing.T) {
	report := &core.FileReport{
		Path:       "/tmp/people.csv",
		SizeGiB:    1.5,
		NumRows:    2,
		NumColumns: 2,
		Columns: []core.ColumnProfile{
			{Name: "id", Index: 0, MaxWidth: 1, Type: core.TypeInteger, Category: core.CategoryNumeric,
				Stats: core.Describe([]float64{1, 2})},
			{Name: "name", Index: 1, MaxWidth: 5, Type: core.TypeText, Category: core.CategoryAlphanumeric,
				Stats: core.Describe(nil)},
		},
	}

	html := render(t, Results(report))

	assert.Contains(t, html, "<title>Results: /tmp/people.csv</title>")
	assert.Contains(t, html, "1.50 GB")
	assert.Contains(t, html, "<td>integer</td><td>numeric</td>")
	assert.Contains(t, html, "<td>text</td><td>alphanumeric</td>")
	assert.Contains(t, html, "1.50000")
	assert.Contains(t, html, core.NaNMarker)
	for _, stat := range core.StatNames {
		assert.Contains(t, html, "<tr><th>"+stat+"</th>")
	}
}

func TestResults_EscapesCellText(t *testing.T) {
	report := &core.FileReport{
		Path:       `/tmp/<x>.csv`,
		NumColumns: 1,
		Columns: []core.ColumnProfile{
			{Name: `<script>alert(1)</script>`, Type: core.TypeText, Category: core.CategoryAlphanumeric,
				Stats: core.Describe(nil)},
		},
	}

	html := render(t, Results(report))

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, html, "<title>Results: /tmp/&lt;x&gt;.csv</title>")
}

func TestLayout_RendersChildren(t *testing.T) {
	child := templ.Raw("<p>inside</p>")
	ctx := templ.WithChildren(context.Background(), child)

	var b strings.Builder
	require.NoError(t, Layout("T").Render(ctx, &b))

	assert.Contains(t, b.String(), "<main><p>inside</p></main>")
	assert.Contains(t, b.String(), "<title>T</title>")
}

package infrastructure

import (
	"errors"
	"testing"

	"resume-studio/pkg/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlebarsRendererRenders(t *testing.T) {
	r := NewHandlebarsRenderer(helpers.NewSet())
	data := map[string]interface{}{
		"personal": map[string]interface{}{"full_name": "Jane <Doe>"},
		"skills":   []interface{}{"Go", "SQL"},
	}

	out, err := r.Render(`<h1>{{personal.full_name}}</h1><p>{{join skills}}</p>`, data)
	require.NoError(t, err)
	assert.Equal(t, "<h1>Jane &lt;Doe&gt;</h1><p>Go, SQL</p>", out)

	// second call goes through the compiled cache
	out, err = r.Render(`<h1>{{personal.full_name}}</h1><p>{{join skills}}</p>`, data)
	require.NoError(t, err)
	assert.Contains(t, out, "Go, SQL")
	assert.Len(t, r.cache, 1)
}

func TestHandlebarsRendererMalformedBlock(t *testing.T) {
	r := NewHandlebarsRenderer(nil)

	_, err := r.Render(`{{#each experience}}<li>{{title}}</li>`, map[string]interface{}{})
	require.Error(t, err)

	var rerr *RenderError
	require.True(t, errors.As(err, &rerr))
	assert.Contains(t, rerr.Message, "compilation failed")
	assert.NotEmpty(t, rerr.Stack)
}

func TestHandlebarsRendererMismatchedClose(t *testing.T) {
	r := NewHandlebarsRenderer(nil)

	_, err := r.Render(`{{#if a}}x{{/each}}`, map[string]interface{}{"a": true})
	require.Error(t, err)
}

func TestHandlebarsRendererIsolatedHelperSets(t *testing.T) {
	a := NewHandlebarsRenderer(helpers.NewSet())
	b := NewHandlebarsRenderer(helpers.NewSet())
	src := `{{formatDate d}}`

	outA, err := a.Render(src, map[string]interface{}{"d": "2023-01"})
	require.NoError(t, err)
	outB, err := b.Render(src, map[string]interface{}{"d": "2023-02"})
	require.NoError(t, err)

	assert.Equal(t, "Jan 2023", outA)
	assert.Equal(t, "Feb 2023", outB)
}

func TestHandlebarsRendererUnknownHelper(t *testing.T) {
	r := NewHandlebarsRenderer(helpers.NewSet())

	for _, src := range []string{
		`{{nope a b}}`,
		`<p>{{shout name "loud"}}</p>`,
		`{{#nope items}}x{{/nope}}`,
		`{{#if (nope a)}}x{{/if}}`,
		`{{join skills sep=(nope a)}}`,
		`{{#each items}}{{#if a}}{{nope this}}{{else}}{{/if}}{{/each}}`,
	} {
		_, err := r.Render(src, map[string]interface{}{})
		require.Error(t, err, src)
		var rerr *RenderError
		require.True(t, errors.As(err, &rerr), src)
		assert.Contains(t, rerr.Message, "unknown helper", src)
	}
	assert.Empty(t, r.cache)
}

func TestHandlebarsRendererPlainFieldsAreNotHelpers(t *testing.T) {
	r := NewHandlebarsRenderer(helpers.NewSet())
	data := map[string]interface{}{
		"name":  "Jane",
		"items": []interface{}{"a", "b"},
	}

	out, err := r.Render(`{{name}}{{missing}}{{#if name}}!{{/if}}{{#each items}}{{this}}{{/each}}`, data)
	require.NoError(t, err)
	assert.Equal(t, "Jane!ab", out)
}

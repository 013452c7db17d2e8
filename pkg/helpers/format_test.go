package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSkillCategories(t *testing.T) {
	assert.True(t, IsFrontend("React"))
	assert.False(t, IsFrontend("Docker"))
	assert.True(t, IsTool("Docker"))
	assert.True(t, IsBackend("PostgreSQL"))

	// exact labels only
	assert.False(t, IsFrontend("react"))
	assert.False(t, IsFrontend("Cobol"))
	assert.False(t, IsBackend("Cobol"))
	assert.False(t, IsTool("Cobol"))
}

func TestExists(t *testing.T) {
	var nilMap map[string]interface{}
	var nilPtr *int

	cases := []struct {
		name string
		in   interface{}
		want bool
	}{
		{"nil", nil, false},
		{"empty string", "", false},
		{"blank string", "  \t", false},
		{"text", "x", true},
		{"empty list", []interface{}{}, false},
		{"empty string list", []string{}, false},
		{"list", []string{"a"}, true},
		{"zero", 0, true},
		{"false", false, true},
		{"nil map", nilMap, false},
		{"empty map", map[string]interface{}{}, true},
		{"nil pointer", nilPtr, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Exists(tc.in))
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Jan 2023", FormatDate("2023-01"))
	assert.Equal(t, "Dec 2019", FormatDate("2019-12"))
	assert.Equal(t, "soon", FormatDate("soon"))
	assert.Equal(t, "2023-13", FormatDate("2023-13"))
	assert.Equal(t, "", FormatDate(""))
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, IsValidURL("https://example.com"))
	assert.True(t, IsValidURL("http://localhost:8080/x?y=1"))
	assert.False(t, IsValidURL("not a url"))
	assert.False(t, IsValidURL("example.com"))
	assert.False(t, IsValidURL("linkedin.com/in/jane"))
	assert.False(t, IsValidURL("javascript:alert(1)"))
	assert.False(t, IsValidURL("javascript://example.com/%0aalert(1)"))
	assert.False(t, IsValidURL("data://example.com/text/html,<script>"))
	assert.False(t, IsValidURL("ftp://example.com/file"))
	assert.True(t, IsValidURL("HTTPS://Example.com"))
	assert.False(t, IsValidURL(""))
}

func TestURLDisplay(t *testing.T) {
	assert.Equal(t, "example.com", URLDisplay("https://www.example.com/x", ""))
	assert.Equal(t, "My Site", URLDisplay("https://example.com", "My Site"))
	assert.Equal(t, "blog.example.com", URLDisplay("https://blog.example.com", "   "))
	assert.Equal(t, "example.com/raw", URLDisplay("example.com/raw", ""))
	assert.Equal(t, "", URLDisplay("", ""))
}

func TestExtract(t *testing.T) {
	obj := map[string]interface{}{
		"personal": map[string]interface{}{"full_name": "Jane"},
		"projects": []interface{}{map[string]interface{}{"name": "P1"}},
		"labels":   map[string]string{"experience": "Work"},
	}
	assert.Equal(t, "Jane", Extract(obj, "personal.full_name"))
	assert.Equal(t, "P1", Extract(obj, "projects.0.name"))
	assert.Equal(t, "Work", Extract(obj, "labels.experience"))
	assert.Equal(t, "", Extract(obj, "personal.missing.deeper"))
	assert.Equal(t, "", Extract(obj, "projects.5.name"))
	assert.Equal(t, "", Extract(nil, "a"))
	assert.Equal(t, "", Extract(obj, ""))
}

func TestJoinAndLimit(t *testing.T) {
	assert.Equal(t, "Go, SQL", Join([]string{"Go", "SQL"}, DefaultSeparator))
	assert.Equal(t, "a|2", Join([]interface{}{"a", 2}, "|"))
	assert.Equal(t, "", Join("Go", ", "))
	assert.Equal(t, "", Join(nil, ", "))

	assert.Equal(t, []interface{}{"a", "b"}, Limit([]string{"a", "b", "c"}, 2))
	assert.Equal(t, []interface{}{"a"}, Limit([]interface{}{"a"}, 5))
	assert.Equal(t, []interface{}{}, Limit([]string{"a"}, -1))
	assert.Equal(t, []interface{}{}, Limit("abc", 2))
}

func TestCalculateDuration(t *testing.T) {
	now := time.Date(2022, time.January, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2 yrs", CalculateDuration("2020-01", "", true, now))
	assert.Equal(t, "6 mos", CalculateDuration("2020-01", "2020-07", false, now))
	assert.Equal(t, "", CalculateDuration("", "2020-07", false, now))
	assert.Equal(t, "1 yr 1 mo", CalculateDuration("2019-01", "2020-02", false, now))
	assert.Equal(t, "1 yr", CalculateDuration("2019-03", "2020-03", false, now))
	assert.Equal(t, "1 mo", CalculateDuration("2021-12", "", false, now))

	// current wins over an end date
	assert.Equal(t, "2 yrs", CalculateDuration("2020-01", "2020-03", true, now))
	// end before start clamps
	assert.Equal(t, "0 mos", CalculateDuration("2020-05", "2020-01", false, now))
	assert.Equal(t, "", CalculateDuration("garbage", "", true, now))
}

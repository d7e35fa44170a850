package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)
	require.Greater(t, c.Len(), 0)

	themes := map[string]bool{}
	for _, g := range c.Goals() {
		themes[g.Theme] = true
		assert.Greater(t, g.TimeframeWeeks, 0, g.ID)
		assert.NotEmpty(t, g.FirstSteps, g.ID)
		for _, tag := range g.Tags {
			assert.Equal(t, strings.ToLower(tag), tag, g.ID)
		}
	}
	for _, theme := range []string{"career", "tech", "health", "finance", "community", "creative"} {
		assert.True(t, themes[theme], "missing theme %s", theme)
	}

	g, ok := c.Get("tech-automate-task")
	require.True(t, ok)
	assert.Equal(t, 2, g.TimeframeWeeks)
	assert.True(t, g.HasTag("automation"))
}

func TestParseDefaults(t *testing.T) {
	c, err := Parse([]byte(`{"goals":[{"id":"x","title":"X","tags":["Foo","BAR"]}]}`))
	require.NoError(t, err)
	g, ok := c.Get("x")
	require.True(t, ok)
	assert.Equal(t, "other", g.Theme)
	assert.Equal(t, 4, g.TimeframeWeeks)
	assert.Equal(t, "beginner", g.Difficulty)
	assert.Equal(t, []string{"foo", "bar"}, g.Tags)
	assert.Empty(t, g.FirstSteps)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{name: "malformed", doc: "goals: [\n"},
		{name: "empty", doc: "goals: []"},
		{name: "missing_goals_key", doc: "items: []"},
		{name: "missing_id", doc: "goals:\n  - title: X\n"},
		{name: "missing_title", doc: "goals:\n  - id: x\n"},
		{name: "duplicate_id", doc: "goals:\n  - {id: x, title: X}\n  - {id: x, title: Y}\n"},
		{name: "zero_timeframe", doc: "goals:\n  - {id: x, title: X, timeframe_weeks: 0}\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte("goals: []"))
	assert.True(t, errors.Is(err, ErrEmptyCatalog))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestGoalsReturnsCopy(t *testing.T) {
	c := New([]Goal{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}})
	goals := c.Goals()
	goals[0].Title = "changed"
	g, _ := c.Get("a")
	assert.Equal(t, "A", g.Title)
}

func TestLoaderCachesUntilModified(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "goals.yaml")
	require.NoError(t, os.WriteFile(path, []byte("goals:\n  - {id: a, title: A}\n"), 0o600))

	l, err := NewLoader(2)
	require.NoError(t, err)
	loads := 0
	l.load = func(p string) (*Catalog, error) {
		loads++
		return Load(p)
	}

	first, err := l.Load(path)
	require.NoError(t, err)
	second, err := l.Load(path)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, loads)

	require.NoError(t, os.WriteFile(path, []byte("goals:\n  - {id: a, title: A}\n  - {id: b, title: B}\n"), 0o600))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	third, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, third.Len())
	assert.Equal(t, 2, loads)
}

func TestLoaderDefault(t *testing.T) {
	l, err := NewLoader(0)
	require.NoError(t, err)
	a, err := l.Load("")
	require.NoError(t, err)
	b, err := l.Load("")
	require.NoError(t, err)
	assert.Same(t, a, b)

	l.Purge()
	c, err := l.Load("")
	require.NoError(t, err)
	assert.NotSame(t, a, c)
}

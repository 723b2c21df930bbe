package scan

import (
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/mshrfind/internal/model"
)

// newMatcher is a test helper that builds a Matcher and fails the test on
// construction errors.
func newMatcher(t *testing.T, ids []string, filters Filters) *Matcher {
	t.Helper()
	m, err := NewMatcher(model.NewIdentifierSet(ids), filters)
	require.NoError(t, err)
	return m
}

// TestMatcher_Match verifies the identifier-substring predicate on bare
// paths, without filters.
func TestMatcher_Match(t *testing.T) {
	m := newMatcher(t, []string{"123", "456"}, Filters{})

	tests := []struct {
		name    string
		path    string
		matched bool
		wantID  string
	}{
		{"identifier in basename", "/data/x/sample/MSHR123.fastq.gz", true, "123"},
		{"other identifier", "/data/x/MSHR456_R1.fastq.gz", true, "456"},
		{"no identifier", "/data/x/other/readme.txt", false, ""},
		{"identifier only in directory", "/data/123/readme.txt", false, ""},
		{"near miss", "/data/x/MSHR12.fastq.gz", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, ok := m.Match(tt.path)
			assert.Equal(t, tt.matched, ok)
			if tt.matched {
				assert.Equal(t, tt.path, match.Path)
				assert.Equal(t, tt.wantID, match.Identifier)
			}
		})
	}
}

// TestMatcher_Match_PatternFilter verifies the glob pre-filter: the
// basename must match the glob before identifier matching runs.
func TestMatcher_Match_PatternFilter(t *testing.T) {
	m := newMatcher(t, []string{"123"}, Filters{Pattern: "*.fastq.gz"})

	_, ok := m.Match("/data/MSHR123.fastq.gz")
	assert.True(t, ok)

	// Same identifier, wrong extension.
	_, ok = m.Match("/data/MSHR123.bam")
	assert.False(t, ok)
}

// TestMatcher_Match_AllowDeny verifies the case-insensitive allow/deny
// path filters, including deny winning over allow.
func TestMatcher_Match_AllowDeny(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		path    string
		matched bool
	}{
		{
			"allow passes on case-insensitive hit",
			Filters{Allow: []string{"mshr"}},
			"/data/genomes/MSHR123.fastq.gz",
			true,
		},
		{
			"allow rejects when absent",
			Filters{Allow: []string{"mshr"}},
			"/data/genomes/sample123.fastq.gz",
			false,
		},
		{
			"deny rejects on case-insensitive hit",
			Filters{Deny: []string{"mixed"}},
			"/data/MIXED/MSHR123.fastq.gz",
			false,
		},
		{
			"deny wins over allow",
			Filters{Allow: []string{"mshr"}, Deny: []string{"mixed"}},
			"/data/mixed/MSHR123.fastq.gz",
			false,
		},
		{
			"no filters pass everything through",
			Filters{},
			"/data/anything/MSHR123.fastq.gz",
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMatcher(t, []string{"123"}, tt.filters)
			_, ok := m.Match(tt.path)
			assert.Equal(t, tt.matched, ok)
		})
	}
}

// TestNewMatcher_InvalidPattern verifies that a malformed glob fails at
// construction, not mid-walk.
func TestNewMatcher_InvalidPattern(t *testing.T) {
	_, err := NewMatcher(model.NewIdentifierSet([]string{"123"}), Filters{Pattern: "[unclosed"})
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitGeneralError, cliErr.Code)
}

// TestFind composes Walker and Matcher over a real temp tree: the spec
// scenario where the list contains 123 and only MSHR123.fastq.gz matches.
func TestFind(t *testing.T) {
	root := t.TempDir()
	want := writeFile(t, root, "sample/MSHR123.fastq.gz")
	writeFile(t, root, "other/readme.txt")

	w, err := NewWalker(root)
	require.NoError(t, err)
	m := newMatcher(t, []string{"123"}, Filters{})

	var got []string
	require.NoError(t, Find(w, m, func(match model.Match) error {
		got = append(got, match.Path)
		return nil
	}))

	assert.Equal(t, []string{want}, got)
}

// TestFind_MultipleMatches verifies that every matching file at a distinct
// path is reported, with no duplicates introduced by the search itself.
func TestFind_MultipleMatches(t *testing.T) {
	root := t.TempDir()
	a := writeFile(t, root, "run1/MSHR123_R1.fastq.gz")
	b := writeFile(t, root, "run2/MSHR123_R1.fastq.gz")
	c := writeFile(t, root, "run1/MSHR124_R1.fastq.gz")
	writeFile(t, root, "run1/notes.md")

	w, err := NewWalker(root)
	require.NoError(t, err)
	m := newMatcher(t, []string{"123", "124"}, Filters{})

	var got []string
	require.NoError(t, Find(w, m, func(match model.Match) error {
		got = append(got, match.Path)
		return nil
	}))
	sort.Strings(got)

	expected := []string{a, b, c}
	sort.Strings(expected)
	assert.Equal(t, expected, got)
}

// TestFind_CallbackErrorAborts verifies per-match callback errors stop
// the search.
func TestFind_CallbackErrorAborts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "MSHR123.fastq.gz")

	w, err := NewWalker(root)
	require.NoError(t, err)
	m := newMatcher(t, []string{"123"}, Filters{})

	sentinel := errors.New("downstream failure")
	err = Find(w, m, func(match model.Match) error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
}

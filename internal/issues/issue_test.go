package issues

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/djabraham/yamlschema/internal/severity"
)

func TestRangeContains(t *testing.T) {
	r := Range{Start: 5, End: 10}

	assert.True(t, r.Contains(5), "start is inclusive")
	assert.True(t, r.Contains(9))
	assert.False(t, r.Contains(10), "end is exclusive")
	assert.False(t, r.Contains(4))
}

func TestIssueString(t *testing.T) {
	tests := []struct {
		name  string
		issue Issue
		want  string
	}{
		{
			name: "error with location",
			issue: Issue{
				Range:    Range{Start: 12, End: 18},
				Message:  "missing property \"name\"",
				Severity: severity.SeverityError,
				Path:     "$.pets[0]",
				Line:     3,
				Column:   5,
			},
			want: "✗ $.pets[0] (line 3, col 5): missing property \"name\"",
		},
		{
			name: "warning without location",
			issue: Issue{
				Range:    Range{Start: 0, End: 4},
				Message:  "incorrect type, expected \"string\"",
				Severity: severity.SeverityWarning,
				Path:     "$.kind",
			},
			want: "⚠ $.kind: incorrect type, expected \"string\"",
		},
		{
			name: "no path falls back to byte range",
			issue: Issue{
				Range:    Range{Start: 7, End: 8},
				Message:  "matches a disallowed schema",
				Severity: severity.SeverityWarning,
			},
			want: "⚠ [7:8): matches a disallowed schema",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.issue.String())
		})
	}
}

func TestIssueLocation(t *testing.T) {
	i := Issue{Range: Range{Start: 3, End: 9}}
	assert.Equal(t, "[3:9)", i.Location())
	assert.False(t, i.HasLocation())

	i.Line, i.Column = 2, 7
	assert.Equal(t, "2:7", i.Location())
	assert.True(t, i.HasLocation())

	i.File = "config.yaml"
	assert.Equal(t, "config.yaml:2:7", i.Location())
}

func TestIssueKey(t *testing.T) {
	a := Issue{Range: Range{Start: 1, End: 4}, Message: "m"}
	b := Issue{Range: Range{Start: 1, End: 4}, Message: "m", Line: 9}
	c := Issue{Range: Range{Start: 1, End: 5}, Message: "m"}

	// Line/column do not participate in the signature, the range does.
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}

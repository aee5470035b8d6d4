package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/djabraham/yamlschema/internal/issues"
	"github.com/djabraham/yamlschema/internal/severity"
)

func warningAt(start, end int, msg string) issues.Issue {
	return issues.Issue{
		Range:    issues.Range{Start: start, End: end},
		Message:  msg,
		Severity: severity.SeverityWarning,
	}
}

func TestValidationResultHasProblems(t *testing.T) {
	r := NewValidationResult()
	assert.False(t, r.HasProblems())

	r.Warnings = append(r.Warnings, warningAt(0, 1, "w"))
	assert.True(t, r.HasProblems())

	r = NewValidationResult()
	r.Errors = append(r.Errors, issues.Issue{Message: "e"})
	assert.True(t, r.HasProblems())
}

func TestValidationResultMerge(t *testing.T) {
	r := NewValidationResult()
	other := NewValidationResult()
	other.Errors = append(other.Errors, issues.Issue{Message: "e"})
	other.Warnings = append(other.Warnings, warningAt(2, 4, "w"))
	other.PropertiesMatches = 3
	other.PropertiesValueMatches = 2

	r.Merge(other)
	assert.Len(t, r.Errors, 1)
	assert.Len(t, r.Warnings, 1)
	// Merge carries diagnostics only; counters stay with the caller.
	assert.Zero(t, r.PropertiesMatches)
	assert.Zero(t, r.PropertiesValueMatches)

	r.Merge(nil)
	assert.Len(t, r.Issues(), 2)
}

func TestValidationResultMergePropertyMatch(t *testing.T) {
	tests := []struct {
		name        string
		child       func() *ValidationResult
		wantValueUp bool
	}{
		{
			name: "clean child with matches",
			child: func() *ValidationResult {
				c := NewValidationResult()
				c.PropertiesMatches = 1
				return c
			},
			wantValueUp: true,
		},
		{
			name:        "clean child without matches",
			child:       NewValidationResult,
			wantValueUp: false,
		},
		{
			name: "enum hit outweighs problems",
			child: func() *ValidationResult {
				c := NewValidationResult()
				c.Warnings = append(c.Warnings, warningAt(0, 1, "w"))
				c.EnumValueMatch = true
				return c
			},
			wantValueUp: true,
		},
		{
			name: "problem child",
			child: func() *ValidationResult {
				c := NewValidationResult()
				c.Warnings = append(c.Warnings, warningAt(0, 1, "w"))
				c.PropertiesMatches = 1
				return c
			},
			wantValueUp: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewValidationResult()
			r.MergePropertyMatch(tt.child())
			assert.Equal(t, 1, r.PropertiesMatches)
			if tt.wantValueUp {
				assert.Equal(t, 1, r.PropertiesValueMatches)
			} else {
				assert.Zero(t, r.PropertiesValueMatches)
			}
		})
	}
}

func TestValidationResultCompare(t *testing.T) {
	clean := func() *ValidationResult { return NewValidationResult() }
	problem := func() *ValidationResult {
		r := NewValidationResult()
		r.Warnings = append(r.Warnings, warningAt(0, 1, "w"))
		return r
	}

	t.Run("problem free wins", func(t *testing.T) {
		a, b := clean(), problem()
		b.PropertiesValueMatches = 10
		assert.Positive(t, a.Compare(b))
		assert.Negative(t, b.Compare(a))
	})

	t.Run("enum match wins", func(t *testing.T) {
		a, b := clean(), clean()
		a.EnumValueMatch = true
		b.PropertiesValueMatches = 10
		assert.Positive(t, a.Compare(b))
	})

	t.Run("value matches before property matches", func(t *testing.T) {
		a, b := clean(), clean()
		a.PropertiesValueMatches = 2
		b.PropertiesValueMatches = 1
		b.PropertiesMatches = 10
		assert.Positive(t, a.Compare(b))
	})

	t.Run("property matches break ties", func(t *testing.T) {
		a, b := clean(), clean()
		a.PropertiesMatches = 3
		b.PropertiesMatches = 1
		assert.Positive(t, a.Compare(b))
	})

	t.Run("equal", func(t *testing.T) {
		assert.Zero(t, clean().Compare(clean()))
	})
}

func TestValidationResultIssuesOrder(t *testing.T) {
	r := NewValidationResult()
	r.Warnings = append(r.Warnings, warningAt(5, 6, "warn"))
	r.Errors = append(r.Errors, issues.Issue{Message: "err"})

	all := r.Issues()
	assert.Equal(t, "err", all[0].Message)
	assert.Equal(t, "warn", all[1].Message)
}

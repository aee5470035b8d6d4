package severity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityString(t *testing.T) {
	tests := []struct {
		name     string
		severity Severity
		want     string
	}{
		{"error", SeverityError, "error"},
		{"warning", SeverityWarning, "warning"},
		{"info", SeverityInfo, "info"},
		{"critical", SeverityCritical, "critical"},
		{"unknown value", Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.severity.String())
		})
	}
}

func TestSeverityOrdering(t *testing.T) {
	// The zero value must be Error so that an uninitialized issue is
	// never silently downgraded.
	assert.Equal(t, SeverityError, Severity(0))
	assert.Less(t, int(SeverityError), int(SeverityWarning))
	assert.Less(t, int(SeverityWarning), int(SeverityInfo))
}

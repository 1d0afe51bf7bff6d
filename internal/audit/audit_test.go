package audit_test

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miniblog/backend/internal/audit"
)

func TestRunAllChecksPass(t *testing.T) {
	report, err := audit.Run(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "passed", report.Status)
	assert.Equal(t, report.Total, report.Passed)
	assert.Zero(t, report.Failed)
	assert.NotEmpty(t, report.Checks)
	assert.False(t, report.ExecutedAt.IsZero())

	for _, c := range report.Checks {
		assert.Equalf(t, "passed", c.Status, "check %s: %s", c.Name, c.Detail)
	}
}

func TestReportEncodesAsJSON(t *testing.T) {
	report, err := audit.Run(zerolog.Nop())
	require.NoError(t, err)

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "suite")
	assert.Contains(t, decoded, "total_checks")
	assert.Contains(t, decoded, "checks")
}

package server_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchlog/go-punchlog/server"
)

func TestIsOutsideThresholdPeriod(t *testing.T) {
	outside, err := server.IsOutsideThresholdPeriod(time.Now().Add(-48*time.Hour), "24h")
	require.NoError(t, err)
	assert.True(t, outside)

	outside, err = server.IsOutsideThresholdPeriod(time.Now().Add(-time.Minute), "24h")
	require.NoError(t, err)
	assert.False(t, outside)
}

func TestIsOutsideThresholdPeriodBadExpression(t *testing.T) {
	_, err := server.IsOutsideThresholdPeriod(time.Now(), "one day")
	assert.Error(t, err)
}

package punchlog_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	punchlog "github.com/punchlog/go-punchlog"
)

func TestIsTokenExpiredError(t *testing.T) {
	assert.False(t, punchlog.IsTokenExpiredError(nil))
	assert.False(t, punchlog.IsTokenExpiredError(errors.New("bad day")))
	assert.True(t, punchlog.IsTokenExpiredError(errors.New("token is expired")))
	assert.True(t, punchlog.IsTokenExpiredError(fmt.Errorf("wrap: %w", errors.New("token is expired by 3h"))))
}

func TestIsMalformedError(t *testing.T) {
	assert.False(t, punchlog.IsMalformedError(nil))
	assert.False(t, punchlog.IsMalformedError(errors.New("token is expired")))
	assert.True(t, punchlog.IsMalformedError(errors.New("token is malformed")))
	assert.True(t, punchlog.IsMalformedError(errors.New("missing or malformed JWT")))
}

func TestSentinelTextCodes(t *testing.T) {
	assert.Equal(t, "NO_CREDENTIAL", punchlog.ErrNoCredential.TextCode)
	assert.Equal(t, "TOKEN_MALFORMED", punchlog.ErrTokenMalformed.TextCode)
	assert.Equal(t, "TOKEN_REJECTED", punchlog.ErrTokenRejected.TextCode)
	assert.Equal(t, "INVALID_ROLE", punchlog.ErrInvalidRole.TextCode)
}

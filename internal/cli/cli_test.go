package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRejectsCheckWithWatch(t *testing.T) {
	cfg := &HeaderOnlyConfig{Check: true, Watch: true}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidateAllowsEitherModeAlone(t *testing.T) {
	assert.NoError(t, (&HeaderOnlyConfig{Check: true}).Validate())
	assert.NoError(t, (&HeaderOnlyConfig{Watch: true}).Validate())
	assert.NoError(t, (&HeaderOnlyConfig{}).Validate())
}

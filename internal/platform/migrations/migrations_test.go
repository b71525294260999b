package migrations

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSupported(t *testing.T) {
	for _, command := range Commands {
		assert.True(t, IsSupported(command), command)
	}

	assert.False(t, IsSupported("create"))
	assert.False(t, IsSupported("fix"))
	assert.False(t, IsSupported(""))
}

func TestRun_RejectsUnsupportedCommand(t *testing.T) {
	err := Run(context.Background(), nil, Source{}, "create", "add_table", "sql")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported migration command "create"`)
}

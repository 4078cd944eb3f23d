package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolOpensOnce(t *testing.T) {
	p := &Pool{}
	require.NoError(t, p.Close())

	path := filepath.Join(t.TempDir(), "metadata.db")
	first, err := p.Open(path)
	require.NoError(t, err)

	second, err := p.Open(filepath.Join(t.TempDir(), "other.db"))
	require.NoError(t, err)
	assert.Same(t, first, second)

	require.NoError(t, p.Close())
}

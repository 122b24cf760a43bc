package file

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveLoadOverwrite(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	_, found, err := s.Load(ctx, "@soccer_team_data")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Save(ctx, "@soccer_team_data", []byte(`{"teams":[]}`)))
	require.NoError(t, s.Save(ctx, "@soccer_team_data", []byte(`{"teams":[1]}`)))

	raw, found, err := s.Load(ctx, "@soccer_team_data")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `{"teams":[1]}`, string(raw))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestStore_CanceledContext(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, s.Save(ctx, "k", []byte("x")))
}

func TestNew_RequiresDir(t *testing.T) {
	_, err := New("")
	require.Error(t, err)
}

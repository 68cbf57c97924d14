package collision

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fcb/errs"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker()

	require.NotNil(t, tracker)
	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.Empty(t, tracker.Collisions())
}

func TestTracker_Track(t *testing.T) {
	tracker := NewTracker()

	ok, err := tracker.Track("Name", 0xFE11D138)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = tracker.Track("Entity", 0x0984415E)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2, tracker.Count())

	name, found := tracker.Lookup(0xFE11D138)
	require.True(t, found)
	require.Equal(t, "Name", name)

	_, found = tracker.Lookup(0x12345678)
	require.False(t, found)
}

func TestTracker_SameNameTwice(t *testing.T) {
	tracker := NewTracker()

	_, err := tracker.Track("Name", 0xFE11D138)
	require.NoError(t, err)

	ok, err := tracker.Track("Name", 0xFE11D138)
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, tracker.HasCollision())
	require.Equal(t, 1, tracker.Count())
}

func TestTracker_Collision(t *testing.T) {
	tracker := NewTracker()

	_, err := tracker.Track("first", 0xAAAA)
	require.NoError(t, err)

	ok, err := tracker.Track("second", 0xAAAA)
	require.NoError(t, err)
	require.False(t, ok)
	require.True(t, tracker.HasCollision())

	name, _ := tracker.Lookup(0xAAAA)
	require.Equal(t, "first", name, "first registration wins")
	require.Equal(t, []Collision{{Hash: 0xAAAA, Kept: "first", Dropped: "second"}}, tracker.Collisions())
}

func TestTracker_EmptyName(t *testing.T) {
	tracker := NewTracker()

	_, err := tracker.Track("", 0)
	require.ErrorIs(t, err, errs.ErrEmptyName)
	require.Equal(t, 0, tracker.Count())
}

func TestTracker_Reset(t *testing.T) {
	tracker := NewTracker()

	_, _ = tracker.Track("a", 1)
	_, _ = tracker.Track("b", 1)
	require.True(t, tracker.HasCollision())

	tracker.Reset()
	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())

	ok, err := tracker.Track("b", 1)
	require.NoError(t, err)
	require.True(t, ok)
}

package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomRegistry_UniqueCodes(t *testing.T) {
	reg := NewRoomRegistry(0, nil)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		room := reg.CreateRoom()
		code := room.Code()
		require.Len(t, code, roomCodeLength)
		for i := 0; i < len(code); i++ {
			assert.Contains(t, roomCodeAlphabet, string(code[i]))
		}
		assert.False(t, seen[code], "code %q handed out twice", code)
		seen[code] = true
	}
	assert.Equal(t, 50, reg.Count())
}

func TestRoomRegistry_GetAndRemove(t *testing.T) {
	reg := NewRoomRegistry(0, nil)
	room := reg.CreateRoom()

	got, ok := reg.Get(room.Code())
	require.True(t, ok)
	assert.Same(t, room, got)

	_, ok = reg.Get("nosuch")
	assert.False(t, ok)

	reg.Remove(room.Code())
	_, ok = reg.Get(room.Code())
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Count())

	// idempotent
	reg.Remove(room.Code())
}

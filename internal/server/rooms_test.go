package server

import (
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullromo/cribbage/internal/models"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newPlayer(username string) *models.Player {
	id := uuid.New()
	return &models.Player{ID: id, User: &models.User{ID: id, Username: username}}
}

func TestRegistryCreateLookup(t *testing.T) {
	reg := NewRegistry(quietLogger())
	room := reg.Create()

	require.Len(t, room.Code, CodeLength)
	for _, ch := range room.Code {
		assert.True(t, strings.ContainsRune(codeAlphabet, ch), "bad code char %q", ch)
	}

	found, err := reg.Lookup(room.Code)
	require.NoError(t, err)
	assert.Same(t, room, found)
	assert.Equal(t, 1, reg.Len())

	_, err = reg.Lookup("ZZZZZZ")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRegistryCodesUnique(t *testing.T) {
	reg := NewRegistry(quietLogger())
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		room := reg.Create()
		require.False(t, seen[room.Code], "code %s repeated", room.Code)
		seen[room.Code] = true
	}
}

func TestRegistryJoin(t *testing.T) {
	reg := NewRegistry(quietLogger())
	room := reg.Create()
	room.Game.Seed = 21

	_, err := reg.Join(room.Code, newPlayer("alice"))
	require.NoError(t, err)
	_, err = reg.Join(room.Code, newPlayer("bob"))
	require.NoError(t, err)
	assert.True(t, room.Game.Started())

	_, err = reg.Join(room.Code, newPlayer("carol"))
	assert.ErrorIs(t, err, ErrRoomFull)

	_, err = reg.Join("NOSUCH", newPlayer("dave"))
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRegistryJoinTwiceRejected(t *testing.T) {
	reg := NewRegistry(quietLogger())
	room := reg.Create()

	creator := newPlayer("alice")
	_, err := reg.Join(room.Code, creator)
	require.NoError(t, err)
	_, err = reg.Join(room.Code, &models.Player{ID: creator.ID, User: creator.User})
	assert.Error(t, err)
}

func TestRegistryRemove(t *testing.T) {
	reg := NewRegistry(quietLogger())
	room := reg.Create()
	reg.Remove(room.Code)
	assert.Equal(t, 0, reg.Len())
	_, err := reg.Lookup(room.Code)
	assert.ErrorIs(t, err, ErrRoomNotFound)
	// Removing twice is harmless.
	reg.Remove(room.Code)
}

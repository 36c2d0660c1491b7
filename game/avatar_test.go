package game

import (
	"testing"

	"github.com/beka-birhanu/vinom-sentinel/maze"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvatarStartsBelowEntrance(t *testing.T) {
	w, _, _ := layoutWorld(t, 3)

	assert.Equal(t, pos(1, -1), w.Avatar().Pos())
	assert.True(t, w.Avatar().Present())
	assert.Equal(t, w.Avatar().MaxHealth(), w.Avatar().Health())
}

func TestMoveAvatarBumpsWalls(t *testing.T) {
	w, rec, _ := layoutWorld(t, 3)
	maxHealth := w.Avatar().MaxHealth()

	for i := 1; i <= maxHealth; i++ {
		result, err := w.MoveAvatar(maze.Left)
		require.NoError(t, err)
		assert.Equal(t, MoveBumped, result)
		assert.Equal(t, maxHealth-i, w.Avatar().Health())
	}

	assert.Len(t, rec.walls, maxHealth)
	require.Len(t, rec.health, maxHealth)
	assert.Equal(t, 0, rec.health[maxHealth-1].Health)
	require.Len(t, rec.over, 1)
	assert.Equal(t, ReasonWalls, rec.over[0].Reason)

	_, err := w.MoveAvatar(maze.Up)
	assert.ErrorIs(t, err, ErrGameEnded)
}

func TestMoveAvatarExits(t *testing.T) {
	w, rec, _ := layoutWorld(t, 3, maze.Corridor(pos(1, 0), pos(1, 2))...)

	move(t, w, maze.Up, maze.Up, maze.Up)
	require.Equal(t, w.Grid().End(), w.Avatar().Pos())

	result, err := w.MoveAvatar(maze.Up)
	require.NoError(t, err)
	assert.Equal(t, MoveExited, result)

	status, _ := w.Status()
	assert.Equal(t, StatusWon, status)
	require.Len(t, rec.won, 1)
	assert.Equal(t, 4, rec.won[0].Moves)
	assert.False(t, w.Avatar().Present())
}

func TestMoveAvatarCaught(t *testing.T) {
	w, rec, _ := layoutWorld(t, 3, maze.Corridor(pos(1, 0), pos(1, 2))...)
	spawn(t, w, pos(1, 1))

	move(t, w, maze.Up)
	result, err := w.MoveAvatar(maze.Up)
	require.NoError(t, err)
	assert.Equal(t, MoveCaught, result)

	status, reason := w.Status()
	assert.Equal(t, StatusLost, status)
	assert.Equal(t, ReasonCaught, reason)
	require.Len(t, rec.over, 1)
}

func TestAvatarShootRemovesSentinels(t *testing.T) {
	passages := append(maze.Corridor(pos(0, 0), pos(2, 0)), maze.Passage{From: pos(1, 0), Side: maze.Up})
	w, rec, _ := layoutWorld(t, 3, passages...)
	left := spawn(t, w, pos(0, 0))
	right := spawn(t, w, pos(2, 0))
	hidden := spawn(t, w, pos(2, 2))

	move(t, w, maze.Up)
	shot, err := w.AvatarShoot()
	require.NoError(t, err)

	assert.Equal(t, pos(1, 0), shot.Origin)
	assert.Equal(t, 1, shot.Ranges.Of(maze.Left))
	assert.Equal(t, 1, shot.Ranges.Of(maze.Right))
	assert.Equal(t, 1, shot.Ranges.Of(maze.Up))
	assert.Equal(t, 0, shot.Ranges.Of(maze.Down))
	assert.Equal(t, []uuid.UUID{left.ID(), right.ID()}, shot.Agents)

	assert.Equal(t, StateRemoved, left.State())
	assert.Equal(t, StateRemoved, right.State())
	assert.Equal(t, StateWander, hidden.State())
	assert.Equal(t, []*Agent{hidden}, w.Agents())
	assert.Len(t, rec.removed, 2)
	require.Len(t, rec.shots, 1)
}

func TestAvatarShootOutsideMaze(t *testing.T) {
	w, _, _ := layoutWorld(t, 3)

	_, err := w.AvatarShoot()
	assert.ErrorIs(t, err, ErrAvatarOutside)
}

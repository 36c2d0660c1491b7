package gameapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/beka-birhanu/vinom-sentinel/game"
	"github.com/beka-birhanu/vinom-sentinel/maze"
	"github.com/beka-birhanu/vinom-sentinel/service"
	"github.com/beka-birhanu/vinom-sentinel/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionController exposes hosted sessions.
type SessionController struct {
	sessionManager i.SessionManager
}

// NewSessionController initializes a SessionController.
func NewSessionController(sm i.SessionManager) *SessionController {
	return &SessionController{sessionManager: sm}
}

// Register registers the session routes.
func (sc *SessionController) Register(route *gin.RouterGroup) {
	sessions := route.Group("/sessions")
	{
		sessions.POST("", sc.create)
		sessions.GET("/:ID", sc.snapshot)
		sessions.GET("/:ID/maze", sc.render)
		sessions.POST("/:ID/moves", sc.move)
		sessions.POST("/:ID/shots", sc.shoot)
		sessions.DELETE("/:ID", sc.delete)
	}
}

// create starts a new session.
func (sc *SessionController) create(ctx *gin.Context) {
	var request CreateSessionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info, err := sc.sessionManager.NewSession(i.SessionOptions{
		Size:   request.Size,
		Agents: request.Agents,
		Seed:   request.Seed,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, info)
}

// snapshot returns the current state of a session.
func (sc *SessionController) snapshot(ctx *gin.Context) {
	ID, ok := sessionID(ctx)
	if !ok {
		return
	}

	snap, err := sc.sessionManager.Snapshot(ID)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, snap)
}

// render returns the maze drawing as plain text.
func (sc *SessionController) render(ctx *gin.Context) {
	ID, ok := sessionID(ctx)
	if !ok {
		return
	}

	out, err := sc.sessionManager.Render(ID)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.String(http.StatusOK, out)
}

// move steps the avatar.
func (sc *SessionController) move(ctx *gin.Context) {
	ID, ok := sessionID(ctx)
	if !ok {
		return
	}

	var request MoveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	side, err := maze.ParseSide(request.Direction)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, snap, err := sc.sessionManager.Move(ID, side)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &MoveResponse{Result: result, Snapshot: snap})
}

// shoot fires the avatar's weapon.
func (sc *SessionController) shoot(ctx *gin.Context) {
	ID, ok := sessionID(ctx)
	if !ok {
		return
	}

	shot, snap, err := sc.sessionManager.Shoot(ID)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newShotResponse(shot, snap))
}

// delete stops a session.
func (sc *SessionController) delete(ctx *gin.Context) {
	ID, ok := sessionID(ctx)
	if !ok {
		return
	}

	if err := sc.sessionManager.Delete(ID); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// sessionID parses the ID path parameter, answering 400 when it is not a UUID.
func sessionID(ctx *gin.Context) (uuid.UUID, bool) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, false
	}
	return ID, true
}

// writeError maps service and world errors to HTTP statuses.
func writeError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrInvalidConfig):
		status = http.StatusBadRequest
	case errors.Is(err, game.ErrGameEnded), errors.Is(err, game.ErrAvatarOutside):
		status = http.StatusConflict
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}

package gameapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/beka-birhanu/vinom-sentinel/service/i"
	"github.com/gin-gonic/gin"
)

const (
	defaultScoreLimit = 10
	scoreboardTimeout = 500 * time.Millisecond
)

// ScoreboardController exposes the best runs.
type ScoreboardController struct {
	scoreboard i.Scoreboard
}

// NewScoreboardController initializes a ScoreboardController.
func NewScoreboardController(s i.Scoreboard) *ScoreboardController {
	return &ScoreboardController{scoreboard: s}
}

// Register registers the scoreboard route.
func (sc *ScoreboardController) Register(route *gin.RouterGroup) {
	route.GET("/scoreboard", sc.top)
}

// top lists up to ?limit= runs, fewest moves first.
func (sc *ScoreboardController) top(ctx *gin.Context) {
	limit := int64(defaultScoreLimit)
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, scoreboardTimeout)
	defer cancel()
	scores, err := sc.scoreboard.Top(timeoutCtx, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading scoreboard"})
		return
	}

	ctx.JSON(http.StatusOK, &ScoreboardResponse{Scores: scores})
}

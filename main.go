package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-sentinel/api"
	gameapi "github.com/beka-birhanu/vinom-sentinel/api/game"
	api_i "github.com/beka-birhanu/vinom-sentinel/api/i"
	"github.com/beka-birhanu/vinom-sentinel/config"
	"github.com/beka-birhanu/vinom-sentinel/game"
	"github.com/beka-birhanu/vinom-sentinel/infrastruture/sortedstorage"
	"github.com/beka-birhanu/vinom-sentinel/service"
	"github.com/beka-birhanu/vinom-sentinel/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Global variables for dependencies
var (
	redisClient          *redis.Client
	scoreboard           i.Scoreboard
	sessionManager       *service.SessionManager
	sessionController    api_i.Controller
	scoreboardController api_i.Controller
	router               *api.Router
	appLogger            *logrus.Entry
)

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.WithError(err).Fatal("Redis ping failed")
	}
	appLogger.WithField("addr", config.Envs.RedisAddr).Info("Connected to Redis")
}

func initScoreboard(ctx context.Context) {
	var err error
	if config.Envs.RedisAddr == "" {
		scoreboard, err = sortedstorage.NewMemoryScoreboard(config.Envs.ScoreboardSize)
		if err != nil {
			appLogger.WithError(err).Fatal("Creating in-memory scoreboard")
		}
		appLogger.Info("In-memory scoreboard initialized")
		return
	}

	initRedis(ctx)
	scoreboard, err = sortedstorage.NewRedisScoreboard(redisClient, config.Envs.ScoreboardKey, config.Envs.ScoreboardSize)
	if err != nil {
		appLogger.WithError(err).Fatal("Creating Redis scoreboard")
	}
	appLogger.Info("Redis scoreboard initialized")
}

func initSessionManager() {
	defaults := game.DefaultConfig()
	defaults.Size = config.Envs.MazeSize
	defaults.AgentCount = config.Envs.AgentCount
	defaults.WanderInterval = config.Envs.WanderInterval
	defaults.ChargeDuration = config.Envs.ChargeDuration
	defaults.MaxHealth = config.Envs.MaxHealth

	var err error
	sessionManager, err = service.NewSessionManager(&service.Config{
		Defaults:        defaults,
		TickInterval:    config.Envs.TickInterval,
		SessionDuration: config.Envs.SessionDuration,
		Scoreboard:      scoreboard,
		Logger:          config.NewLogger("SESSION-MANAGER", config.Envs.LogLevel),
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Creating session manager")
	}
	appLogger.Info("Session manager initialized")
}

func initControllers() {
	sessionController = gameapi.NewSessionController(sessionManager)
	scoreboardController = gameapi.NewScoreboardController(scoreboard)
	appLogger.Info("Controllers initialized")
}

func initRouter() {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:        fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:     "/api",
		Controllers: []api_i.Controller{sessionController, scoreboardController},
	})
	appLogger.Info("Router initialized")
}

// stopOnSignal stops every session and exits when the process is interrupted.
func stopOnSignal() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-signals
		appLogger.WithField("signal", sig).Info("Shutting down")
		sessionManager.StopAll()
		if redisClient != nil {
			_ = redisClient.Close()
		}
		os.Exit(0)
	}()
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize dependencies
	appLogger = config.NewLogger("APP", config.Envs.LogLevel)

	initScoreboard(ctx)
	initSessionManager()
	initControllers()
	initRouter()
	stopOnSignal()

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.WithError(err).Error("Starting server")
		sessionManager.StopAll()
		os.Exit(1)
	}
}

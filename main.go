package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/maeln/r-astar/api"
	api_i "github.com/maeln/r-astar/api/i"
	"github.com/maeln/r-astar/api/identity"
	mazeapi "github.com/maeln/r-astar/api/maze"
	"github.com/maeln/r-astar/config"
	"github.com/maeln/r-astar/infrastruture/repo"
	"github.com/maeln/r-astar/infrastruture/sortedstorage"
	"github.com/maeln/r-astar/infrastruture/token"
	"github.com/maeln/r-astar/logger"
	"github.com/maeln/r-astar/render"
	"github.com/maeln/r-astar/service"
	"github.com/maeln/r-astar/service/i"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	userRepo       *repo.UserRepo
	slidingWindow  i.SlidingWindow
	rateLimiter    i.RateLimiter
	mazeService    i.MazeBuilder
	mazeController api_i.Controller
	jwtTokenizer   i.Tokenizer
	authService    i.Authenticator
	authController api_i.Controller
	router         *api.Router
	appLogger      *logger.Logger
)

func newLogger(prefix, color string) *logger.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating %s logger: %v", prefix, err))
		os.Exit(1)
	}
	return l
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initUserRepo(ctx context.Context, client *mongo.Client) {
	userRepo = repo.NewUserRepo(client, config.Envs.DBName, "users")
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Creating user indexes: %v", err))
		os.Exit(1)
	}
	appLogger.Info("User repository initialized")
}

func initRateLimiter() {
	var err error
	slidingWindow, err = sortedstorage.NewRedisSlidingWindow(redisClient)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating sliding window store: %v", err))
		os.Exit(1)
	}

	rateLimiter, err = service.NewRateLimiter(slidingWindow, newLogger("RATE-LIMIT", config.ColorMagenta), &service.RateLimitOptions{
		Limit:  int64(config.Envs.RateLimit),
		Window: time.Duration(config.Envs.RateWindowSeconds) * time.Second,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating rate limiter: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Rate limiter initialized")
}

func initMazeService() {
	var err error
	mazeService, err = service.NewMazeService(&service.MazeConfig{
		Limiter:       rateLimiter,
		Logger:        newLogger("MAZE", config.ColorCyan),
		MaxDimension:  config.Envs.MaxMazeDimension,
		MaxTraceCells: config.Envs.MaxTraceCells,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze service initialized")
}

func initMazeController() {
	var err error
	mazeController, err = mazeapi.NewMazeController(mazeService, render.Options{})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer, newLogger("AUTH", config.ColorBlue))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initAuthController() {
	authController = identity.NewIdentityServer(authService)
	appLogger.Info("Auth controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		GinMode:                 config.Envs.GinMode,
		Controllers:             []api_i.Controller{authController, mazeController},
		AuthorizationMiddleware: identity.Authorize(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)
	config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initRedis(ctx)
	defer redisClient.Close()

	initUserRepo(ctx, mongoClient)
	initRateLimiter()
	initMazeService()
	initMazeController()
	initJWTTokenizer()
	initAuthService()
	initAuthController()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}

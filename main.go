package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"board-club-system/handlers"
	"board-club-system/middleware"
	"board-club-system/models"
	"board-club-system/services"
	"board-club-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // 20MB — cover images are the largest upload
	})

	// 🔐 GLOBAL: only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		log.Println("ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOrigins = "http://localhost:3000"
	}
	origins := strings.Split(allowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-User-ID, X-User-Roles",
		ExposeHeaders:    "Content-Length, Content-Type, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.Session{},
		&models.Participation{},
		&models.UserStats{},
		&models.Badge{},
		&models.Attendance{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	// Redis is an optimization layer only: without it every read is a
	// cache miss, nothing fails.
	var rdb *redis.Client
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: redisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Printf("redis unreachable at %s, cache degraded to always-miss: %v", redisAddr, err)
		}
	} else {
		log.Println("REDIS_ADDR not set — derived-data cache disabled")
	}
	cache := services.NewCache(rdb)

	if err := utils.InitR2(); err != nil {
		log.Printf("R2 init failed, cover image uploads disabled: %v", err)
	}

	badgeService := services.NewBadgeService(db)
	sessionService := services.NewSessionService(db, cache, badgeService)
	statsService := services.NewStatsService(db, cache)
	gameService := services.NewGameService(db)
	attendanceService := services.NewAttendanceService(db)

	statsService.StartRankingWarmer(30*time.Minute, 10)

	handlers.SetupGameRoutes(app, gameService)
	handlers.SetupSessionRoutes(app, sessionService)
	handlers.SetupStatsRoutes(app, statsService)
	handlers.SetupBadgeRoutes(app, badgeService)
	handlers.SetupAttendanceRoutes(app, attendanceService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5100"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server running on http://localhost:%s", port)
	log.Println("GatewayAuthMiddleware enforced globally — all requests must come through the Gateway")

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"loyalty-admin-system/handlers"
	"loyalty-admin-system/middleware"
	"loyalty-admin-system/models"
	"loyalty-admin-system/services"
	"loyalty-admin-system/utils"
	"loyalty-admin-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // 20MB — covers catalog and partner image uploads
	})

	// 🔐❗ GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-Service-Token, X-User-ID, X-User-Roles",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.CatalogItem{},
		&models.Claim{},
		&models.Partner{},
		&models.Handle{},
		&models.TeamMember{},
		&models.MemberMirror{},
		&models.PointsMirror{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := utils.EnsureUploadDir(); err != nil {
		log.Fatal("failed to ensure upload dir:", err)
	}

	catalogService := services.NewCatalogService(db)
	claimService := services.NewClaimService(db)
	partnerService := services.NewPartnerService(db)
	handleService := services.NewHandleService(db)
	teamService := services.NewTeamService(db)

	profileServiceURL := os.Getenv("PROFILE_SERVICE_URL")
	if profileServiceURL == "" {
		log.Fatal("PROFILE_SERVICE_URL environment variable not set")
	}
	serviceToken := os.Getenv("LOYALTY_SERVICE_TOKEN")
	if serviceToken == "" {
		log.Fatal("LOYALTY_SERVICE_TOKEN environment variable not set")
	}

	memberSyncWorker := workers.NewMemberSyncWorker(db, profileServiceURL, "/api/v1/public/profiles", serviceToken)

	pointsSyncClient := workers.NewPointsSyncClient(db)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go workers.PollBalances(ctx, pointsSyncClient, 30*time.Second)

	go func() {
		log.Println("Starting Member Sync Worker...")
		memberSyncWorker.Start(ctx)
	}()

	claimService.StartExpirySweep()

	// ✅ Setup routes — Gateway auth enforced globally, roles enforced per group
	handlers.SetupCatalogRoutes(app, catalogService, teamService)
	handlers.SetupClaimRoutes(app, claimService, teamService)
	handlers.SetupAdminRoutes(app, partnerService, handleService, teamService)

	app.Static("/uploads", "./uploads")

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ Member Sync Worker running")
	log.Println("✅ Points balance polling running (every 30s)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}

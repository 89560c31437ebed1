package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	"github.com/sendbyop/sendbyop-backend/database"
	"github.com/sendbyop/sendbyop-backend/handlers"
	"github.com/sendbyop/sendbyop-backend/jobs"
	"github.com/sendbyop/sendbyop-backend/notifications"
	"github.com/sendbyop/sendbyop-backend/repositories"
	"github.com/sendbyop/sendbyop-backend/routes"
	"github.com/sendbyop/sendbyop-backend/services"
	"github.com/sendbyop/sendbyop-backend/storage"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	database.SeedSettings()

	emailService := notifications.NewBrevoService()

	photoStore, err := storage.NewCloudinaryStore()
	if err != nil {
		log.Fatalf("🔥 Failed to initialize photo storage: %v", err)
	}

	bookingRepo := repositories.NewBookingRepository(database.DB)
	flightRepo := repositories.NewFlightRepository(database.DB)
	customerRepo := repositories.NewCustomerRepository(database.DB)
	receiverRepo := repositories.NewReceiverRepository(database.DB)
	settingsRepo := repositories.NewSettingsRepository(database.DB)
	transactionRepo := repositories.NewTransactionRepository(database.DB)
	refundableRepo := repositories.NewRefundableBookingRepository(database.DB)
	reviewRepo := repositories.NewReviewRepository(database.DB)

	pricingService := services.NewPricingService()
	settingsService := services.NewSettingsService(settingsRepo, pricingService)
	fraudService := services.NewFraudService(bookingRepo, flightRepo, settingsService)
	receiverService := services.NewReceiverService(receiverRepo)
	bookingService := services.NewBookingService(
		bookingRepo, flightRepo, customerRepo, transactionRepo, reviewRepo,
		receiverService, settingsService, pricingService, fraudService,
		photoStore, emailService,
	)
	flightService := services.NewFlightService(
		flightRepo, bookingRepo, customerRepo, refundableRepo, transactionRepo,
		settingsService, fraudService, emailService,
	)

	handlers.Init(bookingService, flightService, settingsService, fraudService, emailService)
	jobs.Init(bookingService, flightService)

	c := cron.New()
	c.AddFunc("0 * * * *", jobs.ExpireFlights)
	c.AddFunc("*/10 * * * *", jobs.CancelUnpaidBookings)
	c.AddFunc("0 */6 * * *", jobs.AutoConfirmReception)
	c.AddFunc("0 1 * * *", jobs.CloseExpiredReviews)
	c.AddFunc("0 2 * * *", jobs.ProcessAutomaticPayouts)
	go c.Start()
	log.Println("✅ Deadline sweeps scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:       false,
		AppName:       "SendByOp",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to SendByOp API",
		})
	})

	routes.AuthRoutes(app)
	routes.FlightRoutes(app)
	routes.BookingRoutes(app)
	routes.FraudRoutes(app)
	routes.AdminRoutes(app)
	routes.UploadRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	if err := app.Listen(":8080"); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}

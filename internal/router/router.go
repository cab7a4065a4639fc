// Package router wires handlers, middleware and the admin console into a fiber app.
package router

import (
	"go-price-scanner/internal/admin"
	"go-price-scanner/internal/barcode"
	"go-price-scanner/internal/config"
	"go-price-scanner/internal/handler"
	"go-price-scanner/internal/middleware"
	"go-price-scanner/internal/model"
	"go-price-scanner/internal/repository"
	"go-price-scanner/internal/service"
	"go-price-scanner/pkg/database"
	"go-price-scanner/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the outside resources the app is built on
type Deps struct {
	DB      *gorm.DB
	Log     *zap.Logger
	Config  *config.Config
	Decoder barcode.Decoder
}

// New builds the fiber app with every route mounted
func New(deps Deps) *fiber.App {
	cfg := deps.Config
	db := deps.DB
	decoder := deps.Decoder
	if decoder == nil {
		decoder = barcode.NewDecoder()
	}

	// Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)

	signer := jwt.NewSigner(cfg.Session.Secret, cfg.Session.TTL)
	authService := service.NewAuthService(userRepo, signer)
	catalogService := service.NewCatalogService(productRepo, userRepo, db)
	barcodeService := service.NewBarcodeService(decoder, catalogService)

	authHandler := handler.NewAuthHandler(authService, cfg.Session.TTL, cfg.Session.CookieSecure)
	dashHandler := handler.NewDashboardHandler(catalogService)
	catalogHandler := handler.NewCatalogHandler(catalogService, barcodeService, deps.Log)
	barcodeHandler := handler.NewBarcodeHandler(barcodeService)

	app := fiber.New(fiber.Config{
		AppName:      "Price Scanner v1.0",
		BodyLimit:    cfg.Server.MaxUploadSize,
		ErrorHandler: handler.ErrorHandler(deps.Log),
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(deps.Log))
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(middleware.LoadSession(authService, deps.Log))

	// ============ PUBLIC ROUTES ============
	app.Get("/", authHandler.LoginPage)
	app.Post("/", authHandler.Login)
	app.Get("/signup", authHandler.SignupPage)
	app.Post("/signup", authHandler.Signup)
	app.Post("/upload", barcodeHandler.Upload)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := database.Ping(db); err != nil {
			deps.Log.Error("health check failed", zap.Error(err))
			return c.Status(503).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ============ PROTECTED ROUTES ============
	auth := middleware.RequireAuth()
	app.Get("/logout", auth, authHandler.Logout)
	app.Get("/dashboard", auth, dashHandler.GetDashboard)
	app.Post("/upload_csv", auth, catalogHandler.UploadCSV)
	app.Post("/fetch_row", auth, catalogHandler.FetchRow)

	// ============ ADMIN ============
	console := admin.NewConsole("/admin", admin.IsAdmin,
		admin.UserView(repository.NewTableStore[model.User](db, "created_at")),
		admin.ProductView(repository.NewTableStore[model.Product](db, "created_at"), userRepo),
	)
	console.Register(app)

	return app
}

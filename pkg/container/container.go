package container

import (
	"context"
	"fmt"

	"futsal-backend/internal/config"
	bookinghandler "futsal-backend/internal/domains/booking/handler"
	bookingrepo "futsal-backend/internal/domains/booking/repository"
	bookingservice "futsal-backend/internal/domains/booking/service"
	fieldhandler "futsal-backend/internal/domains/field/handler"
	fieldrepo "futsal-backend/internal/domains/field/repository"
	fieldservice "futsal-backend/internal/domains/field/service"
	resethandler "futsal-backend/internal/domains/passwordreset/handler"
	resetrepo "futsal-backend/internal/domains/passwordreset/repository"
	resetservice "futsal-backend/internal/domains/passwordreset/service"
	paymentrepo "futsal-backend/internal/domains/payment/repository"
	userhandler "futsal-backend/internal/domains/user/handler"
	userrepo "futsal-backend/internal/domains/user/repository"
	userservice "futsal-backend/internal/domains/user/service"
	infracache "futsal-backend/internal/infrastructure/cache"
	"futsal-backend/internal/infrastructure/database"
	"futsal-backend/internal/infrastructure/email"
	"futsal-backend/pkg/jwt"
	"futsal-backend/pkg/logger"
)

// Container wires the whole dependency graph: config -> infrastructure
// -> repositories -> services -> handlers.
type Container struct {
	Config *config.Config

	DB    *database.PostgresDB
	Cache *infracache.RedisCache

	JWTManager   *jwt.Manager
	EmailService email.EmailService

	UserHandler    *userhandler.UserHandler
	FieldHandler   *fieldhandler.FieldHandler
	BookingHandler *bookinghandler.BookingHandler
	ResetHandler   *resethandler.ResetHandler
}

func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	// 1. Database
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}
	c.DB = database.NewPostgresDB(dbConfig)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	// 2. Redis
	c.Cache = infracache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Cache.Ping(ctx); err != nil {
		c.DB.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	// 3. Shared services
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
	c.EmailService = email.NewDevEmailService(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.From)

	// 4. Repositories
	users := userrepo.NewPostgresRepository(c.DB.Pool)
	fields := fieldrepo.NewPostgresRepository(c.DB.Pool)
	bookings := bookingrepo.NewPostgresRepository(c.DB.Pool)
	payments := paymentrepo.NewPostgresRepository(c.DB.Pool)
	resetTokens := resetrepo.NewPostgresRepository(c.DB.Pool)

	// 5. Services
	userSvc := userservice.NewUserService(users, c.JWTManager)
	fieldSvc := fieldservice.NewFieldService(fields)
	bookingSvc := bookingservice.NewBookingService(bookings, fields, payments, c.EmailService, cfg.Booking)
	resetSvc := resetservice.NewResetService(resetTokens, users, c.Cache, c.EmailService, cfg.PasswordReset, cfg.App.FrontendURL)

	// 6. Handlers
	c.UserHandler = userhandler.NewUserHandler(userSvc)
	c.FieldHandler = fieldhandler.NewFieldHandler(fieldSvc)
	c.BookingHandler = bookinghandler.NewBookingHandler(bookingSvc)
	c.ResetHandler = resethandler.NewResetHandler(resetSvc)

	logger.Info("Container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})
	return c, nil
}

// Cleanup releases external connections in reverse init order.
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			logger.Error("closing redis client", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}

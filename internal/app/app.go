package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DIMO-Network/server-garage/pkg/fibercommon"
	"github.com/DIMO-Network/server-garage/pkg/richerrors"
	"github.com/DIMO-Network/webhook-validator/internal/config"
	"github.com/DIMO-Network/webhook-validator/internal/controllers/receiver"
	"github.com/DIMO-Network/webhook-validator/internal/schema"
	"github.com/DIMO-Network/webhook-validator/internal/services/deliverylog"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// CreateServers builds the contract registry and delivery log and wires them
// into the HTTP app.
func CreateServers(settings *config.Settings, logger zerolog.Logger) (*fiber.App, error) {
	registry, err := schema.NewDefaultRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to create schema registry: %w", err)
	}
	logger.Info().Int("validators", len(registry.Names())).Msg("Loaded payload contracts")

	deliveries := deliverylog.New(settings.DeliveryRetention, settings.DeliveryRetention, settings.DeliveryHistoryLimit)

	return CreateFiberApp(logger, registry, deliveries, settings), nil
}

// CreateFiberApp sets up the API routes.
func CreateFiberApp(logger zerolog.Logger, registry *schema.Registry, deliveries *deliverylog.Log, settings *config.Settings) *fiber.App {
	logger.Info().Msg("Starting Webhook Validator...")

	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
	})
	app.Use(fibercommon.ContextLoggerMiddleware)

	receiverController := receiver.NewReceiverController(registry, deliveries)
	deliveryController := receiver.NewDeliveryController(deliveries)
	basicAuth := receiver.BasicAuthMiddleware(receiver.Credentials{
		User:     settings.BasicAuthUser,
		Password: settings.BasicAuthPassword,
	})
	logger.Info().Msg("Registering routes...")

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"data": "Server is up and running",
		})
	})

	app.Post("/", receiverController.ReceivePayload)
	app.Post("/httpauth", basicAuth, receiverController.ReceivePayload)

	app.Get("/v1/deliveries", deliveryController.ListDeliveries)
	app.Get("/v1/deliveries/:deliveryId", deliveryController.GetDelivery)

	return app
}

// ErrorHandler logs the error and writes its external message as plain text.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	} else if richErr, ok := richerrors.AsRichError(err); ok {
		message = richErr.ExternalMsg
		if richErr.Code != 0 {
			code = richErr.Code
		}
	}

	// log all errors except 404
	if code != fiber.StatusNotFound {
		logger := zerolog.Ctx(ctx.UserContext())
		logger.Err(err).Int("httpStatusCode", code).
			Str("httpPath", strings.TrimPrefix(ctx.Path(), "/")).
			Str("httpMethod", ctx.Method()).
			Msg("caught an error from http request")
	}

	return ctx.Status(code).SendString(message)
}

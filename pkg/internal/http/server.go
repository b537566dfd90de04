package http

import (
	"errors"

	jsoniter "github.com/json-iterator/go"
	pkg "github.com/pulsenet/pulse/pkg/internal"
	"github.com/pulsenet/pulse/pkg/internal/http/api"
	"github.com/pulsenet/pulse/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type App struct {
	app *fiber.App
}

func NewServer() *App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "Pulse",
		AppName:               "Pulse v" + pkg.AppVersion,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		BodyLimit:             viper.GetInt("hard_body_limit"),
		ErrorHandler:          mapError,
	})

	api.MapAPIs(app)

	return &App{app}
}

// mapError turns service-layer failures into their HTTP statuses;
// anything unclassified is a 500 and gets logged.
func mapError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}

	code := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		code = fiber.StatusConflict
	case errors.Is(err, services.ErrForbidden):
		code = fiber.StatusForbidden
	case errors.Is(err, services.ErrUnauthorized):
		code = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrInvalidArgument):
		code = fiber.StatusBadRequest
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("An error occurred when handling request...")
	}

	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func (v *App) Listen() {
	if err := v.app.Listen(viper.GetString("bind")); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting server...")
	}
}

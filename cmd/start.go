package cmd

import (
	"docker-up/core/loader"
	"docker-up/core/logger"
	"docker-up/core/middleware/rayid"
	"docker-up/feature/stack"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the docker-up HTTP API",
	Long:  `Starts the HTTP server exposing resource listing, stack up/down/diff and history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()
		zap.ReplaceGlobals(e.log)

		app := newApp(e)

		mgr := loader.NewManager()
		mgr.Register(stack.NewFeature(e.docker, e.store, e.history, e.log))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			return err
		}
		e.log.Info("Features loaded", zap.Strings("features", loaded))

		errs := make(chan error, 1)
		go func() {
			e.log.Info("Starting server", zap.String("address", e.cfg.Server.Address()))
			errs <- app.Listen(e.cfg.Server.Address())
		}()

		select {
		case err := <-errs:
			return err
		case <-cmd.Context().Done():
		}

		e.log.Info("Shutting down server...")
		return app.Shutdown()
	},
}

// newApp creates the Fiber app with the ray id and request logging middleware.
func newApp(e *env) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           e.cfg.Server.ReadTimeout(),
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})

	// RayID must come first so every later log line carries it
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(e.log, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	return app
}

func init() {
	RootCmd.AddCommand(startCmd)
}

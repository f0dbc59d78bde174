package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/msfworks/showcase/internal/server"
	"github.com/msfworks/showcase/internal/service"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		host string
		dev  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Showcase API server",
		Long:  "Start the HTTP server that exposes the public catalog and the admin API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(host, port, dev)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP listen port")
	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "HTTP listen host")
	cmd.Flags().BoolVar(&dev, "dev", false, "Enable development mode (verbose logging, CORS *)")

	viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))

	return cmd
}

func runServe(host string, port int, dev bool) error {
	// Set up logger
	logLevel := slog.LevelInfo
	if dev || viper.GetString("log.level") == "debug" {
		logLevel = slog.LevelDebug
	}
	var handler slog.Handler
	if viper.GetString("log.format") == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	}
	logger := slog.New(handler)

	// 1. Open the database and run migrations
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	logger.Info("store initialized", "driver", storeDriver())

	// 2. Initialize auth service and bootstrap the admin account
	authSvc := service.NewAuthService(st, logger)

	bootstrapSecret := viper.GetString("auth.bootstrap_password")
	if err := authSvc.EnsureBootstrapAdmin(context.Background(), bootstrapSecret); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if bootstrapSecret == "" {
		logger.Warn("no bootstrap password configured - set SHOWCASE_AUTH_BOOTSTRAP_PASSWORD or run: showcase admin create")
	}

	// 3. Start the background session sweeper
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	authSvc.StartSweeper(sweepCtx, viper.GetDuration("auth.sweep_interval"))

	// 4. Build and start HTTP server
	srvCfg := server.DefaultConfig()
	srvCfg.Host = host
	srvCfg.Port = port
	srvCfg.ShutdownTimeout = 30 * time.Second
	if origins := viper.GetStringSlice("server.cors.allowed_origins"); len(origins) > 0 && !dev {
		srvCfg.CORSOrigins = origins
	}

	srv := server.New(srvCfg, st, authSvc, logger)

	fmt.Printf("→ Showcase %s\n", versionString())
	fmt.Printf("→ Listening on http://%s:%d\n", host, port)
	fmt.Printf("→ OpenAPI:    http://%s:%d/openapi.json\n", host, port)
	fmt.Printf("→ Health:     http://%s:%d/healthz\n", host, port)
	fmt.Println()

	return srv.ListenAndServe()
}

package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/config"
	"github.com/Burgess-GLAY/psdahs-alumni-sub003/internal/analytics"
	"github.com/Burgess-GLAY/psdahs-alumni-sub003/internal/handlers"
	"github.com/Burgess-GLAY/psdahs-alumni-sub003/internal/routes"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "alumni-server",
		Short: "Alumni association platform server",
		Long:  "API server for the alumni association: donations, member directory, class groups, events and announcements.",
	}

	var configPath string
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to the YAML config file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(configPath)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(configPath); err != nil {
				return err
			}
			config.ConnectDB()
			return config.MigrateDB()
		},
	}

	rootCmd.AddCommand(serveCmd, migrateCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func runServer(configPath string) error {
	if err := config.Load(configPath); err != nil {
		return err
	}

	config.ConnectDB()
	if err := config.MigrateDB(); err != nil {
		return err
	}
	config.ConnectRedis()
	config.ConnectProviders()
	config.ConnectGemini()

	if config.RDB != nil {
		handlers.Tracker = analytics.NewRedisTracker(config.RDB)
	}

	go handlers.WallHub.Run()

	r := gin.Default()
	routes.SetupRoutes(r)

	slog.Info("Server starting", "port", config.App.Port)
	return r.Run(":" + config.App.Port)
}

package main

import (
	"alcyxob/coach-app/internal/config"
	"alcyxob/coach-app/internal/repository/mongo"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	driver "go.mongodb.org/mongo-driver/mongo"
)

var (
	configPath string

	cfg      config.Config
	dbClient *driver.Client
	appDB    *driver.Database
)

var rootCmd = &cobra.Command{
	Use:   "coach-server",
	Short: "Coach and client workspace API server",
	Long: `Runs the HTTP API for coaches and their clients.

Configuration is read from config.yaml in --config, a .env file and the
environment (SERVER_ADDRESS, DATABASE_URI, JWT_SECRET, REDIS_ADDRESS,
S3_BUCKET_NAME, ...). With no subcommand the server is started.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.LoadConfig(configPath); err != nil {
			return fmt.Errorf("could not load config: %w", err)
		}
		log.Println("Configuration loaded.")

		if dbClient, err = mongo.ConnectDB(cfg.Database.URI); err != nil {
			return fmt.Errorf("could not connect to MongoDB: %w", err)
		}
		appDB = dbClient.Database(cfg.Database.Name)
		log.Println("Database connection established.")
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd.Context())
	},
}

// execute runs cmd and then releases the MongoDB client. Cobra skips post-run
// hooks when RunE fails, so the disconnect cannot live there.
func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if closeErr := disconnectDB(); closeErr != nil {
		log.Printf("ERROR: Failed to disconnect MongoDB: %v", closeErr)
	}
	return err
}

func disconnectDB() error {
	if dbClient == nil {
		return nil
	}
	log.Println("Disconnecting MongoDB...")
	client := dbClient
	dbClient, appDB = nil, nil
	return mongo.DisconnectDB(client)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "directory containing config.yaml")
	rootCmd.AddCommand(serveCmd, ensureIndexesCmd)
}

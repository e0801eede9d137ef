package main

import (
	"alcyxob/coach-app/internal/repository/mongo"
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"
)

var ensureIndexesCmd = &cobra.Command{
	Use:   "ensure-indexes",
	Short: "Create the MongoDB indexes and exit",
	Long: `Creates every index the server relies on, including the unique
indexes behind emails, usernames, profile codes and the one meal assignment
per client and day. Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
			return err
		}
		log.Println("Indexes are in place.")
		return nil
	},
}

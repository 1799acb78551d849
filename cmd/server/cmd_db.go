package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aurigalabs/storefront/config"
	"github.com/aurigalabs/storefront/database/seeders"
	"github.com/aurigalabs/storefront/pkg/database"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect(context.Background())
}

// storefront db:index
var dbIndexCmd = &cobra.Command{
	Use:   "db:index",
	Short: "Create all database indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Ensuring indexes…")
		return database.EnsureIndexes(context.Background())
	},
}

// storefront db:seed
var dbSeedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Running seeders…")
		return seeders.RunAll(context.Background(), database.DB)
	},
}

package main

import (
	"fmt"
	"os"

	"cardapio/internal/auth"
	"cardapio/internal/config"
	"cardapio/internal/db"
	"cardapio/internal/logging"
	"cardapio/internal/menu"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// MIGRATE
// =============================================================================

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger, err := logging.New(cfg.AppEnv, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			pool, err := db.Connect(cmd.Context(), cfg.DatabaseURL, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			return db.InitSchema(cmd.Context(), pool, logger)
		},
	}
}

// =============================================================================
// CATALOG
// =============================================================================

type catalogEntry struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Price    string `yaml:"price"`
	Featured bool   `yaml:"featured,omitempty"`
}

type catalogListing struct {
	Categories []string       `yaml:"categories"`
	Active     string         `yaml:"active_category"`
	Items      []catalogEntry `yaml:"items"`
}

func newCatalogCmd() *cobra.Command {
	var (
		file     string
		category string
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate a catalog file and print the items visible under a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := menu.LoadCatalogFile(file)
			if err != nil {
				return err
			}

			listing := catalogListing{
				Categories: catalog.Categories(),
				Active:     category,
				Items:      []catalogEntry{},
			}
			for _, item := range catalog.Visible(category) {
				listing.Items = append(listing.Items, catalogEntry{
					ID:       item.ID,
					Name:     item.Name,
					Category: item.Category,
					Price:    menu.FormatPrice(item.UnitPrice),
					Featured: item.Featured,
				})
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(listing); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "catalog YAML file (default: built-in catalog)")
	cmd.Flags().StringVar(&category, "category", menu.AllCategories, "active category")
	return cmd
}

// =============================================================================
// TOKEN
// =============================================================================

func newTokenCmd() *cobra.Command {
	var (
		userID string
		email  string
		secret string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for local testing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				_ = godotenv.Load()
				secret = os.Getenv("JWT_SECRET")
			}

			token, err := auth.GenerateToken([]byte(secret), userID, email)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "user id placed in the token")
	cmd.Flags().StringVar(&email, "email", "", "email placed in the token")
	cmd.Flags().StringVar(&secret, "secret", "", "signing secret (default: $JWT_SECRET)")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}

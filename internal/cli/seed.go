package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mamba-kebabs/ordering/internal/database"
	"github.com/mamba-kebabs/ordering/internal/enum"
	"github.com/mamba-kebabs/ordering/internal/money"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// MenuFile is the seed file layout.
type MenuFile struct {
	Items []MenuEntry `yaml:"items"`
}

type MenuEntry struct {
	Name        string `yaml:"name"`
	Price       string `yaml:"price"`
	Category    string `yaml:"category"`
	OptionsType string `yaml:"options_type"`
}

// LoadMenuFile parses and validates a seed file. Names must be unique.
func LoadMenuFile(data []byte) ([]database.UpsertMenuItemParams, error) {
	var f MenuFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse menu file: %w", err)
	}
	if len(f.Items) == 0 {
		return nil, errors.New("menu file has no items")
	}

	seen := make(map[string]bool, len(f.Items))
	params := make([]database.UpsertMenuItemParams, 0, len(f.Items))
	for i, it := range f.Items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			return nil, fmt.Errorf("items[%d]: name is required", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("items[%d]: duplicate name %q", i, name)
		}
		seen[name] = true

		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: invalid price %q", i, it.Price)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("items[%d]: price must be >= 0", i)
		}

		opt := it.OptionsType
		if opt == "" {
			opt = enum.OptionsTypeText
		}
		if opt != enum.OptionsTypeKebab && opt != enum.OptionsTypeText {
			return nil, fmt.Errorf("items[%d]: options_type must be %q or %q", i, enum.OptionsTypeKebab, enum.OptionsTypeText)
		}

		params = append(params, database.UpsertMenuItemParams{
			Name:        name,
			Price:       money.ToNumeric(price),
			Category:    strings.TrimSpace(it.Category),
			OptionsType: database.MenuOptionsType(opt),
		})
	}
	return params, nil
}

func NewSeedMenuCommand(root *RootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed-menu",
		Short: "Insert or update menu items from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			items, err := LoadMenuFile(data)
			if err != nil {
				return err
			}
			return seedMenu(cmd, root.databaseURL(), items)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "menu.yaml", "menu seed file")

	return cmd
}

// seedMenu upserts every item in one transaction: all of them or none.
func seedMenu(cmd *cobra.Command, url string, items []database.UpsertMenuItemParams) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	q := database.New(tx)
	for _, it := range items {
		row, err := q.UpsertMenuItem(ctx, it)
		if err != nil {
			return fmt.Errorf("upsert %q: %w", it.Name, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%4d  %-28s %8s  %s\n", row.ID, row.Name, money.Format(row.Price), row.OptionsType)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d menu items\n", len(items))
	return nil
}

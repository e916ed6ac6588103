package main

import (
	"context"
	"strings"

	"github.com/DRSN-tech/grocery-merchant/internal/app"
	"github.com/DRSN-tech/grocery-merchant/internal/delivery/v1/presenter"
	"github.com/DRSN-tech/grocery-merchant/internal/usecase"
	"github.com/DRSN-tech/grocery-merchant/pkg/e"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var diet []string

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search products by free text",
		Example: `  merchantctl search fizzy drink
  merchantctl search calcium --diet vegan`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			return opts.withServices(cmd, func(ctx context.Context, s *app.Services) error {
				for _, d := range diet {
					if _, err := s.Preference.UpdateContext(ctx, opts.session, "diet", d); err != nil {
						return err
					}
				}

				products, err := s.Catalog.Search(ctx, opts.session, query)
				if err != nil {
					return err
				}

				return writeLine(cmd.OutOrStdout(), presenter.Products(products))
			})
		},
	}

	cmd.Flags().StringSliceVar(&diet, "diet", nil, "dietary preference for this search (repeatable)")
	return cmd
}

func newFilterCmd(opts *rootOptions) *cobra.Command {
	var (
		category, color, search string
		minPrice, maxPrice      string
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "List catalog products matching structured filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := &usecase.ProductFilter{
				Category: flagString(cmd, "category", category),
				Color:    flagString(cmd, "color", color),
				Search:   flagString(cmd, "search", search),
			}

			var err error
			if filter.MinPrice, err = flagDecimal(cmd, "min-price", minPrice); err != nil {
				return err
			}
			if filter.MaxPrice, err = flagDecimal(cmd, "max-price", maxPrice); err != nil {
				return err
			}

			return opts.withServices(cmd, func(ctx context.Context, s *app.Services) error {
				products, err := s.Catalog.ListProducts(ctx, filter)
				if err != nil {
					return err
				}

				return writeLine(cmd.OutOrStdout(), presenter.Products(products))
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "category, case-insensitive")
	cmd.Flags().StringVar(&color, "color", "", "color substring")
	cmd.Flags().StringVar(&search, "search", "", "name or description substring")
	cmd.Flags().StringVar(&minPrice, "min-price", "", "minimum price, inclusive")
	cmd.Flags().StringVar(&maxPrice, "max-price", "", "maximum price, inclusive")
	return cmd
}

func flagString(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func flagDecimal(cmd *cobra.Command, name, value string) (*decimal.Decimal, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}

	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil || d.IsNegative() {
		return nil, e.Wrap("--"+name+" "+value, e.ErrInvalidPrice)
	}
	return &d, nil
}

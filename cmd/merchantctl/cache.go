package main

import (
	"context"

	"github.com/DRSN-tech/grocery-merchant/internal/app"
	"github.com/spf13/cobra"
)

func newCacheCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the search result cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop all cached search results",
		Long: `Drop all cached search results from Redis (REDIS_ADDR).
Cached results otherwise expire after SEARCH_CACHE_TTL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withServices(cmd, func(ctx context.Context, s *app.Services) error {
				cleared, err := s.Catalog.ClearSearchCache(ctx)
				if err != nil {
					return err
				}

				if !cleared {
					return writeLine(cmd.OutOrStdout(), "Search cache is not configured.")
				}
				return writeLine(cmd.OutOrStdout(), "Search cache cleared.")
			})
		},
	})

	return cmd
}

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/DRSN-tech/grocery-merchant/internal/app"
	"github.com/DRSN-tech/grocery-merchant/internal/delivery/v1/presenter"
	"github.com/DRSN-tech/grocery-merchant/internal/usecase"
	"github.com/spf13/cobra"
)

func newOrderCmd(opts *rootOptions) *cobra.Command {
	var options []string

	cmd := &cobra.Command{
		Use:   "order <product_id[:quantity]>...",
		Short: "Place an order",
		Long: `Place an order for one or more products. Quantity defaults to 1.
Unknown products are skipped; the order fails only when nothing is left.`,
		Example: `  merchantctl order dairy-001:2 bakery-001
  merchantctl order snack-001 --option "size=large"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, err := parseOptions(options)
			if err != nil {
				return err
			}

			req := usecase.NewCreateOrderReq(parseItems(args, opt))

			return opts.withServices(cmd, func(ctx context.Context, s *app.Services) error {
				order, err := s.Order.CreateOrder(ctx, req)
				if err != nil {
					return err
				}

				return writeLine(cmd.OutOrStdout(), presenter.OrderPlaced(order))
			})
		},
	}

	cmd.Flags().StringArrayVar(&options, "option", nil, "item option key=value applied to every item (repeatable)")
	return cmd
}

func newLastCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "last",
		Short: "Show the most recent order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withServices(cmd, func(ctx context.Context, s *app.Services) error {
				order, err := s.Order.GetLastOrder(ctx)
				if err != nil {
					return err
				}

				return writeLine(cmd.OutOrStdout(), presenter.LastOrder(order))
			})
		},
	}
}

func newOrdersCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List all orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withServices(cmd, func(ctx context.Context, s *app.Services) error {
				orders, err := s.Order.ListOrders(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if err := writeLine(out, presenter.Orders(orders)); err != nil {
					return err
				}
				for i := range orders {
					if err := writeLine(out, "- "+presenter.Order(&orders[i])); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

// parseItems разбирает аргументы вида id или id:quantity.
// Количество отделяется по последнему двоеточию, поэтому ID может содержать ":".
// Количество передается строкой и проверяется при оформлении заказа.
func parseItems(args []string, options map[string]string) []usecase.OrderItemReq {
	items := make([]usecase.OrderItemReq, 0, len(args))
	for _, arg := range args {
		id := arg

		var quantity any
		if i := strings.LastIndex(arg, ":"); i >= 0 {
			id, quantity = arg[:i], arg[i+1:]
		}

		items = append(items, usecase.NewOrderItemReq(strings.TrimSpace(id), quantity, options))
	}
	return items
}

func parseOptions(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	opts := make(map[string]string, len(raw))
	for _, kv := range raw {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid --option %q, want key=value", kv)
		}
		opts[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return opts, nil
}

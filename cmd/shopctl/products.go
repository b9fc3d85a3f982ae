package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tanker327/react-project-structure-best-practices/internal/services"
)

func newProductsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product", "p"},
		Short:   "List and manage products",
	}

	cmd.AddCommand(
		newProductsListCmd(a),
		newProductsGetCmd(a),
		newProductsCreateCmd(a),
		newProductsDeleteCmd(a),
	)

	return cmd
}

func newProductsListCmd(a *app) *cobra.Command {
	var q services.ProductQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := a.services.Products.GetProducts(cmd.Context(), q)
			if err != nil {
				return err
			}

			return a.print(cmd, items, func(w io.Writer) {
				renderProducts(w, items)
			})
		},
	}

	cmd.Flags().StringVar(&q.Category, "category", "", "filter by category")
	cmd.Flags().StringVarP(&q.Search, "search", "q", "", "search names and descriptions")
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "page size (max 100)")
	cmd.Flags().IntVar(&q.Offset, "offset", 0, "page offset")

	return cmd
}

func newProductsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.services.Products.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return a.print(cmd, p, func(w io.Writer) {
				renderProducts(w, []services.Product{*p})
			})
		},
	}
}

func newProductsCreateCmd(a *app) *cobra.Command {
	var in services.ProductInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product (requires login)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.services.Products.CreateProduct(cmd.Context(), in)
			if err != nil {
				return err
			}

			return a.print(cmd, p, func(w io.Writer) {
				fmt.Fprintln(w, successStyle.Render("created product "+p.ID))
				renderProducts(w, []services.Product{*p})
			})
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "product name")
	cmd.Flags().StringVar(&in.Description, "description", "", "product description")
	cmd.Flags().Float64Var(&in.Price, "price", 0, "unit price")
	cmd.Flags().StringVar(&in.Category, "category", "", "product category")
	cmd.Flags().IntVar(&in.Stock, "stock", 0, "units in stock")

	return cmd
}

func newProductsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product (requires an admin login)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.services.Products.DeleteProduct(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("deleted product "+args[0]))

			return nil
		},
	}
}

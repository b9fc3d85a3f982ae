package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/tanker327/react-project-structure-best-practices/internal/errors"
	"github.com/tanker327/react-project-structure-best-practices/internal/services"
)

type demoCall struct {
	name string
	run  func(context.Context) error
}

type demoResult struct {
	name string
	err  error
}

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a batch of calls concurrently and show how each one fails",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			results := runDemo(cmd.Context(), a.services)
			renderDemo(cmd.OutOrStdout(), results)

			return nil
		},
	}
}

func demoCalls(svc *services.Services) []demoCall {
	return []demoCall{
		{"list products", func(ctx context.Context) error {
			_, err := svc.Products.GetProducts(ctx, services.ProductQuery{Limit: 5})
			return err
		}},
		{"missing product", func(ctx context.Context) error {
			_, err := svc.Products.GetProduct(ctx, "does-not-exist")
			return err
		}},
		{"invalid product", func(ctx context.Context) error {
			_, err := svc.Products.CreateProduct(ctx, services.ProductInput{Name: "Widget", Price: -1})
			return err
		}},
		{"bad login", func(ctx context.Context) error {
			_, err := svc.Auth.Login(ctx, services.LoginRequest{Username: "demo", Password: "wrong-password"})
			return err
		}},
		{"current user", func(ctx context.Context) error {
			_, err := svc.Auth.GetCurrentUser(ctx)
			return err
		}},
		{"unknown operation", func(ctx context.Context) error {
			_, err := svc.Call(ctx, "ProductService.explode")
			return err
		}},
	}
}

// runs every call at once; a failure never cancels its siblings
func runDemo(ctx context.Context, svc *services.Services) []demoResult {
	calls := demoCalls(svc)
	results := make([]demoResult, len(calls))

	var g errgroup.Group
	for i, c := range calls {
		g.Go(func() error {
			results[i] = demoResult{name: c.name, err: c.run(ctx)}
			return nil
		})
	}
	_ = g.Wait() // calls report through results

	return results
}

func renderDemo(w io.Writer, results []demoResult) {
	for _, r := range results {
		if r.err == nil {
			fmt.Fprintln(w, successStyle.Render("✓")+" "+r.name)
			continue
		}

		status := "-"
		kind := "plain error"
		if e, ok := apperrors.As(r.err); ok {
			kind = e.Kind().String()
			if e.StatusCode() != 0 {
				status = fmt.Sprint(e.StatusCode())
			}
		}

		fmt.Fprintf(w, "%s %s %s %s\n  %s\n",
			errorStyle.Render("✗"), r.name, kindStyle.Render(kind), warnStyle.Render(status),
			mutedStyle.Render(r.err.Error()))
	}
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newCallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "call <Entity.operation> [arg...]",
		Short: "Invoke an operation by name",
		Long: `Invoke any operation from the service tables by its qualified name.

Each argument is parsed as JSON; anything that is not valid JSON is passed
as a plain string.

  shopctl call ProductService.getProduct p-123
  shopctl call ProductService.getProducts '{"category":"peripherals"}'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.services.Call(cmd.Context(), args[0], parseArgs(args[1:])...)
			if err != nil {
				return err
			}

			if result == nil {
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("ok"))
				return nil
			}

			return renderJSON(cmd.OutOrStdout(), result)
		},
	}
}

func newOpsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List operations available to call",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()

			for _, e := range a.services.Entities() {
				fmt.Fprintln(w, titleStyle.Render(e.Name()))
				for _, op := range e.Operations() {
					tag := mutedStyle.Render("local")
					if e.IsInstrumented(op) {
						tag = successStyle.Render("remote")
					}
					fmt.Fprintf(w, "  %s.%s %s\n", e.Name(), op, tag)
				}
			}

			return nil
		},
	}
}

func parseArgs(raw []string) []any {
	out := make([]any, len(raw))

	for i, s := range raw {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			out[i] = s
			continue
		}
		out[i] = v
	}

	return out
}

// Command shopctl drives the storefront API through the instrumented service
// layer and prints every failure in its normalized form.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tanker327/react-project-structure-best-practices/internal/config"
	"github.com/tanker327/react-project-structure-best-practices/internal/logger"
	"github.com/tanker327/react-project-structure-best-practices/internal/services"
	"github.com/tanker327/react-project-structure-best-practices/internal/transport"
)

// state shared by every subcommand, built in PersistentPreRunE
type app struct {
	apiURL   string
	username string
	password string
	asJSON   bool
	verbose  bool

	cfg      *config.ClientConfig
	client   *transport.Client
	services *services.Services
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		renderError(root.ErrOrStderr(), err)
		logger.ErrorErr(err, "command failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "shopctl",
		Short: "Storefront API client",
		Long: `shopctl calls the storefront REST API through the client service layer.

Every failed call is reported as a normalized error with its kind
(VALIDATION, NETWORK, REMOTE or UNKNOWN), HTTP status, the operation
chain that produced it and the redacted call arguments.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.apiURL, "api", "", "API base URL (overrides API_BASE_URL)")
	flags.StringVarP(&a.username, "username", "u", "", "log in as this user before running the command")
	flags.StringVarP(&a.password, "password", "p", "", "password for --username")
	flags.BoolVar(&a.asJSON, "json", false, "print results as JSON")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log requests at debug level")

	cmd.AddCommand(
		newProductsCmd(a),
		newUsersCmd(a),
		newMeCmd(a),
		newCallCmd(a),
		newOpsCmd(a),
		newDemoCmd(a),
	)

	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadClientConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if a.apiURL != "" {
		cfg.APIBaseURL = strings.TrimRight(a.apiURL, "/")
	}

	// request logs go to stderr and stay quiet unless asked for
	logOut := io.Discard
	if a.verbose {
		logOut = cmd.ErrOrStderr()
	}
	logger.Setup(cfg.Environment, logOut)

	a.cfg = cfg
	a.client = transport.NewClient(cfg, nil)
	a.services = services.New(a.client, a.client.Tokens())

	if a.username == "" {
		return nil
	}

	if a.password == "" {
		return errors.New("--password is required with --username")
	}

	_, err = a.services.Auth.Login(cmd.Context(), services.LoginRequest{
		Username: a.username,
		Password: a.password,
	})

	return err
}

// prints v as JSON with --json, otherwise calls human
func (a *app) print(cmd *cobra.Command, v any, human func(io.Writer)) error {
	if a.asJSON {
		return renderJSON(cmd.OutOrStdout(), v)
	}

	human(cmd.OutOrStdout())

	return nil
}

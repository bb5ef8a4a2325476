package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"product-catalog/config"
	"product-catalog/internal/client"
	"product-catalog/internal/infrastructure/telemetry"
	"product-catalog/internal/ui"
	"product-catalog/pkg/jwt"
	"product-catalog/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// cli carries the state shared by every subcommand.
type cli struct {
	cfg      *config.Config
	log      *logrus.Logger
	provider *telemetry.Provider
	client   *client.ProductClient

	apiURL  string
	token   string
	timeout time.Duration
}

func newRootCommand() *cobra.Command {
	c := &cli{log: logrus.New()}

	root := &cobra.Command{
		Use:           "productctl",
		Short:         "Manage the product catalog over its HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.provider == nil {
				return nil
			}
			return c.provider.Shutdown(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&c.apiURL, "api-url", "", "API base URL (defaults to API_URL)")
	root.PersistentFlags().StringVar(&c.token, "token", "", "bearer token (defaults to API_TOKEN)")
	root.PersistentFlags().DurationVar(&c.timeout, "timeout", 0, "request timeout (defaults to API_TIMEOUT)")

	root.AddCommand(
		c.listCommand(),
		c.getCommand(),
		c.createCommand(),
		c.updateCommand(),
		c.deleteCommand(),
		c.importCommand(),
		c.exportCommand(),
		c.tokenCommand(),
		c.shellCommand(),
	)
	return root
}

func (c *cli) init(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.cfg = cfg

	if err := logger.Setup(c.log, os.Stderr, cfg.App.LogLevel); err != nil {
		return err
	}

	provider, err := telemetry.NewProvider(cmd.Context(), cfg.Tracing, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	c.provider = provider

	apiURL := cfg.Client.APIURL
	if c.apiURL != "" {
		apiURL = c.apiURL
	}
	token := cfg.Client.Token
	if c.token != "" {
		token = c.token
	}
	timeout := cfg.Client.Timeout
	if c.timeout > 0 {
		timeout = c.timeout
	}

	c.client = client.NewProductClient(apiURL, timeout, client.WithToken(token), client.WithLogger(c.log))
	return nil
}

func (c *cli) listCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := c.client.List(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), products)
			}
			return writeTable(cmd.OutOrStdout(), products...)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func (c *cli) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			product, err := c.client.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return writeTable(cmd.OutOrStdout(), *product)
		},
	}
}

func (c *cli) createCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> <price>",
		Short: "Create a product",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid price %q", args[1])
			}
			product, err := c.client.Create(cmd.Context(), args[0], price)
			if err != nil {
				return err
			}
			return writeTable(cmd.OutOrStdout(), *product)
		},
	}
}

func (c *cli) updateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <name> <price>",
		Short: "Replace a product's name and price",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			price, err := decimal.NewFromString(args[2])
			if err != nil {
				return fmt.Errorf("invalid price %q", args[2])
			}
			return c.client.Update(cmd.Context(), client.Product{ID: id, Name: args[1], Price: price})
		},
	}
}

func (c *cli) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.client.Delete(cmd.Context(), id)
		},
	}
}

func (c *cli) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Create products from name,price CSV rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			created, err := client.ImportCSV(cmd.Context(), c.client, f)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d products\n", len(created))
			return err
		},
	}
}

func (c *cli) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all products as id,name,price CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" || output == "-" {
				return client.ExportCSV(cmd.Context(), c.client, cmd.OutOrStdout())
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := client.ExportCSV(cmd.Context(), c.client, f); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	return cmd
}

func (c *cli) tokenCommand() *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token signed with AUTH_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.Auth.Secret == "" {
				return errors.New("AUTH_SECRET is not set")
			}
			token, err := jwt.NewJWTService(c.cfg.Auth).GenerateToken(subject)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "productctl", "token subject")
	return cmd
}

func (c *cli) shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive product table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			controller := ui.NewController(c.client, c.log)
			shell := ui.NewShell(controller, cmd.InOrStdin(), cmd.OutOrStdout())

			err := shell.Run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func writeTable(w io.Writer, products ...client.Product) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, p.Name, p.Price.StringFixed(2))
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

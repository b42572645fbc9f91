// Command seed loads products, processes, machines and starting inventory
// from a YAML fixture. Reference rows are upserted by id; an inventory
// balance is only created when the product/process pair has none, so the
// command is safe to re-run against a live database.
//
// Usage:
//
//	seed --file fixture.yaml [--dry-run]
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"workorders/cmd"
	"workorders/internal/adapters/out/amqp"
	"workorders/internal/core/application/usecases/commands"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		file   string
		dryRun bool
	)

	rootCmd := &cobra.Command{
		Use:           "seed",
		Short:         "Seed reference data and inventory from a YAML fixture",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, _ []string) error {
			fixture, err := readFixture(file)
			if err != nil {
				return err
			}
			seedCmd, err := fixture.Command()
			if err != nil {
				return err
			}

			out := c.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "fixture ok: %d products, %d processes, %d machines, %d inventory balances\n",
					len(seedCmd.Products()), len(seedCmd.Processes()), len(seedCmd.Machines()), len(seedCmd.Inventory()))
				return nil
			}
			return seed(c.Context(), out, seedCmd)
		},
	}

	rootCmd.Flags().StringVarP(&file, "file", "f", "fixture.yaml", "path to the YAML fixture")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the fixture without writing")

	return rootCmd
}

func readFixture(path string) (Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return Fixture{}, err
	}
	defer f.Close()
	return DecodeFixture(f)
}

func seed(ctx context.Context, out io.Writer, seedCmd commands.SeedCatalogCommand) error {
	configs := cmd.LoadConfig()
	logger := cmd.NewLogger(configs, os.Stderr)

	db, err := cmd.OpenDatabase(configs)
	if err != nil {
		return err
	}
	defer func() { _ = cmd.CloseDatabase(db) }()

	app := cmd.NewCompositionRoot(configs, db, amqp.NopPublisher{}, prometheus.NewRegistry(), logger)
	handler := app.CreateSeedCatalogCommandHandler()

	report, err := handler.Handle(ctx, seedCmd)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "products: %d, processes: %d, machines: %d\n", report.Products, report.Processes, report.Machines)
	fmt.Fprintf(out, "inventory: %d created, %d already present\n", report.InventoryCreated, report.InventorySkipped)
	return nil
}

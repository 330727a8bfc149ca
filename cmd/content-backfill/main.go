package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/firestore"
	"github.com/Lllllllleong/contentstatusflow/internal/gcp"
	"github.com/Lllllllleong/contentstatusflow/internal/services"
	"github.com/spf13/cobra"
)

var (
	projectID   string
	databaseID  string
	collection  string
	concurrency int
	dryRun      bool
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	root := &cobra.Command{
		Use:   "content-backfill",
		Short: "Replay the content updaters over documents that already exist",
		Long: "Scans the content collection and runs every existing document through the same\n" +
			"guard and single-field update the Firestore triggers use.",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&projectID, "project", gcp.ProjectID(), "GCP project ID")
	root.PersistentFlags().StringVar(&databaseID, "database", gcp.GetEnv("FIRESTORE_DATABASE", firestore.DefaultDatabaseID), "Firestore database ID")
	root.PersistentFlags().StringVar(&collection, "collection", gcp.GetEnv("CONTENT_COLLECTION", "content"), "Collection to scan")
	root.PersistentFlags().IntVar(&concurrency, "concurrency", 8, "Maximum documents handled at once")
	root.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Log the updates instead of writing them")

	root.AddCommand(&cobra.Command{
		Use:   "status",
		Short: `Complete documents whose status is "pending-analysis"`,
		Args:  cobra.NoArgs,
		RunE:  runBackfill,
	})
	root.AddCommand(&cobra.Command{
		Use:   "image",
		Short: "Flag documents that have an imageUrl with ispythonexecuted",
		Args:  cobra.NoArgs,
		RunE:  runBackfill,
	})

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func runBackfill(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	guard, err := services.GuardByName(cmd.Name())
	if err != nil {
		return err
	}

	config := services.UpdaterConfig{
		ProjectID:  projectID,
		DatabaseID: databaseID,
		Collection: collection,
	}
	if err := config.Validate(); err != nil {
		return err
	}

	client, err := gcp.NewFirestoreClient(ctx, config.ProjectID, config.DatabaseID)
	if err != nil {
		return err
	}
	defer client.Close()

	var writer services.FieldWriter = gcp.NewFirestoreWriter(client, config.Collection)
	if dryRun {
		writer = services.DryRunWriter{}
	}

	updater, err := services.NewContentUpdaterWithWriter(config, guard, writer)
	if err != nil {
		return err
	}
	scanner := gcp.NewFirestoreScanner(client, config.Collection, guard.Filter())

	summary, err := services.NewReplayer(updater, scanner, concurrency).Run(ctx)
	if err != nil {
		return fmt.Errorf("backfill failed after %d documents: %w", summary.Scanned, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "scanned %d documents\n", summary.Scanned)
	for outcome, n := range summary.Outcomes {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-13s %d\n", outcome, n)
	}
	return nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [directory]",
	Short: "Index all supported documents in a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	app, err := newApp(false)
	if err != nil {
		return err
	}

	count, err := app.IngestUC.Ingest(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("ingest %s: %w", args[0], err)
	}

	cmd.Printf("Indexed %d chunks from %s\n", count, args[0])
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <url>",
	Short: "Fetch a web page and persist it as a document record",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	doc, path, err := p.IngestURL(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	cmd.Printf("Saved %q (%d words) to %s\n", doc.Title, wordCount(doc.Text), path)
	return nil
}

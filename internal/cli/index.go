package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Chunk and embed all document records into the similarity index",
	Long:  "Reads every persisted document record, splits each into overlapping word windows, embeds the windows and writes the index and chunk table. Re-running fully replaces the previous index.",
	Args:  cobra.NoArgs,
	RunE:  runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	res, err := p.BuildIndex(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Printf("Indexed %d chunks from %d documents (dimension %d)\n", res.Chunks, res.Documents, res.Dimension)
	if res.Summary != "" {
		cmd.Printf("Corpus summary: %s\n", res.Summary)
	}
	return nil
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

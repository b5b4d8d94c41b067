package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"webrag/internal/domain"
	"webrag/internal/tui"
)

var (
	queryTopK        int
	queryInteractive bool
)

var queryCmd = &cobra.Command{
	Use:   "query [\"question\"]",
	Short: "Search the index for chunks relevant to a question",
	Long:  "Embeds the question with the same model the index was built with and prints the top-k most similar chunks. With --interactive, opens a prompt loop instead.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of results (default from config)")
	queryCmd.Flags().BoolVarP(&queryInteractive, "interactive", "i", false, "interactive query loop")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if !queryInteractive && len(args) == 0 {
		return fmt.Errorf("provide a question or use --interactive")
	}
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	topK := queryTopK
	if topK <= 0 {
		topK = cfg.Retrieval.TopK
	}
	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	if err := p.OpenIndex(); err != nil {
		return err
	}

	if queryInteractive {
		m := tui.New(p, p.Summary(), topK)
		if _, err := tea.NewProgram(m).Run(); err != nil {
			return err
		}
		return nil
	}

	results, err := p.Query(args[0], topK)
	if err != nil {
		return err
	}
	printResults(cmd, args[0], results)
	return nil
}

var (
	rankColor   = color.New(color.FgCyan, color.Bold)
	sourceColor = color.New(color.FgGreen)
	scoreColor  = color.New(color.FgYellow)
)

func printResults(cmd *cobra.Command, query string, results []domain.SearchResult) {
	cmd.Printf("Query: %q\n", query)
	if len(results) == 0 {
		cmd.Println("No results found.")
		return
	}
	for i, r := range results {
		cmd.Println()
		cmd.Printf("%s  %s\n",
			rankColor.Sprintf("[%d]", i+1),
			scoreColor.Sprintf("score=%.4f", r.Score))
		cmd.Printf("     %s\n", sourceColor.Sprintf("%s (chunk %d)", r.Chunk.URL, r.Chunk.Index))
		cmd.Printf("     %s\n", r.Chunk.Text)
	}
}

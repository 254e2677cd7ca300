package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/karimelsayed/ragkb/internal/core/domain"
)

var (
	askLang string
	askTopK int
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a single question from the indexed documents",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askLang, "lang", "en", "answer language (en or ar)")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of chunks to retrieve (0 = default)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	language, err := domain.ParseLanguage(askLang)
	if err != nil {
		return err
	}

	app, err := newApp(true)
	if err != nil {
		return err
	}

	question := strings.Join(args, " ")
	result, err := app.QueryUC.Answer(context.Background(), question, language, askTopK)
	if err != nil {
		return fmt.Errorf("answer question: %w", err)
	}

	cmd.Println(result.Answer)
	cmd.Println()
	if len(result.SourceFiles) > 0 {
		cmd.Printf("Sources: %s\n", strings.Join(result.SourceFiles, ", "))
	}
	cmd.Printf("Time: %.2fs\n", result.ProcessingTime.Seconds())
	cmd.Printf("Models: embed=%s gen=%s\n", result.EmbeddingModel, result.GenerationModel)
	if result.Attempts > 1 {
		cmd.Printf("Attempts: %d\n", result.Attempts)
	}
	return nil
}

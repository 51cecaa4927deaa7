package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"unitoken/internal/adapter/langdetect"
	"unitoken/internal/domain"
)

var (
	languagesSet  string
	languagesJSON bool
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages",
	Long: `List ISO 639-1 language codes.

Sets:
  allowed     languages single-text tokenization accepts (default)
  template    languages with a template pipeline
  classifier  languages the configured detector can report`,
	Args: cobra.NoArgs,
	RunE: runLanguages,
}

func init() {
	rootCmd.AddCommand(languagesCmd)
	languagesCmd.Flags().StringVar(&languagesSet, "set", "allowed", "language set: allowed, template or classifier")
	languagesCmd.Flags().BoolVar(&languagesJSON, "json", false, "output as JSON")
}

func runLanguages(cmd *cobra.Command, args []string) error {
	var codes []string

	switch languagesSet {
	case "allowed":
		codes = domain.AllowedLanguages().Sorted()
	case "template":
		codes = domain.NewLanguages(domain.TemplateLanguages...).Sorted()
	case "classifier":
		cfg := GetConfig()
		classifier, err := langdetect.NewLinguaClassifier(cfg.Detector, cfg.Tokenize.FallbackLanguage)
		if err != nil {
			return fmt.Errorf("failed to create language detector: %w", err)
		}
		codes = classifier.Languages()
	default:
		return fmt.Errorf("unknown language set %q (want allowed, template or classifier)", languagesSet)
	}

	out := cmd.OutOrStdout()
	if languagesJSON {
		return writeJSON(out, codes)
	}
	fmt.Fprintf(out, "%d languages (%s):\n", len(codes), languagesSet)
	fmt.Fprintln(out, strings.Join(codes, " "))
	return nil
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"unitoken/internal/domain"
	"unitoken/internal/usecase"
)

var (
	tokenizeSentences bool
	tokenizeThreshold float64
	tokenizeJSON      bool
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [text...]",
	Short: "Tokenize one text",
	Long: `Detect the language of a text and split it into tokens, or into sentences
of tokens with --sentences. Arguments are joined with spaces; without
arguments the text is read from stdin.

The detection must reach the score threshold and name a supported language,
otherwise the command fails.

Examples:
  unitoken tokenize "Das ist ein Test."
  unitoken tokenize -s --threshold 0.5 < notes.txt
  unitoken tokenize --json "Hello world"`,
	RunE: runTokenize,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	tokenizeCmd.Flags().BoolVarP(&tokenizeSentences, "sentences", "s", false, "split into sentences")
	tokenizeCmd.Flags().Float64Var(&tokenizeThreshold, "threshold", -1, "minimum detection score (default from config)")
	tokenizeCmd.Flags().BoolVar(&tokenizeJSON, "json", false, "output as JSON")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	text, err := readText(cmd.InOrStdin(), args)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	threshold := cfg.Tokenize.ScoreThreshold
	if tokenizeThreshold >= 0 {
		threshold = tokenizeThreshold
	}
	if threshold > 1 {
		return fmt.Errorf("threshold must be between 0 and 1, got %v", threshold)
	}

	uc, err := newTokenizeUseCase(cfg, GetLogger())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if tokenizeSentences {
		sents, lang, err := uc.SentTokenize(text, threshold, nil)
		if err != nil {
			return fmt.Errorf("tokenize failed: %w", err)
		}
		if tokenizeJSON {
			return writeJSON(out, usecase.SentencesResult{Sentences: sents, Language: lang})
		}
		printLanguage(out, lang)
		for _, s := range sents {
			fmt.Fprintln(out, strings.Join(s, " "))
		}
		return nil
	}

	tokens, lang, err := uc.Tokenize(text, threshold, nil)
	if err != nil {
		return fmt.Errorf("tokenize failed: %w", err)
	}
	if tokenizeJSON {
		return writeJSON(out, usecase.TokensResult{Tokens: tokens, Language: lang})
	}
	printLanguage(out, lang)
	fmt.Fprintln(out, strings.Join(tokens, " "))
	return nil
}

// readText joins args, or reads all of r when there are none.
func readText(r io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func printLanguage(w io.Writer, lang domain.LanguageResult) {
	fmt.Fprintf(w, "Language: %s (score: %.4f)\n", lang.Language, lang.Score)
}

func writeJSON(w io.Writer, v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}

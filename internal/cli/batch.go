package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"unitoken/internal/adapter/fs"
	"unitoken/internal/domain"
	"unitoken/internal/port"
	"unitoken/internal/usecase"
)

var (
	batchSentences bool
	batchJSON      bool
	batchSave      bool
	batchLines     bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [path]",
	Short: "Tokenize many texts at once",
	Long: `Tokenize every file under a directory matching the configured include
globs, or every non-blank stdin line with --lines. Texts are grouped by
detected language so each language pipeline runs once per chunk of
batch.size texts. Results keep input order.

Texts whose language has no pipeline are reported as invalid with empty
results instead of failing the batch.

Examples:
  unitoken batch ./corpus
  unitoken batch ./corpus -s --save
  cat tweets.txt | unitoken batch --lines --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().BoolVarP(&batchSentences, "sentences", "s", false, "split into sentences")
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "output as JSON")
	batchCmd.Flags().BoolVar(&batchSave, "save", false, "store the results as a run")
	batchCmd.Flags().BoolVar(&batchLines, "lines", false, "read one text per stdin line")
}

const readConcurrency = 16

type tokensItem struct {
	Source string `json:"source"`
	usecase.TokensResult
}

type sentencesItem struct {
	Source string `json:"source"`
	usecase.SentencesResult
}

type batchOutput struct {
	RunID string      `json:"run_id,omitempty"`
	Items interface{} `json:"items"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	log := GetLogger()

	sources, texts, err := collectInputs(cmd, args)
	if err != nil {
		return err
	}
	if len(texts) == 0 {
		return fmt.Errorf("no input texts found")
	}
	log.Debug("batch input collected", zap.Int("texts", len(texts)))

	uc, err := newTokenizeUseCase(cfg, log)
	if err != nil {
		return err
	}

	var recorder *usecase.RunRecorder
	if batchSave {
		st, err := openRunStore(cfg, GetRootDir(), true)
		if err != nil {
			return err
		}
		defer st.Close()
		recorder = usecase.NewRunRecorder(st)
	}

	bar := newProgressBar(cmd.ErrOrStderr(), len(texts), "Tokenizing")
	progress := func(done int) { _ = bar.Set(done) }

	out := cmd.OutOrStdout()
	var (
		runID     string
		languages []domain.LanguageResult
		counts    []int
	)

	if batchSentences {
		results, err := processChunks(texts, cfg.Batch.Size, func(chunk []string) ([]usecase.SentencesResult, error) {
			return uc.SentTokenizeBatch(chunk, nil)
		}, progress)
		if err != nil {
			return fmt.Errorf("batch failed: %w", err)
		}
		if recorder != nil {
			run, err := recorder.RecordSentences(sources, results)
			if err != nil {
				return fmt.Errorf("failed to save run: %w", err)
			}
			runID = run.ID
		}
		if batchJSON {
			items := make([]sentencesItem, len(results))
			for i, r := range results {
				items[i] = sentencesItem{Source: sources[i], SentencesResult: r}
			}
			return writeJSON(out, batchOutput{RunID: runID, Items: items})
		}
		for i, r := range results {
			n := 0
			for _, s := range r.Sentences {
				n += len(s)
			}
			languages = append(languages, r.Language)
			counts = append(counts, n)
			fmt.Fprintf(out, "%s\t%s\t%.4f\t%d sentences\n", sources[i], languageLabel(r.Language), r.Language.Score, len(r.Sentences))
		}
	} else {
		results, err := processChunks(texts, cfg.Batch.Size, func(chunk []string) ([]usecase.TokensResult, error) {
			return uc.TokenizeBatch(chunk, nil)
		}, progress)
		if err != nil {
			return fmt.Errorf("batch failed: %w", err)
		}
		if recorder != nil {
			run, err := recorder.RecordTokens(sources, results)
			if err != nil {
				return fmt.Errorf("failed to save run: %w", err)
			}
			runID = run.ID
		}
		if batchJSON {
			items := make([]tokensItem, len(results))
			for i, r := range results {
				items[i] = tokensItem{Source: sources[i], TokensResult: r}
			}
			return writeJSON(out, batchOutput{RunID: runID, Items: items})
		}
		for i, r := range results {
			languages = append(languages, r.Language)
			counts = append(counts, len(r.Tokens))
			fmt.Fprintf(out, "%s\t%s\t%.4f\t%d tokens\n", sources[i], languageLabel(r.Language), r.Language.Score, len(r.Tokens))
		}
	}

	printBatchSummary(out, languages, counts)
	if runID != "" {
		fmt.Fprintf(out, "\nRun saved: %s\n", runID)
	}
	return nil
}

// collectInputs returns a label and a text per input item.
func collectInputs(cmd *cobra.Command, args []string) ([]string, []string, error) {
	if batchLines {
		lines, err := fs.ReadLines(cmd.InOrStdin())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		sources := make([]string, len(lines))
		for i := range lines {
			sources[i] = fmt.Sprintf("stdin:%d", i+1)
		}
		return sources, lines, nil
	}

	path := GetRootDir()
	if len(args) > 0 {
		var err error
		path, err = filepath.Abs(args[0])
		if err != nil {
			return nil, nil, fmt.Errorf("invalid path: %w", err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		text, err := fs.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		return []string{filepath.Base(path)}, []string{text}, nil
	}

	cfg := GetConfig()
	var walker port.FileWalker = fs.NewWalker(cfg.Batch.Includes, cfg.Batch.Excludes)
	files, err := walker.Walk(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan %s: %w", path, err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	contents, readErrs := fs.ReadFiles(ctx, files, readConcurrency)

	var sources, texts []string
	for i, f := range files {
		if readErrs[i] != nil {
			GetLogger().Warn("skipping unreadable file", zap.String("path", f.Path), zap.Error(readErrs[i]))
			continue
		}
		rel, err := filepath.Rel(path, f.Path)
		if err != nil {
			rel = f.Path
		}
		sources = append(sources, filepath.ToSlash(rel))
		texts = append(texts, contents[i])
	}
	return sources, texts, nil
}

// processChunks runs fn over consecutive chunks of at most size texts and
// concatenates the results in input order.
func processChunks[T any](texts []string, size int, fn func([]string) ([]T, error), progress func(done int)) ([]T, error) {
	if size <= 0 {
		size = len(texts)
	}

	results := make([]T, 0, len(texts))
	for i := 0; i < len(texts); i += size {
		end := i + size
		if end > len(texts) {
			end = len(texts)
		}

		chunk, err := fn(texts[i:end])
		if err != nil {
			return nil, err
		}
		if len(chunk) != end-i {
			return nil, fmt.Errorf("chunk at %d returned %d results for %d texts", i, len(chunk), end-i)
		}
		results = append(results, chunk...)

		if progress != nil {
			progress(end)
		}
	}
	return results, nil
}

func newProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]"+description+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}

func languageLabel(r domain.LanguageResult) string {
	if !r.Valid {
		return r.Language + " (invalid)"
	}
	return r.Language
}

func printBatchSummary(w io.Writer, languages []domain.LanguageResult, counts []int) {
	invalid, tokens := 0, 0
	perLang := make(map[string]int)
	for i, l := range languages {
		tokens += counts[i]
		if !l.Valid {
			invalid++
			continue
		}
		perLang[l.Language]++
	}

	fmt.Fprintf(w, "\nBatch complete:\n")
	fmt.Fprintf(w, "  Items:     %d\n", len(languages))
	fmt.Fprintf(w, "  Invalid:   %d\n", invalid)
	fmt.Fprintf(w, "  Tokens:    %d\n", tokens)
	fmt.Fprintf(w, "  Languages: %s\n", formatLanguageCounts(perLang))
}

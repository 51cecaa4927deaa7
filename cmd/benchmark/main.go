package main

import (
	"flag"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"
	"time"

	"unitoken/config"
	"unitoken/internal/adapter/analyzer"
	"unitoken/internal/adapter/cache"
	"unitoken/internal/adapter/fs"
	"unitoken/internal/adapter/langdetect"
	"unitoken/internal/logger"
	"unitoken/internal/usecase"
)

func main() {
	dir := flag.String("dir", ".", "Directory with text files to tokenize")
	linesPath := flag.String("lines", "", "File with one text per line (overrides -dir)")
	rounds := flag.Int("rounds", 3, "Timed rounds per mode")
	flag.Parse()

	cfg, err := config.LoadFromDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	texts, err := loadTexts(cfg, *dir, *linesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading corpus: %v\n", err)
		os.Exit(1)
	}
	if len(texts) == 0 {
		fmt.Println("Usage: go run cmd/benchmark/main.go -dir ./corpus")
		fmt.Println("       go run cmd/benchmark/main.go -lines tweets.txt")
		fmt.Println("\nCompares:")
		fmt.Println("  1. Grouped batch (one pipeline call per language)")
		fmt.Println("  2. Per-item calls (one pipeline call per text)")
		os.Exit(1)
	}

	classifier, err := langdetect.NewLinguaClassifier(cfg.Detector, cfg.Tokenize.FallbackLanguage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Detector init failed: %v\n", err)
		os.Exit(1)
	}
	models := cache.NewModelCache(cache.BlankBuilder, log)
	uc := usecase.NewTokenizeUseCase(classifier, usecase.NewModelResolver(models), cfg.Batch.ScoreThreshold, log)

	fmt.Println("BATCH TOKENIZATION BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))

	// Warm-up loads detector models and builds every template pipeline.
	start := time.Now()
	grouped, err := uc.TokenizeBatch(texts, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Batch error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Texts:          %d\n", len(texts))
	fmt.Printf("Tokens:         %d\n", countTokens(texts))
	fmt.Printf("Warm-up:        %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("Pipelines:      %s\n", strings.Join(models.Languages(), " "))
	printDistribution(grouped)
	fmt.Println()

	batchTime := timeRounds(*rounds, func() error {
		_, err := uc.TokenizeBatch(texts, nil)
		return err
	})

	var perItem []usecase.TokensResult
	itemTime := timeRounds(*rounds, func() error {
		perItem = perItem[:0]
		for _, t := range texts {
			res, err := uc.TokenizeBatch([]string{t}, nil)
			if err != nil {
				return err
			}
			perItem = append(perItem, res...)
		}
		return nil
	})

	fmt.Printf("%-12s %12s %14s\n", "MODE", "TIME", "TEXTS/SEC")
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("%-12s %12s %14.1f\n", "grouped", batchTime.Round(time.Microsecond), rate(len(texts), batchTime))
	fmt.Printf("%-12s %12s %14.1f\n", "per-item", itemTime.Round(time.Microsecond), rate(len(texts), itemTime))
	fmt.Println(strings.Repeat("=", 70))

	if itemTime > 0 && batchTime > 0 {
		fmt.Printf("Speedup: %.2fx\n", float64(itemTime)/float64(batchTime))
	}

	mismatches := 0
	for i := range grouped {
		if !reflect.DeepEqual(grouped[i], perItem[i]) {
			mismatches++
		}
	}
	if mismatches == 0 {
		fmt.Println("Status: OK - grouped results match per-item results")
	} else {
		fmt.Printf("Status: MISMATCH - %d of %d results differ\n", mismatches, len(texts))
		os.Exit(1)
	}
}

func loadTexts(cfg *config.Config, dir, linesPath string) ([]string, error) {
	if linesPath != "" {
		f, err := os.Open(linesPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return fs.ReadLines(f)
	}

	walker := fs.NewWalker(cfg.Batch.Includes, cfg.Batch.Excludes)
	files, err := walker.Walk(dir)
	if err != nil {
		return nil, err
	}

	var texts []string
	for _, f := range files {
		text, err := fs.ReadFile(f.Path)
		if err != nil {
			continue
		}
		texts = append(texts, text)
	}
	return texts, nil
}

// timeRounds returns the mean duration of fn over n rounds.
func timeRounds(n int, fn func() error) time.Duration {
	if n <= 0 {
		n = 1
	}
	var total time.Duration
	for i := 0; i < n; i++ {
		start := time.Now()
		if err := fn(); err != nil {
			fmt.Fprintf(os.Stderr, "Round failed: %v\n", err)
			os.Exit(1)
		}
		total += time.Since(start)
	}
	return total / time.Duration(n)
}

func rate(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds()
}

func countTokens(texts []string) int {
	tok := analyzer.NewTokenizer()
	n := 0
	for _, t := range texts {
		n += tok.CountTokens(t)
	}
	return n
}

func printDistribution(results []usecase.TokensResult) {
	counts := make(map[string]int)
	invalid := 0
	for _, r := range results {
		if !r.Language.Valid {
			invalid++
			continue
		}
		counts[r.Language.Language]++
	}

	langs := make([]string, 0, len(counts))
	for l := range counts {
		langs = append(langs, l)
	}
	sort.Slice(langs, func(i, j int) bool { return counts[langs[i]] > counts[langs[j]] })

	parts := make([]string, len(langs))
	for i, l := range langs {
		parts[i] = fmt.Sprintf("%s=%d", l, counts[l])
	}
	fmt.Printf("Languages:      %s\n", strings.Join(parts, " "))
	if invalid > 0 {
		fmt.Printf("Invalid:        %d\n", invalid)
	}
}

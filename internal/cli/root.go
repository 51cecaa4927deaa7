package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"unitoken/config"
	"unitoken/internal/logger"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
	log     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "unitoken",
	Short: "Language-aware tokenizer - Detect the language of text and tokenize it",
	Long: `unitoken detects the language of each text, checks the detection against a
score threshold and the supported languages, and splits the text into tokens
or sentences with a pipeline built for that language.

Example usage:
  unitoken tokenize "Hello world."        # Tokenize one text
  unitoken tokenize -s < article.txt      # Split stdin into sentences
  unitoken batch ./corpus --save          # Tokenize a directory, store the run
  unitoken serve --addr :8080             # Serve the HTTP API`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		log, err = logger.New(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./unitoken.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}

func GetLogger() *zap.Logger {
	return logger.OrNop(log)
}

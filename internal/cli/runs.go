package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"unitoken/internal/domain"
	"unitoken/internal/port"
)

var runsJSON bool

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect stored batch runs",
	Long: `List, show or delete batch runs saved with 'unitoken batch --save'.

Examples:
  unitoken runs list
  unitoken runs show 3f0c8a52-5f8e-4b8e-9a55-0f5d0c0b6d3e --json
  unitoken runs delete 3f0c8a52-5f8e-4b8e-9a55-0f5d0c0b6d3e`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one stored run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one stored run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd, runsShowCmd, runsDeleteCmd)
	runsCmd.PersistentFlags().BoolVar(&runsJSON, "json", false, "output as JSON")
}

func runRunsList(cmd *cobra.Command, args []string) error {
	st, err := openRunStore(GetConfig(), GetRootDir(), false)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	out := cmd.OutOrStdout()
	if runsJSON {
		if runs == nil {
			runs = []domain.RunSummary{}
		}
		return writeJSON(out, runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs stored.")
		return nil
	}
	for _, r := range runs {
		kind := "tokens"
		if r.Sentences {
			kind = "sentences"
		}
		fmt.Fprintf(out, "%s  %s  %-9s  %d items (%d invalid)  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), kind, r.Items, r.Invalid, formatLanguageCounts(r.Languages))
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	id, err := parseRunID(args[0])
	if err != nil {
		return err
	}

	st, err := openRunStore(GetConfig(), GetRootDir(), false)
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.GetRun(id)
	if err != nil {
		if errors.Is(err, port.ErrRunNotFound) {
			return fmt.Errorf("run %s not found", id)
		}
		return fmt.Errorf("failed to load run: %w", err)
	}

	out := cmd.OutOrStdout()
	if runsJSON {
		return writeJSON(out, run)
	}

	fmt.Fprintf(out, "Run %s (%s)\n\n", run.ID, run.CreatedAt.Format("2006-01-02 15:04:05"))
	for i, item := range run.Items {
		fmt.Fprintf(out, "--- [%d] %s %s (score: %.4f) ---\n", i+1, item.Source, languageLabel(item.Language), item.Language.Score)
		if run.Sentences {
			for _, s := range item.SentenceTokens {
				fmt.Fprintln(out, strings.Join(s, " "))
			}
		} else {
			fmt.Fprintln(out, strings.Join(item.Tokens, " "))
		}
	}
	return nil
}

func runRunsDelete(cmd *cobra.Command, args []string) error {
	id, err := parseRunID(args[0])
	if err != nil {
		return err
	}

	st, err := openRunStore(GetConfig(), GetRootDir(), false)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteRun(id); err != nil {
		if errors.Is(err, port.ErrRunNotFound) {
			return fmt.Errorf("run %s not found", id)
		}
		return fmt.Errorf("failed to delete run: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", id)
	return nil
}

func parseRunID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid run id %q: %w", s, err)
	}
	return id.String(), nil
}

func formatLanguageCounts(counts map[string]int) string {
	codes := make([]string, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	parts := make([]string, len(codes))
	for i, code := range codes {
		parts[i] = fmt.Sprintf("%s=%d", code, counts[code])
	}
	return strings.Join(parts, " ")
}

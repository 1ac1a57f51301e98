package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"talent-match/internal/app"
	"talent-match/internal/delivery/http/dto"
	"talent-match/internal/domain/matching"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Score every candidate against a job",
	RunE:  runMatch,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("job", "", "job id to match against (required)")
	runCmd.Flags().Bool("save", false, "persist the results as suggested matches")
	runCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation before saving")
	runCmd.Flags().IntP("top", "n", 0, "print only the first n results")
	runCmd.Flags().StringP("output", "o", "table", "output format: table or json")
	_ = runCmd.MarkFlagRequired("job")
}

func runMatch(cmd *cobra.Command, _ []string) error {
	rawJob, _ := cmd.Flags().GetString("job")
	save, _ := cmd.Flags().GetBool("save")
	yes, _ := cmd.Flags().GetBool("yes")
	top, _ := cmd.Flags().GetInt("top")
	output, _ := cmd.Flags().GetString("output")

	jobID, err := uuid.Parse(strings.TrimSpace(rawJob))
	if err != nil {
		return fmt.Errorf("invalid --job: %w", err)
	}
	output = strings.ToLower(output)
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported --output %q", output)
	}

	cfg, lg, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = lg.Sync() }()

	ctx := cmd.Context()
	c, err := app.NewContainer(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	results, err := c.Matching.FindMatchesForJob(ctx, jobID)
	if err != nil {
		return err
	}
	if save && !yes && !confirmSave(len(results)) {
		lg.Info("save skipped", zap.String("reason", "not confirmed"))
		save = false
	}
	if save {
		if err := c.Matching.PublishMatches(ctx, jobID, results); err != nil {
			return err
		}
	}
	lg.Info("matching finished", zap.String("job_id", jobID.String()), zap.Int("results", len(results)), zap.Bool("saved", save))

	if top > 0 && top < len(results) {
		results = results[:top]
	}
	if output == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(dto.NewMatchResultResponses(results))
	}
	return printResults(cmd.OutOrStdout(), results)
}

func confirmSave(n int) bool {
	p := promptui.Prompt{
		Label:     fmt.Sprintf("Save %d matches as suggested", n),
		IsConfirm: true,
	}
	_, err := p.Run()
	return err == nil
}

func printResults(w io.Writer, results []matching.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tCANDIDATE\tSCORE\tBAND\tMATCHED\tGAPS")
	for i, r := range results {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\n",
			i+1,
			r.CandidateID,
			r.Score,
			matching.BandFor(r.Score),
			strings.Join(r.MatchedSkills, ", "),
			strings.Join(r.SkillGaps, ", "),
		)
	}
	return tw.Flush()
}

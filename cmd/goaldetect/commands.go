package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"goal-detector/internal/bootstrap"
	"goal-detector/internal/catalog"
	"goal-detector/internal/questionnaire"
	"goal-detector/internal/roadmaps"
	"goal-detector/internal/roadmaps/engine"
	"goal-detector/internal/shared/config"
	"goal-detector/internal/shared/telemetry"
)

type rootOptions struct {
	goalsPath string
	verbose   bool
}

func newRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "goaldetect",
		Short: "Turn questionnaire answers into a goal roadmap",
		Long: `goaldetect runs the goal roadmap pipeline from the command line.

Examples:
  goaldetect goals
  goaldetect themes --responses answers.json
  goaldetect roadmap --responses answers.json --name Sam --out roadmap.json
  goaldetect interview`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if opts.verbose {
				if logger, err := telemetry.New("dev"); err == nil {
					telemetry.SetLogger(logger)
				}
				return
			}
			telemetry.SetLogger(zap.NewNop())
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.goalsPath, "goals", "", "goal catalog file (YAML or JSON); defaults to GOALS_PATH or the built-in catalog")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline events to stdout")

	root.AddCommand(
		newGoalsCommand(opts),
		newThemesCommand(opts),
		newRoadmapCommand(opts),
		newInterviewCommand(opts),
	)
	return root
}

func (o *rootOptions) catalog() (*catalog.Catalog, config.Config, error) {
	cfg := config.Load()
	path := o.goalsPath
	if path == "" {
		path = cfg.GoalsPath
	}
	cat, err := bootstrap.LoadCatalog(path)
	return cat, cfg, err
}

func newGoalsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "goals",
		Short: "List the goal catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, _, err := opts.catalog()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTHEME\tWEEKS\tDIFFICULTY\tTITLE")
			for _, g := range cat.Goals() {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", g.ID, g.Theme, g.TimeframeWeeks, g.Difficulty, g.Title)
			}
			return tw.Flush()
		},
	}
}

type themesResult struct {
	Themes     []engine.Theme  `json:"themes"`
	Signals    []engine.Signal `json:"signals"`
	Confidence float64         `json:"confidence"`
	TopGoals   []string        `json:"top_goals"`
}

func newThemesCommand(opts *rootOptions) *cobra.Command {
	var responsesPath string
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "Show detected themes, signals and confidence for a set of answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, _, err := opts.catalog()
			if err != nil {
				return err
			}
			responses, err := readResponses(cmd.InOrStdin(), responsesPath)
			if err != nil {
				return err
			}
			responses = responses.Canonical()
			top, themes, confidence := engine.RecommendGoals(cat.Goals(), responses, engine.DefaultTopN)
			res := themesResult{
				Themes:     themes,
				Signals:    engine.DetectSignals(responses),
				Confidence: confidence,
				TopGoals:   make([]string, 0, len(top)),
			}
			for _, g := range top {
				res.TopGoals = append(res.TopGoals, g.ID)
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&responsesPath, "responses", "r", "", `answers as a JSON object; "-" reads stdin`)
	_ = cmd.MarkFlagRequired("responses")
	return cmd
}

type roadmapFlags struct {
	responsesPath string
	name          string
	email         string
	outPath       string
}

func newRoadmapCommand(opts *rootOptions) *cobra.Command {
	flags := &roadmapFlags{}
	cmd := &cobra.Command{
		Use:   "roadmap",
		Short: "Generate a roadmap and print its export document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			responses, err := readResponses(cmd.InOrStdin(), flags.responsesPath)
			if err != nil {
				return err
			}
			return generate(cmd, opts, flags, responses)
		},
	}
	cmd.Flags().StringVarP(&flags.responsesPath, "responses", "r", "", `answers as a JSON object; "-" reads stdin`)
	cmd.Flags().StringVar(&flags.name, "name", "", "name recorded in the document profile")
	cmd.Flags().StringVar(&flags.email, "email", "", "email recorded in the document profile")
	cmd.Flags().StringVarP(&flags.outPath, "out", "o", "", "write the document to this file instead of stdout")
	_ = cmd.MarkFlagRequired("responses")
	return cmd
}

func generate(cmd *cobra.Command, opts *rootOptions, flags *roadmapFlags, responses questionnaire.Responses) error {
	cat, cfg, err := opts.catalog()
	if err != nil {
		return err
	}
	gateway, err := bootstrap.NewGateway(cfg, nil)
	if err != nil {
		return err
	}
	svc := &roadmaps.Service{
		Repo:    roadmaps.NewMemoryRepo(),
		Catalog: cat,
		Gateway: gateway,
	}
	rm, err := svc.Generate(cmd.Context(), roadmaps.GenerateInput{
		Profile:   roadmaps.Profile{Name: flags.name, Email: flags.email},
		Responses: responses,
	})
	if err != nil {
		return err
	}
	data, err := roadmaps.MarshalDocument(roadmaps.NewDocument(rm))
	if err != nil {
		return err
	}
	if flags.outPath == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(flags.outPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", flags.outPath, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\nSaved to %s\n", rm.Payload.Headline, flags.outPath)
	return nil
}

func readResponses(stdin io.Reader, path string) (questionnaire.Responses, error) {
	var (
		data []byte
		err  error
	)
	switch strings.TrimSpace(path) {
	case "":
		return nil, fmt.Errorf("--responses is required")
	case "-":
		data, err = io.ReadAll(stdin)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read responses: %w", err)
	}
	var responses questionnaire.Responses
	if err := json.Unmarshal(data, &responses); err != nil {
		return nil, fmt.Errorf("responses must be a JSON object: %w", err)
	}
	return responses, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"goal-detector/internal/questionnaire"
)

const (
	backCommand    = "<"
	maxFieldTries  = 3
	progressBarLen = 20
)

var errBack = errors.New("back")

func newInterviewCommand(opts *rootOptions) *cobra.Command {
	flags := &roadmapFlags{}
	cmd := &cobra.Command{
		Use:   "interview",
		Short: "Answer the questionnaire step by step and generate a roadmap",
		Long: `interview asks the questionnaire one step at a time.

Pick options by number (comma-separate several for multi-choice questions),
press enter to skip a question, or type "<" to return to the previous step.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			responses, err := runInterview(cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return generate(cmd, opts, flags, responses)
		},
	}
	cmd.Flags().StringVar(&flags.name, "name", "", "name recorded in the document profile")
	cmd.Flags().StringVar(&flags.email, "email", "", "email recorded in the document profile")
	cmd.Flags().StringVarP(&flags.outPath, "out", "o", "", "write the document to this file instead of stdout")
	return cmd
}

func runInterview(in io.Reader, out io.Writer) (questionnaire.Responses, error) {
	scanner := bufio.NewScanner(in)
	w := questionnaire.NewWizard()
	total := len(questionnaire.Steps())

	for {
		step := w.Current()
		fmt.Fprintf(out, "\n%s Step %d/%d: %s\n", progressBar(w.Progress()), w.Index()+1, total, step.Title)
		if step.Caption != "" {
			fmt.Fprintln(out, step.Caption)
		}

		back := false
		for _, field := range step.Fields {
			err := askField(scanner, out, w, field)
			if errors.Is(err, errBack) {
				back = true
				break
			}
			if errors.Is(err, io.EOF) {
				// Input ran out; leave the remaining questions unanswered.
				for w.Next() {
				}
				return w.Submit()
			}
			if err != nil {
				return nil, err
			}
		}
		if back {
			if !w.Back() {
				fmt.Fprintln(out, "Already at the first step.")
			}
			continue
		}
		if !w.Next() {
			break
		}
	}
	return w.Submit()
}

func askField(scanner *bufio.Scanner, out io.Writer, w *questionnaire.Wizard, field questionnaire.Field) error {
	for try := 0; try < maxFieldTries; try++ {
		printField(out, field)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read answer: %w", err)
			}
			return io.EOF
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			return nil
		case backCommand:
			return errBack
		}
		value, err := parseAnswer(field, line)
		if err == nil {
			err = w.Answer(field.Key, value)
		}
		if err == nil {
			return nil
		}
		fmt.Fprintf(out, "  %v\n", err)
	}
	fmt.Fprintln(out, "  Skipping this question.")
	return nil
}

func printField(out io.Writer, field questionnaire.Field) {
	label := field.Label
	if field.Optional {
		label += " (optional)"
	}
	if field.MaxSelections > 0 {
		label += fmt.Sprintf(" (pick up to %d)", field.MaxSelections)
	}
	fmt.Fprintln(out, label)
	for i, opt := range field.Options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
	}
	if field.Placeholder != "" {
		fmt.Fprintf(out, "  e.g. %s\n", field.Placeholder)
	}
	fmt.Fprint(out, "> ")
}

func parseAnswer(field questionnaire.Field, line string) (any, error) {
	switch field.Kind {
	case questionnaire.KindText:
		return line, nil
	case questionnaire.KindSelect:
		return pickOption(field.Options, line)
	default:
		parts := strings.Split(line, ",")
		picked := make([]string, 0, len(parts))
		for _, p := range parts {
			if strings.TrimSpace(p) == "" {
				continue
			}
			opt, err := pickOption(field.Options, p)
			if err != nil {
				return nil, err
			}
			picked = append(picked, opt)
		}
		return picked, nil
	}
}

// pickOption accepts a 1-based option number or the option text.
func pickOption(options []string, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 1 || n > len(options) {
			return "", fmt.Errorf("choose a number between 1 and %d", len(options))
		}
		return options[n-1], nil
	}
	for _, opt := range options {
		if strings.EqualFold(opt, raw) {
			return opt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", questionnaire.ErrInvalidOption, raw)
}

func progressBar(p float64) string {
	filled := int(p * progressBarLen)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", progressBarLen-filled) + "]"
}

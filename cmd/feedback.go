package cmd

import (
	"errors"

	"github.com/helmcode/agridetect/pkg/formatter"
	"github.com/helmcode/agridetect/pkg/model"
	"github.com/spf13/cobra"
)

var (
	feedbackCorrect bool
	feedbackActual  string
)

func NewFeedbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback DETECTION_ID",
		Short: "Tell the API whether a detection was right",
		Long: `Report whether a detection matched the real disease. DETECTION_ID is the
disease_id shown by "agridetect detect -o json".

Examples:
  # The detection was right
  agridetect feedback leaf_blight_001

  # The detection was wrong; the plant actually had rust
  agridetect feedback leaf_blight_001 --correct=false --actual Rust`,
		Args: cobra.ExactArgs(1),
		RunE: runFeedback,
	}

	cmd.Flags().BoolVar(&feedbackCorrect, "correct", true, "Whether the detection was correct")
	cmd.Flags().StringVar(&feedbackActual, "actual", "", "The disease the plant actually had")

	return cmd
}

func runFeedback(cmd *cobra.Command, args []string) error {
	if feedbackCorrect && feedbackActual != "" {
		return errors.New("--actual only applies with --correct=false")
	}

	s, err := loadSetup()
	if err != nil {
		return err
	}

	sp := newSpinner("Sending feedback...")
	sp.Start()
	resp, err := s.client.Feedback(contextOrBackground(cmd.Context()), model.FeedbackRequest{
		DetectionID:   args[0],
		Correct:       feedbackCorrect,
		ActualDisease: feedbackActual,
	})
	sp.Stop()
	if err != nil {
		return err
	}

	return formatter.DisplayFeedback(cmd.OutOrStdout(), resp, outputFormat)
}

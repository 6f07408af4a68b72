package cmd

import (
	"fmt"

	"github.com/helmcode/agridetect/pkg/formatter"
	"github.com/spf13/cobra"
)

func NewTreatmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "treatments DISEASE_ID",
		Short: "List recommended treatments for a disease",
		Long: `Show the treatment catalogue the API recommends for a disease ID, as
returned by a detection (e.g., leaf_blight_001) or the common diseases list.

Examples:
  agridetect treatments mld_001
  agridetect treatments rlt_002 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: runTreatments,
	}
}

func runTreatments(cmd *cobra.Command, args []string) error {
	s, err := loadSetup()
	if err != nil {
		return err
	}

	sp := newSpinner("Fetching treatments...")
	sp.Start()
	resp, err := s.client.Treatments(contextOrBackground(cmd.Context()), args[0])
	sp.Stop()
	if err != nil {
		return fmt.Errorf("failed to fetch treatments: %w", err)
	}

	return formatter.DisplayTreatments(cmd.OutOrStdout(), resp, s.catalog, outputFormat)
}

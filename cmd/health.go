package cmd

import (
	"fmt"

	"github.com/helmcode/agridetect/pkg/formatter"
	"github.com/spf13/cobra"
)

func NewHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the AgriDetect API is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSetup()
			if err != nil {
				return err
			}

			h, err := s.client.Health(contextOrBackground(cmd.Context()))
			if err != nil {
				return fmt.Errorf("API unreachable at %s: %w", s.client.BaseURL(), err)
			}
			return formatter.DisplayHealth(cmd.OutOrStdout(), h, s.client.BaseURL(), outputFormat)
		},
	}
}

package cmd

import (
	"fmt"

	"github.com/helmcode/agridetect/pkg/flow"
	"github.com/helmcode/agridetect/pkg/formatter"
	"github.com/spf13/cobra"
)

var dashboardCrop string

func NewDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show detection statistics and common diseases",
		Long: `Fetch the dashboard statistics and the list of common diseases.

The two requests are independent: if one fails its section shows a
"failed to load" message and the other is still displayed.

Examples:
  agridetect dashboard
  agridetect dashboard --locale fr
  agridetect dashboard --crop Maize
  agridetect dashboard -o yaml`,
		Args: cobra.NoArgs,
		RunE: runDashboard,
	}

	cmd.Flags().StringVar(&dashboardCrop, "crop", "", "Only list common diseases affecting this crop")

	return cmd
}

func runDashboard(cmd *cobra.Command, args []string) error {
	s, err := loadSetup()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printHeader(out, "📊 AgriDetect Dashboard", fmt.Sprintf("🌐 API: %s", s.client.BaseURL()))

	dashboard := flow.NewDashboardFlow(s.client, s.catalog)
	dashboard.CropType = dashboardCrop

	sp := newSpinner("Loading statistics...")
	sp.Start()
	dash := dashboard.Load(contextOrBackground(cmd.Context()))
	sp.Stop()

	return formatter.DisplayDashboard(out, &dash, s.catalog, outputFormat)
}

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cabmobile/monitor/internal/bootstrap"
	"github.com/cabmobile/monitor/internal/screen"
	"github.com/cabmobile/monitor/internal/service"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show detection statistics",
		Long:  "Load the summary, zone and hourly statistics and print them",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			api := bootstrap.NewStatisticsAPI(e.cfg, e.logger)
			loader := service.NewStatisticsLoader(api, e.sessions, e.logger)
			loader.Load(cmd.Context())

			view := screen.NewStatistics(loader, e.logger).View()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}

			screen.RenderStatistics(cmd.OutOrStdout(), view)
			if view.CanRetry {
				fmt.Fprintln(cmd.OutOrStdout(), "Run the command again to retry.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the view as JSON")
	return cmd
}

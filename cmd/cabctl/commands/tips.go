package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cabmobile/monitor/internal/screen"
)

// NewTipsCmd creates the tips command
func NewTipsCmd() *cobra.Command {
	var watch bool
	var interval time.Duration
	var pages int

	cmd := &cobra.Command{
		Use:   "tips",
		Short: "Show recycling tips",
		Long:  "Print the recycling tips, or cycle through them like the home carousel with --watch",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			tips := screen.DefaultTips()

			if !watch {
				for i, tip := range tips {
					fmt.Fprintf(out, "%d. %s\n   %s\n\n", i+1, tip.Title, tip.Description)
				}
				return nil
			}

			home := screen.NewHome(tips, interval, zap.NewNop())
			shown := make(chan screen.HomeView, 1)
			unsubscribe := home.Page().Subscribe(func(int) {
				select {
				case shown <- home.View():
				default:
				}
			})
			defer unsubscribe()

			home.Mount(cmd.Context())
			defer home.Dismiss()

			for n := 0; pages <= 0 || n < pages; n++ {
				select {
				case <-cmd.Context().Done():
					return nil
				case v := <-shown:
					screen.RenderHome(out, v)
					fmt.Fprintln(out)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Cycle through the tips")
	cmd.Flags().DurationVar(&interval, "interval", 4*time.Second, "Time per tip when watching")
	cmd.Flags().IntVar(&pages, "pages", 0, "Stop after this many tips when watching (0 runs until interrupted)")
	return cmd
}

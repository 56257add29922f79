package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/grindstone/internal/track"
	"github.com/spf13/cobra"
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Show or switch the selected career track",
}

var trackListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available career tracks",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		defer svc.Close()

		current, hasCurrent := svc.SelectedTrack()

		for _, t := range track.All() {
			marker := " "
			if hasCurrent && t.ID == current.ID {
				marker = "*"
			}
			fmt.Printf("%s %-4s %s %s\n", marker, t.ID, t.Icon, t.Name)
			fmt.Printf("       %s\n", t.Description)
			fmt.Printf("       %s\n", strings.Join(t.Skills, ", "))
		}
		return nil
	},
}

var trackSetCmd = &cobra.Command{
	Use:   "set <id>",
	Short: "Switch to a track by its identifier (e.g. swe, ds, mle)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		defer svc.Close()

		id := track.ID(args[0])
		if err := svc.SelectTrack(id); err != nil {
			return fmt.Errorf("%w: %q (run `grindstone track list`)", err, args[0])
		}
		trk, _ := track.ByID(id)
		fmt.Printf("Now grinding toward: %s %s\n", trk.Icon, trk.Name)
		return nil
	},
}

func init() {
	trackCmd.AddCommand(trackListCmd)
	trackCmd.AddCommand(trackSetCmd)
}

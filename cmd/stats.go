package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/grindstone/internal/ui/layout"
	"github.com/abhisek/grindstone/internal/wallet"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show coins, streaks, and today's progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		defer svc.Close()

		snap := svc.Engine.Snapshot()

		fmt.Printf("Coins:       %s\n", layout.FormatCoins(svc.Wallet.Balance()))
		if snap.HasTrack {
			fmt.Printf("Track:       %s %s\n", snap.Track.Icon, snap.Track.Name)
		} else {
			fmt.Println("Track:       (none — run `grindstone track set <id>`)")
		}
		fmt.Printf("DSA streak:  %d day(s), done today: %v\n", snap.DSAStreak, snap.DSADoneToday)
		fmt.Printf("Quiz streak: %d day(s), answered today: %d/15\n", snap.MCQStreak, len(snap.Answers))

		if active := svc.Sessions.Active(); active != nil {
			remaining := active.Remaining(svc.Clock.Now())
			fmt.Printf("Session:     %s %s, %d:%02d remaining\n",
				strings.ToUpper(string(active.Category)), active.AppName,
				int(remaining.Minutes()), int(remaining.Seconds())%60)
		}

		history := svc.Wallet.History()
		if n, _ := cmd.Flags().GetInt("history"); n > 0 && len(history) > 0 {
			if n > len(history) {
				n = len(history)
			}
			fmt.Println()
			fmt.Println("Recent activity")
			fmt.Println(strings.Repeat("─", 64))
			for _, e := range history[:n] {
				sign := " "
				switch e.Kind {
				case wallet.KindEarn:
					sign = "+"
				case wallet.KindSpend:
					sign = "−"
				}
				fmt.Printf("%s %s  %s\n", sign, e.At.Local().Format("Jan 02 15:04"), e.Reason)
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("history", 10, "Number of recent ledger entries to show")
}

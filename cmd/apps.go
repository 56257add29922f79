package cmd

import (
	"fmt"

	"github.com/abhisek/grindstone/internal/session"
	"github.com/spf13/cobra"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "Manage the apps coins can be spent on",
}

var appsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List managed apps by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		defer svc.Close()

		for _, c := range session.AllCategories() {
			fmt.Printf("%s %s (1 coin = %d min)\n", c.Icon(), c.DisplayName(), c.MinutesPerCoin())
			apps := svc.Library.Apps(c)
			if len(apps) == 0 {
				fmt.Println("   (none)")
			}
			for _, a := range apps {
				if a.Path != "" {
					fmt.Printf("   %-24s %s\n", a.Name, a.Path)
				} else {
					fmt.Printf("   %s\n", a.Name)
				}
			}
		}
		return nil
	},
}

var appsAddCmd = &cobra.Command{
	Use:   "add <category> <name> [path]",
	Short: "Add an app to a category (game, music, or social)",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		defer svc.Close()

		c := session.Category(args[0])
		path := ""
		if len(args) == 3 {
			path = args[2]
		}
		app, err := svc.Library.Add(c, args[1], path)
		if err != nil {
			return err
		}
		fmt.Printf("Added %s to %s (id %s)\n", app.Name, c.DisplayName(), app.ID)
		return nil
	},
}

var appsRemoveCmd = &cobra.Command{
	Use:   "remove <category> <id>",
	Short: "Remove an app by its identifier",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, st, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		defer svc.Close()

		c := session.Category(args[0])
		if !c.Valid() {
			return fmt.Errorf("unknown category %q", args[0])
		}
		svc.Library.Remove(c, args[1])
		fmt.Println("Removed.")
		return nil
	},
}

func init() {
	appsCmd.AddCommand(appsListCmd)
	appsCmd.AddCommand(appsAddCmd)
	appsCmd.AddCommand(appsRemoveCmd)
}

package commands

import (
	"fmt"

	"github.com/schooltrack/go-console-auth/console"
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "List the console sections visible to the signed-in user",
	RunE: func(_ *cobra.Command, _ []string) error {
		manager, err := buildManager(cfg)
		if err != nil {
			return err
		}
		if !manager.IsAuthenticated() {
			fmt.Println("Not signed in.")
			return nil
		}
		user, _ := manager.CurrentUser()
		visible := console.VisibleMenu(user, console.DefaultMenu())
		if len(visible) == 0 {
			fmt.Println("No accessible sections.")
			return nil
		}
		for _, entry := range visible {
			fmt.Printf("%-14s %s\n", entry.Label, entry.Path)
		}
		return nil
	},
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(_ *cobra.Command, _ []string) error {
		manager, err := buildManager(cfg)
		if err != nil {
			return err
		}
		// Idempotent: fine to run with no active session.
		manager.Logout()
		fmt.Println("Signed out.")
		return nil
	},
}

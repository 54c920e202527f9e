package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
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
		fmt.Printf("User:        %s (%s)\n", user.FullName, user.Username)
		fmt.Printf("Email:       %s\n", user.Email)
		fmt.Printf("Role:        %s\n", user.Role)
		if user.SchoolName != "" {
			fmt.Printf("School:      %s\n", user.SchoolName)
		}
		if len(user.Permissions) > 0 {
			fmt.Printf("Permissions: %s\n", strings.Join(user.Permissions, ", "))
		}
		return nil
	},
}

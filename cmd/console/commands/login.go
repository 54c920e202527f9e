package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/schooltrack/go-console-auth/auth"
	"github.com/spf13/cobra"
)

var loginUsername string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the attendance platform",
	RunE: func(cmd *cobra.Command, _ []string) error {
		manager, err := buildManager(cfg)
		if err != nil {
			return err
		}

		reader := bufio.NewReader(os.Stdin)
		username := loginUsername
		if username == "" {
			fmt.Print("Username: ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			username = strings.TrimSpace(line)
		}

		fmt.Print("Password: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		password := strings.TrimRight(line, "\r\n")

		user, err := manager.Login(cmd.Context(), username, password)
		if err != nil {
			if auth.IsInvalidCredentials(err) {
				// The server's own message, shown verbatim.
				fmt.Fprintf(os.Stderr, "Login failed: %s\n", err.Error())
				os.Exit(1)
			}
			return err
		}

		fmt.Printf("Signed in as %s (%s)", user.FullName, user.Role)
		if user.SchoolName != "" {
			fmt.Printf(", %s", user.SchoolName)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "username (prompted when omitted)")
}

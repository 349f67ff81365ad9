package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"deloconnect/internal/config"

	"github.com/spf13/cobra"
)

var loginToken string

// loginCmd stores the access token in the config file. Long-running views
// pick a refreshed token up through the config watcher without a restart.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store the backend access token",
	Long: `Stores the bearer token used for every backend call.

The token is written to ~/.deloconnect/config.json. Pass it with --token
or paste it at the prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		token := strings.TrimSpace(loginToken)
		if token == "" {
			fmt.Print("Access token: ")
			reader := bufio.NewReader(os.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}
			token = strings.TrimSpace(line)
		}
		if token == "" {
			return fmt.Errorf("no token provided")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfg.AccessToken = token
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println("Token saved.")
		return nil
	},
}

// logoutCmd clears the stored token.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfg.AccessToken = ""
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println("Token cleared.")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginToken, "token", "", "access token (prompted when omitted)")
}

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// connectGitHubToken is a flag for the github subcommand.
var connectGitHubToken string

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Link external accounts for material sources",
	Long: `Links the accounts the import sources need.

Google Drive uses a browser OAuth flow; GitHub uses a personal access
token (create one at https://github.com/settings/tokens with 'repo'
scope for private repositories).`,
}

var connectGoogleCmd = &cobra.Command{
	Use:   "google",
	Short: "Link a Google account for Drive imports",
	RunE:  runConnectGoogle,
}

var connectGitHubCmd = &cobra.Command{
	Use:   "github",
	Short: "Store a GitHub personal access token",
	RunE:  runConnectGitHub,
}

var connectStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which accounts are linked",
	RunE:  runConnectStatus,
}

func init() {
	connectGitHubCmd.Flags().StringVarP(&connectGitHubToken, "token", "t", "", "personal access token (prompted if omitted)")

	connectCmd.AddCommand(connectGoogleCmd)
	connectCmd.AddCommand(connectGitHubCmd)
	connectCmd.AddCommand(connectStatusCmd)
	rootCmd.AddCommand(connectCmd)
}

func runConnectGoogle(cmd *cobra.Command, _ []string) error {
	if connectService == nil {
		return errors.New("connect service not configured")
	}

	ctx := context.Background()

	cmd.Println("Opening your browser to authorize Google Drive access...")

	if err := connectService.ConnectGoogle(ctx); err != nil {
		return fmt.Errorf("failed to connect Google account: %w", err)
	}

	cmd.Println("Google account connected.")
	return nil
}

func runConnectGitHub(cmd *cobra.Command, _ []string) error {
	if connectService == nil {
		return errors.New("connect service not configured")
	}

	ctx := context.Background()

	token := connectGitHubToken
	if token == "" {
		cmd.Print("Enter personal access token: ")
		token = readPassword()
		cmd.Println()
	}
	if token == "" {
		return errors.New("a personal access token is required")
	}

	if err := connectService.ConnectGitHub(ctx, token); err != nil {
		return fmt.Errorf("failed to connect GitHub account: %w", err)
	}

	cmd.Println("GitHub token stored.")
	return nil
}

func runConnectStatus(cmd *cobra.Command, _ []string) error {
	if connectService == nil {
		return errors.New("connect service not configured")
	}

	cmd.Printf("Google Drive: %s\n", connectedLabel(connectService.GoogleConnected()))
	cmd.Printf("GitHub:       %s\n", connectedLabel(connectService.GitHubConnected()))
	return nil
}

func connectedLabel(connected bool) string {
	if connected {
		return "connected"
	}
	return "not connected"
}

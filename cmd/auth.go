package cmd

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/jfmyers9/lfm/internal/config"
	"github.com/jfmyers9/lfm/pkg/lastfm"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate with Last.fm",
	Long: `Authenticate with Last.fm to enable commands that write.

This command will guide you through the Last.fm authentication process:
1. You'll be prompted to enter your Last.fm API key and secret
2. A browser URL will be provided for you to authorize the application
3. After authorization, a session key will be saved to your config file

You can get API credentials from: https://www.last.fm/api/account/create`,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.Flags().Int("attempts", 3, "How many times to ask for the session before giving up")
}

func prompt(reader *bufio.Reader, cmd *cobra.Command, label string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), label)
	s, err := reader.ReadString('\n')
	return strings.TrimSpace(s), err
}

func runAuth(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	reader := bufio.NewReader(cmd.InOrStdin())

	fmt.Fprintln(out, "Last.fm Authentication")
	fmt.Fprintln(out, "======================")
	fmt.Fprintln(out)

	if cfg.LastFM.APIKey != "" && cfg.LastFM.APISecret != "" {
		fmt.Fprintf(out, "Found existing API credentials.\nAPI Key: %s\n", cfg.LastFM.APIKey)
		response, err := prompt(reader, cmd, "\nUse existing credentials? [Y/n]: ")
		if err != nil {
			response = "y"
		}
		response = strings.ToLower(response)
		if response != "" && response != "y" && response != "yes" {
			cfg.LastFM.APIKey = ""
			cfg.LastFM.APISecret = ""
		}
	}

	if cfg.LastFM.APIKey == "" {
		key, err := prompt(reader, cmd, "Enter your Last.fm API Key: ")
		if err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
		cfg.LastFM.APIKey = key
	}
	if cfg.LastFM.APISecret == "" {
		secret, err := prompt(reader, cmd, "Enter your Last.fm API Secret: ")
		if err != nil {
			return fmt.Errorf("failed to read API secret: %w", err)
		}
		cfg.LastFM.APISecret = secret
	}
	if cfg.LastFM.APIKey == "" || cfg.LastFM.APISecret == "" {
		return fmt.Errorf("API key and secret are required")
	}

	// The old session belongs to whichever key issued it.
	cfg.LastFM.SessionKey = ""
	client, err := newClient()
	if err != nil {
		return err
	}
	auth := client.Auth()

	fmt.Fprintln(out, "\nGenerating authentication token...")
	token, err := auth.GetToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate auth token: %w", err)
	}

	fmt.Fprintln(out, "\nPlease visit this URL to authorize lfm:")
	fmt.Fprintf(out, "\n  %s\n\n", auth.GetAuthURL(token.Token))
	fmt.Fprintln(out, "After authorizing, press Enter to continue...")
	_, _ = reader.ReadString('\n')

	fmt.Fprintln(out, "Retrieving session key...")
	attempts, _ := cmd.Flags().GetInt("attempts")
	attempts = max(attempts, 1)
	retryDelay := 2 * time.Second

	var session *lastfm.SessionInfo
	for i := 0; i < attempts; i++ {
		session, err = auth.GetSession(ctx, token.Token)
		if err == nil {
			break
		}
		logger.Debug().Err(err).Int("attempt", i+1).Msg("Session not ready")
		if i < attempts-1 {
			fmt.Fprintf(out, "Failed to retrieve session (attempt %d/%d). Retrying in %v...\n",
				i+1, attempts, retryDelay)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryDelay):
			}
		}
	}
	if err != nil {
		return fmt.Errorf("failed to get session key after %d attempts: %w", attempts, err)
	}

	cfg.LastFM.SessionKey = session.Key
	cfg.LastFM.Username = session.Username
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(out, "\n✓ Authenticated as %s\n", session.Username)
	fmt.Fprintf(out, "✓ Session key saved to %s/config.yaml\n", config.GetConfigDir())
	return nil
}

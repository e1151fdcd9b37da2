package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// loginCommand creates the login command.
func (c *CLI) loginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the geometry service",
		Long: `Exchange the configured credentials for a session token.

The token endpoint, client, and username come from the config file or the
URBANAI_TOKEN_URL, URBANAI_CLIENT_ID, and URBANAI_USERNAME environment
variables; the password is read from URBANAI_PASSWORD. The session is saved
in ~/.config/urbanai/sessions/ and reused by later commands.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.Auth.TokenURL == "" {
				return fmt.Errorf("no token endpoint configured, set auth.token_url or URBANAI_TOKEN_URL")
			}

			provider, err := c.newAuthProvider(cmd.Context())
			if err != nil {
				return err
			}
			if provider.IsAuthenticated() {
				printInfo("Already logged in")
				printDetail("Run '%s logout' first to re-authenticate", appName)
				return nil
			}

			if err := provider.Login(cmd.Context()); err != nil {
				printError("Login failed")
				return err
			}
			printSuccess("Logged in as %s", c.cfg.Auth.Username)
			return nil
		},
	}
}

// logoutCommand creates the logout command.
func (c *CLI) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := c.sessionStore()
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), cliSessionID); err != nil {
				return err
			}
			printSuccess("Logged out")
			return nil
		},
	}
}

// whoamiCommand creates the whoami command.
func (c *CLI) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.Auth.Token != "" {
				printInfo("Using a static token")
				return nil
			}
			store, err := c.sessionStore()
			if err != nil {
				return err
			}
			sess, err := store.Get(cmd.Context(), cliSessionID)
			if err != nil {
				return err
			}
			if sess == nil || sess.IsExpired() {
				printInfo("Not logged in")
				printDetail("Run '%s login' to authenticate", appName)
				return nil
			}
			printInfo("Logged in as %s", sess.Subject)
			printDetail("Session expires %s", sess.ExpiresAt.Format("2006-01-02 15:04"))
			return nil
		},
	}
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/asteroid-belt/trickplanner/internal/cli/prompts"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the sync server",
	Long: `Sign in to the sync server and pull your saved data.

The server copy replaces what is on this machine. Missing email or
password values are asked for interactively.

Examples:
  trickplanner login
  trickplanner login --email sk8@example.com`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account on the sync server",
	Long: `Create an account, sign in, and upload the data on this machine
as the starting point for the new account.`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out",
	Long:  `Forget the saved token. Local data stays on this machine.`,
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var (
	authEmail    string
	authPassword string
)

func init() {
	for _, cmd := range []*cobra.Command{loginCmd, registerCmd} {
		cmd.Flags().StringVar(&authEmail, "email", "", "Account email")
		cmd.Flags().StringVar(&authPassword, "password", "", "Account password (prompted when omitted)")
	}
}

func runLogin(cmd *cobra.Command, args []string) error {
	email, password, err := prompts.RunCredentials("Sign in", authEmail, authPassword)
	if err != nil {
		return trackCLIError("login", err)
	}
	return withApp(cmd, "login", func(a *app) error {
		return a.login(email, password)
	})
}

func runRegister(cmd *cobra.Command, args []string) error {
	email, password, err := prompts.RunCredentials("Create account", authEmail, authPassword)
	if err != nil {
		return trackCLIError("register", err)
	}
	return withApp(cmd, "register", func(a *app) error {
		return a.register(email, password)
	})
}

func runLogout(cmd *cobra.Command, args []string) error {
	return withApp(cmd, "logout", func(a *app) error {
		return a.logout()
	})
}

func (a *app) login(email, password string) error {
	if err := a.session.Login(a.ctx, email, password); err != nil {
		return err
	}
	a.println(successStyle.Render("✓ Signed in as " + a.session.Email()))

	if err := a.agent.Pull(a.ctx); err != nil {
		a.println(warnStyle.Render("⚠️  Signed in, but the first pull failed: " + err.Error()))
		return nil
	}
	a.printf("   Pulled %d tricks from %s\n", len(a.store.Tricks()), a.cfg.Server.URL)
	return nil
}

func (a *app) register(email, password string) error {
	if err := a.session.Register(a.ctx, email, password); err != nil {
		return err
	}
	a.println(successStyle.Render("✓ Account created for " + a.session.Email()))

	if err := a.agent.Push(a.ctx); err != nil {
		a.println(warnStyle.Render("⚠️  Account created, but the first push failed: " + err.Error()))
		return nil
	}
	a.println("   Uploaded local data")
	return nil
}

func (a *app) logout() error {
	email := a.session.Email()
	if err := a.session.Logout(); err != nil {
		return err
	}
	a.println("Signed out of " + email)
	return nil
}

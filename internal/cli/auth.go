package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/taskflow/internal/config"
	"github.com/idilsaglam/taskflow/internal/ui"
)

func newAuthCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the saved endpoint and access key",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "login",
		Short: "Save endpoint and key to ~/.taskflow/credentials.json",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return authLogin(cmd, app)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "logout",
		Short: "Delete the saved credentials",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return authLogout(cmd, app)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show where the connection values come from",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return authStatus(cmd, app)
		},
	})
	return cmd
}

func authLogin(cmd *cobra.Command, app *App) error {
	endpoint, key := app.URL, app.Key
	in := bufio.NewScanner(cmd.InOrStdin())
	var err error
	if endpoint == "" {
		if endpoint, err = prompt(cmd.OutOrStdout(), in, "Project URL: "); err != nil {
			return err
		}
	}
	if key == "" {
		if key, err = prompt(cmd.OutOrStdout(), in, "Anon key: "); err != nil {
			return err
		}
	}
	if strings.TrimSpace(endpoint) == "" || strings.TrimSpace(key) == "" {
		return usagef("auth login: both url and key are required")
	}
	if err := config.SaveCredentials(endpoint, key); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	ui.OK(cmd.OutOrStdout(), "logged in")
	return nil
}

func prompt(w io.Writer, in *bufio.Scanner, label string) (string, error) {
	fmt.Fprint(w, label)
	if !in.Scan() {
		if err := in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", nil
	}
	return strings.TrimSpace(in.Text()), nil
}

func authLogout(cmd *cobra.Command, app *App) error {
	if app.cfg.Source == config.SourceEnv {
		ui.OK(cmd.OutOrStdout(), "values are provided by "+config.EnvURL+"/"+config.EnvKey+" (nothing to delete)")
		return nil
	}
	if err := config.DeleteCredentials(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	ui.OK(cmd.OutOrStdout(), "logged out")
	return nil
}

func authStatus(cmd *cobra.Command, app *App) error {
	out := cmd.OutOrStdout()
	cfg := app.cfg
	if !cfg.Data.Configured() {
		fmt.Fprintln(out, ui.C(ui.Current().Muted, "not configured"))
		if cfg.CredentialsErr != nil {
			fmt.Fprintf(out, "credentials file ignored: %v\n", cfg.CredentialsErr)
		}
		fmt.Fprintln(out, "Run: taskflow auth login")
		return nil
	}
	fmt.Fprintf(out, "source: %s\n", cfg.Source)
	fmt.Fprintf(out, "url: %s\n", cfg.Data.URL)
	fmt.Fprintf(out, "key: %s\n", maskKey(cfg.Data.Key))

	// Supabase keys are JWTs; the signature is the server's business.
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(cfg.Data.Key, claims); err != nil {
		fmt.Fprintln(out, "key type: opaque")
		return nil
	}
	if role, ok := claims["role"].(string); ok {
		fmt.Fprintf(out, "role: %s\n", role)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		fmt.Fprintf(out, "expires: %s\n", exp.UTC().Format(time.RFC3339))
	} else {
		fmt.Fprintln(out, "expires: (unknown)")
	}
	return nil
}

// maskKey keeps the first and last four characters.
func maskKey(k string) string {
	if len(k) <= 8 {
		return strings.Repeat("*", len(k))
	}
	return k[:4] + strings.Repeat("*", 8) + k[len(k)-4:]
}

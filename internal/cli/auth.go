package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pratik-mahalle/numera/pkg/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// noAuth marks commands that run without a stored token
var noAuth = map[string]string{"auth": "none"}

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthSignupCmd())
	cmd.AddCommand(newAuthForgotPasswordCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthWhoamiCmd())

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:         "login",
		Short:       "Login with email and password",
		Annotations: noAuth,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = promptInput(cmd, "Email: ")
			}
			if password == "" {
				password = promptPassword("Password: ")
			}

			resp, err := apiClient.Login(context.Background(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			if err := storeCredentials(resp); err != nil {
				return err
			}

			name := email
			if resp.User != nil && resp.User.Name != "" {
				name = resp.User.Name
			}
			fmt.Fprintf(out, "Logged in as %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")

	return cmd
}

func newAuthSignupCmd() *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:         "signup",
		Aliases:     []string{"register"},
		Short:       "Create a free account",
		Annotations: noAuth,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = promptInput(cmd, "Email: ")
			}
			if name == "" {
				name = promptInput(cmd, "Name (optional): ")
			}
			if password == "" {
				password = promptPassword("Password: ")
				confirm := promptPassword("Confirm password: ")
				if password != confirm {
					return fmt.Errorf("passwords do not match")
				}
			}

			resp, err := apiClient.Signup(context.Background(), client.SignupRequest{
				Email:    email,
				Password: password,
				Name:     name,
			})
			if err != nil {
				return fmt.Errorf("signup failed: %w", err)
			}

			if err := storeCredentials(resp); err != nil {
				return err
			}

			fmt.Fprintf(out, "Account created. Logged in as %s\n", resp.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&name, "name", "", "display name")

	return cmd
}

func newAuthForgotPasswordCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:         "forgot-password",
		Short:       "Request a password reset link",
		Annotations: noAuth,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = promptInput(cmd, "Email: ")
			}

			msg, err := apiClient.ForgotPassword(context.Background(), email)
			if err != nil {
				return fmt.Errorf("request failed: %w", err)
			}
			fmt.Fprintln(out, msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")

	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "logout",
		Short:       "Clear stored credentials",
		Annotations: noAuth,
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set("auth.token", "")
			viper.Set("auth.email", "")

			if err := writeConfig(); err != nil {
				return fmt.Errorf("failed to clear credentials: %w", err)
			}

			fmt.Fprintln(out, "Logged out successfully")
			return nil
		},
	}
}

func newAuthWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show current user info",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := apiClient.Dashboard().Profile(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get user info: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(profile)
			}

			fmt.Fprintf(out, "Email:    %s\n", profile.Email)
			if profile.Name != "" {
				fmt.Fprintf(out, "Name:     %s\n", profile.Name)
			}
			fmt.Fprintf(out, "Plan:     %s\n", profile.Plan)
			fmt.Fprintf(out, "ID:       %s\n", profile.ID)
			return nil
		},
	}
}

func storeCredentials(resp *client.AuthResponse) error {
	viper.Set("auth.token", resp.Token)
	if resp.User != nil {
		viper.Set("auth.email", resp.User.Email)
	}
	if err := writeConfig(); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

func promptInput(cmd *cobra.Command, prompt string) string {
	fmt.Fprint(out, prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func promptPassword(prompt string) string {
	fmt.Fprint(out, prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return ""
	}
	return string(password)
}

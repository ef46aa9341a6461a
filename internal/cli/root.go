package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pratik-mahalle/numera/pkg/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultServerURL = "http://localhost:3001"

var (
	cfgFile      string
	outputFormat string
	serverURL    string
	apiClient    *client.Client

	// out receives command output
	out io.Writer = os.Stdout
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "numera",
		Short: "Numera CLI - numerology reports from the command line",
		Long: `Numera CLI provides command-line access to the Numera API:
create an account, generate numerology reports within your plan's quota,
and browse or prune your report history.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Config commands work offline
			if cmd.Parent() != nil && cmd.Parent().Name() == "config" {
				return nil
			}
			if cmd.Annotations["auth"] == "none" {
				return initClient()
			}
			return initAuthenticatedClient()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.numera/config.yaml)")
	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table, json, yaml")
	cmd.PersistentFlags().StringVar(&serverURL, "server", "", "server URL (overrides config)")

	// Register all subcommands
	cmd.AddCommand(newAuthCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newReportCmd())
	cmd.AddCommand(newProfileCmd())

	return cmd
}

func Execute() error {
	return newRootCmd().Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
}

func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".numera", "config.yaml"), nil
}

func initConfig() {
	path, err := configPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return
	}
	_ = os.MkdirAll(filepath.Dir(path), 0700)
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("NUMERA")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("server_url", defaultServerURL)
	viper.SetDefault("output", "table")

	_ = viper.ReadInConfig()
}

func initClient() error {
	url := viper.GetString("server_url")
	if serverURL != "" {
		url = serverURL
	}

	apiClient = client.NewClient(client.Config{
		BaseURL: url,
	})
	return nil
}

func initAuthenticatedClient() error {
	if err := initClient(); err != nil {
		return err
	}

	token := viper.GetString("auth.token")
	if token == "" {
		return fmt.Errorf("not authenticated. Run 'numera auth login' first")
	}

	apiClient.SetToken(token)
	return nil
}

func getOutputFormat() string {
	if outputFormat != "" {
		return outputFormat
	}
	if f := viper.GetString("output"); f != "" {
		return f
	}
	return "table"
}

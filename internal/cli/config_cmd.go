package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"vcsim.dev/vcsim/internal/config"
	"vcsim.dev/vcsim/internal/output"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Get and set configuration",
		Long: `Get and set configuration values.

Examples:
  vcsim config get log-style
  vcsim config set log-style full
  vcsim config set color never
  vcsim config set reverse true
  vcsim config set auto-checkout true
  vcsim config set state-path /tmp/vcsim-demo`,
	}

	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())

	return cmd
}

// newConfigGetCmd creates the config get command
func newConfigGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			switch key {
			case "state-path":
				path, err := config.GetStatePath()
				if err != nil {
					return fmt.Errorf("failed to get state-path: %w", err)
				}
				fmt.Println(path)
			case "log-style":
				style, err := config.GetLogStyle()
				if err != nil {
					return fmt.Errorf("failed to get log-style: %w", err)
				}
				fmt.Println(style)
			case "color":
				mode, err := config.GetColorMode()
				if err != nil {
					return fmt.Errorf("failed to get color: %w", err)
				}
				fmt.Println(mode)
			case "reverse":
				reverse, err := config.GetReverse()
				if err != nil {
					return fmt.Errorf("failed to get reverse: %w", err)
				}
				fmt.Println(reverse)
			case "auto-checkout":
				autoCheckout, err := config.GetAutoCheckout()
				if err != nil {
					return fmt.Errorf("failed to get auto-checkout: %w", err)
				}
				fmt.Println(autoCheckout)
			default:
				return fmt.Errorf("unknown configuration key: %s", key)
			}

			return nil
		},
	}

	return cmd
}

// newConfigSetCmd creates the config set command
func newConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			splog := output.NewSplog()
			defer splog.Close()

			switch key {
			case "state-path":
				if err := config.SetStatePath(value); err != nil {
					return fmt.Errorf("failed to set state-path: %w", err)
				}
				splog.Info("Set state-path to %s", value)
			case "log-style":
				if err := config.SetLogStyle(value); err != nil {
					return fmt.Errorf("failed to set log-style: %w", err)
				}
				splog.Info("Set log-style to %s", value)
			case "color":
				if err := config.SetColorMode(value); err != nil {
					return fmt.Errorf("failed to set color: %w", err)
				}
				splog.Info("Set color to %s", value)
			case "reverse":
				reverse, err := strconv.ParseBool(value)
				if err != nil {
					return fmt.Errorf("invalid value for reverse: %s (must be true or false)", value)
				}
				if err := config.SetReverse(reverse); err != nil {
					return fmt.Errorf("failed to set reverse: %w", err)
				}
				splog.Info("Set reverse to %t", reverse)
			case "auto-checkout":
				autoCheckout, err := strconv.ParseBool(value)
				if err != nil {
					return fmt.Errorf("invalid value for auto-checkout: %s (must be true or false)", value)
				}
				if err := config.SetAutoCheckout(autoCheckout); err != nil {
					return fmt.Errorf("failed to set auto-checkout: %w", err)
				}
				splog.Info("Set auto-checkout to %t", autoCheckout)
			default:
				return fmt.Errorf("unknown configuration key: %s", key)
			}

			return nil
		},
	}

	return cmd
}

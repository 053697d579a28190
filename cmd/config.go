package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samzong/hookmsg/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage hookmsg configuration",
		Long:  `Manage hookmsg configuration, stored in $HOME/.hookmsg.yaml by default.`,
	}

	configSetCmd = &cobra.Command{
		Use:   "set <key> [value]",
		Short: "Set a configuration value",
		Long: `Set a configuration value. Supported keys: ` + strings.Join(config.Keys(), ", ") + `.

When the value of api_key is omitted it is read from the terminal without echo.`,
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: config.Keys(),
		RunE: func(_ *cobra.Command, args []string) error {
			provider, err := newConfigProvider()
			if err != nil {
				return err
			}

			key := args[0]
			var value string
			switch {
			case len(args) == 2:
				value = args[1]
			case key == config.KeyAPIKey:
				value, err = readSecret("API key: ")
				if err != nil {
					return err
				}
			default:
				return errors.Newf("a value is required for %s", key)
			}

			if err := provider.Set(key, value); err != nil {
				return err
			}
			fmt.Fprintf(outWriter(), "Set %s in %s\n", key, provider.Path())
			return nil
		},
	}

	configGetCmd = &cobra.Command{
		Use:   "get [key...]",
		Short: "Show configuration values",
		RunE: func(_ *cobra.Command, args []string) error {
			provider, err := newConfigProvider()
			if err != nil {
				return err
			}

			keys := args
			if len(keys) == 0 {
				keys = config.Keys()
			}
			for _, key := range keys {
				value, err := provider.Get(key)
				if err != nil {
					return err
				}
				if key == config.KeyAPIKey {
					value = config.MaskSecret(value)
				}
				fmt.Fprintf(outWriter(), "%s=%s\n", key, value)
			}
			return nil
		},
	}

	configPathCmd = &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			provider, err := newConfigProvider()
			if err != nil {
				return err
			}
			fmt.Fprintln(outWriter(), provider.Path())
			return nil
		},
	}

	isStdinTerminal = func() bool {
		f, ok := inReader().(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// readSecret reads a value without echo on a terminal, or one line of stdin
// otherwise.
func readSecret(prompt string) (string, error) {
	if isStdinTerminal() {
		fmt.Fprint(errWriter(), prompt)
		f := inReader().(*os.File)
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(errWriter())
		if err != nil {
			return "", errors.Wrap(err, "failed to read secret")
		}
		return strings.TrimSpace(string(secret)), nil
	}

	line, err := bufio.NewReader(inReader()).ReadString('\n')
	if err != nil && strings.TrimSpace(line) == "" {
		return "", errors.New("no value provided on stdin")
	}
	return strings.TrimSpace(line), nil
}

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"syncacct/internal/bootstrap"
	accountdto "syncacct/internal/modules/account/dto"
	"syncacct/internal/platform/config"
	"syncacct/internal/platform/logging"
	"syncacct/internal/ui/progress"
	"syncacct/internal/ui/theme"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, theme.Critical("Error", err.Error()))
		os.Exit(1)
	}
}

type globalOptions struct {
	configPath string
	helperPath string
	timeout    time.Duration
	digest     string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "syncacct",
		Short:         "Account sign-in and plugin list through the syntool helper",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVar(&opts.helperPath, "helper", "", "path to the syntool helper")
	flags.DurationVar(&opts.timeout, "timeout", 0, "helper timeout, 0 waits indefinitely")
	flags.StringVar(&opts.digest, "digest", "", "secret digest algorithm (md5, sha256, sha3-256, blake3)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newAuthCmd(opts))
	root.AddCommand(newPluginsCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	return root
}

func loadConfig(cmd *cobra.Command, opts *globalOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if opts.helperPath != "" {
		cfg.Helper.Path = opts.helperPath
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Helper.Timeout = opts.timeout
	}
	if opts.digest != "" {
		cfg.Digest.Algorithm = opts.digest
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func loadApp(cmd *cobra.Command, opts *globalOptions) (*bootstrap.App, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, logger)
}

type credentialFlags struct {
	email        string
	passwordFile string
}

func (f *credentialFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.email, "email", "", "account email")
	fs.StringVar(&f.passwordFile, "password-file", "", `read the password from a file ("-" reads one line from stdin)`)
}

func (f *credentialFlags) input(cmd *cobra.Command) (accountdto.CredentialsInput, error) {
	if strings.TrimSpace(f.email) == "" {
		return accountdto.CredentialsInput{}, fmt.Errorf("--email is required")
	}
	password, err := readPassword(f.passwordFile, cmd.InOrStdin(), cmd.ErrOrStderr())
	if err != nil {
		return accountdto.CredentialsInput{}, err
	}
	return accountdto.CredentialsInput{Email: f.email, Password: password}, nil
}

func readPassword(path string, stdin io.Reader, prompt io.Writer) (string, error) {
	switch path {
	case "":
		fd, ok := terminalFd(stdin)
		if !ok {
			return "", fmt.Errorf("no terminal available for password prompt (use --password-file)")
		}
		_, _ = fmt.Fprint(prompt, "Password: ")
		password, err := term.ReadPassword(fd)
		_, _ = fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(password), nil
	case "-":
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	default:
		payload, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read password file: %w", err)
		}
		return strings.TrimRight(string(payload), "\r\n"), nil
	}
}

// terminalFd returns the descriptor behind r when r is a terminal.
func terminalFd(r io.Reader) (int, bool) {
	file, ok := r.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(file.Fd())
	return fd, term.IsTerminal(fd)
}

func newAuthCmd(opts *globalOptions) *cobra.Command {
	auth := &cobra.Command{Use: "auth", Short: "Account authentication"}

	var creds credentialFlags
	login := &cobra.Command{
		Use:   "login --email <email>",
		Short: "Sign in and print the account edition",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := creds.input(cmd)
			if err != nil {
				return err
			}
			app, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			out, err := app.AccountCLI.SignIn(cmd.Context(), accountdto.SignInInput{Email: input.Email, Password: input.Password})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "edition=%d\n", out.Edition)
			return nil
		},
	}
	creds.bind(login.Flags())
	auth.AddCommand(login)
	return auth
}

func newPluginsCmd(opts *globalOptions) *cobra.Command {
	plugins := &cobra.Command{Use: "plugins", Short: "Account plugin commands"}

	var creds credentialFlags
	list := &cobra.Command{
		Use:   "list --email <email>",
		Short: "List the plugins the account may install",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := creds.input(cmd)
			if err != nil {
				return err
			}
			app, err := loadApp(cmd, opts)
			if err != nil {
				return err
			}
			var names []string
			if stderr, ok := interactiveStderr(cmd); ok {
				session := app.AccountCLI.OpenSession(input)
				done := app.AccountCLI.QueryPlugins(cmd.Context(), session)
				if err := waitWithSpinner(cmd, stderr, done); err != nil {
					return err
				}
				if err := session.Err(); err != nil {
					return err
				}
				names = session.Plugins()
			} else {
				out, err := app.AccountCLI.ListPlugins(cmd.Context(), input)
				if err != nil {
					return err
				}
				names = out.Plugins
			}
			for _, name := range names {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	creds.bind(list.Flags())
	plugins.AddCommand(list)
	return plugins
}

func interactiveStderr(cmd *cobra.Command) (*os.File, bool) {
	stderr, ok := cmd.ErrOrStderr().(*os.File)
	return stderr, ok && term.IsTerminal(int(stderr.Fd()))
}

// waitWithSpinner blocks until done is closed while a spinner runs on stderr.
func waitWithSpinner(cmd *cobra.Command, stderr *os.File, done <-chan struct{}) error {
	var keyboard io.Reader
	if _, ok := terminalFd(cmd.InOrStdin()); ok {
		keyboard = cmd.InOrStdin()
	}
	return progress.Wait(cmd.Context(), "Querying plugin list", done, keyboard, stderr)
}

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration commands"}
	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			payload, err := cfg.Encode()
			if err != nil {
				return err
			}
			if cfg.Source != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), theme.Muted.Render("# "+cfg.Source))
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), string(payload))
			return nil
		},
	})
	return cfgCmd
}

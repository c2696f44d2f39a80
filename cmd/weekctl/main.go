// Command weekctl computes season week ranges and manages a backend session
// from the terminal.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/season-weeks-service/internal/apiclient"
	"github.com/preston-bernstein/season-weeks-service/internal/config"
	"github.com/preston-bernstein/season-weeks-service/internal/logging"
	"github.com/preston-bernstein/season-weeks-service/internal/session"
)

const envBackendURL = "BACKEND_BASE_URL"

// app carries global flags and lazily built dependencies for subcommands.
type app struct {
	apiURL      string
	sessionPath string
	leaguesFile string
	logLevel    string

	out    io.Writer
	logger *slog.Logger
	holder *session.Holder
}

func main() {
	_ = config.LoadDotEnv()
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:           "weekctl",
		Short:         "Season week ranges and backend session tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = logging.NewLogger(logging.Config{
				Level:  a.logLevel,
				Output: cmd.ErrOrStderr(),
			})
		},
	}
	root.SetOut(out)

	defaultAPI := os.Getenv(envBackendURL)
	if defaultAPI == "" {
		defaultAPI = apiclient.DefaultBaseURL
	}
	root.PersistentFlags().StringVar(&a.apiURL, "api", defaultAPI, "backend API base URL")
	root.PersistentFlags().StringVar(&a.sessionPath, "session", session.DefaultPath(), "session file path")
	root.PersistentFlags().StringVar(&a.leaguesFile, "leagues", os.Getenv("LEAGUES_FILE"), "YAML league overrides")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level (debug|info|warn|error)")

	root.AddCommand(
		newRangesCmd(a),
		newCurrentCmd(a),
		newICSCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newValidateCmd(),
	)
	return root
}

// session loads the persisted session once per invocation.
func (a *app) session() (*session.Holder, error) {
	if a.holder != nil {
		return a.holder, nil
	}
	h := session.NewHolder(session.NewFilePersister(a.sessionPath))
	if err := h.Load(); err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	a.holder = h
	return h, nil
}

// client builds an API client authenticated by the stored session. A 401
// clears the session.
func (a *app) client() (*apiclient.Client, error) {
	h, err := a.session()
	if err != nil {
		return nil, err
	}
	return apiclient.New(apiclient.Config{
		BaseURL:        a.apiURL,
		TokenSource:    h,
		OnUnauthorized: func() { _ = h.Logout() },
		Logger:         a.logger,
	}), nil
}

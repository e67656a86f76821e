package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/searchbar/internal/search"
	"github.com/oakwood-commons/searchbar/pkg/logger"
	"github.com/oakwood-commons/searchbar/pkg/settings"
	"github.com/oakwood-commons/searchbar/pkg/tui"
)

var (
	configFile      string
	endpoint        string
	debug           bool
	logFile         string
	noColor         bool
	themeName       string
	keyMode         string
	sequenceGuard   bool
	debounce        time.Duration
	suggestionsFile string
	printQuery      bool
	openResult      bool
	copyResult      bool
)

var (
	stdinIsPiped     = func() bool { stat, _ := os.Stdin.Stat(); return (stat.Mode() & os.ModeCharDevice) == 0 }
	openTerminalIOFn = openTerminalIO
	termGetSize      = term.GetSize
	newResizeTicker  = func(d time.Duration) resizeTicker { return realResizeTicker{Ticker: time.NewTicker(d)} }
	sendWindowSize   = func(p *tea.Program, msg tea.WindowSizeMsg) { p.Send(msg) }
	runSearchBar     = tui.Run
)

type resizeTicker interface {
	C() <-chan time.Time
	Stop()
}

type realResizeTicker struct {
	*time.Ticker
}

func (t realResizeTicker) C() <-chan time.Time { return t.Ticker.C }

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [query]",
	Short: "Search from the terminal with live suggestions",
	Long: `searchbar opens a search box that asks a search service for completions while
you type. Arrow keys walk the suggestions, Enter or a click searches, Esc closes
the list. The results URL is printed on submit.`,
	Example:       "\n  searchbar\n  searchbar golang --open\n  searchbar --endpoint https://search.example.com\n  echo 'weather' | searchbar --print-query\n",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		interactive := cmd == cmd.Root()
		run, err := resolveRunSettings(cmd, interactive)
		if err != nil {
			return err
		}

		closeLog, err := configureLogOutput(run)
		if err != nil {
			return err
		}
		cobra.OnFinalize(closeLog)

		lgr := logger.Get(run.MinLogLevel)
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx = logger.WithLogger(ctx, lgr)
		ctx = settings.IntoContext(ctx, run)
		cmd.SetContext(ctx)
		return nil
	},
	RunE: runInteractive,
}

func runInteractive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	run := settings.FromContextOrDefault(ctx)
	lgr := logger.FromContext(ctx)

	cfg, err := loadTUIConfig(cmd, run)
	if err != nil {
		return err
	}

	query := ""
	if len(args) == 1 {
		query = args[0]
	} else if stdinIsPiped() {
		query, err = readQuery(os.Stdin)
		if err != nil {
			return err
		}
	}
	cfg.Query = query

	progOpts, cleanup := getProgramOptions()
	defer cleanup()

	lgr.V(1).Info("starting search bar", logger.EndpointKey, cfg.Endpoint, logger.QueryKey, query)
	sub, err := runSearchBar(ctx, cfg, progOpts...)
	if err != nil {
		return err
	}
	if sub == nil {
		return nil
	}
	return reportSubmission(cmd.OutOrStdout(), *sub, run.PrintQuery)
}

// reportSubmission prints the result and runs the optional browser and clipboard actions.
func reportSubmission(w io.Writer, sub search.Submission, queryOnly bool) error {
	if queryOnly {
		fmt.Fprintln(w, sub.Query)
	} else {
		fmt.Fprintln(w, sub.URL)
	}
	if openResult {
		if err := search.Open(sub); err != nil {
			return fmt.Errorf("open results: %w", err)
		}
	}
	if copyResult {
		if err := search.CopyURL(sub); err != nil {
			return fmt.Errorf("copy results url: %w", err)
		}
	}
	return nil
}

// readQuery takes the first line of piped input as the initial query.
func readQuery(r io.Reader) (string, error) {
	sc := bufio.NewScanner(r)
	if sc.Scan() {
		return strings.TrimSpace(sc.Text()), nil
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("read query from stdin: %w", err)
	}
	return "", nil
}

// configureLogOutput keeps logs off the terminal the search bar draws on.
// The returned func closes any log file that was opened.
func configureLogOutput(run *settings.Run) (func(), error) {
	noop := func() {}
	if run.LogFile != "" {
		f, err := os.OpenFile(run.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return noop, fmt.Errorf("open log file: %w", err)
		}
		logger.SetOutput(f)
		return func() {
			logger.Sync()
			_ = f.Close()
		}, nil
	}
	if run.Interactive {
		logger.SetOutput(io.Discard)
	}
	return noop, nil
}

// getProgramOptions handles piped stdin by reopening the terminal for interactive input/output.
// Returns tea.ProgramOption values (plus a cleanup) that should be passed to tea.NewProgram.
func getProgramOptions() ([]tea.ProgramOption, func()) {
	cleanup := func() {}
	if !stdinIsPiped() {
		return nil, cleanup
	}

	ttyIn, ttyOut, err := openTerminalIOFn()
	if err != nil {
		// No controlling terminal (CI): fall back to stdin.
		return nil, cleanup
	}
	cleanup = func() {
		_ = ttyIn.Close()
		if ttyOut != nil && ttyOut != ttyIn {
			_ = ttyOut.Close()
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	opts := []tea.ProgramOption{tea.WithInput(ttyIn)}
	if ttyOut != nil {
		opts = append(opts, tea.WithOutput(ttyOut), withTTYResizeWatcher(ctx, ttyOut))
	}

	return opts, func() {
		cancel()
		cleanup()
	}
}

func openTerminalIO() (*os.File, *os.File, error) {
	in, out := terminalDeviceNames(runtime.GOOS)

	input, err := os.OpenFile(in, os.O_RDWR, 0)
	if err != nil {
		return nil, nil, err
	}
	if out == "" || out == in {
		return input, input, nil
	}

	output, err := os.OpenFile(out, os.O_RDWR, 0)
	if err != nil {
		return input, nil, err
	}
	return input, output, nil
}

func terminalDeviceNames(goos string) (input string, output string) {
	if goos == "windows" {
		return "CONIN$", "CONOUT$"
	}
	return "/dev/tty", "/dev/tty"
}

// withTTYResizeWatcher polls terminal size and sends resize messages when signals are unreliable
// (e.g., piped stdin on Windows). It stops when the context is canceled.
func withTTYResizeWatcher(ctx context.Context, out *os.File) tea.ProgramOption {
	return func(p *tea.Program) {
		if ctx == nil || out == nil {
			return
		}

		go func() {
			t := newResizeTicker(250 * time.Millisecond)
			defer t.Stop()

			lastW, lastH := 0, 0
			for {
				select {
				case <-ctx.Done():
					return
				case <-t.C():
					w, h, err := termGetSize(int(out.Fd()))
					if err != nil {
						continue
					}
					if w == lastW && h == lastH {
						continue
					}
					lastW, lastH = w, h
					sendWindowSize(p, tea.WindowSizeMsg{Width: w, Height: h})
				}
			}
		}()
	}
}

func init() { //nolint:gochecknoinits
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config-file", "", "path to a YAML config file (default: $SEARCHBAR_CONFIG or ~/.config/searchbar/config.yaml)")
	pf.StringVar(&endpoint, "endpoint", "", "base URL of the search service (overrides endpoint.base_url)")
	pf.BoolVar(&debug, "debug", false, "enable debug logging")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file (interactive runs log nowhere otherwise)")
	pf.BoolVar(&noColor, "no-color", false, "disable color output")
	pf.StringVar(&themeName, "theme", "", "theme name (default from config; see 'searchbar config themes')")
	pf.StringVar(&suggestionsFile, "suggestions-file", "", "serve suggestions from a YAML/JSON list instead of the endpoint")
	pf.BoolVar(&sequenceGuard, "sequence-guard", false, "ignore suggestion responses older than the latest request")
	pf.DurationVar(&debounce, "debounce", 0, "wait this long after typing stops before fetching (e.g. 150ms)")

	rootCmd.Flags().StringVar(&keyMode, "keymap", "", "keybinding mode: default or emacs")
	rootCmd.Flags().BoolVar(&printQuery, "print-query", false, "print the submitted query instead of the results URL")
	rootCmd.Flags().BoolVar(&openResult, "open", false, "open the results page in the default browser")
	rootCmd.Flags().BoolVar(&copyResult, "copy", false, "copy the results URL to the clipboard")

	rootCmd.Version = cliVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(versionCmd, suggestCmd, configCmd)
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/toto"
	"github.com/fwojciec/toto/goquery"
	totohttp "github.com/fwojciec/toto/http"
	"github.com/fwojciec/toto/rod"
	totoslog "github.com/fwojciec/toto/slog"
	"github.com/fwojciec/toto/sqlite"
	"github.com/fwojciec/toto/telegram"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()
	m.Stdin = os.Stdin

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", toto.ErrorMessage(err))
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database holding delivery history.
	DB *sqlite.DB

	// Stdin feeds "toto json -".
	Stdin io.Reader

	// Services for end-to-end testing. Nil fields are built from flags.
	Pages  toto.PageSource
	Sender toto.Sender
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if err := loadEnvFile(args); err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  m.Stdin,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("toto"),
		kong.Description("Send the latest TOTO draw summary to Telegram"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"default_url": toto.DefaultURL},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'toto --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("run", uuid.NewString())

	deps.Fetcher = totoslog.NewLoggingFetcher(totohttp.NewFetcher(), deps.Logger)
	defer deps.Fetcher.Close()

	var flags *DeliveryFlags
	switch cmd {
	case "page":
		flags = &cli.Page.DeliveryFlags
	case "json":
		flags = &cli.JSON.DeliveryFlags
	}

	// History is only kept for real deliveries.
	if cmd == "history" || (flags != nil && !flags.DryRun) {
		path := cli.DB
		if path == "" {
			path = defaultDBPath()
		}
		m.DB = sqlite.NewDB(path)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: Set TOTO_DB to use a different database path")
			return fmt.Errorf("failed to open database at %q: %w", path, err)
		}
		defer m.Close()
		deps.Deliveries = totoslog.NewLoggingDeliveryService(sqlite.NewDeliveryService(m.DB), deps.Logger)
	}

	if flags != nil && !flags.DryRun {
		if err := flags.validate(m.Sender != nil); err != nil {
			return err
		}
		sender := m.Sender
		if sender == nil {
			sender = telegram.NewSender(flags.Token, telegram.WithBaseURL(flags.APIURL))
		}
		deps.Sender = totoslog.NewLoggingSender(sender, deps.Logger)
	}

	if cmd == "page" {
		pages := m.Pages
		if pages == nil {
			if cli.Page.Static {
				pages = goquery.NewPageSource(deps.Fetcher)
			} else {
				src, err := rod.NewPageSource(
					rod.WithNavigationTimeout(cli.Page.Timeout),
					rod.WithMaxPages(cli.Page.MaxPages),
				)
				if err != nil {
					fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or use --static")
					return fmt.Errorf("failed to start browser: %w", err)
				}
				pages = src
			}
		}
		deps.Pages = totoslog.NewLoggingPageSource(pages, deps.Logger)
		defer deps.Pages.Close()
	}

	return kongCtx.Run(deps)
}

// validate checks that a real delivery has somewhere to go.
func (f *DeliveryFlags) validate(haveSender bool) error {
	if (!haveSender && f.Token == "") || len(f.ChatIDs) == 0 {
		return toto.Errorf(toto.EINVALID, "TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set (or use --dry-run)")
	}
	return nil
}

// loadEnvFile loads the --env-file (default .env) into the environment
// before flags are parsed, so that env-backed flags see its values.
// Variables already set are kept. A missing file is not an error.
func loadEnvFile(args []string) error {
	path := ".env"
	for i, arg := range args {
		if v, ok := strings.CutPrefix(arg, "--env-file="); ok {
			path = v
		} else if arg == "--env-file" && i+1 < len(args) {
			path = args[i+1]
		}
	}

	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "toto.db"
	}
	dir := filepath.Join(home, ".toto")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "toto.db")
}

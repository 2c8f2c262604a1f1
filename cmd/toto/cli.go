package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/toto"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Stdin      io.Reader
	Logger     *slog.Logger
	Fetcher    toto.Fetcher
	Pages      toto.PageSource
	Sender     toto.Sender
	Deliveries toto.DeliveryService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Enable debug logging"`
	EnvFile string `name:"env-file" default:".env" placeholder:"PATH" help:"Load environment variables from this file if it exists"`
	DB      string `name:"db" env:"TOTO_DB" placeholder:"PATH" help:"Delivery history database (default ~/.toto/toto.db)"`

	Page    PageCmd    `cmd:"" help:"Read the draw summary from the results page and deliver it"`
	JSON    JSONCmd    `cmd:"" name:"json" help:"Read the draw summary from a JSON document and deliver it"`
	History HistoryCmd `cmd:"" help:"List delivered messages"`
}

// DeliveryFlags configure how the summary is delivered.
type DeliveryFlags struct {
	Token          string        `name:"token" env:"TELEGRAM_BOT_TOKEN" help:"Telegram bot token"`
	ChatIDs        []string      `name:"chat" env:"TELEGRAM_CHAT_ID" sep:"," help:"Telegram chat ID (repeatable or comma-separated)"`
	ParseMode      string        `name:"parse-mode" env:"MESSAGE_PARSE_MODE" default:"HTML" help:"Telegram parse mode"`
	APIURL         string        `name:"api-url" default:"https://api.telegram.org" hidden:"" help:"Telegram Bot API base URL"`
	DryRun         bool          `short:"n" name:"dry-run" help:"Print the message instead of sending it"`
	SkipDuplicates bool          `name:"skip-duplicates" help:"Do not resend a message identical to the chat's last delivery"`
	Every          time.Duration `name:"every" help:"Repeat on this interval until interrupted (e.g. 6h)"`
	Concurrency    int           `short:"c" default:"4" help:"Concurrent chat deliveries"`
}

// PageCmd is the "page" subcommand.
type PageCmd struct {
	URL      string        `name:"url" env:"SP_URL" help:"Results page URL (default ${default_url})"`
	Static   bool          `help:"Fetch the page over HTTP without running JavaScript"`
	Timeout  time.Duration `default:"60s" help:"Page load timeout"`
	MaxPages int           `name:"max-pages" default:"50" help:"Pages opened before the browser is relaunched"`

	DeliveryFlags `embed:""`
}

// JSONCmd is the "json" subcommand.
type JSONCmd struct {
	Source string `arg:"" optional:"" default:"-" help:"JSON file, '-' for stdin, or http(s) URL"`

	DeliveryFlags `embed:""`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Chat  string `help:"Only show deliveries to this chat"`
	Limit int    `short:"l" default:"10" help:"Maximum number of deliveries to show"`
	Full  bool   `help:"Show full message text"`
}

package client

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/MKhiriev/vault-keeper/internal/adapter"
	"github.com/MKhiriev/vault-keeper/internal/logger"
	"github.com/MKhiriev/vault-keeper/internal/utils"
	"github.com/MKhiriev/vault-keeper/models"
)

const usage = `usage: vault-client <command> [flags]

commands:
  register -username U [-password P]
  login    -username U [-password P]
  list     [-password P]
  save     -site S -username U -entry-password E [-category C] [-password P]
  get      -site S [-category C] [-password P]
  health
`

// App is the command-line client. It is not safe for concurrent use.
type App struct {
	server    adapter.ServerAdapter
	clipboard Clipboard

	in     *bufio.Reader
	out    io.Writer
	logger *logger.Logger
}

// NewApp wires a client around server. token, when non-empty, is installed
// as the session token for authenticated commands. Prompts read from in and
// results go to out.
func NewApp(server adapter.ServerAdapter, clip Clipboard, token string, in io.Reader, out io.Writer, logger *logger.Logger) *App {
	if token != "" {
		server.SetToken(token)
	}
	return &App{
		server:    server,
		clipboard: clip,
		in:        bufio.NewReader(in),
		out:       out,
		logger:    logger,
	}
}

// Run implements [Client].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return ErrNoCommand
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "register":
		return a.authenticate(ctx, cmd, rest, a.server.Register)
	case "login":
		return a.authenticate(ctx, cmd, rest, a.server.Login)
	case "list":
		return a.list(ctx, rest)
	case "save":
		return a.save(ctx, rest)
	case "get":
		return a.get(ctx, rest)
	case "health":
		return a.health(ctx)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
}

type authFunc func(ctx context.Context, username, password string) (string, error)

func (a *App) authenticate(ctx context.Context, name string, args []string, call authFunc) error {
	fs := a.flagSet(name)
	username := fs.String("username", "", "account name")
	password := fs.String("password", "", "vault password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		return fmt.Errorf("%w: -username", ErrMissingArgument)
	}

	pass, err := a.passwordOrPrompt(*password)
	if err != nil {
		return err
	}

	token, err := call(ctx, *username, pass)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	a.logger.Info().Str("username", *username).Msg(name + " succeeded")
	fmt.Fprintf(a.out, "export VAULT_TOKEN=%s\n", token)
	return nil
}

func (a *App) list(ctx context.Context, args []string) error {
	fs := a.flagSet("list")
	password := fs.String("password", "", "vault password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	entries, err := a.fetch(ctx, *password)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tSITE\tUSERNAME")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Category, e.Site, e.Username)
	}
	return tw.Flush()
}

func (a *App) save(ctx context.Context, args []string) error {
	fs := a.flagSet("save")
	password := fs.String("password", "", "vault password (prompted when empty)")
	category := fs.String("category", "", "category (default category when empty)")
	site := fs.String("site", "", "site name")
	username := fs.String("username", "", "login stored for the site")
	entryPassword := fs.String("entry-password", "", "password stored for the site")
	if err := fs.Parse(args); err != nil {
		return err
	}
	for flagName, v := range map[string]string{"site": *site, "username": *username, "entry-password": *entryPassword} {
		if v == "" {
			return fmt.Errorf("%w: -%s", ErrMissingArgument, flagName)
		}
	}

	pass, err := a.passwordOrPrompt(*password)
	if err != nil {
		return err
	}

	entry := models.CredentialEntry{Category: *category, Site: *site, Username: *username, Password: *entryPassword}
	if err = a.server.SaveCredential(ctx, pass, entry); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	fmt.Fprintf(a.out, "saved %s\n", *site)
	return nil
}

// get copies the stored password of one site to the clipboard. The password
// itself is never printed.
func (a *App) get(ctx context.Context, args []string) error {
	fs := a.flagSet("get")
	password := fs.String("password", "", "vault password (prompted when empty)")
	category := fs.String("category", "", "category to look in (any when empty)")
	site := fs.String("site", "", "site name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *site == "" {
		return fmt.Errorf("%w: -site", ErrMissingArgument)
	}

	entries, err := a.fetch(ctx, *password)
	if err != nil {
		return err
	}

	entry, err := findEntry(entries, *category, *site)
	if err != nil {
		return err
	}
	if err = a.clipboard.WriteAll(entry.Password); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}

	fmt.Fprintf(a.out, "password for %s (%s) copied to clipboard\n", entry.Site, entry.Username)
	return nil
}

func (a *App) health(ctx context.Context) error {
	h, err := a.server.Health(ctx)
	if err != nil {
		return fmt.Errorf("health: %w", err)
	}
	fmt.Fprintf(a.out, "status: %s\n", h.Status)
	if h.Version != "" {
		fmt.Fprintf(a.out, "version: %s\n", h.Version)
	}
	return nil
}

func (a *App) fetch(ctx context.Context, password string) ([]models.CredentialEntry, error) {
	pass, err := a.passwordOrPrompt(password)
	if err != nil {
		return nil, err
	}
	if user, err := utils.ParseSubjectUnverified(a.server.Token()); err == nil {
		a.logger.Debug().Str("username", user).Msg("listing vault")
	}

	entries, err := a.server.ListCredentials(ctx, pass)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return entries, nil
}

func findEntry(entries []models.CredentialEntry, category, site string) (models.CredentialEntry, error) {
	var found []models.CredentialEntry
	for _, e := range entries {
		if e.Site == site && (category == "" || e.Category == category) {
			found = append(found, e)
		}
	}

	switch len(found) {
	case 0:
		return models.CredentialEntry{}, fmt.Errorf("%w: %s", ErrSiteNotFound, site)
	case 1:
		return found[0], nil
	default:
		return models.CredentialEntry{}, fmt.Errorf("%w: %s", ErrAmbiguousSite, site)
	}
}

func (a *App) passwordOrPrompt(password string) (string, error) {
	if password != "" {
		return password, nil
	}

	fmt.Fprint(a.out, "vault password: ")
	line, err := a.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("read password: %w", err)
	}

	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", fmt.Errorf("%w: password", ErrMissingArgument)
	}
	return line, nil
}

func (a *App) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

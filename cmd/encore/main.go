package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/minjipark/encore/internal/checkout"
	"github.com/minjipark/encore/internal/config"
	"github.com/minjipark/encore/internal/logging"
	"github.com/minjipark/encore/internal/media"
	"github.com/minjipark/encore/internal/session"
	"github.com/minjipark/encore/internal/tui"
	"github.com/minjipark/encore/pkg/api"
	"github.com/minjipark/encore/pkg/domain"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func statePaths() (cfgPath, sessionPath, logPath string, err error) {
	dir, err := config.Dir()
	if err != nil {
		return "", "", "", err
	}
	return filepath.Join(dir, "config.yaml"),
		filepath.Join(dir, "session.json"),
		filepath.Join(dir, "encore.log"),
		nil
}

func run() error {
	cfgPath, sessionPath, _, err := statePaths()
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("encore " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "login":
			return runLogin(cfg, sessionPath)
		case "logout":
			return runLogout(cfg, sessionPath)
		default:
			fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
			printHelp()
			os.Exit(1)
		}
	}

	store, err := session.Open(sessionPath, logging.Discard())
	if err != nil {
		return err
	}
	if !store.Has() {
		printGreeting()
		return nil
	}
	return runApp(cfg, store)
}

func runApp(cfg *config.Config, store *session.Store) error {
	_, _, logPath, err := statePaths()
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.New(logPath, cfg.Log.Level, cfg.Log.Pretty)
	if err != nil {
		return err
	}
	defer closeLog()

	client := api.New(cfg.API.BaseURL, cfg.API.Timeout, store.Token)
	flow := checkout.New(client, logger)
	detector := media.NewDetector(client, logger)

	app := tui.New(client, store, flow, detector, logger)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// runLogin prompts for credentials on the terminal and persists the
// resulting token pair. The same flow exists inside the TUI; this one is for
// scripted or first-run use.
func runLogin(cfg *config.Config, sessionPath string) error {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	email = strings.TrimSpace(email)

	fmt.Print("password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return err
	}

	store, err := session.Open(sessionPath, logging.Discard())
	if err != nil {
		return err
	}
	client := api.New(cfg.API.BaseURL, cfg.API.Timeout, store.Token)
	tokens, err := client.Login(context.Background(), api.LoginRequest{
		Email:    email,
		Password: string(password),
	})
	if err != nil {
		return fmt.Errorf("login failed: %s", api.Message(err, "could not reach the server"))
	}
	if err := store.Set(domain.Credentials{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}); err != nil {
		return err
	}
	fmt.Printf("signed in as %s\n", store.Current().MemberEmail)
	return nil
}

// runLogout revokes the server-side token best-effort, then always clears
// the local session.
func runLogout(cfg *config.Config, sessionPath string) error {
	store, err := session.Open(sessionPath, logging.Discard())
	if err != nil {
		return err
	}
	if !store.Has() {
		fmt.Println("not signed in")
		return nil
	}
	client := api.New(cfg.API.BaseURL, cfg.API.Timeout, store.Token)
	if err := client.Logout(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "warning: server logout failed, clearing local session anyway")
	}
	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Println("signed out")
	return nil
}

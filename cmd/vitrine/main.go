package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitrinedev/vitrine/internal/session"
	"github.com/vitrinedev/vitrine/internal/tui"
	"github.com/vitrinedev/vitrine/pkg/client"
	"github.com/vitrinedev/vitrine/pkg/domain"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// config is the environment-driven CLI configuration.
type config struct {
	apiURL      string
	webURL      string
	sessionFile string
}

// loadConfig resolves configuration from the environment with production
// defaults. An empty sessionFile means no home directory is available and
// the session stays memory-only.
func loadConfig() config {
	cfg := config{
		apiURL: os.Getenv("VITRINE_API_URL"),
		webURL: os.Getenv("VITRINE_WEB_URL"),
	}
	if cfg.apiURL == "" {
		cfg.apiURL = "https://api.vitrine.shop"
	}
	if cfg.webURL == "" {
		cfg.webURL = "https://vitrine.shop"
	}
	cfg.sessionFile = os.Getenv("VITRINE_SESSION_FILE")
	if cfg.sessionFile == "" {
		if path, err := session.DefaultPath(); err == nil {
			cfg.sessionFile = path
		}
	}
	return cfg
}

func openSession(cfg config) *session.Store {
	if cfg.sessionFile == "" {
		return session.NewMemory()
	}
	sess, err := session.Open(cfg.sessionFile)
	if err != nil {
		// An unreadable session file degrades to a guest session.
		return session.NewMemory()
	}
	return sess
}

func run() error {
	cfg := loadConfig()
	sess := openSession(cfg)

	// The retry callback is bound late so catalog retry progress reaches
	// the TUI once the program is running.
	var program *tea.Program
	c := client.New(cfg.apiURL, sess, client.WithRetryNotify(func(attempt, max int) {
		if program != nil {
			program.Send(tui.RetryProgressMsg{Attempt: attempt, Max: max})
		}
	}))

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("vitrine " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "login":
			if err := runLogin(c); err != nil {
				return err
			}
		case "register":
			if err := runRegister(c); err != nil {
				return err
			}
		case "logout":
			c.Logout(context.Background())
			fmt.Println("Signed out.")
			return nil
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
			printHelp()
			return nil
		}
	}

	app := tui.NewApp(c, cfg.webURL, version)
	program = tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// prompt reads one line of input after printing the label. Required fields
// are re-asked until non-empty.
func prompt(r *bufio.Reader, w io.Writer, label string, required bool) (string, error) {
	for {
		fmt.Fprintf(w, "%s: ", label)
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				return "", fmt.Errorf("input closed")
			}
			return "", err
		}
		line = strings.TrimSpace(line)
		if line != "" || !required {
			return line, nil
		}
		fmt.Fprintf(w, "%s is required.\n", label)
	}
}

func runLogin(c *client.Client) error {
	printGreeting()

	r := bufio.NewReader(os.Stdin)
	email, err := prompt(r, os.Stdout, "email", true)
	if err != nil {
		return err
	}
	password, err := prompt(r, os.Stdout, "password", true)
	if err != nil {
		return err
	}

	result, err := c.Login(context.Background(), domain.Credentials{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if !result.Authenticated {
		return fmt.Errorf("login failed: %s", result.Message)
	}
	name := email
	if result.User != nil {
		name = result.User.DisplayName()
	}
	fmt.Printf("Signed in as %s.\n\n", name)
	return nil
}

func runRegister(c *client.Client) error {
	printGreeting()
	fmt.Println("Create your account:")

	r := bufio.NewReader(os.Stdin)
	reg := domain.Registration{}
	var err error
	if reg.FirstName, err = prompt(r, os.Stdout, "first name", true); err != nil {
		return err
	}
	if reg.LastName, err = prompt(r, os.Stdout, "last name", true); err != nil {
		return err
	}
	if reg.Email, err = prompt(r, os.Stdout, "email", true); err != nil {
		return err
	}
	if reg.Password, err = prompt(r, os.Stdout, "password", true); err != nil {
		return err
	}
	if reg.Phone, err = prompt(r, os.Stdout, "phone (optional)", false); err != nil {
		return err
	}
	if reg.Address, err = prompt(r, os.Stdout, "address (optional)", false); err != nil {
		return err
	}

	result, err := c.Register(context.Background(), reg)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if !result.Authenticated {
		msg := result.Message
		if msg == "" {
			msg = "account created, sign in with: vitrine login"
		}
		fmt.Println(msg)
		return nil
	}
	fmt.Printf("Welcome, %s.\n\n", reg.FirstName)
	return nil
}

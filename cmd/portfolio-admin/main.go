// ABOUTME: Entry point for the portfolio-admin server
// ABOUTME: Serves the public portfolio site and the admin dashboard

package main

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/ayoubdev/portfolio-admin/internal/auth"
	"github.com/ayoubdev/portfolio-admin/internal/config"
	"github.com/ayoubdev/portfolio-admin/internal/content"
	"github.com/ayoubdev/portfolio-admin/internal/mailer"
	"github.com/ayoubdev/portfolio-admin/internal/store"
	"github.com/ayoubdev/portfolio-admin/internal/webadmin"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
                   _    __       _ _                       _           _
 _ __   ___  _ __| |_ / _| ___ | (_) ___         __ _  __| |_ __ ___ (_)_ __
| '_ \ / _ \| '__| __| |_ / _ \| | |/ _ \ _____ / _' |/ _' | '_ ' _ \| | '_ \
| |_) | (_) | |  | |_|  _| (_) | | | (_) |_____| (_| | (_| | | | | | | | | | |
| .__/ \___/|_|   \__|_|  \___/|_|_|\___/       \__,_|\__,_|_| |_| |_|_|_| |_|
|_|
`

// getConfigPath returns the path to the config file.
// Priority: PORTFOLIO_CONFIG env var > XDG_CONFIG_HOME/portfolio-admin/config.yaml > ~/.config/portfolio-admin/config.yaml
func getConfigPath() string {
	if envPath := os.Getenv("PORTFOLIO_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "portfolio-admin", "config.yaml")
}

// getDataPath returns the path to the data directory.
// Priority: XDG_DATA_HOME/portfolio-admin > ~/.local/share/portfolio-admin
func getDataPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data" // fallback
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "portfolio-admin")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: portfolio-admin <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve            Start the portfolio server")
		fmt.Println("  init             Create a config file with a fresh token secret")
		fmt.Println("  export [FILE]    Write a content snapshot to FILE or stdout")
		fmt.Println("  import FILE      Restore content from a snapshot file")
		fmt.Println("  reset            Reset content collections to their defaults")
		fmt.Println("  health           Check server health")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	case "export":
		err = runExport(ctx)
	case "import":
		err = runImport(ctx)
	case "reset":
		err = runReset(ctx)
	case "health":
		err = runHealth(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:    %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("Database:  %s\n", cfg.Database.Path)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:      %s\n", cfg.Server.HTTPAddr)
	fmt.Println()

	logger.Info("starting portfolio-admin",
		"config", configPath,
		"http_addr", cfg.Server.HTTPAddr,
	)

	kv, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = kv.Close() }()

	sessions, err := auth.NewManager(ctx, kv, auth.Config{
		DefaultPassword: cfg.Auth.DefaultPassword,
		OwnerPassword:   cfg.Auth.OwnerPassword,
		TokenSecret:     []byte(cfg.Auth.TokenSecret),
		SessionTTL:      cfg.Auth.SessionTTL,
		MaxAttempts:     cfg.Auth.MaxAttempts,
		LockDuration:    cfg.Auth.LockDuration,
		LoginDelay:      cfg.Auth.LoginDelay,
		UnlockDelay:     cfg.Auth.UnlockDelay,
	})
	if err != nil {
		return fmt.Errorf("creating session manager: %w", err)
	}

	contentStore := content.NewStore(kv)
	if err := contentStore.Load(ctx); err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	admin := webadmin.New(kv, sessions, contentStore, mailer.NewClient(""), mailer.Settings{
		ServiceID:  cfg.Email.ServiceID,
		TemplateID: cfg.Email.TemplateID,
		PublicKey:  cfg.Email.PublicKey,
		ToEmail:    cfg.Email.ToEmail,
	})

	mux := http.NewServeMux()
	admin.RegisterRoutes(mux)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// runInit writes a starter config file with a freshly generated token secret.
// Refuses to overwrite an existing config.
func runInit() error {
	configPath := getConfigPath()
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config already exists at %s", configPath)
	}

	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return fmt.Errorf("generating token secret: %w", err)
	}
	secret := base64.StdEncoding.EncodeToString(secretBytes)

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	dbPath := filepath.Join(getDataPath(), "portfolio.db")
	cfgYAML := fmt.Sprintf(`server:
  http_addr: localhost:8080

database:
  path: %s

auth:
  token_secret: "%s"
  # default_password: %s
  # owner_password: %s
  # session_ttl: 24h
  # max_attempts: 5
  # lock_duration: 15m

email:
  # service_id: ""
  # template_id: ""
  # public_key: ""
  # to_email: ""

logging:
  level: info
  format: text
`, dbPath, secret, config.DefaultAdminPassword, config.DefaultOwnerPassword)

	if err := os.WriteFile(configPath, []byte(cfgYAML), 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("Created %s\n", configPath)
	fmt.Println("Review the file, then run: portfolio-admin serve")
	return nil
}

// openContent opens the database and loads the content store for the
// offline snapshot commands.
func openContent(ctx context.Context) (*content.Store, func(), error) {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	kv, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	contentStore := content.NewStore(kv)
	if err := contentStore.Load(ctx); err != nil {
		_ = kv.Close()
		return nil, nil, fmt.Errorf("loading content: %w", err)
	}
	return contentStore, func() { _ = kv.Close() }, nil
}

func runExport(ctx context.Context) error {
	contentStore, cleanup, err := openContent(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	data, err := contentStore.ExportJSON()
	if err != nil {
		return err
	}

	if len(os.Args) > 2 {
		path := os.Args[2]
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}
		fmt.Printf("Exported to %s\n", path)
		return nil
	}

	fmt.Println(string(data))
	return nil
}

func runImport(ctx context.Context) error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: portfolio-admin import FILE")
	}

	data, err := os.ReadFile(os.Args[2])
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}

	contentStore, cleanup, err := openContent(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := contentStore.Import(ctx, data); err != nil {
		return fmt.Errorf("importing snapshot: %w", err)
	}

	fmt.Println("Snapshot imported")
	return nil
}

func runReset(ctx context.Context) error {
	fmt.Print("Reset projects, skills, and social links to defaults? [y/N] ")
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading confirmation: %w", err)
	}
	if ans := strings.ToLower(strings.TrimSpace(answer)); ans != "y" && ans != "yes" {
		fmt.Println("Aborted")
		return nil
	}

	contentStore, cleanup, err := openContent(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := contentStore.Reset(ctx); err != nil {
		return fmt.Errorf("resetting content: %w", err)
	}

	fmt.Println("Content reset to defaults")
	return nil
}

func runHealth(ctx context.Context) error {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	url := fmt.Sprintf("http://%s/health", cfg.Server.HTTPAddr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}

	fmt.Println("healthy")
	return nil
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/iudanet/socialmesh/internal/validation"
)

// Config содержит настройки узла.
// Приоритет: флаги > переменные окружения SOCIALMESH_* > значения по умолчанию.
type Config struct {
	ListenAddr        string
	SelfURL           string
	BootstrapPeers    []string
	DatabasePath      string
	PeerSnapshotPath  string
	JWTSecret         string
	AccessTokenTTL    time.Duration
	HealthInterval    time.Duration
	ReconcileInterval time.Duration
	RateLimit         int
	RateWindow        time.Duration
	ShowVersion       bool
}

// LoadConfig парсит конфигурацию из флагов и окружения.
// Файл .env подхватывается через godotenv, его отсутствие не ошибка.
func LoadConfig(args []string) (*Config, error) {
	_ = godotenv.Load()

	fs := flag.NewFlagSet("socialmesh-server", flag.ContinueOnError)

	listenAddr := fs.String("listen", envString("SOCIALMESH_LISTEN_ADDR", ":8080"),
		"HTTP listen address")
	selfURL := fs.String("self-url", envString("SOCIALMESH_SELF_URL", ""),
		"advertised node URL; defaults to http://localhost:<listen port>")
	peers := fs.String("peers", envString("SOCIALMESH_BOOTSTRAP_PEERS", ""),
		"comma-separated bootstrap peer URLs")
	dbPath := fs.String("db", envString("SOCIALMESH_DB_PATH", "socialmesh.db"),
		"sqlite database path")
	peersDBPath := fs.String("peers-db", envString("SOCIALMESH_PEERS_DB_PATH", "peers.db"),
		"peer snapshot database path")
	jwtSecret := fs.String("jwt-secret", envString("SOCIALMESH_JWT_SECRET", ""),
		"secret for signing JWT tokens; must match across the cluster")
	tokenTTL := fs.Duration("token-ttl", envDuration("SOCIALMESH_TOKEN_TTL", 15*time.Minute),
		"access token lifetime")
	healthInterval := fs.Duration("health-interval", envDuration("SOCIALMESH_HEALTH_INTERVAL", 30*time.Second),
		"interval between peer health check cycles")
	reconcileInterval := fs.Duration("reconcile-interval", envDuration("SOCIALMESH_RECONCILE_INTERVAL", 2*time.Minute),
		"interval between pull reconciliation cycles")
	rateLimit := fs.Int("rate-limit", envInt("SOCIALMESH_RATE_LIMIT", 100),
		"max requests per client per rate window")
	rateWindow := fs.Duration("rate-window", envDuration("SOCIALMESH_RATE_WINDOW", time.Minute),
		"rate limit window")
	showVersion := fs.Bool("version", false, "show version information")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *showVersion {
		return &Config{ShowVersion: true}, nil
	}

	cfg := &Config{
		ListenAddr:        *listenAddr,
		SelfURL:           *selfURL,
		BootstrapPeers:    splitPeers(*peers),
		DatabasePath:      *dbPath,
		PeerSnapshotPath:  *peersDBPath,
		JWTSecret:         *jwtSecret,
		AccessTokenTTL:    *tokenTTL,
		HealthInterval:    *healthInterval,
		ReconcileInterval: *reconcileInterval,
		RateLimit:         *rateLimit,
		RateWindow:        *rateWindow,
	}

	if cfg.SelfURL == "" {
		cfg.SelfURL = defaultSelfURL(cfg.ListenAddr)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет конфигурацию перед стартом узла.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt secret is required (flag -jwt-secret or SOCIALMESH_JWT_SECRET)")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database path is required")
	}

	normalized, err := validation.NormalizePeerURL(c.SelfURL)
	if err != nil {
		return fmt.Errorf("invalid self url %q: %w", c.SelfURL, err)
	}
	c.SelfURL = normalized

	for _, p := range c.BootstrapPeers {
		if _, err := validation.NormalizePeerURL(p); err != nil {
			return fmt.Errorf("invalid bootstrap peer %q: %w", p, err)
		}
	}

	if c.HealthInterval <= 0 || c.ReconcileInterval <= 0 {
		return fmt.Errorf("health and reconcile intervals must be positive")
	}
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive")
	}
	if c.RateLimit <= 0 || c.RateWindow <= 0 {
		return fmt.Errorf("rate limit and window must be positive")
	}
	return nil
}

// defaultSelfURL выводит анонсируемый адрес из listen-адреса.
// Узел за NAT или прокси должен задать -self-url явно.
func defaultSelfURL(listenAddr string) string {
	_, port, err := net.SplitHostPort(listenAddr)
	if err != nil || port == "" {
		port = "8080"
	}
	return "http://localhost:" + port
}

func splitPeers(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	peers := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			peers = append(peers, trimmed)
		}
	}
	return peers
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

package config

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultPort = "5000"
	// ModeSandbox and ModeLive select which PayPal environment the broker talks to.
	ModeSandbox = "sandbox"
	ModeLive    = "live"
)

// Config holds everything read from the environment at startup. It is loaded
// once and passed into constructors, never read again.
type Config struct {
	Port               string
	PublicBaseURL      string
	DiscordWebhookURL  string
	PayPalClientID     string
	PayPalClientSecret string
	PayPalMode         string
	SessionSecret      string
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	mode := os.Getenv("PAYPAL_MODE")
	if mode == "" {
		mode = ModeSandbox
	}
	if mode != ModeSandbox && mode != ModeLive {
		return nil, errors.New("PAYPAL_MODE must be either 'sandbox' or 'live'")
	}

	clientID := os.Getenv("PAYPAL_CLIENT_ID")
	clientSecret := os.Getenv("PAYPAL_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("no PAYPAL_CLIENT_ID or PAYPAL_CLIENT_SECRET provided")
	}

	baseURL := strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/")
	if baseURL == "" {
		baseURL = "http://localhost:" + port
	}

	return &Config{
		Port:               port,
		PublicBaseURL:      baseURL,
		DiscordWebhookURL:  os.Getenv("DISCORD_WEBHOOK_URL"),
		PayPalClientID:     clientID,
		PayPalClientSecret: clientSecret,
		PayPalMode:         mode,
		SessionSecret:      os.Getenv("SESSION_SECRET"),
	}, nil
}

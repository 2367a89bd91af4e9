package config

import "strings"

type AppConfig struct {
	Workdir      string `envconfig:"WORK_DIR"`
	Port         string `envconfig:"PORT" default:"9740"`
	DatabaseUri  string `envconfig:"DATABASE_URI" default:"escrow.db"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"4"`
	LogToFile    bool   `envconfig:"LOG_TO_FILE" default:"true"`
	LogDBQueries bool   `envconfig:"LOG_DB_QUERIES" default:"false"`

	JWTSecret string `envconfig:"JWT_SECRET"`

	LNRestUrl      string `envconfig:"LN_REST_URL"`
	LNRestMacaroon string `envconfig:"LN_REST_MACAROON"`

	ReconcileInterval uint64 `envconfig:"RECONCILE_INTERVAL" default:"20"` // seconds

	ChatServiceUrl   string `envconfig:"CHAT_SERVICE_URL"`
	AnchorServiceUrl string `envconfig:"ANCHOR_SERVICE_URL"`

	NostrRelays    string `envconfig:"NOSTR_RELAYS"`
	NostrSecretKey string `envconfig:"NOSTR_SECRET_KEY"`
}

func (c *AppConfig) GetRelayUrls() []string {
	if c.NostrRelays == "" {
		return nil
	}
	urls := strings.Split(c.NostrRelays, ",")
	for i, url := range urls {
		urls[i] = strings.TrimSpace(url)
	}
	return urls
}

package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Notion configuration. The database id is not required here: a missing id is reported per request.
	NotionToken      string  `long:"notion-token" env:"NOTION_TOKEN" description:"Notion integration token"`
	NotionDatabaseID string  `long:"notion-database-id" env:"NOTION_DATABASE_ID" description:"Notion database queried for feed items"`
	NotionAPIURL     string  `long:"notion-api-url" env:"NOTION_API_URL" default:"https://api.notion.com/v1" description:"Notion API base URL"`
	NotionVersion    string  `long:"notion-version" env:"NOTION_VERSION" default:"2022-06-28" description:"Notion-Version header sent with every query"`
	NotionTimeout    int     `long:"notion-timeout" env:"NOTION_TIMEOUT" default:"30" description:"Notion query timeout in seconds"`
	NotionRateLimit  float64 `long:"notion-rate-limit" env:"NOTION_RATE_LIMIT" default:"3" description:"Maximum Notion queries per second"`

	// Application configuration
	SchemaFile   string `long:"schema-file" env:"SCHEMA_FILE" default:"./schema.yml" description:"YAML file mapping feed fields to Notion property names"`
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl      string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://feed.example.com)"`
	FeedURL      string `long:"feed-url" env:"FEED_URL" description:"Render pages from a remote feed endpoint instead of querying Notion directly (optional)"`
	Language     string `long:"language" env:"LANGUAGE" default:"pt-BR" description:"Default UI language"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Notiongram/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/Sao_Paulo)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	return LoadArgs(nil)
}

// LoadArgs parses the given arguments instead of os.Args when args is non-nil.
func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.NotionTimeout < 0 {
		return nil, fmt.Errorf("notion timeout must be non-negative")
	}
	if raw.NotionRateLimit < 0 {
		return nil, fmt.Errorf("notion rate limit must be non-negative")
	}

	cfg := &Cfg{
		NotionToken:      raw.NotionToken,
		NotionDatabaseID: raw.NotionDatabaseID,
		NotionAPIURL:     raw.NotionAPIURL,
		NotionVersion:    raw.NotionVersion,
		NotionTimeout:    raw.NotionTimeout,
		NotionRateLimit:  raw.NotionRateLimit,
		SchemaFile:       raw.SchemaFile,
		Port:             raw.Port,
		BaseUrl:          raw.BaseUrl,
		FeedURL:          raw.FeedURL,
		Language:         raw.Language,
		APIAccessKey:     raw.APIAccessKey,
		UserAgent:        raw.UserAgent,
		Timezone:         raw.Timezone,
		Debug:            raw.Debug,
		Version:          GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// GetNotionTimeout returns the Notion query timeout as time.Duration
func (c *Cfg) GetNotionTimeout() time.Duration {
	if c.NotionTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.NotionTimeout) * time.Second
}

// GetSelfURL returns the public base URL, falling back to localhost.
func (c *Cfg) GetSelfURL() string {
	if c.BaseUrl != "" {
		return c.BaseUrl
	}
	return fmt.Sprintf("http://localhost:%s", c.Port)
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}

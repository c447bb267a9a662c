package utils

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	port string

	discordAppToken string
	prefix          string

	verificationChannelID string

	siteAPIURL   string
	siteAPIToken string

	sqlitePath string

	metricCollectionInterval time.Duration

	location *time.Location
}

func NewConfig() *Config {
	return &Config{
		port: func() string {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			slog.Debug("env", "PORT", port)
			return port
		}(),

		discordAppToken: func() string {
			discordAppToken := os.Getenv("DISCORD_APP_TOKEN")
			if discordAppToken == "" {
				slog.Error("DISCORD_APP_TOKEN is not set")
				os.Exit(1)
			}
			slog.Debug("env", "DISCORD_APP_TOKEN", discordAppToken[0:3]+"...")
			return discordAppToken
		}(),
		prefix: func() string {
			prefix := os.Getenv("PREFIX")
			if prefix == "" {
				prefix = "!"
			}
			slog.Debug("env", "PREFIX", prefix)
			return prefix
		}(),

		verificationChannelID: func() string {
			verificationChannelID := os.Getenv("VERIFICATION_CHANNEL_ID")
			if verificationChannelID == "" {
				slog.Warn("VERIFICATION_CHANNEL_ID is not set, unknown commands get reinterpreted everywhere")
			} else {
				slog.Debug("env", "VERIFICATION_CHANNEL_ID", verificationChannelID)
			}
			return verificationChannelID
		}(),

		siteAPIURL: func() string {
			siteAPIURL := os.Getenv("SITE_API_URL")
			if siteAPIURL == "" {
				slog.Error("SITE_API_URL is not set")
				os.Exit(1)
			}
			slog.Debug("env", "SITE_API_URL", siteAPIURL)
			return strings.TrimSuffix(siteAPIURL, "/")
		}(),
		siteAPIToken: func() string {
			siteAPIToken := os.Getenv("SITE_API_TOKEN")
			if siteAPIToken == "" {
				slog.Warn("SITE_API_TOKEN is not set, site API requests go out unauthenticated")
				return ""
			}
			slog.Debug("env", "SITE_API_TOKEN", siteAPIToken[0:3]+"...")
			return siteAPIToken
		}(),

		sqlitePath: func() string {
			sqlitePath := os.Getenv("SQLITE_PATH")
			if sqlitePath == "" {
				sqlitePath = "./sqlite.db"
			}
			slog.Debug("env", "SQLITE_PATH", sqlitePath)
			return sqlitePath
		}(),

		metricCollectionInterval: func() time.Duration {
			metricCollectionInterval := os.Getenv("METRIC_COLLECTION_INTERVAL")
			if metricCollectionInterval == "" {
				metricCollectionInterval = "60s"
			}
			duration, err := time.ParseDuration(metricCollectionInterval)
			if err != nil {
				slog.Error("invalid METRIC_COLLECTION_INTERVAL", "error", err)
				os.Exit(1)
			}
			slog.Debug("env", "METRIC_COLLECTION_INTERVAL", metricCollectionInterval, "duration", duration)
			return duration
		}(),

		location: func() *time.Location {
			timezoneStr := os.Getenv("TIMEZONE")
			var loc *time.Location
			var err error
			switch timezoneStr {
			case "":
				slog.Warn("TIMEZONE is not set, using local timezone", "timezone", time.Local)
				loc = time.Local
			case "UTC":
				loc = time.UTC
			default:
				loc, err = time.LoadLocation(timezoneStr)
				if err != nil {
					slog.Error("invalid timezone", "timezone", timezoneStr, "error", err)
					os.Exit(1)
				}
			}
			slog.Debug("env", "TIMEZONE", timezoneStr)
			return loc
		}(),
	}
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}

// Get DISCORD_APP_TOKEN env
func (c *Config) GetDiscordAppToken() string {
	return c.discordAppToken
}

// Get PREFIX env, default to "!"
func (c *Config) GetPrefix() string {
	return c.prefix
}

// Get VERIFICATION_CHANNEL_ID env, may be blank
func (c *Config) GetVerificationChannelID() string {
	return c.verificationChannelID
}

// Get SITE_API_URL env, trailing slash stripped
func (c *Config) GetSiteAPIURL() string {
	return c.siteAPIURL
}

// Get SITE_API_TOKEN env, may be blank
func (c *Config) GetSiteAPIToken() string {
	return c.siteAPIToken
}

// Get SQLITE_PATH env, default to ./sqlite.db
func (c *Config) GetSqlitePath() string {
	return c.sqlitePath
}

// Get METRIC_COLLECTION_INTERVAL env, default to 60s
func (c *Config) GetMetricCollectionInterval() time.Duration {
	return c.metricCollectionInterval
}

// Get TIMEZONE env
func (c *Config) GetLocation() *time.Location {
	return c.location
}

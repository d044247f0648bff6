package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadValid(t *testing.T) *Config {
	t.Helper()
	cfg, err := Load("testdata/valid_config.yaml")
	require.NoError(t, err)
	return cfg
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := loadValid(t)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)

		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "jobboard_db", cfg.Database.Database)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)

		assert.Equal(t, "notifications_exchange", cfg.RabbitMQ.Exchange.Name)
		assert.Equal(t, "direct", cfg.RabbitMQ.Exchange.Type)
		assert.True(t, cfg.RabbitMQ.Exchange.Durable)
		assert.Equal(t, "notifications_queue", cfg.RabbitMQ.Queue.Name)
		assert.Equal(t, "notifications", cfg.RabbitMQ.RoutingKey)
		assert.Equal(t, 3, cfg.RabbitMQ.Publish.RetryAttempts)
		assert.Equal(t, 2.0, cfg.RabbitMQ.Publish.BackoffMultiplier)

		assert.Equal(t, "no-reply@wryteup.example", cfg.SMTP.From)
		assert.Equal(t, "/tmp/banners", cfg.Storage.BannerDir)
		assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
		assert.Equal(t, "jobboard-api-service", cfg.App.Name)

		assert.Equal(t, 4, cfg.Mailer.Concurrency)
		assert.Equal(t, 8, cfg.Mailer.PrefetchCount)
		assert.Equal(t, 15*time.Second, cfg.Mailer.ShutdownTimeout)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("testdata/does_not_exist.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load("testdata/malformed.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestValidateAPIConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "server port out of range",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "missing database host",
			mutate:  func(c *Config) { c.Database.Host = "" },
			wantErr: "database host is required",
		},
		{
			name:    "database port out of range",
			mutate:  func(c *Config) { c.Database.Port = 70000 },
			wantErr: "invalid database port",
		},
		{
			name:    "missing database name",
			mutate:  func(c *Config) { c.Database.Database = "" },
			wantErr: "database name is required",
		},
		{
			name:    "missing rabbitmq host",
			mutate:  func(c *Config) { c.RabbitMQ.Host = "" },
			wantErr: "rabbitmq host is required",
		},
		{
			name:    "missing exchange name",
			mutate:  func(c *Config) { c.RabbitMQ.Exchange.Name = "" },
			wantErr: "rabbitmq exchange name is required",
		},
		{
			name:    "missing queue name",
			mutate:  func(c *Config) { c.RabbitMQ.Queue.Name = "" },
			wantErr: "rabbitmq queue name is required",
		},
		{
			name:    "missing jwt secret",
			mutate:  func(c *Config) { c.Auth.JWTSecret = "" },
			wantErr: "auth jwt_secret is required",
		},
		{
			name:    "missing banner dir",
			mutate:  func(c *Config) { c.Storage.BannerDir = "" },
			wantErr: "storage banner_dir is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadValid(t)
			tt.mutate(cfg)

			err := cfg.ValidateAPIConfig()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateMailerConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Mailer.Concurrency = 0 },
			wantErr: "mailer concurrency must be greater than 0",
		},
		{
			name:    "zero prefetch",
			mutate:  func(c *Config) { c.Mailer.PrefetchCount = 0 },
			wantErr: "mailer prefetch_count must be greater than 0",
		},
		{
			name:    "zero shutdown timeout",
			mutate:  func(c *Config) { c.Mailer.ShutdownTimeout = 0 },
			wantErr: "mailer shutdown_timeout must be greater than 0",
		},
		{
			name:    "missing smtp host",
			mutate:  func(c *Config) { c.SMTP.Host = "" },
			wantErr: "smtp host is required",
		},
		{
			name:    "smtp port out of range",
			mutate:  func(c *Config) { c.SMTP.Port = -1 },
			wantErr: "invalid smtp port",
		},
		{
			name:    "missing smtp from",
			mutate:  func(c *Config) { c.SMTP.From = "" },
			wantErr: "smtp from address is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadValid(t)
			tt.mutate(cfg)

			err := cfg.ValidateMailerConfig()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

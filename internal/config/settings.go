package config

import "time"

// Settings contains the application config
type Settings struct {
	Port                 int           `env:"PORT"`
	MonPort              int           `env:"MON_PORT"`
	EnablePprof          bool          `env:"ENABLE_PPROF"`
	LogLevel             string        `env:"LOG_LEVEL"`
	ServiceName          string        `env:"SERVICE_NAME"`
	BasicAuthUser        string        `env:"BASIC_AUTH_USER"`
	BasicAuthPassword    string        `env:"BASIC_AUTH_PASSWORD"`
	DeliveryRetention    time.Duration `env:"DELIVERY_RETENTION"`
	DeliveryHistoryLimit int           `env:"DELIVERY_HISTORY_LIMIT"`
}

// ApplyDefaults fills in any unset field.
func (s *Settings) ApplyDefaults() {
	if s.Port == 0 {
		s.Port = 2345
	}
	if s.MonPort == 0 {
		s.MonPort = 8888
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
	if s.ServiceName == "" {
		s.ServiceName = "webhook-validator"
	}
	if s.BasicAuthUser == "" && s.BasicAuthPassword == "" {
		s.BasicAuthUser = "user"
		s.BasicAuthPassword = "password"
	}
	if s.DeliveryRetention <= 0 {
		s.DeliveryRetention = 15 * time.Minute
	}
	if s.DeliveryHistoryLimit <= 0 {
		s.DeliveryHistoryLimit = 100
	}
}

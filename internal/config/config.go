package config

// Config represents the router configuration
type Config struct {
	Port     int    `yaml:"port"`      // Daemon listen port
	LogLevel string `yaml:"log_level"` // zap level name

	Chain     ServiceConfig `yaml:"chain"`     // Primary chain nodes
	Sidechain ServiceConfig `yaml:"sidechain"` // Sidechain contract nodes

	AttemptTimeout int `yaml:"attempt_timeout"` // Seconds per endpoint attempt
	FailureWindow  int `yaml:"failure_window"`  // Seconds a failure demotes an endpoint
}

// ServiceConfig lists the endpoints of one remote service
type ServiceConfig struct {
	Endpoints []string `yaml:"endpoints"`
}

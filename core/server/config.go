package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// MetricsPort is the port for the Prometheus text endpoint.
	MetricsPort string `mapstructure:"metrics_port" default:"9091"`
}

// Addr returns the listen address for the API server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// MetricsAddr returns the listen address for the metrics endpoint.
func (c Config) MetricsAddr() string {
	return ":" + c.MetricsPort
}

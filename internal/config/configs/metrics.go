package configs

// Metrics toggles the Prometheus collectors and the /metrics endpoint.
type Metrics struct {
	Enabled     bool   `env:"ENABLED" envDefault:"true"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"linkswap"`
}

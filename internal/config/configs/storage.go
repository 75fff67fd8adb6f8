package configs

// Storage selects the repository backend: "postgres" for production or
// "memory" for local runs and demos. Memory state is lost on restart.
type Storage struct {
	Driver string `env:"DRIVER" envDefault:"postgres"`
}

// UseMemory reports whether the in-process store was requested.
func (s Storage) UseMemory() bool {
	return s.Driver == "memory"
}

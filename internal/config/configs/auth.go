package configs

// Auth configures validation of the bearer tokens issued by the external
// identity provider. Tokens are HS256 signed with Secret.
type Auth struct {
	Secret   string `env:"SECRET,required,notEmpty"`
	Issuer   string `env:"ISSUER"`
	Audience string `env:"AUDIENCE"`
}

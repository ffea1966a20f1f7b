package config

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Environment variables holding the API credentials
const (
	GolemioTokenEnv       = "GOLEMIO_API_ACCESS_TOKEN"
	ZivyobrazImportKeyEnv = "ZIVYOBRAZ_API_IMPORT_KEY"
)

// Credentials supplies the secrets sent to the upstream and downstream APIs.
// An empty value means the credential is not sent.
type Credentials interface {
	GolemioAccessToken() string
	ZivyobrazImportKey() string
}

// StaticCredentials returns fixed values, mostly useful in tests
type StaticCredentials struct {
	AccessToken string
	ImportKey   string
}

func (c StaticCredentials) GolemioAccessToken() string { return c.AccessToken }
func (c StaticCredentials) ZivyobrazImportKey() string { return c.ImportKey }

// EnvCredentials reads credentials from the process environment, falling back
// to values from an optional dotenv file. The process environment is not modified.
type EnvCredentials struct {
	lookup   func(string) (string, bool)
	fromFile map[string]string
}

// NewEnvCredentials builds an environment-backed provider. envFile may be empty
// or point to a file that does not exist; both are silently accepted.
func NewEnvCredentials(envFile string) *EnvCredentials {
	c := &EnvCredentials{lookup: os.LookupEnv}
	if envFile == "" {
		return c
	}
	values, err := godotenv.Read(envFile)
	switch {
	case err == nil:
		c.fromFile = values
	case os.IsNotExist(err):
	default:
		log.WithError(err).Warnf("Ignoring env file %s", envFile)
	}
	return c
}

func (c *EnvCredentials) get(key string) string {
	if v, ok := c.lookup(key); ok {
		return v
	}
	return c.fromFile[key]
}

func (c *EnvCredentials) GolemioAccessToken() string { return c.get(GolemioTokenEnv) }
func (c *EnvCredentials) ZivyobrazImportKey() string { return c.get(ZivyobrazImportKeyEnv) }

package util

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "STOCKBUDDY"

type Secrets struct {
	Port       int              `mapstructure:"port"`
	Db         DbSecrets        `mapstructure:"db"`
	Simulation SimulationConfig `mapstructure:"simulation"`
}

type DbSecrets struct {
	Host      string `mapstructure:"host"`
	User      string `mapstructure:"user"`
	Port      string `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	Database  string `mapstructure:"database"`
	EnableSsl bool   `mapstructure:"enableSsl"`
}

type SimulationConfig struct {
	BaseUrl      string `mapstructure:"baseUrl"`
	MaxTries     uint   `mapstructure:"maxTries"`
	RetryDelayMs int    `mapstructure:"retryDelayMs"`
}

// Enabled is false when no database host is configured, in which case
// the in-memory cache is used
func (t DbSecrets) Enabled() bool {
	return t.Host != ""
}

func (t DbSecrets) ToConnectionStr() string {
	x := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
		t.Host, t.Port, t.User, t.Password, t.Database)
	if !t.EnableSsl {
		x += " sslmode=disable"
	}
	return x
}

func secretsFile() string {
	switch os.Getenv("STOCKBUDDY_ENV") {
	case "dev":
		return "secrets-dev.json"
	case "test":
		return "secrets-test.json"
	}
	return "/go/src/app/secrets.json"
}

// LoadSecrets reads the secrets file for the current environment. every
// key can be overridden with a STOCKBUDDY_ variable, e.g.
// STOCKBUDDY_DB_HOST or STOCKBUDDY_SIMULATION_BASEURL. a missing file is
// fine as long as the environment provides what is needed
func LoadSecrets() (*Secrets, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(secretsFile())
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", 3009)
	v.SetDefault("simulation.maxTries", 3)
	v.SetDefault("simulation.retryDelayMs", 250)
	// registered so AutomaticEnv can see them without a file
	for _, key := range []string{
		"db.host", "db.user", "db.port", "db.password", "db.database", "db.enableSsl",
		"simulation.baseUrl",
	} {
		v.SetDefault(key, "")
	}

	notFound := viper.ConfigFileNotFoundError{}
	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) && !errors.As(err, &notFound) {
		return nil, fmt.Errorf("could not read secrets: %w", err)
	}

	secrets := Secrets{}
	if err := v.Unmarshal(&secrets); err != nil {
		return nil, fmt.Errorf("failed to decode secrets: %w", err)
	}
	if secrets.Simulation.BaseUrl == "" {
		return nil, errors.New("missing simulation base url")
	}

	return &secrets, nil
}

package shared

import (
	"encoding/json"
	"github.com/tailscale/hujson"
	"log"
	"os"
)

const (
	configVarName  = "CONFIG"                // If set, will load config.json from this path and not from devConfigPath
	secretsVarName = "SECRETS"               // If set, will load secrets.json from this path and not from devSecretsPath
	devConfigPath  = "dev/config.dev.jsonc"  // Path to config.json in development environment
	devSecretsPath = "dev/secrets.dev.jsonc" // Path to secrets.json in development environment
)

type Config struct {
	Secrets             Secrets        `json:"-"`
	LogFile             string         `json:"log_file"`
	LogLevel            string         `json:"log_level"`
	ServicePort         uint           `json:"service_port"`
	Host                string         `json:"host"`
	Scheme              string         `json:"scheme"`
	DbFile              string         `json:"db_file"`
	AllowAnonymousInbox bool           `json:"allow_anonymous_inbox"`
	InboxRatePerMin     int            `json:"inbox_rate_per_min"`
	Delivery            DeliveryConfig `json:"delivery"`
}

type DeliveryConfig struct {
	Workers           int `json:"workers"`
	QueueSize         int `json:"queue_size"`
	LikeTimeoutSec    int `json:"like_timeout_sec"`
	CommentTimeoutSec int `json:"comment_timeout_sec"`
	PostTimeoutSec    int `json:"post_timeout_sec"`
	FollowTimeoutSec  int `json:"follow_timeout_sec"`
}

// NodeSecret is a peer node as configured in the secrets file.
// Username/Password are what the peer presents to us; OutUsername/OutPassword are what we present to it.
type NodeSecret struct {
	BaseUrl     string `json:"base_url"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	OutUsername string `json:"out_username"`
	OutPassword string `json:"out_password"`
	Enabled     bool   `json:"enabled"`
}

type Secrets struct {
	ApiKeys     []string     `json:"api_keys"`
	MetricsAuth string       `json:"metrics_auth"`
	Nodes       []NodeSecret `json:"nodes"`
}

func LoadConfig() *Config {

	// Where are our config and secrets files?
	cfgPath := os.Getenv(configVarName)
	if len(cfgPath) == 0 {
		cfgPath = devConfigPath
	}
	secretsPath := os.Getenv(secretsVarName)
	if len(secretsPath) == 0 {
		secretsPath = devSecretsPath
	}

	// Read config file
	var config Config
	mustDeserializeFile(cfgPath, &config)
	// Read secrets member from secrets file
	mustDeserializeFile(secretsPath, &config.Secrets)
	config.ApplyDefaults()
	return &config
}

// ApplyDefaults fills in zero values with the values the node runs with out of the box.
func (cfg *Config) ApplyDefaults() {
	if cfg.Scheme == "" {
		cfg.Scheme = "https"
	}
	if cfg.Delivery.Workers <= 0 {
		cfg.Delivery.Workers = 5
	}
	if cfg.Delivery.QueueSize <= 0 {
		cfg.Delivery.QueueSize = 1024
	}
	if cfg.Delivery.LikeTimeoutSec <= 0 {
		cfg.Delivery.LikeTimeoutSec = 5
	}
	if cfg.Delivery.CommentTimeoutSec <= 0 {
		cfg.Delivery.CommentTimeoutSec = 10
	}
	if cfg.Delivery.PostTimeoutSec <= 0 {
		cfg.Delivery.PostTimeoutSec = 10
	}
	if cfg.Delivery.FollowTimeoutSec <= 0 {
		cfg.Delivery.FollowTimeoutSec = 10
	}
}

func mustDeserializeFile[T any](fileName string, obj *T) {
	var err error
	var cfgJson []byte
	cfgJson, err = os.ReadFile(fileName)
	if err != nil {
		log.Fatal(err)
	}
	if err = deserializeJsonc(cfgJson, obj); err != nil {
		log.Fatal(err)
	}
}

func deserializeJsonc[T any](cfgJson []byte, obj *T) error {
	// JSONC => JSON
	cfgJson, err := standardizeJSON(cfgJson)
	if err != nil {
		return err
	}
	return json.Unmarshal(cfgJson, obj)
}

func standardizeJSON(b []byte) ([]byte, error) {
	ast, err := hujson.Parse(b)
	if err != nil {
		return b, err
	}
	ast.Standardize()
	return ast.Pack(), nil
}

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	awspkg "github.com/yashrajoria/storefront/pkg/aws"
)

// SessionSecretName is the Secrets Manager entry that overrides SESSION_SECRET.
const SessionSecretName = "storefront/SESSION_SECRET"

type Config struct {
	Port           string
	AppEnv         string
	RequestTimeout time.Duration

	AuthLoginURL    string
	AuthRegisterURL string
	OrdersCreateURL string
	OrdersListURL   string

	RedisURL      string
	SessionTTL    time.Duration
	StateIdleTTL  time.Duration
	SessionSecret string
	CORSOrigins   []string

	KafkaBrokers     []string
	KafkaOrderTopic  string
	SNSOrderTopicARN string

	AWSRegion           string
	AWSEndpoint         string
	AWSUseSecrets       bool
	CloudWatchEnabled   bool
	CloudWatchNamespace string
	CloudWatchLogGroup  string
}

// SecretGetter reads a named secret.
type SecretGetter interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// Load reads .env (if present) and the environment. With AWS_USE_SECRETS=true
// the session secret is taken from Secrets Manager.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()

	var secrets SecretGetter
	if os.Getenv("AWS_USE_SECRETS") == "true" {
		awsCfg, err := awspkg.LoadAWSConfig(ctx, awspkg.Options{
			Region:   os.Getenv("AWS_REGION"),
			Endpoint: os.Getenv("AWS_ENDPOINT"),
		})
		if err != nil {
			return nil, err
		}
		secrets = awspkg.NewSecretsClient(awsCfg)
	}
	return LoadWith(ctx, secrets)
}

// LoadWith builds the config from the environment, consulting secrets when non-nil.
func LoadWith(ctx context.Context, secrets SecretGetter) (*Config, error) {
	timeout, err := getDuration("REQUEST_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	ttl, err := getDuration("SESSION_TTL", 720*time.Hour)
	if err != nil {
		return nil, err
	}
	idle, err := getDuration("STATE_IDLE_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8090"),
		AppEnv:         getEnv("APP_ENV", "development"),
		RequestTimeout: timeout,

		AuthLoginURL:    os.Getenv("AUTH_LOGIN_URL"),
		AuthRegisterURL: os.Getenv("AUTH_REGISTER_URL"),
		OrdersCreateURL: os.Getenv("ORDERS_CREATE_URL"),
		OrdersListURL:   os.Getenv("ORDERS_LIST_URL"),

		RedisURL:      os.Getenv("REDIS_URL"),
		SessionTTL:    ttl,
		StateIdleTTL:  idle,
		SessionSecret: os.Getenv("SESSION_SECRET"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),

		KafkaBrokers:     splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaOrderTopic:  getEnv("KAFKA_ORDER_TOPIC", "storefront.order.submitted"),
		SNSOrderTopicARN: os.Getenv("SNS_ORDER_TOPIC_ARN"),

		AWSRegion:           os.Getenv("AWS_REGION"),
		AWSEndpoint:         os.Getenv("AWS_ENDPOINT"),
		AWSUseSecrets:       secrets != nil,
		CloudWatchEnabled:   os.Getenv("CLOUDWATCH_ENABLED") == "true",
		CloudWatchNamespace: getEnv("CLOUDWATCH_NAMESPACE", awspkg.DefaultNamespace),
		CloudWatchLogGroup:  getEnv("CLOUDWATCH_LOG_GROUP", awspkg.DefaultLogGroup),
	}

	if secrets != nil {
		if v, err := secrets.GetSecret(ctx, SessionSecretName); err == nil && v != "" {
			cfg.SessionSecret = v
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// AWSEnabled reports whether any AWS integration is configured.
func (c *Config) AWSEnabled() bool {
	return c.CloudWatchEnabled || c.SNSOrderTopicARN != ""
}

func (c *Config) validate() error {
	var missing []string
	for key, val := range map[string]string{
		"AUTH_LOGIN_URL":    c.AuthLoginURL,
		"AUTH_REGISTER_URL": c.AuthRegisterURL,
		"ORDERS_CREATE_URL": c.OrdersCreateURL,
		"ORDERS_LIST_URL":   c.OrdersListURL,
		"SESSION_SECRET":    c.SessionSecret,
	} {
		if val == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.StateIdleTTL <= 0 {
		return errors.New("STATE_IDLE_TTL must be positive")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSuffix(strings.TrimSpace(part), "/"); p != "" {
			out = append(out, p)
		}
	}
	return out
}

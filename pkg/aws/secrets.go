package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sync"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type getSecretValueAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsClient resolves configuration secrets. Values are fetched once per process.
type SecretsClient struct {
	api getSecretValueAPI

	mu     sync.Mutex
	values map[string]string
}

func NewSecretsClient(cfg sdkaws.Config) *SecretsClient {
	return newSecretsClient(secretsmanager.NewFromConfig(cfg))
}

func newSecretsClient(api getSecretValueAPI) *SecretsClient {
	return &SecretsClient{api: api, values: map[string]string{}}
}

// GetSecret returns the string value of the named secret. A key/value secret
// (a JSON object) yields the entry named after the last path segment, so
// "storefront/SESSION_SECRET" may hold either the raw secret or
// {"SESSION_SECRET": "..."}.
func (s *SecretsClient) GetSecret(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.values[name]; ok {
		return v, nil
	}

	out, err := s.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: sdkaws.String(name)})
	if err != nil {
		return "", fmt.Errorf("get secret %s: %w", name, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("secret %s has no string value", name)
	}

	value := *out.SecretString
	var pairs map[string]string
	if json.Unmarshal([]byte(value), &pairs) == nil {
		v, ok := pairs[path.Base(name)]
		if !ok {
			return "", fmt.Errorf("secret %s has no %q entry", name, path.Base(name))
		}
		value = v
	}

	s.values[name] = value
	return value, nil
}

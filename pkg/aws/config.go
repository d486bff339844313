package aws

import (
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// Options select the region and, for LocalStack, a custom endpoint shared by all clients.
type Options struct {
	Region   string
	Endpoint string
}

// LoadAWSConfig loads the default credential chain and applies opts.
func LoadAWSConfig(ctx context.Context, opts Options) (sdkaws.Config, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.Endpoint != "" {
		loadOpts = append(loadOpts, config.WithBaseEndpoint(opts.Endpoint))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return cfg, fmt.Errorf("failed to load aws config: %w", err)
	}
	return cfg, nil
}

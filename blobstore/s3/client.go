package s3

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Options configures the S3 store constructor.
type Options struct {
	// Prefix is prepended to all keys.
	Prefix string

	// Region overrides the region from the default config chain.
	Region string

	// Client overrides the constructed S3 client (primarily for tests
	// and S3-compatible endpoints).
	Client Client
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) func(*Options) {
	return func(o *Options) {
		o.Prefix = prefix
	}
}

// WithRegion sets the AWS region.
func WithRegion(region string) func(*Options) {
	return func(o *Options) {
		o.Region = region
	}
}

// WithClient injects a pre-built client.
func WithClient(client Client) func(*Options) {
	return func(o *Options) {
		o.Client = client
	}
}

// New creates an S3 store for the given bucket using the default AWS
// configuration chain (environment, shared config, instance metadata).
func New(ctx context.Context, bucket string, optFns ...func(*Options)) (*Store, error) {
	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}

	client := opts.Client
	if client == nil {
		var cfgOpts []func(*config.LoadOptions) error
		if opts.Region != "" {
			cfgOpts = append(cfgOpts, config.WithRegion(opts.Region))
		}

		cfg, err := config.LoadDefaultConfig(ctx, cfgOpts...)
		if err != nil {
			return nil, err
		}

		client = s3.NewFromConfig(cfg)
	}

	return NewStore(client, bucket, opts.Prefix), nil
}

package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const defaultWindow = "default"

type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type S3Options struct {
	Bucket          string
	Prefix          string
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// S3 reads "<feature>/<window>.json" from a bucket and falls back to
// "<feature>/default.json" when the window has no dedicated puzzle.
type S3 struct {
	logger *slog.Logger

	client objectGetter
	bucket string
	prefix string
}

func NewS3(ctx context.Context, logger *slog.Logger, opts S3Options) (*S3, error) {
	region := opts.Region
	if region == "" {
		region = "auto"
	}

	loaders := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if opts.AccessKeyID != "" {
		loaders = append(loaders, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKeyID, opts.SecretAccessKey, "",
		)))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3(logger, client, opts.Bucket, opts.Prefix), nil
}

func newS3(logger *slog.Logger, client objectGetter, bucket, prefix string) *S3 {
	return &S3{
		logger: logger.With("component", "s3-content"),
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

func (that *S3) Content(ctx context.Context, feature, window string) (json.RawMessage, error) {
	log := that.logger.With("method", "Content", "feature", feature, "window", window)

	payload, err := that.get(ctx, ObjectKey(that.prefix, feature, window))
	if errors.Is(err, ErrContentNotFound) {
		log.Debug("no dedicated puzzle, using default")
		payload, err = that.get(ctx, ObjectKey(that.prefix, feature, defaultWindow))
	}

	if err != nil {
		return nil, err
	}

	if !json.Valid(payload) {
		return nil, fmt.Errorf("content of %s is not valid json", feature)
	}

	return payload, nil
}

func (that *S3) get(ctx context.Context, key string) ([]byte, error) {
	output, err := that.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(that.bucket),
		Key:    aws.String(key),
	})

	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return nil, fmt.Errorf("%w: %s", ErrContentNotFound, key)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer output.Body.Close()

	payload, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	return payload, nil
}

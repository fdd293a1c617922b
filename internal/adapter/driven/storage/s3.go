package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func (o *Opener) getS3Client(ctx context.Context) (*s3.Client, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.s3Client != nil {
		return o.s3Client, nil
	}

	var loadOpts []func(*config.LoadOptions) error
	if o.opts.AWSProfile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.opts.AWSProfile))
	}
	if o.opts.AWSRegion != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.opts.AWSRegion))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	o.s3Client = s3.NewFromConfig(cfg)
	return o.s3Client, nil
}

// fetchS3 baixa um objeto do S3 inteiro.
func (o *Opener) fetchS3(ctx context.Context, bucket, key string) ([]byte, error) {
	client, err := o.getS3Client(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", bucket, key, err)
	}
	return data, nil
}

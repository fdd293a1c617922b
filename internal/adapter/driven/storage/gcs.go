package storage

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

func (o *Opener) getGCSClient(ctx context.Context) (*gcs.Client, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.gcsClient != nil {
		return o.gcsClient, nil
	}

	var clientOpts []option.ClientOption
	if o.opts.GCSCredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(o.opts.GCSCredentialsFile))
	}

	client, err := gcs.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	o.gcsClient = client
	return client, nil
}

// fetchGCS baixa um objeto do Cloud Storage inteiro.
func (o *Opener) fetchGCS(ctx context.Context, bucket, object string) ([]byte, error) {
	client, err := o.getGCSClient(ctx)
	if err != nil {
		return nil, err
	}

	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open GCS object reader: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read GCS object: %w", err)
	}
	return data, nil
}

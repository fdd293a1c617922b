package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"sync"

	gcs "cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Object é um arquivo aberto com acesso aleatório, como exigido pelos leitores colunares.
type Object interface {
	io.ReaderAt
	io.Seeker
	io.Closer
}

// Options configura o acesso aos backends remotos.
type Options struct {
	AWSProfile         string
	AWSRegion          string
	GCSCredentialsFile string
}

// Opener resolve caminhos locais, s3://bucket/key e gs://bucket/object.
// Os clientes remotos são criados sob demanda e reutilizados.
type Opener struct {
	opts Options

	mu        sync.Mutex
	s3Client  *s3.Client
	gcsClient *gcs.Client
}

// NewOpener cria um novo Opener.
func NewOpener(opts Options) *Opener {
	return &Opener{opts: opts}
}

// Location é um URI de entrada já decomposto.
type Location struct {
	Scheme string
	Bucket string
	Key    string
	Path   string
}

// ParseLocation decompõe um caminho ou URI de entrada.
func ParseLocation(uri string) (Location, error) {
	if strings.TrimSpace(uri) == "" {
		return Location{}, fmt.Errorf("empty input location")
	}
	if !strings.Contains(uri, "://") {
		return Location{Scheme: "file", Path: uri}, nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return Location{}, fmt.Errorf("invalid input location %q: %w", uri, err)
	}

	switch u.Scheme {
	case "file":
		return Location{Scheme: "file", Path: u.Path}, nil
	case "s3", "gs":
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return Location{}, fmt.Errorf("%s location must be %s://bucket/key, got %q", u.Scheme, u.Scheme, uri)
		}
		return Location{Scheme: u.Scheme, Bucket: u.Host, Key: key}, nil
	default:
		return Location{}, fmt.Errorf("unsupported input scheme %q", u.Scheme)
	}
}

// Open abre o objeto indicado. Objetos remotos são baixados inteiros para a memória.
func (o *Opener) Open(ctx context.Context, uri string) (Object, error) {
	loc, err := ParseLocation(uri)
	if err != nil {
		return nil, err
	}

	switch loc.Scheme {
	case "s3":
		data, err := o.fetchS3(ctx, loc.Bucket, loc.Key)
		if err != nil {
			return nil, err
		}
		return newMemoryObject(data), nil
	case "gs":
		data, err := o.fetchGCS(ctx, loc.Bucket, loc.Key)
		if err != nil {
			return nil, err
		}
		return newMemoryObject(data), nil
	default:
		f, err := os.Open(loc.Path)
		if err != nil {
			return nil, fmt.Errorf("error opening %s: %w", loc.Path, err)
		}
		return f, nil
	}
}

// Close libera os clientes remotos criados.
func (o *Opener) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.gcsClient != nil {
		err := o.gcsClient.Close()
		o.gcsClient = nil
		return err
	}
	return nil
}

type memoryObject struct {
	*bytes.Reader
}

func newMemoryObject(data []byte) *memoryObject {
	return &memoryObject{Reader: bytes.NewReader(data)}
}

func (m *memoryObject) Close() error { return nil }

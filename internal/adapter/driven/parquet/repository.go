package parquet

import (
	"context"
	"fmt"

	"github.com/apache/arrow/go/v15/arrow/memory"
	"github.com/apache/arrow/go/v15/parquet/file"
	"github.com/apache/arrow/go/v15/parquet/pqarrow"

	"github.com/diillson/fraud-dashboard-go/internal/adapter/driven/storage"
	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
	"github.com/diillson/fraud-dashboard-go/internal/domain/repository"
)

// ObjectOpener abre um caminho local ou remoto para leitura aleatória.
type ObjectOpener interface {
	Open(ctx context.Context, uri string) (storage.Object, error)
}

// Repository implementa os repositórios de transações e de câmbio sobre arquivos parquet.
type Repository struct {
	opener ObjectOpener
	mem    memory.Allocator
}

// NewRepository cria um Repository que lê objetos pelo opener informado.
func NewRepository(opener ObjectOpener) *Repository {
	return &Repository{opener: opener, mem: memory.DefaultAllocator}
}

var (
	_ repository.TransactionRepository = (*Repository)(nil)
	_ repository.RateRepository        = (*Repository)(nil)
)

// OpenTransactions abre o arquivo e lê apenas os metadados; os dados são lidos sob demanda.
func (r *Repository) OpenTransactions(ctx context.Context, uri string) (repository.TransactionFile, error) {
	obj, rdr, fr, err := r.open(ctx, uri)
	if err != nil {
		return nil, err
	}
	return &transactionFile{obj: obj, rdr: rdr, fr: fr}, nil
}

// LoadRates lê a tabela de câmbio inteira.
func (r *Repository) LoadRates(ctx context.Context, uri string) (*entity.RateTable, error) {
	obj, _, fr, err := r.open(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	tbl, err := fr.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading rates table: %w", err)
	}
	defer tbl.Release()

	return decodeRates(tbl)
}

func (r *Repository) open(ctx context.Context, uri string) (storage.Object, *file.Reader, *pqarrow.FileReader, error) {
	obj, err := r.opener.Open(ctx, uri)
	if err != nil {
		return nil, nil, nil, err
	}

	rdr, err := file.NewParquetReader(obj)
	if err != nil {
		obj.Close()
		return nil, nil, nil, fmt.Errorf("invalid parquet file %s: %w", uri, err)
	}

	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{Parallel: true, BatchSize: recordChunk}, r.mem)
	if err != nil {
		obj.Close()
		return nil, nil, nil, fmt.Errorf("error creating arrow reader for %s: %w", uri, err)
	}
	return obj, rdr, fr, nil
}

package repository

import (
	"context"

	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
)

// TransactionFile é um arquivo colunar de transações aberto, organizado em row groups.
type TransactionFile interface {
	NumRowGroups() int
	NumRows() int64

	// ReadRowGroups lê apenas os row groups indicados, na ordem recebida.
	ReadRowGroups(ctx context.Context, groups []int) ([]entity.RawTransaction, error)
	// ReadAll lê o arquivo inteiro.
	ReadAll(ctx context.Context) ([]entity.RawTransaction, error)

	Close() error
}

// TransactionRepository abre arquivos de transações a partir de um caminho ou URI.
type TransactionRepository interface {
	OpenTransactions(ctx context.Context, uri string) (TransactionFile, error)
}

// RateRepository carrega a tabela de taxas de câmbio.
type RateRepository interface {
	LoadRates(ctx context.Context, uri string) (*entity.RateTable, error)
}

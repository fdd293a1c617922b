package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
	"github.com/diillson/fraud-dashboard-go/internal/domain/repository"
)

// DefaultSampleGroups é o número de row groups lidos na amostra inicial.
const DefaultSampleGroups = 3

// Sample é o resultado bruto de uma leitura parcial ou completa.
type Sample struct {
	Records   []entity.RawTransaction
	RowGroups []int
	TotalRows int64
}

// Rows retorna o número de registros lidos.
func (s Sample) Rows() int {
	return len(s.Records)
}

// Sampler escolhe row groups aleatórios de um arquivo de transações.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler cria um Sampler; rng nil usa uma fonte aleatória nova.
func NewSampler(rng *rand.Rand) *Sampler {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Sampler{rng: rng}
}

// ChooseGroups escolhe min(k, total) índices distintos de forma uniforme, sem reposição.
// k <= 0 seleciona todos os grupos.
func (s *Sampler) ChooseGroups(total, k int) []int {
	if total <= 0 {
		return []int{}
	}
	if k <= 0 || k > total {
		k = total
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Perm(total)[:k]
}

// Read lê k row groups aleatórios do arquivo. Cada grupo escolhido é lido uma única vez.
func (s *Sampler) Read(ctx context.Context, file repository.TransactionFile, k int) (Sample, error) {
	groups := s.ChooseGroups(file.NumRowGroups(), k)
	if len(groups) == 0 {
		return Sample{RowGroups: groups}, nil
	}
	records, err := file.ReadRowGroups(ctx, groups)
	if err != nil {
		return Sample{}, fmt.Errorf("error reading row groups %v: %w", groups, err)
	}
	return Sample{Records: records, RowGroups: groups, TotalRows: file.NumRows()}, nil
}

package entity

import "time"

// DatasetSource identifica a origem de um snapshot.
type DatasetSource string

const (
	SourceEmpty  DatasetSource = "empty"
	SourceSample DatasetSource = "sample"
	SourceFull   DatasetSource = "full"
)

// Snapshot é um conjunto de dados pré-processado e imutável.
// Nenhum componente altera Transactions ou Rates depois da criação.
type Snapshot struct {
	Version      uint64
	Source       DatasetSource
	Transactions []Transaction
	Rates        *RateTable
	RowGroups    []int
	LoadedAt     time.Time
}

// Info retorna o resumo do snapshot usado nos relatórios.
func (s *Snapshot) Info() DatasetInfo {
	if s == nil {
		return DatasetInfo{Source: SourceEmpty}
	}
	return DatasetInfo{Source: s.Source, Version: s.Version, Rows: len(s.Transactions)}
}

// DatasetStatus é o estado do contexto de dados exposto à camada de apresentação.
type DatasetStatus struct {
	DatasetInfo
	RowGroups  []int     `json:"row_groups,omitempty"`
	LoadedAt   time.Time `json:"loaded_at"`
	Currencies int       `json:"currencies"`
	RateDates  int       `json:"rate_dates"`
	Loading    bool      `json:"loading"`
	LastError  string    `json:"last_error,omitempty"`
}

package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/diillson/fraud-dashboard-go/internal/domain/entity"
	"github.com/diillson/fraud-dashboard-go/internal/domain/repository"
	"github.com/diillson/fraud-dashboard-go/internal/domain/service"
	"github.com/diillson/fraud-dashboard-go/internal/shared/types"
)

// DatasetOptions identifica as entradas do contexto de dados.
type DatasetOptions struct {
	TransactionsURI string
	RatesURI        string
	SampleGroups    int
}

// DatasetContext guarda o snapshot atual do conjunto de dados.
// Leitores sempre obtêm um snapshot completo; uma carga nova só substitui o atual depois de pré-processada.
type DatasetContext struct {
	txRepo   repository.TransactionRepository
	rateRepo repository.RateRepository
	sampler  *service.Sampler
	opts     DatasetOptions
	log      types.LogInterface

	current atomic.Pointer[entity.Snapshot]
	version atomic.Uint64
	loading atomic.Bool
	loads   singleflight.Group
	wg      sync.WaitGroup

	mu      sync.Mutex
	lastErr string
}

// NewDatasetContext cria um contexto com um snapshot vazio.
func NewDatasetContext(
	txRepo repository.TransactionRepository,
	rateRepo repository.RateRepository,
	sampler *service.Sampler,
	opts DatasetOptions,
	log types.LogInterface,
) *DatasetContext {
	if sampler == nil {
		sampler = service.NewSampler(nil)
	}
	dc := &DatasetContext{
		txRepo:   txRepo,
		rateRepo: rateRepo,
		sampler:  sampler,
		opts:     opts,
		log:      log,
	}
	dc.current.Store(&entity.Snapshot{
		Source:       entity.SourceEmpty,
		Transactions: []entity.Transaction{},
		Rates:        entity.NewRateTable(nil),
	})
	return dc
}

// Current retorna o snapshot atual. Nunca retorna nil.
func (dc *DatasetContext) Current() *entity.Snapshot {
	return dc.current.Load()
}

// LoadSample carrega a amostra inicial. Em caso de falha o snapshot passa a ser vazio,
// com tabela de câmbio vazia, e o erro é devolvido apenas para informação.
func (dc *DatasetContext) LoadSample(ctx context.Context) (*entity.Snapshot, error) {
	snap, err := dc.load(ctx, false)
	if err != nil {
		dc.setLastError(err)
		dc.log.LogWarning("Failed to load transaction sample: %s", err)
		snap = &entity.Snapshot{
			Version:      dc.version.Add(1),
			Source:       entity.SourceEmpty,
			Transactions: []entity.Transaction{},
			Rates:        entity.NewRateTable(nil),
			LoadedAt:     time.Now(),
		}
	} else {
		dc.setLastError(nil)
	}
	dc.current.Store(snap)
	return snap, err
}

// LoadFull relê o arquivo inteiro. Chamadas simultâneas compartilham a mesma carga.
// Se a carga falhar o snapshot atual é mantido.
func (dc *DatasetContext) LoadFull(ctx context.Context) (*entity.Snapshot, error) {
	v, err, _ := dc.loads.Do("full", func() (interface{}, error) {
		dc.loading.Store(true)
		defer dc.loading.Store(false)

		snap, err := dc.load(ctx, true)
		if err != nil {
			dc.setLastError(err)
			dc.log.LogError("Failed to load full dataset: %s", err)
			return nil, err
		}
		dc.setLastError(nil)
		dc.current.Store(snap)
		dc.log.LogSuccess("Full dataset loaded: %d transactions", len(snap.Transactions))
		return snap, nil
	})
	if err != nil {
		return dc.Current(), err
	}
	return v.(*entity.Snapshot), nil
}

// StartFullLoad dispara LoadFull em segundo plano e devolve um canal com o resultado.
func (dc *DatasetContext) StartFullLoad(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	dc.wg.Add(1)
	go func() {
		defer dc.wg.Done()
		_, err := dc.LoadFull(context.WithoutCancel(ctx))
		done <- err
		close(done)
	}()
	return done
}

// Wait bloqueia até que as cargas em segundo plano terminem.
func (dc *DatasetContext) Wait() {
	dc.wg.Wait()
}

// Loading informa se há uma carga completa em andamento.
func (dc *DatasetContext) Loading() bool {
	return dc.loading.Load()
}

// Status resume o snapshot atual e o estado das cargas.
func (dc *DatasetContext) Status() entity.DatasetStatus {
	snap := dc.Current()

	dc.mu.Lock()
	lastErr := dc.lastErr
	dc.mu.Unlock()

	return entity.DatasetStatus{
		DatasetInfo: snap.Info(),
		RowGroups:   snap.RowGroups,
		LoadedAt:    snap.LoadedAt,
		Currencies:  len(snap.Rates.Currencies()),
		RateDates:   snap.Rates.Len(),
		Loading:     dc.Loading(),
		LastError:   lastErr,
	}
}

// Report monta o relatório do snapshot atual para o filtro informado.
func (dc *DatasetContext) Report(f entity.Filter, views []service.GroupSpec) *entity.DashboardReport {
	return service.BuildReport(dc.Current(), f, views)
}

// load lê transações e câmbio em paralelo e pré-processa o resultado.
// A falha do câmbio não interrompe a carga: as conversões ficam indefinidas.
func (dc *DatasetContext) load(ctx context.Context, full bool) (*entity.Snapshot, error) {
	if dc.opts.TransactionsURI == "" {
		return nil, types.ErrNoTransactionsSource
	}

	var (
		sample  service.Sample
		rates   *entity.RateTable
		rateErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sample, err = dc.readTransactions(gctx, full)
		return err
	})
	g.Go(func() error {
		if dc.opts.RatesURI == "" {
			return nil
		}
		rates, rateErr = dc.rateRepo.LoadRates(gctx, dc.opts.RatesURI)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if rateErr != nil {
		dc.log.LogWarning("Exchange rates unavailable, amounts will not be converted: %s", rateErr)
		rates = nil
	}
	if rates == nil {
		rates = entity.NewRateTable(nil)
	}

	source := entity.SourceSample
	if full {
		source = entity.SourceFull
	}

	transactions, rates := service.Preprocess(sample.Records, rates)
	return &entity.Snapshot{
		Version:      dc.version.Add(1),
		Source:       source,
		Transactions: transactions,
		Rates:        rates,
		RowGroups:    sample.RowGroups,
		LoadedAt:     time.Now(),
	}, nil
}

func (dc *DatasetContext) readTransactions(ctx context.Context, full bool) (service.Sample, error) {
	file, err := dc.txRepo.OpenTransactions(ctx, dc.opts.TransactionsURI)
	if err != nil {
		return service.Sample{}, fmt.Errorf("error opening transactions: %w", err)
	}
	defer file.Close()

	if !full {
		return dc.sampler.Read(ctx, file, dc.opts.SampleGroups)
	}

	records, err := file.ReadAll(ctx)
	if err != nil {
		return service.Sample{}, fmt.Errorf("error reading transactions: %w", err)
	}
	groups := make([]int, file.NumRowGroups())
	for i := range groups {
		groups[i] = i
	}
	return service.Sample{Records: records, RowGroups: groups, TotalRows: file.NumRows()}, nil
}

func (dc *DatasetContext) setLastError(err error) {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	if err == nil {
		dc.lastErr = ""
		return
	}
	dc.lastErr = err.Error()
}

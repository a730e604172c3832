package pipeline_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FedericoMusa/incident-data-etl/internal/domain"
	"github.com/FedericoMusa/incident-data-etl/internal/observability"
	"github.com/FedericoMusa/incident-data-etl/internal/pipeline"
)

// --- mocks ---

type mockReader struct {
	batches [][]domain.RawReport
	index   atomic.Int64
}

func (m *mockReader) ReadBatch(ctx context.Context, _ int) ([]domain.RawReport, error) {
	i := int(m.index.Add(1) - 1)
	if i >= len(m.batches) {
		// block until context cancelled to simulate waiting for messages
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.batches[i], nil
}

type mockTransformer struct {
	err error
}

func (m *mockTransformer) Transform(_ context.Context, raw domain.RawReport) (domain.Incident, error) {
	if m.err != nil {
		return domain.Incident{}, m.err
	}
	return domain.Incident{ID: string(raw.Key), RawPayload: raw.Value}, nil
}

type mockLoader struct {
	loaded []domain.Incident
	err    error
}

func (m *mockLoader) LoadBatch(_ context.Context, incidents []domain.Incident) error {
	if m.err != nil {
		return m.err
	}
	m.loaded = append(m.loaded, incidents...)
	return nil
}

func newTestMetrics() *observability.Metrics {
	// Use a fresh registry to avoid "already registered" panics in tests.
	return observability.NewMetricsForTesting()
}

func makeRawReport(id string) domain.RawReport {
	return domain.RawReport{
		Key:   []byte(id),
		Value: []byte(`{"file":"` + id + `.pdf","text":"YPF S.A. Comunicado Incidente"}`),
		Topic: "raw-incident-reports",
	}
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	raw := makeRawReport("inc-1")

	rdr := &mockReader{batches: [][]domain.RawReport{{raw}}}
	tfm := &mockTransformer{}
	ldr := &mockLoader{}

	p := pipeline.New(rdr, tfm, ldr, slog.Default(), newTestMetrics(), 10)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	require.Len(t, ldr.loaded, 1)
	assert.Equal(t, "inc-1", ldr.loaded[0].ID)
	assert.NoError(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_ContextCancellation(t *testing.T) {
	rdr := &mockReader{} // no batches, will block
	p := pipeline.New(rdr, &mockTransformer{}, &mockLoader{}, slog.Default(), newTestMetrics(), 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_TransformErrorSkipsAndCommits(t *testing.T) {
	var committed atomic.Bool
	raw := makeRawReport("inc-2")
	raw.Commit = func(_ context.Context) error {
		committed.Store(true)
		return nil
	}

	rdr := &mockReader{batches: [][]domain.RawReport{{raw}}}
	tfm := &mockTransformer{err: errors.New("unreadable document")}
	ldr := &mockLoader{}

	p := pipeline.New(rdr, tfm, ldr, slog.Default(), newTestMetrics(), 10)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, ldr.loaded)
	// bad documents must not wedge the consumer group
	assert.True(t, committed.Load())
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_CommitsAfterLoad(t *testing.T) {
	var committed atomic.Bool
	raw := makeRawReport("inc-3")
	raw.Commit = func(_ context.Context) error {
		committed.Store(true)
		return nil
	}

	rdr := &mockReader{batches: [][]domain.RawReport{{raw}}}
	p := pipeline.New(rdr, &mockTransformer{}, &mockLoader{}, slog.Default(), newTestMetrics(), 10)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.True(t, committed.Load())
}

func TestPipeline_Run_LoadErrorDoesNotCommit(t *testing.T) {
	var committed atomic.Bool
	raw := makeRawReport("inc-4")
	raw.Commit = func(_ context.Context) error {
		committed.Store(true)
		return nil
	}

	rdr := &mockReader{batches: [][]domain.RawReport{{raw}}}
	ldr := &mockLoader{err: errors.New("sink unavailable")}

	p := pipeline.New(rdr, &mockTransformer{}, ldr, slog.Default(), newTestMetrics(), 10)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := p.Run(ctx)
	require.NoError(t, err)
	assert.False(t, committed.Load())
}

func TestFanout_DeliversToAllLoaders(t *testing.T) {
	first := &mockLoader{}
	second := &mockLoader{}
	f := pipeline.Fanout{first, second}

	incidents := []domain.Incident{{ID: "inc-5"}}
	require.NoError(t, f.LoadBatch(context.Background(), incidents))
	assert.Len(t, first.loaded, 1)
	assert.Len(t, second.loaded, 1)
}

func TestFanout_FirstFailureAborts(t *testing.T) {
	failing := &mockLoader{err: errors.New("down")}
	second := &mockLoader{}
	f := pipeline.Fanout{failing, second}

	err := f.LoadBatch(context.Background(), []domain.Incident{{ID: "inc-6"}})
	require.Error(t, err)
	assert.Empty(t, second.loaded)
}

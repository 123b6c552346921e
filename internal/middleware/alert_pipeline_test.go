package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"CloudLab/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProc struct {
	mu   sync.Mutex
	fail bool
	got  []*models.Alert
}

func (f *fakeProc) Process(_ context.Context, a *models.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broker down")
	}
	f.got = append(f.got, a)
	return nil
}

func (f *fakeProc) ProcessBatch(_ context.Context, alerts []*models.Alert) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return 0, errors.New("broker down")
	}
	f.got = append(f.got, alerts...)
	return len(alerts), nil
}

func (f *fakeProc) setFail(v bool) {
	f.mu.Lock()
	f.fail = v
	f.mu.Unlock()
}

func (f *fakeProc) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.got)
}

func alert(geo string) *models.Alert {
	return &models.Alert{ID: "a-" + geo, RunID: "run", Geo: geo, Hour: 3, CreatedAt: time.Now()}
}

func TestAlertPipeline_DropsInvalidAlerts(t *testing.T) {
	proc := &fakeProc{}
	p := NewAlertPipeline(proc, nil)

	bad := alert("US")
	bad.Hour = 30
	n, err := p.ProcessBatch(context.Background(), []*models.Alert{alert("US"), bad, nil})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, proc.count())

	n, err = p.ProcessBatch(context.Background(), []*models.Alert{nil})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAlertPipeline_BuffersAndFlushes(t *testing.T) {
	proc := &fakeProc{fail: true}
	p := NewAlertPipeline(proc, nil, WithBufferSize(4))

	_, err := p.ProcessBatch(context.Background(), []*models.Alert{alert("DE")})
	require.Error(t, err)
	assert.Equal(t, 1, p.Buffered())

	proc.setFail(false)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)
	defer p.Stop()

	assert.Eventually(t, func() bool { return proc.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Zero(t, p.Buffered())
}

func TestAlertPipeline_ProcessBatchCountsDelivered(t *testing.T) {
	proc := &fakeProc{}
	p := NewAlertPipeline(proc, nil, WithMaxPerGeo(2))
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	bad := alert("US")
	bad.Geo = ""
	batch := []*models.Alert{alert("CN"), alert("CN"), alert("CN"), alert("BR"), bad}

	n, err := p.ProcessBatch(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, n, proc.count())

	n, err = p.ProcessBatch(context.Background(), []*models.Alert{alert("CN")})
	require.NoError(t, err)
	assert.Zero(t, n)

	now = now.Add(time.Second)
	n, err = p.ProcessBatch(context.Background(), []*models.Alert{alert("CN"), alert("CN")})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestAlertPipeline_ProcessBatchBuffersOnFailure(t *testing.T) {
	proc := &fakeProc{fail: true}
	p := NewAlertPipeline(proc, nil, WithBufferSize(8))

	n, err := p.ProcessBatch(context.Background(), []*models.Alert{alert("DE"), alert("FR")})
	require.Error(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 2, p.Buffered())
}

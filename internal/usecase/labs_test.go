package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"CloudLab/internal/domain/models"
	"CloudLab/internal/middleware"
	"CloudLab/internal/services/fraud"
	"CloudLab/internal/services/soc"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolioUseCase_EndToEnd(t *testing.T) {
	f := newFakeMarket()
	f.prices = models.SpotPrices{"bitcoin": {"usd": 50000}, "ethereum": {"usd": 3000}}
	m := newMarketData(f, newFakeCache())
	uc := NewPortfolioUseCase(m, nil)

	out, err := uc.Allocate(context.Background(), models.AllocationInput{
		Tokens:        []string{"bitcoin", "ethereum"},
		Allocations:   map[string]float64{"bitcoin": 50, "ethereum": 50},
		PortfolioSize: 10000,
	})
	require.NoError(t, err)
	require.Len(t, out.Assets, 2)

	assert.True(t, out.Assets[0].Value.Equal(decimal.NewFromInt(5000)))
	assert.True(t, out.Assets[1].Value.Equal(decimal.NewFromInt(5000)))
	assert.True(t, out.TotalAllocated.Equal(decimal.NewFromInt(10000)))
	assert.Empty(t, out.PricesNotice)
}

func TestPortfolioUseCase_PricesUnavailable(t *testing.T) {
	f := newFakeMarket()
	f.fail = true
	uc := NewPortfolioUseCase(newMarketData(f, newFakeCache()), nil)

	out, err := uc.Allocate(context.Background(), models.AllocationInput{
		Tokens:        []string{"bitcoin"},
		Allocations:   map[string]float64{"bitcoin": 100},
		PortfolioSize: 100,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.PricesNotice)
	assert.True(t, out.Assets[0].Value.Equal(decimal.NewFromInt(100)))
	assert.Nil(t, out.Assets[0].Units)
}

func TestPortfolioUseCase_MixedCaseTokensGetPrices(t *testing.T) {
	f := newFakeMarket()
	f.prices = models.SpotPrices{"bitcoin": {"usd": 50000}}
	uc := NewPortfolioUseCase(newMarketData(f, newFakeCache()), nil)

	out, err := uc.Allocate(context.Background(), models.AllocationInput{
		Tokens:        []string{"Bitcoin", "bitcoin"},
		Allocations:   map[string]float64{"Bitcoin": 100},
		PortfolioSize: 5000,
	})
	require.NoError(t, err)
	require.Len(t, out.Assets, 1)
	require.NotNil(t, out.Assets[0].Units)
	assert.Equal(t, "0.1", out.Assets[0].Units.String())
	assert.Empty(t, out.PricesNotice)
}

func TestSOCLab_HuntForwardsAnomalies(t *testing.T) {
	sink := &fakeSink{}
	lab := NewSOCLab(sink, soc.DefaultDetectOptions(), nil, nil)

	rep, err := lab.Hunt(context.Background(), 800, 42)
	require.NoError(t, err)

	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, uint64(42), rep.Seed)
	assert.Equal(t, rep.Summary.AnomalyCount, len(rep.Anomalies))
	assert.Equal(t, len(rep.Anomalies), rep.AlertsForwarded)
	require.Len(t, sink.got, rep.AlertsForwarded)
	assert.Equal(t, 1, sink.calls)
	for _, a := range sink.got {
		assert.Equal(t, rep.RunID, a.RunID)
		assert.NotEmpty(t, a.ID)
	}
}

func TestSOCLab_ForwardedCountsOnlyDelivered(t *testing.T) {
	sink := &fakeSink{}
	pipe := middleware.NewAlertPipeline(sink, nil, middleware.WithMaxPerGeo(1))
	lab := NewSOCLab(pipe, soc.DefaultDetectOptions(), nil, nil)

	rep, err := lab.Hunt(context.Background(), 800, 7)
	require.NoError(t, err)

	geos := make(map[string]struct{})
	for _, r := range rep.Anomalies {
		geos[r.Geo] = struct{}{}
	}
	assert.Equal(t, len(sink.got), rep.AlertsForwarded)
	assert.Equal(t, len(geos), rep.AlertsForwarded)
	assert.Less(t, rep.AlertsForwarded, len(rep.Anomalies))

	wide := NewSOCLab(middleware.NewAlertPipeline(&fakeSink{}, nil, middleware.WithMaxPerGeo(50)), soc.DefaultDetectOptions(), nil, nil)
	rep, err = wide.Hunt(context.Background(), 800, 7)
	require.NoError(t, err)
	assert.Equal(t, len(rep.Anomalies), rep.AlertsForwarded)
}

func TestSOCLab_NoneBackendDeliversNothing(t *testing.T) {
	lab := NewSOCLab(NewAlertProcessor(nil, nil, nil, BackendNone), soc.DefaultDetectOptions(), nil, nil)
	rep, err := lab.Hunt(context.Background(), 300, 1)
	require.NoError(t, err)
	assert.NotEmpty(t, rep.Anomalies)
	assert.Zero(t, rep.AlertsForwarded)
}

func TestSOCLab_ForwardFailureIsNotFatal(t *testing.T) {
	lab := NewSOCLab(&fakeSink{fail: true}, soc.DefaultDetectOptions(), nil, nil)
	rep, err := lab.Hunt(context.Background(), 300, 1)
	require.NoError(t, err)
	assert.Zero(t, rep.AlertsForwarded)

	noSink := NewSOCLab(nil, soc.DefaultDetectOptions(), nil, nil)
	rep, err = noSink.Hunt(context.Background(), 300, 1)
	require.NoError(t, err)
	assert.Zero(t, rep.AlertsForwarded)
}

func TestFraudLab(t *testing.T) {
	cfg := FraudLabConfig{SyntheticFallback: true, SyntheticRows: 400, Seed: 9, Options: fraud.DefaultAnalyzeOptions()}
	lab := NewFraudLab(cfg, nil, nil)
	ctx := context.Background()

	rep, err := lab.Analyze(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, FraudSourceSynthetic, rep.Source)
	assert.Equal(t, 400, rep.Rows)
	assert.True(t, rep.Labeled)

	rep, err = lab.Analyze(ctx, strings.NewReader("amount,hour\n1,2\n"))
	require.NoError(t, err)
	assert.Equal(t, FraudSourceSynthetic, rep.Source)
	assert.Contains(t, rep.Notice, "merchant_category")

	var b strings.Builder
	b.WriteString("amount,hour,merchant_category,card_present\n")
	for _, tx := range fraud.GenerateTransactions(200, 4) {
		fmt.Fprintf(&b, "%.2f,%d,%s,%t\n", tx.Amount, tx.Hour, tx.MerchantCategory, tx.CardPresent)
	}
	rep, err = lab.Analyze(ctx, strings.NewReader(b.String()))
	require.NoError(t, err)
	assert.Equal(t, FraudSourceUpload, rep.Source)
	assert.False(t, rep.Labeled)
	assert.Equal(t, 200, rep.Rows)

	strict := NewFraudLab(FraudLabConfig{Options: fraud.DefaultAnalyzeOptions()}, nil, nil)
	_, err = strict.Analyze(ctx, strings.NewReader("nope\n"))
	assert.ErrorIs(t, err, models.ErrInvalidUpload)
}

func TestAlertProcessor_Routing(t *testing.T) {
	ctx := context.Background()
	a := &models.Alert{ID: "1", RunID: "r", Geo: "US"}

	pub := &fakePublisher{}
	kafka := NewAlertProcessor(pub, nil, nil, BackendKafka)
	require.NoError(t, kafka.Process(ctx, a))
	n, err := kafka.ProcessBatch(ctx, []*models.Alert{a, a})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, pub.published, 3)
	_, err = kafka.Recent(ctx, 10, "")
	assert.ErrorIs(t, err, ErrAlertsDisabled)

	store := &fakeStorage{}
	ch := NewAlertProcessor(nil, store, nil, BackendClickHouse)
	require.NoError(t, ch.Process(ctx, a))
	require.NoError(t, ch.Process(ctx, &models.Alert{ID: "2", RunID: "r", Geo: "DE"}))
	recent, err := ch.Recent(ctx, 10, "DE")
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "2", recent[0].ID)

	none := NewAlertProcessor(nil, nil, nil, "")
	assert.False(t, none.Enabled())
	assert.NoError(t, none.Process(ctx, a))

	store.err = errUpstream
	assert.ErrorIs(t, ch.Process(ctx, a), errUpstream)

	bogus := NewAlertProcessor(nil, nil, nil, "s3")
	assert.Error(t, bogus.Process(ctx, a))
	assert.Error(t, kafka.Process(ctx, nil))

	kafka.Close()
	assert.True(t, pub.closed)
}

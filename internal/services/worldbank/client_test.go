package worldbank

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchIndicators(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/source/2/indicator", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		_, _ = w.Write([]byte(`[{"page":1,"pages":1,"per_page":2000,"total":3},[
			{"id":"NY.GDP.MKTP.CD","name":"GDP (current US$)","sourceNote":"GDP at purchaser's prices","source":{"id":"2","value":"World Development Indicators"}},
			{"id":"FP.CPI.TOTL.ZG","name":"Inflation, consumer prices (annual %)","source":{"id":"2","value":"World Development Indicators"}},
			{"id":"NY.GDP.PCAP.CD","name":"GDP per capita (current US$)","source":{"id":"2","value":"World Development Indicators"}}
		]]`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	got, err := c.SearchIndicators(context.Background(), "gdp")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "NY.GDP.MKTP.CD", got[0].ID)
	assert.Equal(t, "World Development Indicators", got[0].Source)

	got, err = c.SearchIndicators(context.Background(), "fp.cpi")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Name, "Inflation")
}

func TestIndicatorSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/country/SGP/indicator/NY.GDP.MKTP.CD", r.URL.Path)
		assert.Equal(t, "2020:2022", r.URL.Query().Get("date"))
		_, _ = w.Write([]byte(`[{"page":1,"pages":1,"per_page":500,"total":3},[
			{"indicator":{"id":"NY.GDP.MKTP.CD","value":"GDP (current US$)"},"country":{"id":"SG","value":"Singapore"},"countryiso3code":"SGP","date":"2022","value":null},
			{"indicator":{"id":"NY.GDP.MKTP.CD","value":"GDP (current US$)"},"country":{"id":"SG","value":"Singapore"},"countryiso3code":"SGP","date":"2021","value":423796950000.5},
			{"indicator":{"id":"NY.GDP.MKTP.CD","value":"GDP (current US$)"},"country":{"id":"SG","value":"Singapore"},"countryiso3code":"SGP","date":"2020","value":349488382611.9}
		]]`))
	}))
	defer srv.Close()

	s, err := New(srv.URL).IndicatorSeries(context.Background(), "sgp", "NY.GDP.MKTP.CD", 2020, 2022)
	require.NoError(t, err)

	assert.Equal(t, "Singapore", s.CountryName)
	assert.Equal(t, "GDP (current US$)", s.IndicatorName)
	require.Len(t, s.Points, 3)
	assert.Equal(t, 2020, s.Points[0].Year)
	require.NotNil(t, s.Points[1].Value)
	assert.Equal(t, 423796950000.5, *s.Points[1].Value)
	assert.Nil(t, s.Points[2].Value)
}

func TestIndicatorSeries_NoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"page":0,"pages":0,"per_page":500,"total":0},null]`))
	}))
	defer srv.Close()

	s, err := New(srv.URL).IndicatorSeries(context.Background(), "SGP", "X.Y", 2000, 2001)
	require.NoError(t, err)
	assert.Empty(t, s.Points)
}

func TestIndicatorSeries_APIMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"message":[{"id":"120","key":"Invalid value","value":"The provided parameter value is not valid"}]}]`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).IndicatorSeries(context.Background(), "ZZZ", "X.Y", 2000, 2001)
	assert.ErrorContains(t, err, "Invalid value")
}

package clickhouse

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresHost(t *testing.T) {
	_, err := NewClient(WithPort(9000))
	assert.Error(t, err)
}

func TestBuildDSN(t *testing.T) {
	cfg := defaultConfig()
	WithHost("ch.local")(cfg)
	WithDatabase("cloudlab")(cfg)
	WithCredentials("soc", "p@ss")(cfg)
	WithMaxExecutionTime(30 * time.Second)(cfg)
	WithAsyncInsert(true, true)(cfg)

	u, err := url.Parse(buildDSN(*cfg))
	require.NoError(t, err)

	assert.Equal(t, "clickhouse", u.Scheme)
	assert.Equal(t, "ch.local:9000", u.Host)
	assert.Equal(t, "/cloudlab", u.Path)
	assert.Equal(t, "soc", u.User.Username())
	pw, _ := u.User.Password()
	assert.Equal(t, "p@ss", pw)

	q := u.Query()
	assert.Equal(t, "30", q.Get("max_execution_time"))
	assert.Equal(t, "1", q.Get("async_insert"))
	assert.Equal(t, "1", q.Get("wait_for_async_insert"))
	assert.Equal(t, "5s", q.Get("dial_timeout"))
}

func TestBuildDSNHTTP(t *testing.T) {
	cfg := defaultConfig()
	WithHost("ch")(cfg)
	WithPort(8123)(cfg)
	WithHTTP(true)(cfg)

	u, err := url.Parse(buildDSN(*cfg))
	require.NoError(t, err)
	assert.Equal(t, "http", u.Scheme)
	assert.Equal(t, "ch:8123", u.Host)
	assert.Empty(t, u.Query().Get("async_insert"))
}

type recordingExecer struct {
	stmts  []string
	failAt int
}

func (r *recordingExecer) ExecContext(_ context.Context, query string, _ ...interface{}) (sql.Result, error) {
	r.stmts = append(r.stmts, query)
	if len(r.stmts) == r.failAt {
		return nil, errors.New("syntax error")
	}
	return nil, nil
}

func TestInitSchema(t *testing.T) {
	ex := &recordingExecer{}
	require.NoError(t, InitSchema(context.Background(), ex, []string{"CREATE DATABASE a", "CREATE TABLE a.t"}))
	assert.Equal(t, []string{"CREATE DATABASE a", "CREATE TABLE a.t"}, ex.stmts)

	ex = &recordingExecer{failAt: 1}
	err := InitSchema(context.Background(), ex, []string{"CREATE DATABASE a", "CREATE TABLE a.t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statement 1")
	assert.Len(t, ex.stmts, 1)
}

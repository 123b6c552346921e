package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"CloudLab/internal/domain/models"
	domrepo "CloudLab/internal/domain/repository"
	pkgch "CloudLab/pkg/clickhouse"
	applogger "CloudLab/pkg/logger"
)

const (
	alertTable   = "soc_alerts"
	alertColumns = "id, run_id, created_at, geo, hour, device_risk, vpn, outcome, score"
	insertChunk  = 2000
)

// CHAlertStore implements AlertStorage backed by ClickHouse.
type CHAlertStore struct {
	db       *sql.DB
	database string
	table    string
	l        *applogger.Logger
}

// NewCHAlertStore stores alerts in <database>.soc_alerts.
func NewCHAlertStore(ch *pkgch.Client) *CHAlertStore {
	return newCHAlertStore(ch.DB(), ch.Database())
}

func newCHAlertStore(db *sql.DB, database string) *CHAlertStore {
	if database == "" {
		database = "default"
	}
	return &CHAlertStore{
		db:       db,
		database: database,
		table:    database + "." + alertTable,
	}
}

var _ domrepo.AlertStorage = (*CHAlertStore)(nil)

// SetLogger injects a structured logger.
func (s *CHAlertStore) SetLogger(l *applogger.Logger) { s.l = l }

// Table returns the fully qualified table name.
func (s *CHAlertStore) Table() string { return s.table }

// schema returns the idempotent DDL for the alert table.
func (s *CHAlertStore) schema() []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", s.database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
            id          String,
            run_id      String,
            created_at  DateTime64(3, 'UTC'),
            geo         LowCardinality(String),
            hour        UInt8,
            device_risk UInt8,
            vpn         UInt8,
            outcome     LowCardinality(String),
            score       Float64
        ) ENGINE = MergeTree
        PARTITION BY toYYYYMM(created_at)
        ORDER BY (geo, created_at, id)
        TTL toDateTime(created_at) + INTERVAL 30 DAY`, s.table),
	}
}

func (s *CHAlertStore) Init(ctx context.Context) error {
	if err := pkgch.InitSchema(ctx, s.db, s.schema()); err != nil {
		return fmt.Errorf("init alert schema: %w", err)
	}
	return nil
}

func (s *CHAlertStore) Store(ctx context.Context, a *models.Alert) error {
	return s.StoreBatch(ctx, []*models.Alert{a})
}

// StoreBatch inserts alerts with multi-row VALUES, insertChunk rows per
// statement. Nil alerts and alerts without an id are skipped.
func (s *CHAlertStore) StoreBatch(ctx context.Context, alerts []*models.Alert) error {
	for start := 0; start < len(alerts); start += insertChunk {
		end := start + insertChunk
		if end > len(alerts) {
			end = len(alerts)
		}

		q, args := s.insertQuery(alerts[start:end])
		if q == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			s.logError("clickhouse alert insert error", err)
			return fmt.Errorf("store alerts: %w", err)
		}
	}
	return nil
}

func (s *CHAlertStore) insertQuery(alerts []*models.Alert) (string, []interface{}) {
	values := make([]string, 0, len(alerts))
	args := make([]interface{}, 0, len(alerts)*9)
	for _, a := range alerts {
		if a == nil || a.ID == "" {
			continue
		}
		created := a.CreatedAt
		if created.IsZero() {
			created = time.Now()
		}
		values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			a.ID,
			a.RunID,
			created.UTC(),
			a.Geo,
			uint8(a.Hour),
			uint8(a.DeviceRisk),
			uint8(a.VPN),
			string(a.Outcome),
			a.Score,
		)
	}
	if len(values) == 0 {
		return "", nil
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", s.table, alertColumns, strings.Join(values, ",")), args
}

// Recent returns up to limit alerts, newest first, optionally for one geo.
func (s *CHAlertStore) Recent(ctx context.Context, limit int, geo string) ([]*models.Alert, error) {
	start := time.Now()
	q, args := s.recentQuery(limit, geo)
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		s.logError("clickhouse recent_alerts query error", err)
		return nil, fmt.Errorf("recent alerts: %w", err)
	}
	defer rows.Close()

	out := make([]*models.Alert, 0, limit)
	for rows.Next() {
		var (
			a               models.Alert
			hour, risk, vpn uint8
			outcome         string
		)
		if err := rows.Scan(&a.ID, &a.RunID, &a.CreatedAt, &a.Geo, &hour, &risk, &vpn, &outcome, &a.Score); err != nil {
			s.logError("clickhouse recent_alerts scan error", err)
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		a.Hour, a.DeviceRisk, a.VPN = int(hour), int(risk), int(vpn)
		a.Outcome = models.Outcome(outcome)
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if s.l != nil {
		s.l.Debug("clickhouse recent_alerts ok",
			applogger.String("geo", geo),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHAlertStore) recentQuery(limit int, geo string) (string, []interface{}) {
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", alertColumns, s.table)
	var args []interface{}
	if geo != "" {
		b.WriteString(" WHERE geo = ?")
		args = append(args, geo)
	}
	b.WriteString(" ORDER BY created_at DESC LIMIT ?")
	args = append(args, limit)
	return b.String(), args
}

func (s *CHAlertStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close is a no-op; the pool belongs to pkg/clickhouse.Client.
func (s *CHAlertStore) Close() error {
	return nil
}

func (s *CHAlertStore) logError(msg string, err error) {
	if s.l != nil {
		s.l.Error(msg, applogger.String("table", s.table), applogger.Error(err))
	}
}

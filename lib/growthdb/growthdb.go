// Package growthdb reads plant-growth time series from the externally owned
// growth_logs table. It never writes and does not manage the schema.
package growthdb

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// The closed set of failure kinds surfaced to the HTTP boundary. Anything
// not wrapped in one of these is treated as unexpected by the caller.
var (
	ErrConnection = errors.New("Database connection failed")
	ErrQuery      = errors.New("Database error")
)

// Config holds the connection parameters read from the environment.
type Config struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

// DSN assembles a postgres connection URL from the config.
func (c Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   c.Name,
	}
	return u.String()
}

// GrowthRecord is one (lot, date) observation as stored.
type GrowthRecord struct {
	LogDate  time.Time
	HeightMM decimal.Decimal
}

// HeightCM converts the stored millimeters to centimeters. Shifting the
// decimal point keeps the division by ten exact.
func (r GrowthRecord) HeightCM() decimal.Decimal {
	return r.HeightMM.Shift(-1)
}

// Store reads growth series over a shared connection pool. Each fetch checks
// out its own connection and releases it on every exit path.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open creates a Store backed by the pgx driver. The pool connects lazily;
// connection failures surface on first use.
func Open(cfg Config) (*Store, error) {
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, wrapKind(ErrConnection, err)
	}
	return NewStore(db), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

const growthSeriesQuery = `SELECT log_date, height_mm FROM growth_logs WHERE lot_id = $1 ORDER BY log_date ASC`

// FetchGrowthSeries returns every observation for lotID in ascending date
// order. An unknown lot yields an empty series and no error.
func (s *Store) FetchGrowthSeries(ctx context.Context, lotID int) ([]GrowthRecord, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, wrapKind(ErrConnection, err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, growthSeriesQuery, lotID)
	if err != nil {
		return nil, wrapKind(ErrQuery, err)
	}
	defer rows.Close()

	var series []GrowthRecord
	for rows.Next() {
		var rec GrowthRecord
		if err := rows.Scan(&rec.LogDate, &rec.HeightMM); err != nil {
			return nil, wrapKind(ErrQuery, err)
		}
		series = append(series, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapKind(ErrQuery, err)
	}
	return series, nil
}

// wrapKind ties a failure to one of the error kinds while keeping the
// driver's message in the detail. errors.Is recovers the kind.
func wrapKind(kind, cause error) error {
	return fmt.Errorf("%w: %v", kind, cause)
}

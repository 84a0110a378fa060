package main

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/agrilabs/growthviz/lib/growthdb"
	"github.com/agrilabs/growthviz/lib/logger"
)

// fakeDB is an in-memory database/sql driver serving canned growth rows per
// lot, with switchable connect and query failures. Rows replay in stored
// order unless the query carries an ascending log_date ORDER BY, so a query
// that loses the clause loses its ordering.
type fakeDB struct {
	mu         sync.Mutex
	rowsByLot  map[int64][][]driver.Value
	connectErr error
	queryErr   error
	lastQuery  string
}

func (d *fakeDB) Open(name string) (driver.Conn, error) {
	if d.connectErr != nil {
		return nil, d.connectErr
	}
	return &fakeConn{d: d}, nil
}

func (d *fakeDB) Connect(context.Context) (driver.Conn, error) { return d.Open("") }
func (d *fakeDB) Driver() driver.Driver                        { return d }

type fakeConn struct {
	d *fakeDB
}

func (c *fakeConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}
func (c *fakeConn) Close() error              { return nil }
func (c *fakeConn) Begin() (driver.Tx, error) { return nil, errors.New("transactions not supported") }

func (c *fakeConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	c.d.mu.Lock()
	c.d.lastQuery = query
	c.d.mu.Unlock()
	if c.d.queryErr != nil {
		return nil, c.d.queryErr
	}
	lot, _ := args[0].Value.(int64)
	rows := c.d.rowsByLot[lot]
	if strings.Contains(query, "ORDER BY log_date ASC") {
		rows = sortedByDate(rows)
	}
	return &fakeRows{rows: rows}, nil
}

func sortedByDate(rows [][]driver.Value) [][]driver.Value {
	sorted := append([][]driver.Value(nil), rows...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i][0].(time.Time).Before(sorted[j][0].(time.Time))
	})
	return sorted
}

type fakeRows struct {
	rows [][]driver.Value
	idx  int
}

func (r *fakeRows) Columns() []string { return []string{"log_date", "height_mm"} }
func (r *fakeRows) Close() error      { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.idx])
	r.idx++
	return nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// testEnv wires a router-ready environment around a fake database.
func testEnv(d *fakeDB) *environment {
	return &environment{
		config: &envConfig{serverPort: defaultServerPort, logName: "growth-test"},
		log:    logger.New(logger.WithOutput(io.Discard)),
		store:  growthdb.NewStore(sql.OpenDB(d)),
	}
}

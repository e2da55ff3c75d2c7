// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/vechain/tokencore/log"
	"github.com/vechain/tokencore/token"
	"github.com/vechain/tokencore/xenv"
)

var logger = log.WithContext("pkg", "logdb")

const insertEventQuery = "INSERT OR REPLACE INTO event(seq, eventIndex, callTime, caller, address, name, args) VALUES (?, ?, ?, ?, ?, ?, ?)"

type LogDB struct {
	path          string
	db            *sql.DB
	stmtCache     *stmtCache
	driverVersion string
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	// a single connection keeps an in-memory database alive and serializes writers
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	return &LogDB{
		path,
		db,
		newStmtCache(db),
		driverVer,
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	db.stmtCache.Clear()
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

func (db *LogDB) DriverVersion() string {
	return db.driverVersion
}

// Write stores events emitted by the call numbered seq.
func (db *LogDB) Write(seq, time uint64, caller token.Address, events []*xenv.Event) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]*Event, 0, len(events))
	for i, ev := range events {
		row, err := newEvent(seq, time, uint32(i), caller, ev)
		if err != nil {
			return errors.Wrap(err, "encode event args")
		}
		rows = append(rows, row)
	}

	return db.execInTx(func(tx *sql.Tx) error {
		stmt, err := db.stmtCache.Prepare(insertEventQuery)
		if err != nil {
			return err
		}
		txStmt := tx.Stmt(stmt)
		defer txStmt.Close()
		for _, ev := range rows {
			if _, err := txStmt.Exec(
				ev.Seq,
				ev.Index,
				ev.Time,
				ev.Caller.Bytes(),
				ev.Address.Bytes(),
				ev.Name,
				string(ev.Args),
			); err != nil {
				return err
			}
		}
		logger.Debug("events written", "seq", seq, "count", len(rows))
		return nil
	})
}

// LastSeq returns the highest call sequence stored, zero if none.
func (db *LogDB) LastSeq(ctx context.Context) (uint64, error) {
	var seq sql.NullInt64
	if err := db.db.QueryRowContext(ctx, "SELECT MAX(seq) FROM event").Scan(&seq); err != nil {
		return 0, err
	}
	if !seq.Valid {
		return 0, nil
	}
	return uint64(seq.Int64), nil
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	const query = "SELECT seq, eventIndex, callTime, caller, address, name, args FROM event"
	if filter == nil {
		return db.queryEvents(ctx, query+" ORDER BY seq ASC, eventIndex ASC")
	}
	metricsHandleEventsFilter(filter)

	var (
		args []any
		sb   strings.Builder
	)
	sb.WriteString(query)
	sb.WriteString(" WHERE 1")
	if filter.Range != nil {
		condition := "seq"
		if filter.Range.Unit == Time {
			condition = "callTime"
		}
		args = append(args, filter.Range.From)
		sb.WriteString(" AND " + condition + " >= ?")
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			sb.WriteString(" AND " + condition + " <= ?")
		}
	}
	for i, criteria := range filter.CriteriaSet {
		if i == 0 {
			sb.WriteString(" AND (( 1")
		} else {
			sb.WriteString(" OR ( 1")
		}
		if criteria.Address != nil {
			args = append(args, criteria.Address.Bytes())
			sb.WriteString(" AND address = ?")
		}
		if criteria.Caller != nil {
			args = append(args, criteria.Caller.Bytes())
			sb.WriteString(" AND caller = ?")
		}
		if criteria.Name != "" {
			args = append(args, criteria.Name)
			sb.WriteString(" AND name = ?")
		}
		sb.WriteString(")")
		if i == len(filter.CriteriaSet)-1 {
			sb.WriteString(")")
		}
	}

	if filter.Order == DESC {
		sb.WriteString(" ORDER BY seq DESC, eventIndex DESC")
	} else {
		sb.WriteString(" ORDER BY seq ASC, eventIndex ASC")
	}

	if filter.Options != nil {
		sb.WriteString(" LIMIT ?, ?")
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, sb.String(), args...)
}

func (db *LogDB) queryEvents(ctx context.Context, query string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq     uint64
			index   uint32
			time    uint64
			caller  []byte
			address []byte
			name    string
			data    string
		)
		if err := rows.Scan(
			&seq,
			&index,
			&time,
			&caller,
			&address,
			&name,
			&data,
		); err != nil {
			return nil, err
		}
		events = append(events, &Event{
			Seq:     seq,
			Index:   index,
			Time:    time,
			Caller:  token.BytesToAddress(caller),
			Address: token.BytesToAddress(address),
			Name:    name,
			Args:    []byte(data),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (db *LogDB) execInTx(proc func(*sql.Tx) error) (err error) {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	if err := proc(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

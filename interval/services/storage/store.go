/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/hashicorp/go-uuid"
	"github.com/hyperledger-labs/zk-interval/interval/services/logging"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

var logger = logging.MustGetLogger()

const (
	SQLite   = "sqlite"
	Postgres = "postgres"
)

var (
	ErrNotFound = errors.New("proof not found")

	drivers = map[string]string{
		SQLite:   "sqlite",
		Postgres: "pgx",
	}
	validPrefix = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

// Record is a stored range proof together with the bounds and the verification outcome.
type Record struct {
	ID        string
	Lower     *big.Int
	Upper     *big.Int
	Proof     []byte
	Valid     bool
	CreatedAt time.Time
}

type Opts struct {
	Driver       string
	DataSource   string
	TablePrefix  string
	MaxOpenConns int
}

type Store struct {
	db    *sql.DB
	table string
}

// Open connects to the configured database and creates the schema when missing.
func Open(opts Opts) (*Store, error) {
	driverName, ok := drivers[opts.Driver]
	if !ok {
		return nil, errors.Errorf("unsupported driver [%s]", opts.Driver)
	}
	db, err := sql.Open(driverName, opts.DataSource)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open [%s] database", opts.Driver)
	}
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	s, err := New(db, opts.TablePrefix)
	if err != nil {
		db.Close()
		return nil, err
	}
	if err := s.CreateSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	logger.Infof("proof store opened with driver [%s], table [%s]", opts.Driver, s.table)
	return s, nil
}

// New wraps an open database. The schema is not touched.
func New(db *sql.DB, prefix string) (*Store, error) {
	if len(prefix) != 0 && !validPrefix.MatchString(prefix) {
		return nil, errors.Errorf("invalid table prefix [%s]", prefix)
	}
	return &Store{db: db, table: prefix + "proofs"}, nil
}

func (s *Store) CreateSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id CHAR(36) NOT NULL PRIMARY KEY,
			lower_bound TEXT NOT NULL,
			upper_bound TEXT NOT NULL,
			proof TEXT NOT NULL,
			valid BOOLEAN NOT NULL,
			created_at BIGINT NOT NULL
		);`, s.table)
	logger.Debug(query)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return errors.Wrapf(err, "failed to create table [%s]", s.table)
	}
	return nil
}

// Put stores r under a fresh id and returns it.
func (s *Store) Put(ctx context.Context, r *Record) (string, error) {
	if r == nil || r.Lower == nil || r.Upper == nil {
		return "", errors.New("record must carry both bounds")
	}
	id, err := uuid.GenerateUUID()
	if err != nil {
		return "", errors.Wrap(err, "failed to generate id")
	}
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	query := fmt.Sprintf("INSERT INTO %s (id, lower_bound, upper_bound, proof, valid, created_at) VALUES ($1, $2, $3, $4, $5, $6)", s.table)
	logger.Debug(query, id)
	_, err = s.db.ExecContext(ctx, query, id, r.Lower.String(), r.Upper.String(), string(r.Proof), r.Valid, createdAt.UnixMilli())
	if err != nil {
		return "", errors.Wrapf(err, "failed to store proof [%s]", id)
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	query := fmt.Sprintf("SELECT lower_bound, upper_bound, proof, valid, created_at FROM %s WHERE id = $1", s.table)
	logger.Debug(query, id)

	var (
		lower, upper, proof string
		valid               bool
		createdAt           int64
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(&lower, &upper, &proof, &valid, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(ErrNotFound, "id [%s]", id)
		}
		return nil, errors.Wrapf(err, "error querying db")
	}
	r := &Record{
		ID:        id,
		Proof:     []byte(proof),
		Valid:     valid,
		CreatedAt: time.UnixMilli(createdAt),
	}
	var ok bool
	if r.Lower, ok = new(big.Int).SetString(lower, 10); !ok {
		return nil, errors.Errorf("invalid lower bound [%s] stored for [%s]", lower, id)
	}
	if r.Upper, ok = new(big.Int).SetString(upper, 10); !ok {
		return nil, errors.Errorf("invalid upper bound [%s] stored for [%s]", upper, id)
	}
	return r, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

package xpgx

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool оборачивает pgxpool методами, которые принимают squirrel билдеры.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Execx(ctx context.Context, sqlizer squirrel.Sqlizer) (pgconn.CommandTag, error)
	// Getx сканирует первую строку в структуру dest. pgx.ErrNoRows, если строк нет.
	Getx(ctx context.Context, dest any, sqlizer squirrel.Sqlizer) error
	// Selectx сканирует все строки в dest, указатель на слайс структур или указателей на них.
	Selectx(ctx context.Context, dest any, sqlizer squirrel.Sqlizer) error
	Close()
}

type conn interface {
	pgxscan.Querier
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type pool struct {
	conn
	close func()
}

func NewPool(ctx context.Context, dsn string) (Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}

	p, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	if err = p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return newPool(p, p.Close), nil
}

func newPool(c conn, closeFn func()) *pool {
	return &pool{conn: c, close: closeFn}
}

func (p *pool) Close() {
	if p.close != nil {
		p.close()
	}
}

func (p *pool) Execx(ctx context.Context, sqlizer squirrel.Sqlizer) (pgconn.CommandTag, error) {
	sql, args, err := sqlizer.ToSql()
	if err != nil {
		return pgconn.CommandTag{}, fmt.Errorf("ToSql: %w", err)
	}
	return p.Exec(ctx, sql, args...)
}

func (p *pool) Getx(ctx context.Context, dest any, sqlizer squirrel.Sqlizer) error {
	sql, args, err := sqlizer.ToSql()
	if err != nil {
		return fmt.Errorf("ToSql: %w", err)
	}

	err = pgxscan.Get(ctx, p.conn, dest, sql, args...)
	if pgxscan.NotFound(err) {
		// store маппит именно pgx.ErrNoRows
		return pgx.ErrNoRows
	}
	return err
}

func (p *pool) Selectx(ctx context.Context, dest any, sqlizer squirrel.Sqlizer) error {
	sql, args, err := sqlizer.ToSql()
	if err != nil {
		return fmt.Errorf("ToSql: %w", err)
	}
	return pgxscan.Select(ctx, p.conn, dest, sql, args...)
}

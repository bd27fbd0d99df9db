package store

import (
	"context"
	"fmt"
)

const schema = `
create table if not exists areas (
	code       text primary key,
	name       text not null,
	created_at timestamptz not null default now(),
	updated_at timestamptz not null default now()
);

create table if not exists items (
	code       text primary key,
	name       text not null,
	created_at timestamptz not null default now(),
	updated_at timestamptz not null default now()
);

create table if not exists periods (
	code         text primary key,
	abbreviation text not null,
	name         text not null,
	created_at   timestamptz not null default now(),
	updated_at   timestamptz not null default now()
);

create table if not exists periodicities (
	code       text primary key,
	name       text not null,
	created_at timestamptz not null default now(),
	updated_at timestamptz not null default now()
);

create table if not exists series (
	id           text primary key,
	title        text not null default '',
	base_code    text not null default '',
	base_period  text not null default '',
	begin_year   int not null default 0,
	begin_period text not null default '',
	end_year     int not null default 0,
	end_period   text not null default '',
	created_at   timestamptz not null default now(),
	updated_at   timestamptz not null default now()
);

create table if not exists indexes (
	series_id   text not null references series (id),
	date        date not null,
	year        int not null,
	period_type text not null,
	value       numeric not null,
	created_at  timestamptz not null default now(),
	updated_at  timestamptz not null default now(),
	primary key (series_id, date, period_type)
);
`

func (s *store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

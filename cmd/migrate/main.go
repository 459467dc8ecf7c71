package main

import (
	"database/sql"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"server/internal/infra"
)

const schema = `
create extension if not exists pgcrypto;

create table if not exists users (
    id uuid primary key default gen_random_uuid(),
    username text not null unique,
    email text not null,
    password_hash text not null,
    created_at timestamptz not null default now(),
    updated_at timestamptz not null default now()
);

create table if not exists fundraisers (
    id uuid primary key default gen_random_uuid(),
    title text not null,
    description text not null default '',
    goal bigint not null check (goal > 0),
    image text not null default '',
    is_open boolean not null default true,
    date_created timestamptz not null default now(),
    owner_id uuid not null references users(id) on delete cascade
);

create table if not exists pledges (
    id uuid primary key default gen_random_uuid(),
    amount bigint not null check (amount > 0),
    comment text not null default '',
    anonymous boolean not null default false,
    is_hidden_by_owner boolean not null default false,
    date_created timestamptz not null default now(),
    fundraiser_id uuid not null references fundraisers(id) on delete cascade,
    supporter_id uuid not null references users(id) on delete cascade
);

create index if not exists pledges_fundraiser_idx on pledges(fundraiser_id);
create index if not exists pledges_supporter_idx on pledges(supporter_id);
`

func main() {
	_ = godotenv.Load()

	logger := infra.NewLogger(os.Getenv("APP_ENV"))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal().Msg("DATABASE_URL is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database failed")
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		logger.Fatal().Err(err).Msg("apply schema failed")
	}

	logger.Info().Msg("schema applied")
}

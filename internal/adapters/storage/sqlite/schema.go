package sqlite

// collections lists the entity tables in snapshot order
var collections = []string{"treasuries", "proposals", "policies", "transactions", "users", "expenses"}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS meta (
    key                  TEXT PRIMARY KEY,
    value                TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS treasuries (
    id                   TEXT PRIMARY KEY,
    position             INTEGER NOT NULL,
    body                 TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS proposals (
    id                   TEXT PRIMARY KEY,
    position             INTEGER NOT NULL,
    body                 TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS policies (
    id                   TEXT PRIMARY KEY,
    position             INTEGER NOT NULL,
    body                 TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    id                   TEXT PRIMARY KEY,
    position             INTEGER NOT NULL,
    body                 TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
    id                   TEXT PRIMARY KEY,
    position             INTEGER NOT NULL,
    body                 TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS expenses (
    id                   TEXT PRIMARY KEY,
    position             INTEGER NOT NULL,
    body                 TEXT NOT NULL
);
`

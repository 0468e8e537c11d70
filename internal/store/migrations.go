package store

const schema = `
CREATE TABLE IF NOT EXISTS promotions (
    norm_title TEXT PRIMARY KEY,
    title      TEXT NOT NULL,
    namespace  TEXT NOT NULL DEFAULT '',
    offer_id   TEXT NOT NULL DEFAULT '',
    end_date   TEXT NOT NULL DEFAULT '',
    first_seen DATETIME NOT NULL,
    last_seen  DATETIME NOT NULL,
    times_seen INTEGER NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_promotions_last_seen ON promotions(last_seen);

CREATE TABLE IF NOT EXISTS runs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    ran_at      DATETIME NOT NULL,
    games_found INTEGER NOT NULL DEFAULT 0,
    changed     BOOLEAN NOT NULL DEFAULT 0,
    notified    BOOLEAN NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_ran_at ON runs(ran_at);
`

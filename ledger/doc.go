// Package ledger persists the casino between runs.
//
// # Core Components
//
// Store: reads and writes the save file (bankroll and shoe), the
// statistics file and the round history, all as TOML.
//
// History: an append-only log of settled rounds with hash chaining, so an
// edited history file is detected when it is loaded.
//
// # Files
//
// A missing file is a first run and yields the zero value. A file that
// exists but cannot be read or decoded is an error naming the path.
// Writes go to a temporary file in the same directory that is then renamed
// over the target.
package ledger

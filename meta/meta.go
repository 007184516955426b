// meta/meta.go
package meta

// BOARD_SIZE is the default board size.
const BOARD_SIZE = 8

// MAX_TURNS caps the number of turns in one game.
const MAX_TURNS = 300

// PROMPT is the readline prompt shown while waiting for a move.
const PROMPT = "\033[36mqcheckers>\033[0m "

// meta/meta.go
package meta

// DEPTH is the default search depth in plies.
const DEPTH = 5

// MC_SIM is the default number of random playouts per leaf evaluation.
const MC_SIM = 100

// GO_ROUTINES is the default number of goroutines sharing the playouts of one evaluation.
const GO_ROUTINES = 1

// TERMINAL_SCORE is the magnitude given to a move that loses on the spot. It
// must stay above MC_SIM.
const TERMINAL_SCORE = 10000

// BOARD_SIZE is the board size used for self-play games.
const BOARD_SIZE = 7

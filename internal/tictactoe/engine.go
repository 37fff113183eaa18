package tictactoe

import "github.com/PauloDevelo/tictactoe/internal/entity"

// WinCombos lists the 8 winning lines in a fixed order: rows, then
// columns, then diagonals. EvaluateWinner and WinningLine scan the list
// in this order, which keeps their results deterministic.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// ApplyMove writes a mark at the given position and advances the game.
// The input state is never mutated. A move on an occupied cell, an
// out-of-range position, or a game that is not in progress is a no-op
// and returns the state unchanged.
func ApplyMove(state entity.GameState, position int, mark string) entity.GameState {
	if position < 0 || position >= len(state.Board) {
		return state
	}

	if state.Board[position] != entity.EmptyCell || !state.IsPlaying() {
		return state
	}

	state.Board[position] = mark
	state.CurrentTurn = ToggleMark(mark)

	switch winner := EvaluateWinner(state.Board); {
	case winner != "":
		state.Status = entity.StatusFinished
		state.Winner = winner
		state.WinningLine = WinningLine(state.Board)
	case isBoardFull(state.Board):
		state.Status = entity.StatusFinished
		state.Winner = entity.WinnerDraw
		state.WinningLine = nil
	}

	return state
}

// EvaluateWinner returns the mark occupying a complete line, or "" when
// no line is complete.
func EvaluateWinner(board [9]string) string {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	return ""
}

// WinningLine returns the board indices of the first complete line, or
// nil when no line is complete.
func WinningLine(board [9]string) []int {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return []int{combo[0], combo[1], combo[2]}
		}
	}

	return nil
}

// StartGame marks the game as in progress; board and turn are untouched.
func StartGame(state entity.GameState) entity.GameState {
	state.Status = entity.StatusPlaying
	return state
}

// ResetGame produces a fresh game whose starting mark is the opposite of
// the previous game's starter, and records the new starter for the next
// reset.
func ResetGame(prev entity.GameState) entity.GameState {
	nextStarter := ToggleMark(prev.LastStartingPlayer)

	state := entity.NewGameState()
	state.CurrentTurn = nextStarter
	state.LastStartingPlayer = nextStarter

	return state
}

// ReconcileSymbols aligns player symbols with a new starting mark: when
// the first seat's symbol no longer matches the starter, both seats flip.
// The input slice is left untouched.
func ReconcileSymbols(players []*entity.Player, startingMark string) []*entity.Player {
	if len(players) != entity.MaxPlayersPerRoom || players[0].Symbol == startingMark {
		return players
	}

	first, second := *players[0], *players[1]
	first.Symbol = startingMark
	second.Symbol = ToggleMark(startingMark)

	return []*entity.Player{&first, &second}
}

func ToggleMark(currentMark string) string {
	if currentMark == entity.PlayerX {
		return entity.PlayerO
	}
	return entity.PlayerX
}

func isBoardFull(board [9]string) bool {
	for _, cell := range board {
		if cell == entity.EmptyCell {
			return false
		}
	}
	return true
}

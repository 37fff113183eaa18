package entity

const (
	StatusWaiting  = "waiting"
	StatusReady    = "ready"
	StatusPlaying  = "playing"
	StatusFinished = "finished"

	PlayerX = "X"
	PlayerO = "O"

	WinnerDraw = "draw"

	EmptyCell = ""
)

// GameState holds everything one game of tic-tac-toe needs: the board,
// whose turn it is, and how (or whether) the game ended.
// LastStartingPlayer remembers who opened the most recently started game
// so that rematches in the same room alternate the starting mark.
type GameState struct {
	Board              [9]string `json:"board"`
	CurrentTurn        string    `json:"currentTurn"`
	Status             string    `json:"status"`
	Winner             string    `json:"winner,omitempty"`
	WinningLine        []int     `json:"winningLine"`
	LastStartingPlayer string    `json:"lastStartingPlayer"`
}

// NewGameState returns the state of a game that has not started yet:
// an empty board with X to open, by convention.
func NewGameState() GameState {
	return GameState{
		Board:              [9]string{},
		CurrentTurn:        PlayerX,
		Status:             StatusWaiting,
		Winner:             "",
		WinningLine:        nil,
		LastStartingPlayer: PlayerX,
	}
}

func (that *GameState) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *GameState) IsPlaying() bool {
	return that.Status == StatusPlaying
}

package entity

// Player is a seat in a room. ID is the identifier of the owning
// connection and stays stable for the connection's lifetime.
type Player struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	IsReady bool   `json:"isReady"`
}

func NewPlayer(id, name, symbol string) *Player {
	return &Player{
		ID:      id,
		Name:    name,
		Symbol:  symbol,
		IsReady: false,
	}
}

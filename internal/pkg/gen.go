package pkg

import (
	"crypto/rand"
	"math/big"
)

const (
	roomIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	roomIDLength   = 6
)

// GenerateRoomID - generates a short join code for a room: 6 uppercase
// alphanumeric characters. The join-by-code UI treats the length as fixed.
func GenerateRoomID() string {
	code := make([]byte, roomIDLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(roomIDAlphabet))))
		if err != nil {
			code[i] = roomIDAlphabet[0]
			continue
		}
		code[i] = roomIDAlphabet[n.Int64()]
	}

	return string(code)
}

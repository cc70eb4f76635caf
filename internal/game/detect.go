package game

import "strings"

// winMarker is the token that only appears in the fixed congratulation
// template ("...an Ethereum address to receive your prize"). The composed
// prompt forbids the model from using it anywhere else.
const winMarker = "prize"

// ContainsWinAnnouncement reports whether an assistant reply announced a win
// and asked the player for a claim address.
func ContainsWinAnnouncement(reply string) bool {
	return strings.Contains(strings.ToLower(reply), winMarker)
}

// ClaimedAddress extracts the recipient address from a player's claim turn.
func ClaimedAddress(content string) string {
	return strings.TrimSpace(content)
}

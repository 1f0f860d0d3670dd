package qrcode

import (
	"fmt"

	qr "github.com/skip2/go-qrcode"
)

// Generate creates a QR code PNG image for the given URL.
func Generate(url string) ([]byte, error) {
	return qr.Encode(url, qr.Medium, 256)
}

// JoinURL is the link a phone scans to take the player seat of a game.
func JoinURL(host, gameID string) string {
	return fmt.Sprintf("http://%s/play.html?game=%s", host, gameID)
}

// JoinPNG renders the join link for gameID as a PNG.
func JoinPNG(host, gameID string) ([]byte, error) {
	return Generate(JoinURL(host, gameID))
}

// Package qrcode renders the join link for a room so phones can scan in.
package qrcode

import (
	"net/url"
	"strings"

	qr "github.com/skip2/go-qrcode"
)

// DefaultSize is the PNG edge length in pixels.
const DefaultSize = 256

// JoinURL is the page a scanning phone opens for the room.
func JoinURL(base, gameID string) string {
	return strings.TrimRight(base, "/") + "/?game=" + url.QueryEscape(gameID)
}

// Generate creates a QR code PNG image for the given URL.
func Generate(link string) ([]byte, error) {
	return qr.Encode(link, qr.Medium, DefaultSize)
}

// JoinPNG renders the join link for a room.
func JoinPNG(base, gameID string) ([]byte, error) {
	return Generate(JoinURL(base, gameID))
}

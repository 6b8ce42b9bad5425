package qr

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// defaultSize is the rendered PNG edge length in pixels.
const defaultSize = 256

// DataURL encodes text as a QR code and returns it as a PNG data URL
// suitable for an <img> src attribute.
func DataURL(text string) (string, error) {
	png, err := qrcode.Encode(text, qrcode.Medium, defaultSize)
	if err != nil {
		return "", fmt.Errorf("encode qr code: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

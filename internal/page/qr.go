package page

import (
	"encoding/base64"
	"html/template"

	qrcode "github.com/skip2/go-qrcode"
)

// shareQR кодирует публичный адрес флипбука в QR для футера страницы.
func shareQR(url string) (template.URL, error) {
	pngData, err := qrcode.Encode(url, qrcode.Medium, 192)
	if err != nil {
		return "", err
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(pngData)), nil
}

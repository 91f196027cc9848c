package cli

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/dmitrijs2005/securechat/internal/common"
)

// encodeImage reads an image file and returns it as a base64 data URL. The
// encoded size is checked against limit so oversized images never leave
// the client.
func encodeImage(path string, limit int) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%s is not an image (%s)", path, mime)
	}

	payload := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
	if limit > 0 && len(payload) > limit {
		return "", fmt.Errorf("%w: %d bytes encoded, limit %d", common.ErrPayloadTooLarge, len(payload), limit)
	}
	return payload, nil
}

package generator

import (
	"encoding/base64"
	"net/url"
	"strings"
)

// DecodeDataURL splits a data URL into MIME type and decoded text. Both
// base64 and percent-encoded payloads are handled; anything malformed
// decodes to empty strings rather than failing the request.
func DecodeDataURL(raw string) (mime, text string) {
	if !strings.HasPrefix(raw, "data:") {
		return "", ""
	}
	header, payload, ok := strings.Cut(raw, ",")
	if !ok {
		return "", ""
	}
	mime = strings.TrimPrefix(header, "data:")
	if strings.Contains(mime, ";base64") {
		mime = strings.ReplaceAll(mime, ";base64", "")
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", ""
		}
		return mime, string(decoded)
	}
	decoded, err := url.QueryUnescape(payload)
	if err != nil {
		return "", ""
	}
	return mime, decoded
}

// CollectAttachments decodes a brief's attachments into named file contents.
func CollectAttachments(b Brief) map[string]string {
	files := map[string]string{}
	for _, a := range b.Attachments {
		if a.Name == "" || a.URL == "" {
			continue
		}
		_, text := DecodeDataURL(a.URL)
		files[a.Name] = text
	}
	return files
}

package security

import (
	"bytes"
	"net/http"
	"path/filepath"
	"strings"
)

// Magic byte signatures for the poster formats the image decoder supports
var imageMagicBytes = map[string][]byte{
	"image/jpeg": {0xFF, 0xD8, 0xFF},
	"image/png":  {0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A},
}

var imageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// ValidateImage checks that an upload is a JPEG or PNG whose extension,
// sniffed MIME type and magic bytes agree. It returns the MIME type, or an
// error message.
func ValidateImage(filename string, data []byte) (string, string) {
	ext := strings.ToLower(filepath.Ext(filename))
	want, ok := imageExtensions[ext]
	if !ok {
		return "", "file extension not allowed: only .jpg, .jpeg and .png"
	}

	detected := http.DetectContentType(data)
	if detected != want {
		return "", "file content does not match extension"
	}
	if !bytes.HasPrefix(data, imageMagicBytes[want]) {
		return "", "file content does not match extension"
	}
	return want, ""
}

package utils

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ParseDataURI splits a base64 data URI ("data:image/png;base64,....") into its media type and payload
func ParseDataURI(uri string) (mediaType string, data []byte, err error) {
	if !strings.HasPrefix(uri, "data:") {
		return "", nil, fmt.Errorf("not a data URI")
	}

	header, payload, found := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !found {
		return "", nil, fmt.Errorf("data URI has no payload separator")
	}

	if !strings.HasSuffix(header, ";base64") {
		return "", nil, fmt.Errorf("only base64 data URIs are supported")
	}
	mediaType = strings.TrimSuffix(header, ";base64")
	if mediaType == "" {
		mediaType = "text/plain"
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URI payload: %w", err)
	}
	return mediaType, data, nil
}

// EncodeDataURI builds a base64 data URI for data
func EncodeDataURI(mediaType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mediaType, base64.StdEncoding.EncodeToString(data))
}

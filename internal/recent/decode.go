package recent

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Decode converts a snapshot's content to plain bytes according to its encoding.
func Decode(s *Snapshot) ([]byte, error) {
	switch strings.ToLower(s.Encoding) {
	case "", "none", "utf-8", "utf8":
		return s.Content, nil
	case "base64":
		out := make([]byte, base64.StdEncoding.DecodedLen(len(s.Content)))
		n, err := base64.StdEncoding.Decode(out, s.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 content: %w", err)
		}
		return out[:n], nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", s.Encoding)
	}
}

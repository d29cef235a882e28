package subscription

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/saniyar-dev/subxray/internal/link"
)

// Links decodes a base64 subscription document into its share links,
// dropping blank lines.
func Links(body []byte) ([]string, error) {
	text, err := link.DecodeBase64(strings.TrimSpace(string(body)))
	if err != nil {
		return nil, fmt.Errorf("subscription body is not base64: %w", err)
	}

	var links []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		links = append(links, line)
	}
	return links, nil
}

package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// stripFences removes a Markdown code-fence wrapper from a model reply.
// Models often wrap JSON in ```json ... ``` despite being told not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// decodeQueryList parses a query-generation reply into a list of search
// URLs. The reply must be a JSON array of strings after fence stripping;
// anything else is an error, which is fatal to the run upstream. The
// strings are not validated as URLs; malformed entries simply fail to
// fetch later.
func decodeQueryList(raw string) ([]string, error) {
	var queries []string
	if err := json.Unmarshal([]byte(stripFences(raw)), &queries); err != nil {
		return nil, fmt.Errorf("parsing query list from model reply: %w", err)
	}
	return queries, nil
}

// decodeRecordFields parses a field-extraction reply into a map of record
// fields. The reply must be a JSON object after fence stripping; field
// names, types, and score ranges are deliberately not validated.
func decodeRecordFields(raw string) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(stripFences(raw)), &fields); err != nil {
		return nil, fmt.Errorf("parsing record fields from model reply: %w", err)
	}
	return fields, nil
}

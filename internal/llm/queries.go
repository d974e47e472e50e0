package llm

import (
	"context"
	"fmt"

	"github.com/karston/phdscout/internal/metrics"
)

const queryPromptTemplate = `You are a PhD search query generator for FindAPhD.com.

Given the user's request, generate 4 specific, relevant search query URLs for FindAPhD based on keywords.

User request: %s

Return ONLY a JSON list of URLs (strings) in this format:
[
"https://www.findaphd.com/phds/united-kingdom/?g0w900&Keywords=llm+optimisation",
"https://www.findaphd.com/phds/united-kingdom/?g0w900&Keywords=machine+learning"
]

Make sure URLs are properly formatted with URL encoding for spaces (+) and special characters.`

// GenerateQueries asks the model for search URLs matching the user's stated
// research interest. A model error or an unparseable reply is returned as an
// error; the caller treats it as fatal to the whole run, since there is no
// fallback query set.
func GenerateQueries(ctx context.Context, c Completer, userPrompt string) ([]string, error) {
	raw, err := c.Complete(ctx, fmt.Sprintf(queryPromptTemplate, userPrompt))
	if err != nil {
		metrics.RecordModelCall("queries", "error")
		return nil, fmt.Errorf("generating search queries: %w", err)
	}

	queries, err := decodeQueryList(raw)
	if err != nil {
		metrics.RecordModelCall("queries", "decode_error")
		return nil, fmt.Errorf("generating search queries: %w", err)
	}

	metrics.RecordModelCall("queries", "ok")
	return queries, nil
}

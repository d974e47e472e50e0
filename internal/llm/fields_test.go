package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedCompleter replies with queued responses and records every prompt.
type scriptedCompleter struct {
	replies []string
	err     error
	prompts []string
}

func (s *scriptedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	if len(s.replies) == 0 {
		return "", errors.New("scripted completer exhausted")
	}
	reply := s.replies[0]
	s.replies = s.replies[1:]
	return reply, nil
}

func TestExtractFieldsShortBlobSkipsModelCall(t *testing.T) {
	c := &scriptedCompleter{}

	fields, err := ExtractFields(context.Background(), c, "too short")
	require.NoError(t, err)
	require.Nil(t, fields)
	require.Empty(t, c.prompts, "model must not be called for a sub-minimum blob")
}

func TestExtractFieldsEmptyBlobSkipsModelCall(t *testing.T) {
	c := &scriptedCompleter{}

	fields, err := ExtractFields(context.Background(), c, "")
	require.NoError(t, err)
	require.Nil(t, fields)
	require.Empty(t, c.prompts)
}

func TestExtractFieldsTruncatesBlob(t *testing.T) {
	c := &scriptedCompleter{replies: []string{`{"title":"T"}`}}
	blob := strings.Repeat("a", maxBlobLen+500)

	_, err := ExtractFields(context.Background(), c, blob)
	require.NoError(t, err)
	require.Len(t, c.prompts, 1)
	require.Contains(t, c.prompts[0], strings.Repeat("a", maxBlobLen))
	require.NotContains(t, c.prompts[0], strings.Repeat("a", maxBlobLen+1))
}

func TestExtractFieldsSuccess(t *testing.T) {
	c := &scriptedCompleter{replies: []string{"```json\n" + `{"title":"Graph Neural Networks","alignment_score":8}` + "\n```"}}
	blob := strings.Repeat("project description text ", 10)

	fields, err := ExtractFields(context.Background(), c, blob)
	require.NoError(t, err)
	require.Equal(t, "Graph Neural Networks", fields["title"])
	require.Equal(t, float64(8), fields["alignment_score"])
}

func TestExtractFieldsParseFailureIsNoResult(t *testing.T) {
	c := &scriptedCompleter{replies: []string{"Sorry, I can't produce JSON today."}}
	blob := strings.Repeat("project description text ", 10)

	fields, err := ExtractFields(context.Background(), c, blob)
	require.NoError(t, err, "a parse failure is a skip, not an error")
	require.Nil(t, fields)
}

func TestExtractFieldsTransportErrorIsError(t *testing.T) {
	c := &scriptedCompleter{err: errors.New("connection refused")}
	blob := strings.Repeat("project description text ", 10)

	_, err := ExtractFields(context.Background(), c, blob)
	require.Error(t, err)
}

func TestGenerateQueriesSuccess(t *testing.T) {
	c := &scriptedCompleter{replies: []string{`["https://www.findaphd.com/phds/?Keywords=vision"]`}}

	queries, err := GenerateQueries(context.Background(), c, "computer vision")
	require.NoError(t, err)
	require.Equal(t, []string{"https://www.findaphd.com/phds/?Keywords=vision"}, queries)
	require.Len(t, c.prompts, 1)
	require.Contains(t, c.prompts[0], "computer vision")
}

func TestGenerateQueriesDecodeFailureIsError(t *testing.T) {
	c := &scriptedCompleter{replies: []string{"no json here"}}

	_, err := GenerateQueries(context.Background(), c, "anything")
	require.Error(t, err)
}

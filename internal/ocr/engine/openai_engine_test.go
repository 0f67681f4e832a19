package engine

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"handwriting-ocr/internal/ocr"
)

func newOpenAIEngine(t *testing.T, handler http.HandlerFunc) *OpenAIEngine {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	eng, err := NewOpenAIEngine("sk-test", "gpt-4o-mini")
	require.NoError(t, err)
	eng.endpoint = server.URL
	return eng
}

func TestOpenAIRecognize(t *testing.T) {
	imagePath := writeImageBytes(t, []byte("notebook page"))

	var gotAuth string
	var gotBody openAIRequest
	eng := newOpenAIEngine(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))
		io.WriteString(w, `{"output":[{"content":[{"type":"output_text","text":"### A\nHello"}]}]}`)
	})

	text, err := eng.Recognize(context.Background(), imagePath)

	require.NoError(t, err)
	require.Equal(t, "### A\nHello", text)
	require.Equal(t, "Bearer sk-test", gotAuth)
	require.Equal(t, "gpt-4o-mini", gotBody.Model)
	require.Len(t, gotBody.Input, 1)
	require.Equal(t, "user", gotBody.Input[0].Role)

	segments := gotBody.Input[0].Content
	require.Len(t, segments, 2)
	require.Equal(t, "input_text", segments[0].Type)
	require.Contains(t, segments[0].Text, "Transcribe the handwriting")
	require.Equal(t, "input_image", segments[1].Type)
	require.True(t, strings.HasPrefix(segments[1].ImageURL, "data:image/png;base64,"))
}

func TestOpenAIJoinsOutputSegmentsInOrder(t *testing.T) {
	imagePath := writeImageBytes(t, []byte("img"))
	eng := newOpenAIEngine(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"output":[
			{"content":[{"type":"reasoning","text":"thinking..."},{"type":"output_text","text":"### First"}]},
			{"content":[{"type":"output_text","text":"line one"},{"type":"output_text","text":"line two"}]}
		]}`)
	})

	text, err := eng.Recognize(context.Background(), imagePath)

	// Only output_text segments count, joined with newlines across items.
	require.NoError(t, err)
	require.Equal(t, "### First\nline one\nline two", text)
}

func TestOpenAIEmptyOutputIsEmptyText(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "no output key", body: `{}`},
		{name: "empty output list", body: `{"output":[]}`},
		{name: "no output_text segments", body: `{"output":[{"content":[{"type":"refusal","text":"no"}]}]}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			imagePath := writeImageBytes(t, []byte("img"))
			eng := newOpenAIEngine(t, func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tc.body)
			})

			text, err := eng.Recognize(context.Background(), imagePath)

			require.NoError(t, err)
			require.Empty(t, text)
		})
	}
}

func TestOpenAIParseFailure(t *testing.T) {
	imagePath := writeImageBytes(t, []byte("img"))
	eng := newOpenAIEngine(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"output":"not a list"}`)
	})

	_, err := eng.Recognize(context.Background(), imagePath)

	requireStage(t, err, ocr.StageParse)
}

func TestOpenAITransportFailure(t *testing.T) {
	imagePath := writeImageBytes(t, []byte("img"))
	eng := newOpenAIEngine(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := eng.Recognize(context.Background(), imagePath)

	requireStage(t, err, ocr.StageTransport)
}

func TestOpenAIUnreadableImageSkipsNetwork(t *testing.T) {
	hits := 0
	eng := newOpenAIEngine(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
	})

	_, err := eng.Recognize(context.Background(), "testdata/does-not-exist.png")

	requireStage(t, err, ocr.StageImageOpen)
	require.Zero(t, hits, "no request may be sent when the image cannot be read")
}

func TestOpenAIMissingKey(t *testing.T) {
	_, err := NewOpenAIEngine("", "gpt-4o-mini")
	requireStage(t, err, ocr.StageCredential)
}

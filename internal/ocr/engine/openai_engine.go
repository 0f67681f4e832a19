package engine

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"handwriting-ocr/internal/logger"
	"handwriting-ocr/internal/ocr"
)

const (
	openAIEndpoint = "https://api.openai.com/v1/responses"
	openAITimeout  = 60 * time.Second
)

const transcriptionPrompt = "Transcribe the handwriting in this image into Markdown. " +
	"The notes are separated by horizontal lines. For each section, " +
	"create a clear Markdown heading using H3 (###) and list the text under it. " +
	"Return only the transcribed Markdown content, with no code fences or extra text."

// OpenAIEngine asks a multimodal model to transcribe the image via the
// Responses API.
type OpenAIEngine struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

type openAIRequest struct {
	Model string          `json:"model"`
	Input []openAIMessage `json:"input"`
}

type openAIMessage struct {
	Role    string          `json:"role"`
	Content []openAISegment `json:"content"`
}

type openAISegment struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

type openAIResponse struct {
	Output []openAIOutputItem `json:"output"`
}

type openAIOutputItem struct {
	Content []openAIOutputSegment `json:"content"`
}

type openAIOutputSegment struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NewOpenAIEngine fails before any file or network activity when the
// credential is missing.
func NewOpenAIEngine(apiKey, model string) (*OpenAIEngine, error) {
	if apiKey == "" {
		return nil, ocr.Wrap(ocr.StageCredential, errors.New("missing OPENAI_API_KEY"))
	}
	return &OpenAIEngine{
		apiKey:   apiKey,
		model:    model,
		endpoint: openAIEndpoint,
		client:   &http.Client{Timeout: openAITimeout},
	}, nil
}

func (e *OpenAIEngine) Recognize(ctx context.Context, imagePath string) (string, error) {
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return "", ocr.Wrap(ocr.StageImageOpen, fmt.Errorf("reading image: %w", err))
	}

	encoded := base64.StdEncoding.EncodeToString(imageData)
	request := openAIRequest{
		Model: e.model,
		Input: []openAIMessage{{
			Role: "user",
			Content: []openAISegment{
				{Type: "input_text", Text: transcriptionPrompt},
				{Type: "input_image", ImageURL: "data:image/png;base64," + encoded},
			},
		}},
	}

	body, err := json.Marshal(request)
	if err != nil {
		return "", ocr.Wrap(ocr.StageCapability, fmt.Errorf("marshaling request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", ocr.Wrap(ocr.StageCapability, fmt.Errorf("building request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	logger.DebugLog("[openai]: sending transcription request for %s (model=%s)", imagePath, e.model)
	resp, err := e.client.Do(req)
	if err != nil {
		return "", ocr.Wrap(ocr.StageTransport, fmt.Errorf("openai request failed: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ocr.Wrap(ocr.StageTransport, fmt.Errorf("reading openai response: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return "", ocr.Wrap(ocr.StageTransport, fmt.Errorf("openai request failed with status %d", resp.StatusCode))
	}

	var parsed openAIResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", ocr.Wrap(ocr.StageParse, fmt.Errorf("unmarshaling openai response: %w", err))
	}

	// Collect every generated text segment in order; segments are joined
	// as-is and only the final result gets trimmed.
	var parts []string
	for _, item := range parsed.Output {
		for _, segment := range item.Content {
			if segment.Type == "output_text" {
				parts = append(parts, segment.Text)
			}
		}
	}
	return strings.Join(parts, "\n"), nil
}

func (e *OpenAIEngine) Close() error {
	return nil
}

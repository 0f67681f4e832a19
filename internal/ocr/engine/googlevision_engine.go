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
	"net/url"
	"os"
	"time"

	"handwriting-ocr/internal/logger"
	"handwriting-ocr/internal/ocr"
)

const (
	visionEndpoint = "https://vision.googleapis.com/v1/images:annotate"
	visionTimeout  = 30 * time.Second
)

// GoogleVisionEngine sends the image to the Vision annotate endpoint and
// reads back the full-document text annotation.
type GoogleVisionEngine struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

type visionRequest struct {
	Requests []visionAnnotateRequest `json:"requests"`
}

type visionAnnotateRequest struct {
	Image    visionImage     `json:"image"`
	Features []visionFeature `json:"features"`
}

type visionImage struct {
	Content string `json:"content"`
}

type visionFeature struct {
	Type string `json:"type"`
}

type visionResponse struct {
	Responses []visionAnnotateResponse `json:"responses"`
}

type visionAnnotateResponse struct {
	FullTextAnnotation *visionTextAnnotation `json:"fullTextAnnotation"`
}

type visionTextAnnotation struct {
	Text string `json:"text"`
}

// NewGoogleVisionEngine fails before any file or network activity when the
// credential is missing.
func NewGoogleVisionEngine(apiKey string) (*GoogleVisionEngine, error) {
	if apiKey == "" {
		return nil, ocr.Wrap(ocr.StageCredential, errors.New("missing GOOGLE_OCR_KEY"))
	}
	return &GoogleVisionEngine{
		apiKey:   apiKey,
		endpoint: visionEndpoint,
		client:   &http.Client{Timeout: visionTimeout},
	}, nil
}

func (e *GoogleVisionEngine) Recognize(ctx context.Context, imagePath string) (string, error) {
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return "", ocr.Wrap(ocr.StageImageOpen, fmt.Errorf("reading image: %w", err))
	}

	request := visionRequest{
		Requests: []visionAnnotateRequest{{
			Image:    visionImage{Content: base64.StdEncoding.EncodeToString(imageData)},
			Features: []visionFeature{{Type: "DOCUMENT_TEXT_DETECTION"}},
		}},
	}

	body, err := json.Marshal(request)
	if err != nil {
		return "", ocr.Wrap(ocr.StageCapability, fmt.Errorf("marshaling request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		e.endpoint+"?key="+url.QueryEscape(e.apiKey), bytes.NewReader(body))
	if err != nil {
		return "", ocr.Wrap(ocr.StageCapability, fmt.Errorf("building request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	logger.DebugLog("[vision]: sending annotate request for %s", imagePath)
	resp, err := e.client.Do(req)
	if err != nil {
		return "", ocr.Wrap(ocr.StageTransport, fmt.Errorf("vision request failed: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ocr.Wrap(ocr.StageTransport, fmt.Errorf("reading vision response: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return "", ocr.Wrap(ocr.StageTransport, fmt.Errorf("vision request failed with status %d", resp.StatusCode))
	}

	var parsed visionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", ocr.Wrap(ocr.StageParse, fmt.Errorf("unmarshaling vision response: %w", err))
	}
	if len(parsed.Responses) == 0 {
		return "", ocr.Wrap(ocr.StageParse, errors.New("vision response has no entries"))
	}

	// A missing annotation means the service saw no text, not a protocol
	// violation.
	annotation := parsed.Responses[0].FullTextAnnotation
	if annotation == nil {
		return "", nil
	}
	return annotation.Text, nil
}

func (e *GoogleVisionEngine) Close() error {
	return nil
}

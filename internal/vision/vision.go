// Package vision reads page headers from scanned documents with an LLM
// vision model. It is the corrective-pass counterpart to the text-layer
// extractor: pages are rendered to images and the model is asked for the
// instrument header printed atop each page.
package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"scorecut/internal/parts"
	"scorecut/internal/prompts/pageread"
	"scorecut/internal/svcctx"
)

const (
	defaultModel      = "gpt-4o-mini"
	defaultMaxRetries = 3
	defaultRetryDelay = 2 * time.Second
	renderDPI         = "150"
)

// Config holds settings for the vision header reader.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string  // optional (tests)
	RateLimit  float64 // requests per second, 0 = unlimited
	MaxRetries int
	RetryDelay time.Duration
}

// Extractor reads page headers via an OpenAI-compatible vision model.
type Extractor struct {
	client      openai.Client
	model       string
	maxRetries  int
	retryDelay  time.Duration
	minInterval time.Duration
}

// pageReading is the structured response requested from the model.
type pageReading struct {
	HeaderText string `json:"header_text"`
	FullText   string `json:"full_text"`
}

// New creates a vision extractor.
func New(cfg Config) *Extractor {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = defaultRetryDelay
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	var minInterval time.Duration
	if cfg.RateLimit > 0 {
		minInterval = time.Duration(float64(time.Second) / cfg.RateLimit)
	}

	return &Extractor{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		maxRetries:  cfg.MaxRetries,
		retryDelay:  cfg.RetryDelay,
		minInterval: minInterval,
	}
}

// ExtractHeaders implements the extract.Extractor boundary with
// fromTextLayer=false provenance. A page the model cannot read yields an
// empty header; one unreadable page never aborts the document.
func (e *Extractor) ExtractHeaders(ctx context.Context, pdfPath string) ([]parts.PageHeader, int, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open PDF: %w", err)
	}
	pageCount, err := api.PageCount(f, nil)
	f.Close()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get page count: %w", err)
	}

	log := svcctx.LoggerFrom(ctx)

	headers := make([]parts.PageHeader, 0, pageCount)
	for page := 1; page <= pageCount; page++ {
		if e.minInterval > 0 && page > 1 {
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(e.minInterval):
			}
		}
		reading, err := e.readPage(ctx, pdfPath, page)
		if err != nil {
			if log != nil {
				// Page content is never logged, only the failure itself.
				log.Warn("vision read failed", "page", page, "error", err)
			}
			reading = pageReading{}
		}
		headers = append(headers, parts.PageHeader{
			PageIndex:  page - 1,
			HeaderText: reading.HeaderText,
			FullText:   reading.FullText,
		})
	}

	if log != nil {
		log.Debug("vision extraction complete", "pages", pageCount)
	}
	return headers, pageCount, nil
}

// readPage renders one page and asks the model for its header, retrying
// transient failures with exponential backoff.
func (e *Extractor) readPage(ctx context.Context, pdfPath string, pageNum int) (pageReading, error) {
	img, err := renderPage(ctx, pdfPath, pageNum)
	if err != nil {
		return pageReading{}, err
	}

	var reading pageReading
	err = retry.Do(
		func() error {
			r, err := e.callModel(ctx, img, pageNum)
			if err != nil {
				return err
			}
			reading = r
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(e.maxRetries)),
		retry.Delay(e.retryDelay),
		retry.DelayType(retry.BackOffDelay),
	)
	return reading, err
}

func (e *Extractor) callModel(ctx context.Context, img []byte, pageNum int) (pageReading, error) {
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(img)

	resp, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(e.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(pageread.SystemPrompt()),
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(pageread.UserPrompt(pageNum)),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURL}),
			}),
		},
	})
	if err != nil {
		return pageReading{}, err
	}
	if len(resp.Choices) == 0 {
		return pageReading{}, fmt.Errorf("no choices in response")
	}

	return parseReading(resp.Choices[0].Message.Content)
}

// renderPage renders a single page to PNG using pdftoppm (poppler-utils).
func renderPage(ctx context.Context, pdfPath string, pageNum int) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "scorecut-page-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	outputPrefix := filepath.Join(tmpDir, "page")
	pageStr := fmt.Sprintf("%d", pageNum)
	cmd := exec.CommandContext(ctx, "pdftoppm",
		"-png",
		"-f", pageStr,
		"-l", pageStr,
		"-r", renderDPI,
		"-singlefile",
		pdfPath,
		outputPrefix,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %w (output: %s)", err, string(output))
	}

	data, err := os.ReadFile(outputPrefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("pdftoppm did not create expected output: %w", err)
	}
	return data, nil
}

// parseReading validates and decodes the model's JSON response.
func parseReading(content string) (pageReading, error) {
	raw, err := parseStructuredJSON(content)
	if err != nil {
		return pageReading{}, err
	}
	if err := validateReading(raw); err != nil {
		return pageReading{}, err
	}

	var reading pageReading
	if err := json.Unmarshal(raw, &reading); err != nil {
		return pageReading{}, fmt.Errorf("failed to decode page reading: %w", err)
	}
	return reading, nil
}

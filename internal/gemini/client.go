package gemini

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is the image-output Gemini model used for try-on composites.
const DefaultModel = "gemini-2.5-flash-image"

// Prompt templates carry these placeholders. The image bytes travel as
// inline data next to the text, so the placeholders resolve to fixed
// references into the part list.
const (
	userImagePlaceholder     = "{user_image}"
	clothingImagePlaceholder = "{clothing_image}"
)

type Client struct {
	genai      *genai.Client
	model      string
	httpClient *http.Client
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		genai: client,
		model: model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (c *Client) Close() error {
	return c.genai.Close()
}

// ComposeInstruction resolves the template placeholders to the fixed
// references the model understands.
func ComposeInstruction(template string) string {
	out := strings.ReplaceAll(template, userImagePlaceholder, "the person in the first image")
	out = strings.ReplaceAll(out, clothingImagePlaceholder, "the clothing in the second image")
	return out
}

// GenerateTryOn fetches both images, sends them inline with the instruction
// text, and returns the bytes and MIME type of the first image part in the
// response. A response without an image part is an error.
func (c *Client) GenerateTryOn(ctx context.Context, userImageURL, clothingImageURL, prompt string) ([]byte, string, error) {
	userData, userFormat, err := c.fetchImage(ctx, userImageURL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch user image: %w", err)
	}

	clothingData, clothingFormat, err := c.fetchImage(ctx, clothingImageURL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch clothing image: %w", err)
	}

	model := c.genai.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx,
		genai.ImageData(userFormat, userData),
		genai.ImageData(clothingFormat, clothingData),
		genai.Text(ComposeInstruction(prompt)),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, "", fmt.Errorf("no response from Gemini")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
			mimeType := blob.MIMEType
			if mimeType == "" {
				mimeType = "image/png"
			}
			return blob.Data, mimeType, nil
		}
	}

	return nil, "", fmt.Errorf("no image generated")
}

func (c *Client) fetchImage(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to fetch image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	format := "jpeg"
	if strings.HasPrefix(contentType, "image/") {
		format = strings.TrimPrefix(contentType, "image/")
		if idx := strings.Index(format, ";"); idx != -1 {
			format = strings.TrimSpace(format[:idx])
		}
	}

	return data, format, nil
}

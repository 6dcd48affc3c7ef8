package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	Client     *genai.Client
	FlashModel *genai.GenerativeModel
	ProModel   *genai.GenerativeModel
}

func NewGenAIClient(apiKey, flashModelName, proModelName string) (*GeminiClient, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("genai client init failed: %w", err)
	}

	return &GeminiClient{
		Client:     client,
		FlashModel: client.GenerativeModel(flashModelName),
		ProModel:   client.GenerativeModel(proModelName),
	}, nil
}

// SendAIWithImage sends a prompt with one raw image to the AI model and
// parses the JSON object it returns.
func (g *GeminiClient) SendAIWithImage(ctx context.Context, prompt string, imageData []byte) (map[string]any, error) {
	if len(imageData) == 0 {
		return nil, errors.New("empty image data")
	}

	mimeType := detectImageMIMEType(imageData)

	resp, err := g.FlashModel.GenerateContent(ctx,
		genai.Text(prompt),
		genai.Blob{
			MIMEType: mimeType,
			Data:     imageData,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with image: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("no content returned from AI")
	}

	textPart, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("response part is not text, received %T", resp.Candidates[0].Content.Parts[0])
	}

	aiResponse := string(textPart)

	// Clean up markdown JSON wrapper if present
	if strings.HasPrefix(aiResponse, "```json") {
		aiResponse = strings.TrimPrefix(aiResponse, "```json\n")
		aiResponse = strings.TrimSuffix(aiResponse, "\n```")
	}
	aiResponse = strings.TrimSpace(aiResponse)

	var resultMap map[string]any
	err = json.Unmarshal([]byte(aiResponse), &resultMap)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal AI response to JSON: %w. \nRaw response was: %s", err, aiResponse)
	}

	return resultMap, nil
}

// SendAIWithImageAndRetry attempts the request with automatic failover across multiple clients
func SendAIWithImageAndRetry(ctx context.Context, prompt string, imageData []byte, selector *GeminiClientSelector) (map[string]any, error) {
	var result map[string]any

	err := selector.TryAllClients(func(client *GeminiClient, clientIdx int) error {
		resp, err := client.SendAIWithImage(ctx, prompt, imageData)
		if err != nil {
			return err
		}
		result = resp
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// detectImageMIMEType detects the MIME type of an image based on magic bytes
func detectImageMIMEType(data []byte) string {
	if len(data) < 8 {
		return "image/jpeg" // default fallback
	}

	// PNG: 89 50 4E 47
	if data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 {
		return "image/png"
	}

	// JPEG: FF D8 FF
	if data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return "image/jpeg"
	}

	// WebP: 52 49 46 46 ... 57 45 42 50
	if data[0] == 0x52 && data[1] == 0x49 && data[2] == 0x46 && data[3] == 0x46 {
		if len(data) > 11 && data[8] == 0x57 && data[9] == 0x45 && data[10] == 0x42 && data[11] == 0x50 {
			return "image/webp"
		}
	}

	// Default to JPEG as it's most common
	return "image/jpeg"
}

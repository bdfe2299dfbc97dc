package extract

import (
	"context"
	"errors"
	"fmt"
	"io"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

const systemInstruction = `You are an assistant for a bachelor party game.
Analyze a video of the bride-to-be answering questions.
Extract every distinct question asked to her and the answer she gave.
Write questions and answers in the language spoken in the video.
For timestamps, give the approximate start time of the question in whole seconds.`

const analysisPrompt = `Analyze this video. Return a JSON array of questions and answers.
For each item provide 'question' (string), 'answer' (string) and 'startTime' (number, seconds).
Format example: [{"question": "...", "answer": "...", "startTime": 10}]`

var responseSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"question":  {Type: genai.TypeString},
			"answer":    {Type: genai.TypeString},
			"startTime": {Type: genai.TypeNumber},
		},
		Required: []string{"question", "answer", "startTime"},
	},
}

// Gemini analyzes videos through the Gemini Files and GenerateContent APIs.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini returns ErrUnavailable when apiKey is empty.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: no API key configured", ErrUnavailable)
	}

	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return &Gemini{
		client: client,
		model:  model,
	}, nil
}

func (g *Gemini) Submit(ctx context.Context, r io.Reader, video Video) (Job, error) {
	file, err := g.client.Files.Upload(ctx, r, &genai.UploadFileConfig{
		MIMEType:    video.MIMEType,
		DisplayName: video.Name,
	})
	if err != nil {
		return Job{}, err
	}

	mimeType := file.MIMEType
	if mimeType == "" {
		mimeType = video.MIMEType
	}

	return Job{
		Name:     file.Name,
		URI:      file.URI,
		MIMEType: mimeType,
	}, nil
}

func (g *Gemini) Poll(ctx context.Context, job Job) (JobState, error) {
	file, err := g.client.Files.Get(ctx, job.Name, nil)
	if err != nil {
		return JobPending, err
	}

	switch file.State {
	case genai.FileStateActive:
		return JobDone, nil
	case genai.FileStateFailed:
		return JobFailed, nil
	default:
		return JobPending, nil
	}
}

func (g *Gemini) FetchResult(ctx context.Context, job Job) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromURI(job.URI, job.MIMEType),
			genai.NewPartFromText(analysisPrompt),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    responseSchema,
	})
	if err != nil {
		return "", err
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("no data returned by model")
	}

	return text, nil
}

// Release deletes the uploaded file from the provider.
func (g *Gemini) Release(ctx context.Context, job Job) error {
	if job.Name == "" {
		return nil
	}

	_, err := g.client.Files.Delete(ctx, job.Name, nil)

	return err
}

package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/vertexai/genai"

	"github.com/talentgraph/backend/config"
	"github.com/talentgraph/backend/models"
)

// Client wraps the Vertex AI Gemini client. All substantive language work
// (document understanding, chat answering) happens on the model side; this
// client only carries prompts and decodes JSON payloads.
type Client struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	client, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.GeminiModel)

	// Low temperature keeps extraction output stable across retries
	model.SetTemperature(0.2)
	model.SetTopP(0.8)
	model.SetMaxOutputTokens(8192)

	return &Client{
		client:    client,
		model:     model,
		modelName: cfg.GeminiModel,
	}, nil
}

// Close closes the Gemini client
func (c *Client) Close() error {
	return c.client.Close()
}

// ModelName reports the configured model identifier
func (c *Client) ModelName() string {
	return c.modelName
}

const candidateSchema = `{
  "name": "Full name",
  "email": "Email address or null",
  "phone": "Phone number or null",
  "location": "City the candidate is based in",
  "current_role": "Current job title or null",
  "total_experience": "Human readable, e.g. \"4 years 2 months\"",
  "experience_months": 0,
  "summary": "Short professional summary",
  "skills": ["skill1", "skill2"],
  "experience": [
    {
      "company": "Company Name",
      "role": "Job title",
      "duration": "2 years",
      "start_date": "2020-01",
      "end_date": "2022-01",
      "description": "Brief description"
    }
  ],
  "education": [
    {
      "degree": "Bachelor",
      "institution": "University Name",
      "year": "2020",
      "field_of_study": "Computer Science"
    }
  ],
  "certifications": ["AWS Certified"],
  "languages": ["English", "Hindi"]
}`

// ExtractCandidate extracts a structured candidate profile from resume text
func (c *Client) ExtractCandidate(ctx context.Context, resumeText string) (*models.Candidate, error) {
	prompt := fmt.Sprintf(`Analyze the following resume and extract structured information.
Return a JSON object with these fields (use null for missing data):

%s

IMPORTANT for experience_months:
- Calculate TOTAL months of professional experience across the whole career span
- Use the earliest start date and the latest end date (or today for "Present")
- experience_months must be a non-negative integer

RESUME TEXT:
%s

Return ONLY the JSON object, no markdown formatting, no explanation.`, candidateSchema, resumeText)

	return c.generateCandidate(ctx, genai.Text(prompt))
}

// ExtractCandidateFromPDF extracts a candidate profile from PDF bytes using
// Gemini's multimodal input
func (c *Client) ExtractCandidateFromPDF(ctx context.Context, pdfData []byte, filename string) (*models.Candidate, error) {
	prompt := fmt.Sprintf(`Analyze this resume document and extract structured information.
Return a JSON object with these fields (use null for missing data):

%s

IMPORTANT for experience_months:
- Calculate TOTAL months of professional experience across the whole career span
- Use the earliest start date and the latest end date (or today for "Present")
- experience_months must be a non-negative integer

Return ONLY the JSON object, no markdown formatting, no explanation.`, candidateSchema)

	pdfBlob := genai.Blob{
		MIMEType: "application/pdf",
		Data:     pdfData,
	}

	cand, err := c.generateCandidate(ctx, pdfBlob, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	log.Printf("[Gemini] Extracted resume PDF '%s': name=%s, skills=%d, months=%d",
		filename, cand.Name, len(cand.Skills), cand.ExperienceMonths)
	return cand, nil
}

func (c *Client) generateCandidate(ctx context.Context, parts ...genai.Part) (*models.Candidate, error) {
	resp, err := c.model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text := cleanJSON(extractText(resp))
	if text == "" {
		return nil, fmt.Errorf("no response from Gemini")
	}

	var cand models.Candidate
	if err := json.Unmarshal([]byte(text), &cand); err != nil {
		log.Printf("[Gemini] Failed to parse candidate response: %s", text)
		return nil, fmt.Errorf("failed to parse candidate JSON: %w", err)
	}
	if cand.ExperienceMonths < 0 {
		cand.ExperienceMonths = 0
	}
	return &cand, nil
}

// ExtractJob extracts a structured job requirement from job description text
func (c *Client) ExtractJob(ctx context.Context, jdText string) (*models.Job, error) {
	prompt := fmt.Sprintf(`Extract job requirement information from this job description.
Return a JSON object with these fields:

{
  "title": "Job title",
  "company": "Company name",
  "location": "Job location, or \"any\" when the role is open to all locations",
  "experience_required": "Human readable, e.g. \"2+ years\"",
  "min_experience_months": 24,
  "salary": "Salary range if mentioned",
  "job_type": "full_time|part_time|contract|internship",
  "description": "Job description (summarize if very long, max 500 chars)",
  "skills": ["must-have", "skills"],
  "optional_skills": ["nice-to-have", "skills"],
  "education_required": "Education requirement if mentioned",
  "responsibilities": ["key", "responsibilities"],
  "benefits": ["benefits", "if", "mentioned"]
}

Rules:
- "skills" holds skills the posting requires; "optional_skills" holds nice-to-haves
- min_experience_months is an integer or null when no floor is stated

JOB DESCRIPTION:
%s

Return ONLY the JSON object. If this is not a job description, return {"error": "not_a_job_description"}.`, jdText)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text := cleanJSON(extractText(resp))

	var errResp map[string]string
	if err := json.Unmarshal([]byte(text), &errResp); err == nil {
		if errResp["error"] == "not_a_job_description" {
			return nil, fmt.Errorf("not a job description")
		}
	}

	var job models.Job
	if err := json.Unmarshal([]byte(text), &job); err != nil {
		log.Printf("[Gemini] Failed to parse job response: %s", text)
		return nil, fmt.Errorf("failed to parse job JSON: %w", err)
	}
	return &job, nil
}

// Turn is one prior exchange of a chat session passed back as context
type Turn struct {
	Role    string
	Content string
}

// AnswerQuestion answers a knowledge-graph question given prior session turns.
// Retrieval mode and top_k are forwarded verbatim; retrieval itself is the
// model side's concern.
func (c *Client) AnswerQuestion(ctx context.Context, question string, history []Turn, mode string, topK int) (string, error) {
	var transcript strings.Builder
	for _, turn := range history {
		transcript.WriteString(turn.Role)
		transcript.WriteString(": ")
		transcript.WriteString(turn.Content)
		transcript.WriteString("\n")
	}

	prompt := fmt.Sprintf(`You are a recruitment knowledge-graph assistant answering questions
about stored candidates, jobs, companies and institutions.

Retrieval mode: %s (top %d results)

CONVERSATION SO FAR:
%s

QUESTION: %s

Answer concisely in plain text.`, mode, topK, transcript.String(), question)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	answer := strings.TrimSpace(extractText(resp))
	if answer == "" {
		return "", fmt.Errorf("no response from Gemini")
	}
	return answer, nil
}

// Helper functions

func extractText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String()
}

func cleanJSON(text string) string {
	// Remove markdown code blocks if present
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	return text
}

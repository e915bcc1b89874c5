// Package bullets turns a project description into a short list of resume
// bullet points using a chat model, with strict JSON validation and a
// conservative fallback when the model misbehaves.
package bullets

import (
	"fmt"
	"strings"
)

const promptTemplate = `You are a resume expert. Generate 2–3 concise, high-impact resume bullet points for the project.

Rules:
- Return ONLY valid JSON (no markdown, no extra text).
- Bullets must be 1 line each, action-verb led, and specific.
- Do NOT invent metrics. If a metric is missing, either omit it or put it under "missing_info_questions".
- If you must make an assumption, put it under "assumptions" (do not put it in bullets).

Return this JSON schema:
{
  "bullets": ["...","..."],
  "assumptions": [],
  "missing_info_questions": []
}

Project Title: %s
Project Description: %s
GitHub (optional): %s`

// BuildPrompt renders the bullet-generation prompt for one project.
func BuildPrompt(subject, description, githubURL string) string {
	return strings.TrimSpace(fmt.Sprintf(promptTemplate,
		strings.TrimSpace(subject),
		strings.TrimSpace(description),
		strings.TrimSpace(githubURL),
	))
}

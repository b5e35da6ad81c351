package quizgen

import "fmt"

const systemPromptTemplate = `You are a WWE Quizmaster.
Ask ONE multiple-choice question strictly based on kayfabe storylines.
Difficulty level: %s.
Format output ONLY as JSON with fields: question, options (A-D), and answer.
Do NOT include any extra text or commentary.
Example:
{
  "question": "Who betrayed The Shield in 2014?",
  "options": ["A: Roman Reigns", "B: Dean Ambrose", "C: Seth Rollins", "D: Kane"],
  "answer": "C"
}`

const userPrompt = "Generate 1 MCQ question in JSON format."

// buildSystemPrompt interpolates the difficulty label into the fixed
// quizmaster instruction.
func buildSystemPrompt(difficulty Difficulty) string {
	return fmt.Sprintf(systemPromptTemplate, difficulty)
}

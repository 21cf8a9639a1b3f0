// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package questions

import (
	"bytes"
	"text/template"
)

const systemPrompt = "You are a helpful assistant."

// questionsPromptTmpl asks for the exact {"themes": {...}} shape that
// ThemeSet decodes.
var questionsPromptTmpl = template.Must(template.New("questions").Parse(`You are helping with a research study on the topic: "{{.Topic}}".

Generate {{.MinQuestions}} to {{.MaxQuestions}} well-formulated, in-depth research questions **in English**, organized into {{.MinThemes}} to {{.MaxThemes}} coherent themes. Each question must be clearly related to the topic and avoid vague or generic phrasing.

Only output valid JSON in the following format (nothing before or after it):

{
  "themes": {
    "Theme 1": ["Question 1", "Question 2", "..."],
    "Theme 2": ["Question 3", "Question 4", "..."]
  }
}`))

type promptData struct {
	Topic        string
	MinQuestions int
	MaxQuestions int
	MinThemes    int
	MaxThemes    int
}

// renderPrompt executes the question prompt template for topic.
func renderPrompt(topic string) (string, error) {
	var buf bytes.Buffer
	err := questionsPromptTmpl.Execute(&buf, promptData{
		Topic:        topic,
		MinQuestions: 10,
		MaxQuestions: 15,
		MinThemes:    2,
		MaxThemes:    5,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

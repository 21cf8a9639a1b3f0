// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synthesis

import (
	"bytes"
	"text/template"
)

// synthesisPromptTmpl is sent as the only user message for each question.
var synthesisPromptTmpl = template.Must(template.New("synthesis").Parse(`You are a research assistant. Here is a research question:

Question: "{{.Question}}"

Write a structured synthesis (3 to 5 paragraphs) from general knowledge, highlighting the main ideas, issues, challenges and opportunities related to this subject.

If relevant, add examples or use cases.
Answer in {{.Language}} only.`))

type promptData struct {
	Question string
	Language string
}

func renderPrompt(question, language string) (string, error) {
	var buf bytes.Buffer
	if err := synthesisPromptTmpl.Execute(&buf, promptData{Question: question, Language: language}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

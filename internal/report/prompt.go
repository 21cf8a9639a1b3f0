// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"text/template"
)

var (
	directPromptTmpl = template.Must(template.New("direct").Parse(
		"Here is a set of syntheses. Write a clear and structured executive summary in {{.Language}}:\n\n{{.Text}}"))

	chunkPromptTmpl = template.Must(template.New("chunk").Parse(
		"Here is an excerpt of syntheses. Summarize the essential points:\n\n{{.Text}}"))

	groupPromptTmpl = template.Must(template.New("group").Parse(
		"Here is a set of partial summaries. Summarize the main ideas:\n\n{{.Text}}"))

	finalPromptTmpl = template.Must(template.New("final").Parse(
		"Here is a set of condensed partial summaries. Write a final structured executive summary in {{.Language}}:\n\n{{.Text}}"))
)

type promptData struct {
	Language string
	Text     string
}

func renderPrompt(tmpl *template.Template, language, text string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, promptData{Language: language, Text: text}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

package llm

import "strings"

const textPlaceholder = "{text}"

var promptTemplates = map[string]string{
	"en": "You are a helpful AI assistant. Respond naturally and conversationally in English to: {text}",
	"es": "Eres un asistente de IA útil. Responde de forma natural y conversacional en español a: {text}",
	"fr": "Vous êtes un assistant IA utile. Répondez de manière naturelle et conversationnelle en français à: {text}",
}

// BuildPrompt embeds text in the template for language, using English for
// languages without a template.
func BuildPrompt(language, text string) string {
	tmpl, ok := promptTemplates[language]
	if !ok {
		tmpl = promptTemplates["en"]
	}
	return strings.Replace(tmpl, textPlaceholder, text, 1)
}

package ai

// servicePrompts maps (service, serviceItem) to the seed prompt that opens a
// new chat session.
var servicePrompts = map[string]map[string]string{
	"writing": {
		"writeanarticle": `Write an article like a grad-level professor. If understood, just reply "Hello! What article may I write for you today?"`,
		"summarize":      `Summarize any text the user provides, keeping the key points. If understood, just reply "Hello! Paste the text you would like summarized."`,
		"proofread":      `Proofread the user's text and point out grammar and style issues. If understood, just reply "Hello! Share the text you would like proofread."`,
	},
	"coding": {
		"explaincode": `Explain any code the user provides, line by line, in plain language. If understood, just reply "Hello! Paste the code you would like explained."`,
	},
}

// SeedPrompt returns the prompt template for a service item.
func SeedPrompt(service, serviceItem string) (string, bool) {
	items, ok := servicePrompts[service]
	if !ok {
		return "", false
	}
	prompt, ok := items[serviceItem]
	return prompt, ok
}

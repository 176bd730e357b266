package analysis

import "strings"

const promptTemplate = `Analyze the following code snippet. Please provide:
1. Generate a short and concise summary of what the code does
2. Generate a short and concise suggestion for any code improvements if needed

Code snippet:
` + "```" + `
{{snippet}}
` + "```"

// BuildPrompt embeds the snippet verbatim into the analysis instructions
func BuildPrompt(snippet string) string {
	return strings.Replace(promptTemplate, "{{snippet}}", snippet, 1)
}

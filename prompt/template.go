package prompt

import (
	"fmt"

	"github.com/tmc/langchaingo/prompts"
)

// renderTemplate renders a Go-template prompt with the given variables. A
// variable referenced by the template but absent from vars is an assembly
// error: the render fails instead of emitting a blank placeholder.
func renderTemplate(tmpl string, vars map[string]any) (string, error) {
	inputVars := make([]string, 0, len(vars))
	for k := range vars {
		inputVars = append(inputVars, k)
	}

	pt := prompts.PromptTemplate{
		Template:       tmpl,
		InputVariables: inputVars,
		TemplateFormat: prompts.TemplateFormatGoTemplate,
	}

	out, err := pt.Format(vars)
	if err != nil {
		return "", fmt.Errorf("prompt template render failed: %w", err)
	}
	return out, nil
}

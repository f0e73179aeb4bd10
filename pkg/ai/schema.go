package ai

import (
	"github.com/charmbracelet/log"
	"github.com/theapemachine/cinematch/pkg/registry"
	"google.golang.org/genai"
)

var schemaTypes = map[string]genai.Type{
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
	"array":   genai.TypeArray,
	"object":  genai.TypeObject,
}

/*
convertTools turns the MCP input schemas of the registered tools into Gemini
function declarations.
*/
func convertTools(defs []registry.ToolDefinition) []*genai.Tool {
	if len(defs) == 0 {
		return nil
	}

	declarations := make([]*genai.FunctionDeclaration, 0, len(defs))

	for _, def := range defs {
		properties := make(map[string]*genai.Schema)

		for name, raw := range def.Schema.Properties {
			prop, ok := raw.(map[string]any)
			if !ok {
				log.Warn("skipping tool property with unexpected type", "tool", def.ToolName, "property", name)
				continue
			}

			schemaType := genai.TypeString
			if typeStr, ok := prop["type"].(string); ok {
				if mapped, ok := schemaTypes[typeStr]; ok {
					schemaType = mapped
				}
			}

			description, _ := prop["description"].(string)

			properties[name] = &genai.Schema{
				Type:        schemaType,
				Description: description,
			}
		}

		declarations = append(declarations, &genai.FunctionDeclaration{
			Name:        def.ToolName,
			Description: def.Description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: properties,
				Required:   def.Schema.Required,
			},
		})
	}

	return []*genai.Tool{{FunctionDeclarations: declarations}}
}

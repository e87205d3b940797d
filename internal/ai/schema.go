package ai

import "google.golang.org/genai"

// SchemaType is the JSON type of a schema node.
type SchemaType string

const (
	TypeObject SchemaType = "object"
	TypeArray  SchemaType = "array"
	TypeString SchemaType = "string"
	TypeNumber SchemaType = "number"
)

// Schema is a provider-neutral description of the expected reply. Each
// provider converts it to its own structured-output format.
type Schema struct {
	Type        SchemaType
	Description string
	Items       *Schema
	Properties  []Property // ordered
	Required    []string
}

// Property is a named field of an object schema.
type Property struct {
	Name   string
	Schema *Schema
}

// ResultSchema mirrors model.AnalysisResult. Every field is required.
var ResultSchema = &Schema{
	Type: TypeObject,
	Properties: []Property{
		{"matchScore", &Schema{Type: TypeNumber, Description: "A score from 0 to 100 based on how well the resume matches the JD."}},
		{"matchingSkills", stringArray("Skills present in both resume and JD.")},
		{"missingSkills", stringArray("Keywords or skills from the JD missing in the resume.")},
		{"formattingFeedback", stringArray("Tips on resume structure, length, or readability.")},
		{"roleFit", &Schema{Type: TypeString, Description: "A brief summary of why the candidate is or isn't a good fit."}},
		{"suggestedImprovements", &Schema{
			Type: TypeArray,
			Items: &Schema{
				Type: TypeObject,
				Properties: []Property{
					{"category", &Schema{Type: TypeString}},
					{"action", &Schema{Type: TypeString}},
					{"impact", &Schema{Type: TypeString}},
				},
				Required: []string{"category", "action", "impact"},
			},
		}},
		{"atsOptimization", stringArray("Specific changes to make the resume more machine-readable.")},
	},
	Required: []string{
		"matchScore", "matchingSkills", "missingSkills", "formattingFeedback",
		"roleFit", "suggestedImprovements", "atsOptimization",
	},
}

func stringArray(desc string) *Schema {
	return &Schema{Type: TypeArray, Items: &Schema{Type: TypeString}, Description: desc}
}

// JSONSchema renders s as a JSON Schema document suitable for OpenAI strict
// structured outputs (additionalProperties is false on every object).
func (s *Schema) JSONSchema() map[string]any {
	if s == nil {
		return nil
	}
	out := map[string]any{"type": string(s.Type)}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if s.Items != nil {
		out["items"] = s.Items.JSONSchema()
	}
	if s.Type == TypeObject {
		props := make(map[string]any, len(s.Properties))
		for _, p := range s.Properties {
			props[p.Name] = p.Schema.JSONSchema()
		}
		out["properties"] = props
		out["additionalProperties"] = false
		out["required"] = s.Required
	}
	return out
}

var genaiTypes = map[SchemaType]genai.Type{
	TypeObject: genai.TypeObject,
	TypeArray:  genai.TypeArray,
	TypeString: genai.TypeString,
	TypeNumber: genai.TypeNumber,
}

// Gemini converts s to a genai response schema.
func (s *Schema) Gemini() *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genaiTypes[s.Type],
		Description: s.Description,
		Items:       s.Items.Gemini(),
		Required:    s.Required,
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for _, p := range s.Properties {
			out.Properties[p.Name] = p.Schema.Gemini()
			out.PropertyOrdering = append(out.PropertyOrdering, p.Name)
		}
	}
	return out
}

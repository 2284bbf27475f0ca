package config

import "github.com/invopop/jsonschema"

// Schema returns the JSON schema of the config file.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
		// Every key has a default, so nothing is required.
		RequiredFromJSONSchemaTags: true,
	}

	schema := r.Reflect(&Config{})
	schema.Title = "Dilemma Configuration"
	schema.Description = "Schema for dilemma.toml / dilemma.yml."
	return schema
}

package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON Schema of the config file.
func Schema() *jsonschema.Schema {
	r := jsonschema.Reflector{ExpandedStruct: true, DoNotReference: true}
	sch := r.Reflect(&Config{})
	sch.Title = "typedterm config"
	sch.Description = "~/.typedterm/config.yaml"
	return sch
}

// MarshalSchema indents the schema to JSON bytes.
func MarshalSchema(sch *jsonschema.Schema) ([]byte, error) {
	return json.MarshalIndent(sch, "", "  ")
}

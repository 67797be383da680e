package i18n

import (
	"bytes"
	"embed"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/bundle.schema.json
var schemaFS embed.FS

const bundleSchemaPath = "schema/bundle.schema.json"

func compileBundleSchema() (*jsonschema.Schema, error) {
	data, err := schemaFS.ReadFile(bundleSchemaPath)
	if err != nil {
		return nil, fmt.Errorf("i18n: read bundle schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("bundle.schema.json", bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("i18n: add bundle schema: %w", err)
	}
	return compiler.Compile("bundle.schema.json")
}

// schemaIssues flattens a validation error into "location: message" lines.
func schemaIssues(err *jsonschema.ValidationError) []string {
	if err == nil {
		return nil
	}
	var issues []string
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			location := strings.TrimSpace(node.InstanceLocation)
			if location == "" {
				location = "/"
			}
			issues = append(issues, location+": "+strings.TrimSpace(node.Message))
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}

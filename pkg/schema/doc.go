// Package schema provides a small type system for validating loosely typed option maps.
//
// Widget options arrive as map[string]any from JSON bodies, YAML files, MCP tool
// arguments and Loam front matter. Before they are decoded into a domain.Config,
// every key that is present is checked against its expected type so that a
// misconfiguration fails loudly instead of being silently coerced.
//
// Basic usage:
//
//	s := schema.Schema{
//	    "method":   schema.String(),
//	    "boxCount": schema.Int(),
//	    "values":   schema.Slice(schema.Float()),
//	}
//
//	if err := schema.ValidatePresent(s, data); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        // Handle each field failure
//	    }
//	}
package schema

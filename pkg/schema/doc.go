// Package schema validates the generic key-value trees decoded from topology
// config before they are bound to typed models.
//
// It defines a small type system (string, probability, slices, mappings,
// optional fields and custom validators). A Schema maps field names
// to types; Validate reports every failure at once as an *AggregateError of
// *ValidationError values.
//
// Basic usage:
//
//	s := schema.Schema{
//	    "track": schema.String(),
//	    "probs": schema.Optional(schema.Map(schema.Probability())),
//	}
//
//	if err := schema.Validate(s, data); err != nil {
//	    for _, fieldErr := range schema.ValidationErrors(err) {
//	        // ...
//	    }
//	}
package schema

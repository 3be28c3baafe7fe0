package program

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

// payloadSchema describes a persisted programs collection.
const payloadSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name"],
    "properties": {
      "id":         {"type": "string", "minLength": 1},
      "type":       {"type": "string"},
      "name":       {"type": "string", "minLength": 1},
      "university": {"type": "string"},
      "country":    {"type": "string"},
      "duration":   {"type": "string"},
      "cost":       {"type": "integer", "minimum": 0},
      "deadline":   {"type": "string"}
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(payloadSchema)

// checkPayload reports whether data is a well-formed persisted collection.
func checkPayload(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return errors.Wrap(err, "checking programs payload")
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return errors.Errorf("invalid programs payload: %s", strings.Join(errs, "; "))
	}
	return nil
}

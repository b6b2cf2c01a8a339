// pkg/catalog/schema.go
package catalog

// SetAsideDefinition is one entry of the static set-aside reference
// catalog. The catalog is loaded once at startup and never mutated.
type SetAsideDefinition struct {
	Code                  string   `json:"code"`
	Name                  string   `json:"name"`
	FullName              string   `json:"fullName,omitempty"`
	Description           string   `json:"description,omitempty"`
	Type                  string   `json:"type"` // competitive, sole_source, partial
	AgencySpecific        string   `json:"agencySpecific,omitempty"`
	RelatedCertifications []string `json:"relatedCertifications"`
	ProcurementThreshold  float64  `json:"procurementThreshold,omitempty"`
	Priority              int      `json:"priority"`
}

// File is the on-disk shape of a catalog override file.
type File struct {
	Version     string               `json:"version"`
	LastUpdated string               `json:"lastUpdated,omitempty"`
	SetAsides   []SetAsideDefinition `json:"setAsides"`
	NAICSToPSC  map[string]string    `json:"naicsToPsc,omitempty"`
}

// fileSchema validates catalog override files before they are trusted.
// A catalog that fails validation is a configuration error and aborts
// startup.
const fileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "setAsides"],
  "properties": {
    "version": {"type": "string", "minLength": 1},
    "lastUpdated": {"type": "string"},
    "setAsides": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["code", "name", "type", "relatedCertifications", "priority"],
        "properties": {
          "code": {"type": "string", "pattern": "^[A-Z0-9]{2,10}$"},
          "name": {"type": "string", "minLength": 1},
          "fullName": {"type": "string"},
          "description": {"type": "string"},
          "type": {"type": "string", "enum": ["competitive", "sole_source", "partial"]},
          "agencySpecific": {"type": "string"},
          "relatedCertifications": {
            "type": "array",
            "items": {"type": "string", "minLength": 1}
          },
          "procurementThreshold": {"type": "number", "minimum": 0},
          "priority": {"type": "integer", "minimum": 1}
        },
        "additionalProperties": false
      }
    },
    "naicsToPsc": {
      "type": "object",
      "patternProperties": {
        "^[0-9]{6}$": {"type": "string"}
      },
      "additionalProperties": false
    }
  },
  "additionalProperties": false
}`

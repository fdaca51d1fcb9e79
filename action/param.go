package action

import (
	"encoding/json"
	"math"
)

// ParamType is the semantic type of an action parameter.
type ParamType string

const (
	TypeString  ParamType = "string"
	TypeInteger ParamType = "integer"
	TypeFloat   ParamType = "float"
	TypeBoolean ParamType = "boolean"
)

// jsonType maps a ParamType to its JSON Schema type name.
func (t ParamType) jsonType() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "number"
	case TypeBoolean:
		return "boolean"
	default:
		return "string"
	}
}

// Param declares a single action parameter.
type Param struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
}

// Params is an ordered parameter declaration list. Order follows the
// declaration; it has no semantic weight but keeps generated schemas and
// validation output deterministic.
type Params []Param

// Schema serializes the declarations as a JSON Schema object suitable
// for a provider's tool declaration.
func (p Params) Schema() json.RawMessage {
	type property struct {
		Type        string `json:"type"`
		Description string `json:"description,omitempty"`
	}

	properties := make(map[string]property, len(p))
	var required []string
	for _, param := range p {
		properties[param.Name] = property{
			Type:        param.Type.jsonType(),
			Description: param.Description,
		}
		if param.Required {
			required = append(required, param.Name)
		}
	}

	schema := struct {
		Type       string              `json:"type"`
		Properties map[string]property `json:"properties"`
		Required   []string            `json:"required,omitempty"`
	}{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}

	raw, _ := json.Marshal(schema)
	return raw
}

// checkType reports whether a decoded JSON value satisfies the parameter
// type. Integers arrive from encoding/json as float64; a value counts as
// an integer only if it has no fractional part.
func (t ParamType) checkType(value any) bool {
	switch t {
	case TypeString:
		_, ok := value.(string)
		return ok
	case TypeInteger:
		f, ok := value.(float64)
		return ok && f == math.Trunc(f)
	case TypeFloat:
		_, ok := value.(float64)
		return ok
	case TypeBoolean:
		_, ok := value.(bool)
		return ok
	default:
		return false
	}
}

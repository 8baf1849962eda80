// Package schema holds the canonical trade field definitions the CSV
// importer maps columns onto. The table lives in fields.yaml (embedded at
// build time) so synonyms can be extended without touching matcher code.
package schema

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ValueType describes the kind of value a canonical field holds.
type ValueType string

const (
	TypeString  ValueType = "string"
	TypeNumber  ValueType = "number"
	TypeBoolean ValueType = "boolean"
	TypeDate    ValueType = "date"
	TypeTime    ValueType = "time"
)

// Field is one canonical trade attribute.
type Field struct {
	Key       string    `yaml:"key"`
	Label     string    `yaml:"label"`
	Synonyms  []string  `yaml:"synonyms"`
	Hints     []string  `yaml:"hints"`
	Required  bool      `yaml:"required"`
	ValueType ValueType `yaml:"value_type"`
}

// Keys of the fields the value-pattern matcher has detectors for. The rest
// of the registry is matched on header text only.
const (
	KeyTradeDate       = "trade_date"
	KeyTradeTime       = "trade_time"
	KeyMarket          = "market"
	KeyDirection       = "direction"
	KeyTradeOutcome    = "trade_outcome"
	KeyRiskPerTrade    = "risk_per_trade"
	KeyRiskRewardRatio = "risk_reward_ratio"
)

//go:embed fields.yaml
var rawFields []byte

var (
	fields []Field
	byKey  map[string]Field
)

func init() {
	var doc struct {
		Fields []Field `yaml:"fields"`
	}
	if err := yaml.Unmarshal(rawFields, &doc); err != nil {
		panic(fmt.Sprintf("schema: malformed fields.yaml: %v", err))
	}
	if len(doc.Fields) == 0 {
		panic("schema: fields.yaml defines no fields")
	}
	byKey = make(map[string]Field, len(doc.Fields))
	for i := range doc.Fields {
		f := &doc.Fields[i]
		if f.Key == "" {
			panic("schema: field with empty key in fields.yaml")
		}
		if _, dup := byKey[f.Key]; dup {
			panic(fmt.Sprintf("schema: duplicate field key %q in fields.yaml", f.Key))
		}
		if f.ValueType == "" {
			f.ValueType = TypeString
		}
		byKey[f.Key] = *f
	}
	fields = doc.Fields
}

// Get returns the field definition for a canonical key.
func Get(key string) (Field, bool) {
	f, ok := byKey[key]
	return f, ok
}

// Fields returns all field definitions in registry order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// Required returns the fields an import cannot proceed without.
func Required() []Field {
	var out []Field
	for _, f := range fields {
		if f.Required {
			out = append(out, f)
		}
	}
	return out
}

package rules

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	stderrors "leadgen/internal/common/errors"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// Default returns the embedded Gruppenwerk registry. It panics on an
// invalid embedded document since that is a build defect.
func Default() *Registry {
	reg, err := Parse(defaultRulesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded rules.yaml invalid: %v", err))
	}
	return reg
}

// Load reads and validates a rules document from disk.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, stderrors.NewRulesValidationFailedError(fmt.Sprintf("read %s: %v", path, err))
	}
	return Parse(data)
}

// Parse validates raw YAML against the registry schema and unmarshals it.
func Parse(data []byte) (*Registry, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, stderrors.NewRulesValidationFailedError(fmt.Sprintf("yaml parse: %v", err))
	}

	if err := validateSchema(doc); err != nil {
		return nil, err
	}

	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, stderrors.NewRulesValidationFailedError(fmt.Sprintf("yaml decode: %v", err))
	}

	if err := Validate(&reg); err != nil {
		return nil, err
	}

	return &reg, nil
}

func validateSchema(doc map[string]interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return stderrors.NewRulesValidationFailedError(fmt.Sprintf("document not JSON-representable: %v", err))
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(registrySchema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return stderrors.NewRulesValidationFailedError(fmt.Sprintf("schema validation: %v", err))
	}

	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return stderrors.NewRulesValidationFailedError(strings.Join(msgs, "; "))
	}

	return nil
}

// Validate enforces the cross-references the engine relies on: every
// supported template id and every default template must be a declared
// segment rule, and the default must be in the company's supported list.
func Validate(reg *Registry) error {
	known := make(map[string]bool, len(reg.TemplateAuswahl))
	for _, tr := range reg.TemplateAuswahl {
		if known[tr.ID] {
			return stderrors.NewRulesValidationFailedError(fmt.Sprintf("duplicate template rule id %q", tr.ID))
		}
		known[tr.ID] = true
	}

	for companyID, company := range reg.Segmentierung {
		supported := make(map[string]bool, len(company.Templates))
		for _, segmentID := range company.Templates {
			if !known[segmentID] {
				return stderrors.NewRulesValidationFailedError(
					fmt.Sprintf("company %q supports unknown segment %q", companyID, segmentID))
			}
			supported[segmentID] = true
		}

		if !supported[company.DefaultTemplate] {
			return stderrors.NewRulesValidationFailedError(
				fmt.Sprintf("company %q default template %q is not in its supported list", companyID, company.DefaultTemplate))
		}
	}

	return nil
}

package sanitizer

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// MsgFieldRequired is reported for a declared required field missing from the body.
const MsgFieldRequired = "Field is required"

var policyValidator = validator.New(validator.WithRequiredStructEnabled())

// FieldRule declares how one request field is validated.
type FieldRule struct {
	Options  `yaml:",inline"`
	Required bool `yaml:"required"`
}

// Policy maps request field names to validation rules. Fields not declared
// are dropped unless AllowUnknown is set, in which case they are sanitized
// as plain text.
//
//	fields:
//	  email:
//	    type: email
//	    required: true
//	  website:
//	    type: url
//	  notes:
//	    max_length: 500
//	allow_unknown: false
type Policy struct {
	Fields       map[string]FieldRule `yaml:"fields" validate:"min=1,dive,keys,required,endkeys"`
	AllowUnknown bool                 `yaml:"allow_unknown"`
}

// FieldErrors maps field names to their failure messages.
// It matches ErrPolicyViolation with errors.Is.
type FieldErrors map[string][]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, field := range slices.Sorted(maps.Keys(e)) {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e[field], ", ")))
	}
	return fmt.Sprintf("%s: %s", ErrPolicyViolation, strings.Join(parts, "; "))
}

func (e FieldErrors) Unwrap() error { return ErrPolicyViolation }

// LoadPolicy reads and validates a YAML policy file.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrInvalidPolicy, err)
	}
	return ParsePolicy(data)
}

// ParsePolicy decodes and validates a YAML policy. Unknown keys are rejected.
func ParsePolicy(data []byte) (*Policy, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var p Policy
	if err := dec.Decode(&p); err != nil {
		return nil, errors.Join(ErrInvalidPolicy, err)
	}
	if err := policyValidator.Struct(p); err != nil {
		return nil, errors.Join(ErrInvalidPolicy, err)
	}
	return &p, nil
}

// ApplyPolicy validates and sanitizes body against p. String values of
// declared fields go through ValidateAndSanitize with the field's options;
// other values go through SanitizeObject. On failure the returned error is a
// FieldErrors covering every failing field and the map is nil.
func (s *Sanitizer) ApplyPolicy(p *Policy, body map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(p.Fields))
	fieldErrs := FieldErrors{}

	for _, name := range slices.Sorted(maps.Keys(body)) {
		val := body[name]
		rule, declared := p.Fields[name]
		if !declared {
			if p.AllowUnknown {
				out[SanitizeUserInput(name)] = s.SanitizeObject(val)
			}
			continue
		}

		str, isString := val.(string)
		if !isString {
			var objOpts []ObjectOption
			if rule.AllowHTML {
				objOpts = append(objOpts, WithObjectHTML())
			}
			out[name] = s.SanitizeObject(val, objOpts...)
			continue
		}

		res := s.ValidateAndSanitize(str, WithOptions(rule.Options))
		if !res.Valid {
			fieldErrs[name] = res.Errors
			continue
		}
		out[name] = res.Sanitized
	}

	for name, rule := range p.Fields {
		if _, present := body[name]; rule.Required && !present {
			fieldErrs[name] = append(fieldErrs[name], MsgFieldRequired)
		}
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}
	return out, nil
}

// Apply calls Default().ApplyPolicy(p, body).
func (p *Policy) Apply(body map[string]any) (map[string]any, error) {
	return Default().ApplyPolicy(p, body)
}

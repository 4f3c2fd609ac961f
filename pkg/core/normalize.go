package core

import (
	"fmt"
)

// NormalizeFields turns the raw data of one slide into validated field data.
//
// Order:
//  1. A bare scalar is wrapped under ShortFormField.
//  2. NormalizeFieldsInput reduces the raw shape to a mapping.
//  3. Fields unknown to the contract are rejected.
//  4. Per declared field: required check, default, coercion, validation,
//     markup conversion.
//  5. CollectFieldsOnInstantiation derives the final field data.
func (m *Master) NormalizeFields(raw any) (Fields, error) {
	working := raw
	if m.ShortFormField != "" && isScalar(working) {
		working = map[string]any{m.ShortFormField: working}
	}

	if m.NormalizeFieldsInput != nil {
		var err error
		working, err = m.NormalizeFieldsInput(working)
		if err != nil {
			return nil, &FieldError{Master: m.Name, Err: err}
		}
	}

	bag, err := asFields(working)
	if err != nil {
		return nil, &FieldError{Master: m.Name, Err: err}
	}

	fields, err := NormalizeContract(m.Name, m.Fields, bag)
	if err != nil {
		return nil, err
	}

	if m.CollectFieldsOnInstantiation != nil {
		fields, err = m.CollectFieldsOnInstantiation(fields)
		if err != nil {
			return nil, &FieldError{Master: m.Name, Err: err}
		}
	}
	return fields, nil
}

// NormalizeContract validates bag against contract and returns a new bag
// with defaults applied, values coerced and markup converted. name is only
// used in error reports.
func NormalizeContract(name string, contract Contract, bag Fields) (Fields, error) {
	for key := range bag {
		if _, ok := contract[key]; !ok {
			return nil, &FieldError{Master: name, Field: key, Err: ErrUnknownField}
		}
	}

	out := make(Fields, len(contract))
	for _, key := range contract.Names() {
		def := contract[key]
		value, present := bag[key]
		if present && value == nil {
			present = false
		}

		if !present {
			if def.Required {
				return nil, &FieldError{Master: name, Field: key, Err: ErrMissingField}
			}
			if def.Default != nil {
				out[key] = cloneValue(def.Default)
			}
			continue
		}

		if def.Coerce != nil {
			coerced, err := def.Coerce(value)
			if err != nil {
				return nil, &FieldError{Master: name, Field: key, Err: fmt.Errorf("%w: %v", ErrInvalidValue, err)}
			}
			value = coerced
		}

		if def.Validate != nil && !def.Validate(value) {
			return nil, &FieldError{Master: name, Field: key, Err: fmt.Errorf("%w: %v", ErrInvalidValue, value)}
		}

		if def.Markup {
			converted, err := convertMarkupValue(value)
			if err != nil {
				return nil, &FieldError{Master: name, Field: key, Err: err}
			}
			value = converted
		}

		out[key] = value
	}
	return out, nil
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, bool, int, int64, uint64, float64:
		return true
	}
	return false
}

func asFields(v any) (Fields, error) {
	switch t := v.(type) {
	case nil:
		return Fields{}, nil
	case Fields:
		return t, nil
	case map[string]any:
		return Fields(t), nil
	case map[any]any:
		out := make(Fields, len(t))
		for k, val := range t {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("%w: non-string key %v", ErrMalformedFields, k)
			}
			out[key] = val
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: got %T", ErrMalformedFields, v)
}

// AsFields converts a decoded mapping into a field bag.
func AsFields(v any) (Fields, error) {
	return asFields(v)
}

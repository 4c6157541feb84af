package schema

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrUnknownAttribute is returned when a value is decoded for an attribute
// the schema does not describe. Directories commonly carry attributes a
// locally loaded schema omits, so callers usually treat this as non-fatal.
var ErrUnknownAttribute = errors.New("attribute not described by schema")

// Generalized Time layouts in decreasing precision, per RFC 4517.
var generalizedTimeLayouts = []string{
	"20060102150405.000Z",
	"20060102150405Z",
	"200601021504Z",
	"2006010215Z",
	"20060102150405-0700",
}

// DecodeValue converts a raw attribute value according to the attribute's
// syntax: Boolean yields bool, INTEGER yields int64, Generalized Time
// yields time.Time, anything else (or a value that fails its syntax's
// conversion) is returned as the raw string.
func (s *Schema) DecodeValue(attrName, raw string) (interface{}, error) {
	at := s.AttributeType(attrName)
	if at == nil {
		return nil, fmt.Errorf("%s: %w", attrName, ErrUnknownAttribute)
	}

	switch at.Syntax {
	case SyntaxBoolean:
		switch raw {
		case "TRUE":
			return true, nil
		case "FALSE":
			return false, nil
		}
		return raw, nil
	case SyntaxInteger:
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n, nil
		}
		return raw, nil
	case SyntaxGeneralizedTime:
		for _, layout := range generalizedTimeLayouts {
			if ts, err := time.Parse(layout, raw); err == nil {
				return ts, nil
			}
		}
		return raw, nil
	default:
		return raw, nil
	}
}

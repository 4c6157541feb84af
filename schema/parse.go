package schema

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInheritanceCycle is returned when SUP references form a cycle. A cycle
// aborts the whole parse; no partial schema is returned.
var ErrInheritanceCycle = errors.New("inheritance cycle detected")

// Dump is the protocol-native subschema dump a directory publishes:
// collections of definition strings per definition kind.
type Dump struct {
	ObjectClasses  []string
	AttributeTypes []string
	LDAPSyntaxes   []string
	MatchingRules  []string
}

// Parse builds a Schema from a subschema dump. Every definition string is
// parsed into its descriptor and indexed by OID and by all declared names.
// Object class and attribute type SUP chains are resolved before the schema
// is returned; a cycle is fatal.
func Parse(dump Dump) (*Schema, error) {
	s := New()

	for _, def := range dump.LDAPSyntaxes {
		syn, err := parseSyntaxDef(def)
		if err != nil {
			return nil, err
		}
		s.AddSyntax(syn)
	}
	for _, def := range dump.MatchingRules {
		mr, err := parseMatchingRule(def)
		if err != nil {
			return nil, err
		}
		s.AddMatchingRule(mr)
	}
	for _, def := range dump.AttributeTypes {
		at, err := parseAttributeType(def)
		if err != nil {
			return nil, err
		}
		s.AddAttributeType(at)
	}
	for _, def := range dump.ObjectClasses {
		oc, err := parseObjectClass(def)
		if err != nil {
			return nil, err
		}
		s.AddObjectClass(oc)
	}

	if err := s.resolveObjectClasses(); err != nil {
		return nil, err
	}
	if err := s.resolveAttributeTypes(); err != nil {
		return nil, err
	}

	return s, nil
}

// ParseLDIF reads a subschema subentry in LDIF form and collects its
// definition strings into a Dump. Line continuations (leading space) and
// comments are handled per RFC 2849.
func ParseLDIF(r io.Reader) (Dump, error) {
	var dump Dump

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var currentAttr string
	var currentValue strings.Builder

	flush := func() {
		value := strings.TrimSpace(currentValue.String())
		if currentAttr != "" && value != "" {
			switch strings.ToLower(currentAttr) {
			case "attributetypes":
				dump.AttributeTypes = append(dump.AttributeTypes, value)
			case "objectclasses":
				dump.ObjectClasses = append(dump.ObjectClasses, value)
			case "matchingrules":
				dump.MatchingRules = append(dump.MatchingRules, value)
			case "ldapsyntaxes":
				dump.LDAPSyntaxes = append(dump.LDAPSyntaxes, value)
			}
		}
		currentAttr = ""
		currentValue.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()

		if line == "" || strings.HasPrefix(line, "#") {
			flush()
			continue
		}

		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			currentValue.WriteString(" ")
			currentValue.WriteString(strings.TrimLeft(line, " \t"))
			continue
		}

		flush()

		colonIdx := strings.Index(line, ":")
		if colonIdx == -1 {
			continue
		}
		currentAttr = strings.TrimSpace(line[:colonIdx])
		currentValue.WriteString(strings.TrimSpace(line[colonIdx+1:]))
	}
	flush()

	if err := scanner.Err(); err != nil {
		return Dump{}, err
	}

	return dump, nil
}

// resolveObjectClasses fills EffectiveMust and EffectiveMay for every
// object class by walking SUP chains. Unknown superiors are tolerated (the
// declared sets stand alone); cycles are fatal.
func (s *Schema) resolveObjectClasses() error {
	resolved := make(map[*ObjectClass]bool)

	var resolve func(oc *ObjectClass, visiting map[*ObjectClass]bool) error
	resolve = func(oc *ObjectClass, visiting map[*ObjectClass]bool) error {
		if resolved[oc] {
			return nil
		}
		if visiting[oc] {
			return fmt.Errorf("object class %s: %w", oc.Name(), ErrInheritanceCycle)
		}
		visiting[oc] = true

		oc.EffectiveMust = append([]string(nil), oc.Must...)
		oc.EffectiveMay = append([]string(nil), oc.May...)

		if oc.Superior != "" {
			if sup := s.ObjectClass(oc.Superior); sup != nil {
				if err := resolve(sup, visiting); err != nil {
					return err
				}
				oc.EffectiveMust = unionFold(oc.EffectiveMust, sup.EffectiveMust)
				oc.EffectiveMay = unionFold(oc.EffectiveMay, sup.EffectiveMay)
			}
		}

		delete(visiting, oc)
		resolved[oc] = true
		return nil
	}

	for _, oc := range s.objectClasses {
		if err := resolve(oc, make(map[*ObjectClass]bool)); err != nil {
			return err
		}
	}
	return nil
}

// resolveAttributeTypes inherits syntax and matching rules down attribute
// SUP chains (e.g. cn declares SUP name and no SYNTAX of its own). Cycles
// are fatal.
func (s *Schema) resolveAttributeTypes() error {
	resolved := make(map[*AttributeType]bool)

	var resolve func(at *AttributeType, visiting map[*AttributeType]bool) error
	resolve = func(at *AttributeType, visiting map[*AttributeType]bool) error {
		if resolved[at] {
			return nil
		}
		if visiting[at] {
			return fmt.Errorf("attribute type %s: %w", at.Name(), ErrInheritanceCycle)
		}
		visiting[at] = true

		if at.Superior != "" {
			if sup := s.AttributeType(at.Superior); sup != nil {
				if err := resolve(sup, visiting); err != nil {
					return err
				}
				if at.Syntax == "" {
					at.Syntax = sup.Syntax
				}
				if at.Equality == "" {
					at.Equality = sup.Equality
				}
				if at.Ordering == "" {
					at.Ordering = sup.Ordering
				}
				if at.Substring == "" {
					at.Substring = sup.Substring
				}
			}
		}

		delete(visiting, at)
		resolved[at] = true
		return nil
	}

	for _, at := range s.attributeTypes {
		if err := resolve(at, make(map[*AttributeType]bool)); err != nil {
			return err
		}
	}
	return nil
}

// unionFold appends the elements of extra not already present in base,
// case-insensitively, preserving order.
func unionFold(base, extra []string) []string {
	for _, item := range extra {
		if !containsFold(base, item) {
			base = append(base, item)
		}
	}
	return base
}

package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Definition parsing errors.
var (
	ErrInvalidDefinition  = errors.New("invalid schema definition")
	ErrMissingOID         = errors.New("missing OID in definition")
	ErrUnterminatedString = errors.New("unterminated quoted string")
	ErrUnterminatedParens = errors.New("unterminated parentheses")
)

// parseObjectClass parses an object class definition string.
// Format: ( OID NAME 'name' SUP superior KIND MUST (attr1 $ attr2) MAY (attr3) )
func parseObjectClass(def string) (*ObjectClass, error) {
	tokens, err := definitionTokens(def)
	if err != nil {
		return nil, fmt.Errorf("object class %q: %w", def, err)
	}

	oc := &ObjectClass{
		OID:  tokens[0],
		Kind: ObjectClassStructural, // default kind per RFC 4512
	}

	for i := 1; i < len(tokens); i++ {
		keyword := strings.ToUpper(tokens[i])
		switch keyword {
		case "NAME", "DESC", "SUP", "MUST", "MAY":
			i++
			if i >= len(tokens) {
				return nil, fmt.Errorf("object class %q: %s without value: %w", def, keyword, ErrInvalidDefinition)
			}
			switch keyword {
			case "NAME":
				oc.Names = parseNames(tokens[i])
			case "DESC":
				oc.Desc = unquote(tokens[i])
			case "SUP":
				oc.Superior = unquote(tokens[i])
			case "MUST":
				oc.Must = parseAttributeList(tokens[i])
			case "MAY":
				oc.May = parseAttributeList(tokens[i])
			}
		case "OBSOLETE":
			oc.Obsolete = true
		case "ABSTRACT":
			oc.Kind = ObjectClassAbstract
		case "STRUCTURAL":
			oc.Kind = ObjectClassStructural
		case "AUXILIARY":
			oc.Kind = ObjectClassAuxiliary
		}
	}

	return oc, nil
}

// parseAttributeType parses an attribute type definition string.
// Format: ( OID NAME 'name' EQUALITY rule SYNTAX syntaxOID SINGLE-VALUE ... )
func parseAttributeType(def string) (*AttributeType, error) {
	tokens, err := definitionTokens(def)
	if err != nil {
		return nil, fmt.Errorf("attribute type %q: %w", def, err)
	}

	at := &AttributeType{
		OID:   tokens[0],
		Usage: UserApplications,
	}

	for i := 1; i < len(tokens); i++ {
		keyword := strings.ToUpper(tokens[i])
		switch keyword {
		case "NAME", "DESC", "SUP", "EQUALITY", "ORDERING", "SUBSTR", "SYNTAX", "USAGE":
			i++
			if i >= len(tokens) {
				return nil, fmt.Errorf("attribute type %q: %s without value: %w", def, keyword, ErrInvalidDefinition)
			}
			switch keyword {
			case "NAME":
				at.Names = parseNames(tokens[i])
			case "DESC":
				at.Desc = unquote(tokens[i])
			case "SUP":
				at.Superior = unquote(tokens[i])
			case "EQUALITY":
				at.Equality = unquote(tokens[i])
			case "ORDERING":
				at.Ordering = unquote(tokens[i])
			case "SUBSTR":
				at.Substring = unquote(tokens[i])
			case "SYNTAX":
				at.Syntax = parseSyntaxOID(tokens[i])
			case "USAGE":
				at.Usage = parseUsage(tokens[i])
			}
		case "OBSOLETE":
			at.Obsolete = true
		case "SINGLE-VALUE":
			at.SingleValue = true
		case "NO-USER-MODIFICATION":
			at.NoUserMod = true
		}
	}

	return at, nil
}

// parseMatchingRule parses a matching rule definition string.
// Format: ( OID NAME 'name' SYNTAX syntaxOID )
func parseMatchingRule(def string) (*MatchingRule, error) {
	tokens, err := definitionTokens(def)
	if err != nil {
		return nil, fmt.Errorf("matching rule %q: %w", def, err)
	}

	mr := &MatchingRule{OID: tokens[0]}

	for i := 1; i < len(tokens); i++ {
		keyword := strings.ToUpper(tokens[i])
		switch keyword {
		case "NAME", "DESC", "SYNTAX":
			i++
			if i >= len(tokens) {
				return nil, fmt.Errorf("matching rule %q: %s without value: %w", def, keyword, ErrInvalidDefinition)
			}
			switch keyword {
			case "NAME":
				mr.Names = parseNames(tokens[i])
			case "DESC":
				mr.Description = unquote(tokens[i])
			case "SYNTAX":
				mr.Syntax = parseSyntaxOID(tokens[i])
			}
		case "OBSOLETE":
			mr.Obsolete = true
		}
	}

	return mr, nil
}

// parseSyntaxDef parses a syntax definition string.
// Format: ( OID DESC 'description' )
func parseSyntaxDef(def string) (*Syntax, error) {
	tokens, err := definitionTokens(def)
	if err != nil {
		return nil, fmt.Errorf("syntax %q: %w", def, err)
	}

	syn := &Syntax{OID: tokens[0]}

	for i := 1; i < len(tokens); i++ {
		if strings.ToUpper(tokens[i]) == "DESC" {
			i++
			if i >= len(tokens) {
				return nil, fmt.Errorf("syntax %q: DESC without value: %w", def, ErrInvalidDefinition)
			}
			syn.Description = unquote(tokens[i])
		}
	}

	return syn, nil
}

// definitionTokens strips the outer parentheses of a definition and
// tokenizes the contents. The first token is always the OID.
func definitionTokens(def string) ([]string, error) {
	def = strings.TrimSpace(def)
	if len(def) < 2 || def[0] != '(' || def[len(def)-1] != ')' {
		return nil, ErrInvalidDefinition
	}

	tokens, err := tokenize(strings.TrimSpace(def[1 : len(def)-1]))
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, ErrMissingOID
	}
	return tokens, nil
}

// tokenize splits definition contents into tokens, keeping quoted strings
// and parenthesized groups intact.
func tokenize(s string) ([]string, error) {
	var tokens []string
	var current strings.Builder
	inQuote := false
	parenDepth := 0

	for i := 0; i < len(s); i++ {
		ch := s[i]

		if inQuote {
			current.WriteByte(ch)
			if ch == '\'' {
				inQuote = false
			}
			continue
		}

		switch ch {
		case '\'':
			inQuote = true
			current.WriteByte(ch)
		case '(':
			if parenDepth > 0 {
				current.WriteByte(ch)
			}
			parenDepth++
		case ')':
			parenDepth--
			if parenDepth > 0 {
				current.WriteByte(ch)
			} else if parenDepth == 0 && current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		case ' ', '\t', '\n', '\r':
			if parenDepth > 0 {
				current.WriteByte(ch)
			} else if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		case '$':
			if parenDepth > 0 {
				current.WriteByte(ch)
			}
		default:
			current.WriteByte(ch)
		}
	}

	if inQuote {
		return nil, ErrUnterminatedString
	}
	if parenDepth != 0 {
		return nil, ErrUnterminatedParens
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens, nil
}

// parseNames parses a NAME value: either a single quoted string or a
// parenthesized list of quoted strings.
// Examples: 'cn' or ( 'cn' 'commonName' )
func parseNames(s string) []string {
	s = strings.TrimSpace(s)

	if strings.Contains(s, "'") {
		var names []string
		inQuote := false
		var current strings.Builder

		for i := 0; i < len(s); i++ {
			ch := s[i]
			if ch == '\'' {
				if inQuote && current.Len() > 0 {
					names = append(names, current.String())
					current.Reset()
				}
				inQuote = !inQuote
			} else if inQuote {
				current.WriteByte(ch)
			}
		}
		return names
	}

	return []string{s}
}

// parseAttributeList parses a MUST/MAY value: a single attribute name or a
// $-separated list.
// Examples: cn or ( sn $ cn )
func parseAttributeList(s string) []string {
	var attrs []string
	for _, part := range strings.Split(s, "$") {
		part = unquote(strings.TrimSpace(part))
		if part != "" {
			attrs = append(attrs, part)
		}
	}
	return attrs
}

// unquote removes surrounding single quotes.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return s
}

// parseSyntaxOID extracts the OID from a syntax reference, dropping a
// length constraint like "1.3.6.1.4.1.1466.115.121.1.15{256}".
func parseSyntaxOID(s string) string {
	s = unquote(s)
	if idx := strings.Index(s, "{"); idx != -1 {
		return s[:idx]
	}
	return s
}

// parseUsage parses an attribute USAGE value.
func parseUsage(s string) AttributeUsage {
	switch strings.ToLower(unquote(s)) {
	case "directoryoperation":
		return DirectoryOperation
	case "distributedoperation":
		return DistributedOperation
	case "dsaoperation":
		return DSAOperation
	default:
		return UserApplications
	}
}

// containsFold reports whether list contains s, case-insensitively.
func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

package kervan

import (
	"errors"

	errs "github.com/bdlm/errors"
	ber "github.com/go-asn1-ber/asn1-ber"

	"github.com/KilimcininKorOglu/kervan/internal/codes"
)

var (
	errMalformedPagedResponse = errors.New("malformed paged results response")
	errNoSortKeys             = errors.New("sort control requires at least one key")
)

// Control OIDs for the request extensions this package can build.
const (
	// ControlOIDPagedResults is the simple paged results control (RFC 2696).
	ControlOIDPagedResults = "1.2.840.113556.1.4.319"
	// ControlOIDServerSideSort is the server-side sort request (RFC 2891).
	ControlOIDServerSideSort = "1.2.840.113556.1.4.473"
)

// Control is one request control ready to be attached to a search: the
// extension's OID, its criticality, and the BER-encoded payload.
type Control struct {
	OID         string
	Criticality bool
	Value       []byte
}

// ControlProvider supplies the control payloads a connection wants attached
// to every search built through a Directory. Implementations are registered
// on the connection and snapshotted by NewDirectory.
type ControlProvider interface {
	// OID identifies the extension this provider encodes.
	OID() string

	// SearchControls returns the client- and server-side controls to
	// attach to the next search request.
	SearchControls() (client []Control, server []Control, err error)
}

// PagedResultsControl encodes the simple paged results request. The cookie
// is empty on the first request and carries the server's continuation
// marker afterwards.
type PagedResultsControl struct {
	// PageSize is the requested page size.
	PageSize int
	// Cookie continues a previous paged search; empty starts a new one.
	Cookie []byte
	// Criticality marks the control critical to the request.
	Criticality bool
}

// OID returns the paged results control OID.
func (c *PagedResultsControl) OID() string {
	return ControlOIDPagedResults
}

// SearchControls encodes the control value as a server control.
//
//	realSearchControlValue ::= SEQUENCE {
//	    size    INTEGER,
//	    cookie  OCTET STRING }
func (c *PagedResultsControl) SearchControls() ([]Control, []Control, error) {
	seq := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "paged results")
	seq.AppendChild(ber.NewInteger(ber.ClassUniversal, ber.TypePrimitive, ber.TagInteger, int64(c.PageSize), "size"))
	seq.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, string(c.Cookie), "cookie"))

	server := []Control{{
		OID:         ControlOIDPagedResults,
		Criticality: c.Criticality,
		Value:       seq.Bytes(),
	}}
	return nil, server, nil
}

// DecodePagedCookie extracts the continuation cookie from a paged results
// response control value. An empty cookie means the result set is complete.
func DecodePagedCookie(value []byte) ([]byte, error) {
	packet := ber.DecodePacket(value)
	if packet == nil || len(packet.Children) != 2 {
		return nil, errs.Wrap(errMalformedPagedResponse, codes.ErrControlEncode, "decoding paged results response")
	}
	cookie, ok := packet.Children[1].Value.(string)
	if !ok {
		cookie = string(packet.Children[1].Data.Bytes())
	}
	return []byte(cookie), nil
}

// SortKey is one key of a server-side sort request.
type SortKey struct {
	// Attribute is the attribute to order by.
	Attribute string
	// MatchingRule optionally overrides the attribute's ordering rule.
	MatchingRule string
	// Reverse orders descending.
	Reverse bool
}

// ServerSideSortControl encodes the server-side sort request.
type ServerSideSortControl struct {
	// Keys are applied in order; the first is the primary sort key.
	Keys []SortKey
	// Criticality marks the control critical to the request.
	Criticality bool
}

// OID returns the server-side sort control OID.
func (c *ServerSideSortControl) OID() string {
	return ControlOIDServerSideSort
}

// SearchControls encodes the sort key list as a server control.
//
//	SortKeyList ::= SEQUENCE OF SEQUENCE {
//	    attributeType  AttributeDescription,
//	    orderingRule   [0] MatchingRuleId OPTIONAL,
//	    reverseOrder   [1] BOOLEAN DEFAULT FALSE }
func (c *ServerSideSortControl) SearchControls() ([]Control, []Control, error) {
	if len(c.Keys) == 0 {
		return nil, nil, errs.Wrap(errNoSortKeys, codes.ErrControlEncode, "encoding sort control")
	}

	list := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "sort key list")
	for _, key := range c.Keys {
		item := ber.Encode(ber.ClassUniversal, ber.TypeConstructed, ber.TagSequence, nil, "sort key")
		item.AppendChild(ber.NewString(ber.ClassUniversal, ber.TypePrimitive, ber.TagOctetString, key.Attribute, "attributeType"))
		if key.MatchingRule != "" {
			item.AppendChild(ber.NewString(ber.ClassContext, ber.TypePrimitive, 0, key.MatchingRule, "orderingRule"))
		}
		if key.Reverse {
			item.AppendChild(ber.NewBoolean(ber.ClassContext, ber.TypePrimitive, 1, true, "reverseOrder"))
		}
		list.AppendChild(item)
	}

	server := []Control{{
		OID:         ControlOIDServerSideSort,
		Criticality: c.Criticality,
		Value:       list.Bytes(),
	}}
	return nil, server, nil
}

// providerControls gathers the control payloads from every registered
// provider. A provider that fails to encode fails the whole search.
func providerControls(providers []ControlProvider) (client, server []Control, err error) {
	for _, p := range providers {
		c, s, err := p.SearchControls()
		if err != nil {
			return nil, nil, errs.Wrap(err, codes.ErrControlEncode, "encoding control "+p.OID())
		}
		client = append(client, c...)
		server = append(server, s...)
	}
	return client, server, nil
}

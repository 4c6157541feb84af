package codes

import (
	errs "github.com/bdlm/errors"
	std "github.com/bdlm/std/error"
)

const (
	// ErrUnspecified - 2000: The error code was unspecified
	ErrUnspecified std.Code = iota + 2000
	// ErrControlEncode - 2001: A protocol control payload could not be encoded
	ErrControlEncode
)

func init() {
	errs.Codes[ErrUnspecified] = errs.ErrCode{Ext: "An unknown error occurred", Int: "An unknown error occurred", HTTP: 500}
	errs.Codes[ErrControlEncode] = errs.ErrCode{Ext: "Control encoding failed", Int: "A protocol control payload could not be BER-encoded", HTTP: 500}
}

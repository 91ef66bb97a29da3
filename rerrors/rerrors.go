// Package rerrors defines the error taxonomy used across the ripper-core
// packages: schema errors, data errors, numeric anomalies and state errors.
package rerrors

import "fmt"

// Kind tags which bucket of the taxonomy an error belongs to.
type Kind uint32

const (
	KindSchema Kind = iota + 1
	KindData
	KindNumeric
	KindState
)

func (k Kind) String() string {
	switch k {
	case KindSchema:
		return "schema"
	case KindData:
		return "data"
	case KindNumeric:
		return "numeric"
	case KindState:
		return "state"
	default:
		return "unknown"
	}
}

// RipperError is the concrete type of every sentinel error below. Exported
// calls that parse input or touch files can also return plain errors.
// Code follows the teacher's ServiceError{Code, Msg} shape.
type RipperError struct {
	Kind Kind
	Code uint32
	Msg  string
}

func (e *RipperError) Error() string {
	return fmt.Sprintf("ripper: %s error code=%d: %s", e.Kind, e.Code, e.Msg)
}

func newErr(kind Kind, code uint32, msg string) *RipperError {
	return &RipperError{Kind: kind, Code: code, Msg: msg}
}

// Schema errors (caller bug): [400000, 400100)
var (
	ErrClassNotDiscrete  = newErr(KindSchema, 400000, "class attribute must be discrete")
	ErrClassWrongIndex   = newErr(KindSchema, 400001, "class attribute must be at index 0")
	ErrEmptyClassDomain  = newErr(KindSchema, 400002, "class attribute domain is empty")
	ErrSchemaMismatch    = newErr(KindSchema, 400003, "dataset schema does not match model schema")
	ErrAttributeMissing  = newErr(KindSchema, 400004, "model attribute not present in input schema")
	ErrDuplicateDomain   = newErr(KindSchema, 400005, "discrete domain contains duplicate labels")
	ErrRowLengthMismatch = newErr(KindSchema, 400006, "row value count does not match schema")
)

// Data errors (recoverable by caller): [400100, 400200)
var (
	ErrEmptyDataset     = newErr(KindData, 400100, "dataset has no rows")
	ErrZeroClassWeight  = newErr(KindData, 400101, "class has zero total weight")
	ErrMissingClassRows = newErr(KindData, 400102, "row has a missing class value")
)

// Numeric anomalies (fatal, implementation bug): [400200, 400300)
var (
	ErrNaNDescriptionLength = newErr(KindNumeric, 400200, "description length is NaN")
	ErrInfDescriptionLength = newErr(KindNumeric, 400201, "description length is infinite")
)

// State errors (caller bug): [400300, 400400)
var (
	ErrModelNotTrained  = newErr(KindState, 400300, "model has not been trained")
	ErrRuleNoConsequent = newErr(KindState, 400301, "rule has no consequent set")
)

// Is reports whether err is a *RipperError of the given kind.
func Is(err error, kind Kind) bool {
	re, ok := err.(*RipperError)
	return ok && re.Kind == kind
}

// Wrap attaches additional context to a RipperError while preserving its Kind/Code.
func Wrap(base *RipperError, context string) *RipperError {
	return &RipperError{Kind: base.Kind, Code: base.Code, Msg: base.Msg + ": " + context}
}

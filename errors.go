package quadchego

import "errors"

// Sentinel errors returned by the pure core. Callers should use errors.Is,
// since these are frequently wrapped with fmt.Errorf("...: %w", ...) to add
// context (the offending FEN text, UCI string, etc.).
var (
	// ErrMalformedFEN is returned by ParseFEN when the input cannot be
	// parsed as a 4- or 6-field FEN string.
	ErrMalformedFEN = errors.New("malformed FEN")

	// ErrIllegalPly is returned by Apply and FromUCI when the requested ply
	// is not a member of LegalPlies(position).
	ErrIllegalPly = errors.New("illegal ply")

	// ErrMalformedEPD is returned by the perft package when an EPD suite
	// line cannot be parsed.
	ErrMalformedEPD = errors.New("malformed EPD line")
)

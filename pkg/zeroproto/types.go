package zeroproto

import "github.com/blockberries/zeroproto/internal/wire"

// TypeTag re-exports internal/wire's 15 defined wire type tags for public
// use by generated code and callers constructing a MessageBuilder by hand.
type TypeTag = wire.TypeTag

const (
	TagU8      = wire.TagU8
	TagU16     = wire.TagU16
	TagU32     = wire.TagU32
	TagU64     = wire.TagU64
	TagI8      = wire.TagI8
	TagI16     = wire.TagI16
	TagI32     = wire.TagI32
	TagI64     = wire.TagI64
	TagF32     = wire.TagF32
	TagF64     = wire.TagF64
	TagBool    = wire.TagBool
	TagString  = wire.TagString
	TagBytes   = wire.TagBytes
	TagMessage = wire.TagMessage
	TagVector  = wire.TagVector
)

// Options configures reader behavior; MessageBuilder and VectorBuilder take
// no options. The wire format itself has no
// configurable framing (§4.1/§4.2 are fixed); what's configurable is how
// strictly decoded values are validated.
type Options struct {
	// StrictBool rejects bool bytes other than 0x00/0x01. Default is
	// non-strict: any non-zero byte decodes to true.
	StrictBool bool

	// ValidateUTF8 validates that decoded strings are valid UTF-8.
	// Default true, per the wire codec's InvalidUtf8 error kind.
	ValidateUTF8 bool
}

// DefaultOptions are the default reader options.
var DefaultOptions = Options{StrictBool: false, ValidateUTF8: true}

// StrictOptions reject malformed bool bytes in addition to validating
// UTF-8.
var StrictOptions = Options{StrictBool: true, ValidateUTF8: true}

// Version information, set by ldflags at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// VersionInfo returns a formatted version string.
func VersionInfo() string {
	return Version + " (" + GitCommit + ", " + BuildDate + ")"
}

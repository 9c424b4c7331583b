package eyemech

// DefaultBaudRate is the serial speed the eye mechanism listens at.
const DefaultBaudRate = 9600

// Terminator ends every command line.
const Terminator = '\n'

// Command words understood by the mechanism. CommandBlink must match the
// whole line; CommandLid and CommandEye take space-separated arguments.
const (
	CommandEye   = "EYE"
	CommandLid   = "LID"
	CommandBlink = "BLINK"
)

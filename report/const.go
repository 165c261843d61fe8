package report

// packageName is used for debug and error messages
const packageName = "report"

// Debug levels used by all components (0=off, 1=debug, 2=high).
const (
	DebugOff  uint8 = 0
	DebugLow  uint8 = 1
	DebugHigh uint8 = 2
)

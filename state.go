package rxport

// PortState is the open/closed state of a port.
// Ports start closed: Open moves them to PortOpen, Close moves them back.
type PortState int

const (
	// PortClosed ports hold no subscriptions.
	PortClosed PortState = iota

	// PortOpen ports hold the subscriptions made by their Bind hook.
	PortOpen
)

// String returns the string representation of the state.
func (s PortState) String() string {
	switch s {
	case PortClosed:
		return "Closed"
	case PortOpen:
		return "Open"
	default:
		return "Unknown"
	}
}

package ride

// DefaultPowerOwner tags the GPS power requests of the ride session
const DefaultPowerOwner = "cycleplus"

// Power switches the GPS receiver on and off. Requests are tagged with the
// owner so that several features sharing the receiver do not turn it off
// under each other.
type Power interface {
	SetGPSPower(on bool, owner string) error
}

// PowerFunc adapts a function to the Power interface
type PowerFunc func(on bool, owner string) error

// SetGPSPower calls f(on, owner)
func (f PowerFunc) SetGPSPower(on bool, owner string) error {
	return f(on, owner)
}

type nopPower struct{}

func (nopPower) SetGPSPower(bool, string) error { return nil }

// NopPower is a Power ignoring every request
var NopPower Power = nopPower{}

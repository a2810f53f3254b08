package control

import (
	"github.com/jfreymuth/pulse"
)

// PulseDialer returns a Dialer that connects to a PulseAudio-compatible server
// and announces itself as appName. An empty server uses the library's usual
// lookup ($PULSE_SERVER, then the user's runtime socket).
func PulseDialer(appName, server string) Dialer {
	return func() (Conn, error) {
		opts := []pulse.ClientOption{
			pulse.ClientApplicationName(appName),
		}
		if server != "" {
			opts = append(opts, pulse.ClientServerString(server))
		}
		client, err := pulse.NewClient(opts...)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

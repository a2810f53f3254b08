// Package restarter asks the operating system to bounce the audio server.
package restarter

import (
	"log"
	"os/exec"

	"github.com/kc2g-flex-tools/audioselect/errutil"
)

// DefaultArgs kills the running PulseAudio daemon; the session manager or
// socket activation brings it back.
var DefaultArgs = []string{"pulseaudio", "-k"}

// Command runs a fixed command line to restart the audio server. Failures are
// logged and otherwise ignored: reconnecting afterwards is what tells whether
// the server came back.
type Command struct {
	Args []string

	run func(name string, args ...string) error
}

// New returns a Command for args, or DefaultArgs if args is empty.
func New(args []string) *Command {
	if len(args) == 0 {
		args = DefaultArgs
	}
	return &Command{
		Args: append([]string(nil), args...),
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// Restart runs the command and waits for it to exit.
func (c *Command) Restart() {
	if len(c.Args) == 0 {
		return
	}
	log.Printf("restarting audio server: %v", c.Args)
	errutil.LogError("restart audio server", c.run(c.Args[0], c.Args[1:]...))
}

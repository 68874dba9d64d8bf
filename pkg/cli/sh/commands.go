package sh

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abiosoft/ishell"

	bridge "github.com/robotalks/massenger/pkg/bridge/mqtt"
	"github.com/robotalks/massenger/pkg/massenger"
	"github.com/robotalks/massenger/pkg/massenger/serial"
)

// DefaultRecvWait is how long recv collects frames without an argument.
const DefaultRecvWait = time.Second

// ParseValue parses a send argument. A type prefix selects the wire type:
// b: byte, i: int, l: long, f: float, d: double. Without a prefix,
// integers are sent as long and anything else as double.
func ParseValue(arg string) (*bridge.Value, error) {
	typ, str := int32(-1), arg
	if len(arg) > 2 && arg[1] == ':' {
		switch arg[0] {
		case 'b':
			typ = bridge.ValueByte
		case 'i':
			typ = bridge.ValueInt
		case 'l':
			typ = bridge.ValueLong
		case 'f':
			typ = bridge.ValueFloat
		case 'd':
			typ = bridge.ValueDouble
		default:
			return nil, fmt.Errorf("unknown type prefix in %q", arg)
		}
		str = arg[2:]
	}
	switch typ {
	case bridge.ValueByte:
		v, err := strconv.ParseUint(str, 0, 8)
		return &bridge.Value{Type: typ, Int: int64(v)}, err
	case bridge.ValueInt:
		v, err := strconv.ParseInt(str, 0, 16)
		return &bridge.Value{Type: typ, Int: v}, err
	case bridge.ValueLong:
		v, err := strconv.ParseInt(str, 0, 32)
		return &bridge.Value{Type: typ, Int: v}, err
	case bridge.ValueFloat:
		v, err := strconv.ParseFloat(str, 32)
		return &bridge.Value{Type: typ, Float: v}, err
	case bridge.ValueDouble:
		v, err := strconv.ParseFloat(str, 64)
		return &bridge.Value{Type: typ, Float: v}, err
	}
	if v, err := strconv.ParseInt(str, 0, 32); err == nil {
		return &bridge.Value{Type: bridge.ValueLong, Int: v}, nil
	}
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid argument %q", arg)
	}
	return &bridge.Value{Type: bridge.ValueDouble, Float: v}, nil
}

// ParseFrame builds a frame from an address followed by arguments.
func ParseFrame(args []string) (*bridge.Frame, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("address expected")
	}
	f := &bridge.Frame{Address: args[0]}
	for _, arg := range args[1:] {
		v, err := ParseValue(arg)
		if err != nil {
			return nil, err
		}
		f.Args = append(f.Args, v)
	}
	return f, nil
}

// FormatFrame renders a frame as its address followed by arguments,
// and raw payload bytes in hex.
func FormatFrame(f *bridge.Frame) string {
	parts := []string{f.Address}
	for _, v := range f.Args {
		switch v.Type {
		case bridge.ValueFloat:
			parts = append(parts, strconv.FormatFloat(v.Float, 'g', -1, 32))
		case bridge.ValueDouble:
			parts = append(parts, strconv.FormatFloat(v.Float, 'g', -1, 64))
		default:
			parts = append(parts, strconv.FormatInt(v.Int, 10))
		}
	}
	if len(f.Payload) > 0 {
		parts = append(parts, fmt.Sprintf("[% x]", f.Payload))
	}
	return strings.Join(parts, " ")
}

func (s *Shell) updatePrompt() {
	if s.Link == nil {
		s.Shell.SetPrompt(closedPrompt)
		return
	}
	s.Shell.SetPrompt(fmt.Sprintf("%s:%s > ", s.Link.Link.Name, s.Link.Link.Massenger.Mode()))
}

var (
	// PortsCmd lists serial ports.
	PortsCmd = ishell.Cmd{
		Name:    "ports",
		Aliases: []string{"list", "l"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ports, err := serial.Ports()
			if err != nil {
				c.Err(err)
				return
			}
			if len(ports) == 0 {
				c.Println("No serial ports found")
				return
			}
			for _, port := range ports {
				c.Println(port)
			}
		},
	}

	// OpenCmd opens a link.
	OpenCmd = ishell.Cmd{
		Name:    "open",
		Aliases: []string{"o"},
		Help:    "[PORT|ws://URL]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) > 0 {
				if strings.HasPrefix(c.Args[0], "ws://") || strings.HasPrefix(c.Args[0], "wss://") {
					s.Config.WebSocketURL = c.Args[0]
				} else {
					s.Config.WebSocketURL = ""
					s.Config.Serial.Port = c.Args[0]
				}
			}
			if err := s.Open(); err != nil {
				c.Err(err)
			}
		},
	}

	// CloseCmd closes current link.
	CloseCmd = ishell.Cmd{
		Name:    "close",
		Aliases: []string{"c"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Close()
		},
	}

	// ModeCmd shows or switches framing mode.
	ModeCmd = ishell.Cmd{
		Name: "mode",
		Help: "[ascii|slip|auto]",
		Func: MustBeOpen(func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) == 0 {
				c.Println(s.Link.Link.Massenger.Mode().String())
				return
			}
			mode, err := massenger.ParseMode(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			s.Link.Poller.Do(func(m *massenger.Massenger) error {
				m.SetMode(mode)
				return nil
			})
			s.updatePrompt()
		}),
	}

	// SendCmd sends a message.
	SendCmd = ishell.Cmd{
		Name:    "send",
		Aliases: []string{"s"},
		Help:    "ADDRESS [[b:|i:|l:|f:|d:]ARG...]",
		Func: MustBeOpen(func(c *ishell.Context) {
			f, err := ParseFrame(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			if err = ShellFrom(c).Link.Poller.Do(f.SendTo); err != nil {
				c.Err(err)
			}
		}),
	}

	// RecvCmd prints frames received within a duration.
	RecvCmd = ishell.Cmd{
		Name:    "recv",
		Aliases: []string{"r"},
		Help:    "[DURATION]",
		Func: MustBeOpen(func(c *ishell.Context) {
			s := ShellFrom(c)
			wait := DefaultRecvWait
			if len(c.Args) > 0 {
				d, err := time.ParseDuration(c.Args[0])
				if err != nil {
					c.Err(err)
					return
				}
				wait = d
			}
			ctx, cancel := context.WithTimeout(s.Link.Ctx, wait)
			defer cancel()
			s.Link.Poller.Handler = s.FrameHandler(func(out string) { c.Println(out) }, c.Err)
			s.Link.Poller.Run(ctx)
			s.Link.Poller.Handler = nil
		}),
	}

	// DumpCmd prints the last frame received by recv, or the receive
	// buffer when nothing was received yet.
	DumpCmd = ishell.Cmd{
		Name: "dump",
		Help: "dumps the last frame printed by recv",
		Func: MustBeOpen(func(c *ishell.Context) {
			s := ShellFrom(c)
			if s.Link.LastFrame != "" {
				c.Println(s.Link.LastFrame)
				return
			}
			s.Link.Poller.Do(func(m *massenger.Massenger) error {
				c.Println(m.String())
				return nil
			})
		}),
	}
)

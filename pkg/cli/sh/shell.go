package sh

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/abiosoft/ishell"

	bridge "github.com/robotalks/massenger/pkg/bridge/mqtt"
	"github.com/robotalks/massenger/pkg/env"
	"github.com/robotalks/massenger/pkg/massenger"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	AutoOpen    bool

	Shell  *ishell.Shell
	Config *env.LinkConfig
	Link   *OpenLink
}

// OpenLink is an opened link with its read loop running.
type OpenLink struct {
	Ctx    context.Context
	Cancel func()
	Link   *env.Link
	Poller *massenger.Poller
	// LastFrame is the dump of the last frame printed by recv. Polling
	// flushes the receive buffer, so it's captured while handling.
	LastFrame string
}

const (
	shellKey     = "$shell"
	closedPrompt = "[none] > "
)

var (
	// flags

	evalOnly   bool
	outputJSON bool

	// commands
	commands = []*ishell.Cmd{
		&PortsCmd,
		&OpenCmd,
		&CloseCmd,
		&ModeCmd,
		&SendCmd,
		&RecvCmd,
		&DumpCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *env.LinkConfig) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:  ishell.New(),
		Config: conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(closedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeOpen wraps command func requires an opened link.
func MustBeOpen(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Link == nil {
			c.Err(fmt.Errorf("link not open"))
			return
		}
		fn(c)
	}
}

// FormatFrame prints a frame into friendly string for display.
func (s *Shell) FormatFrame(f *bridge.Frame) (string, error) {
	if s.OutputJSON {
		out, err := json.Marshal(f)
		return string(out), err
	}
	return FormatFrame(f), nil
}

// FrameHandler prints every handled frame with print and remembers its
// dump for the dump command.
func (s *Shell) FrameHandler(print func(string), fail func(error)) massenger.Handler {
	return massenger.HandleMessageFunc(func(_ context.Context, m *massenger.Massenger) {
		if s.Link != nil {
			s.Link.LastFrame = m.String()
		}
		out, err := s.FormatFrame(bridge.FrameFrom(m))
		if err != nil {
			fail(err)
			return
		}
		print(out)
	})
}

// WithAutoOpen sets AutoOpen.
func (s *Shell) WithAutoOpen(en bool) *Shell {
	s.AutoOpen = en
	return s
}

// Open opens the link using current config.
func (s *Shell) Open() error {
	link, err := s.Config.Open()
	if err != nil {
		return err
	}
	s.Attach(link)
	return nil
}

// Attach replaces the current link and starts reading from it.
func (s *Shell) Attach(link *env.Link) {
	ol := &OpenLink{Link: link, Poller: massenger.NewPoller(link.Massenger, nil)}
	ol.Ctx, ol.Cancel = context.WithCancel(context.Background())
	if s.Link != nil {
		s.Link.Cancel()
	}
	s.Link = ol
	go func() {
		if err := link.Run(ol.Ctx); err != nil {
			s.Shell.Printf("%v\n", err)
		}
	}()
	s.updatePrompt()
}

// Close closes current link.
func (s *Shell) Close() {
	if s.Link != nil {
		s.Link.Cancel()
		s.Link = nil
		s.updatePrompt()
	}
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if s.AutoOpen && s.Config.Name() != "" {
		if s.Interactive {
			s.Shell.Printf("Opening %s ...\n", s.Config.Name())
		}
		if err := s.Open(); err != nil {
			log.Fatalf("open %q failed: %v", s.Config.Name(), err)
		}
	}

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	sh := New(env.NewLinkConfig()).WithAutoOpen(true)
	defer sh.Close()
	sh.Run(flag.Args()...)
}

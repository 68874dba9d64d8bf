package env

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/robotalks/massenger/pkg/massenger"
	"github.com/robotalks/massenger/pkg/massenger/serial"
	"github.com/robotalks/massenger/pkg/massenger/websocket"
)

// LinkConfig provides common options to open a massenger link.
type LinkConfig struct {
	Serial *serial.Config
	// WebSocketURL selects a WebSocket link instead of the serial port,
	// e.g. ws://adapter:8080/serial
	WebSocketURL string
	Origin       string

	Mode       string
	BufferSize int
	BigEndian  bool
	// TerminateAddress writes a NUL after the address of binary frames.
	TerminateAddress bool
}

var defaultLinkConfig = LinkConfig{
	Serial:     serial.Default(),
	Origin:     "http://localhost/",
	Mode:       "ascii",
	BufferSize: massenger.DefaultBufferSize,
}

func init() {
	if val := os.Getenv("MASSENGER_WS_URL"); val != "" {
		defaultLinkConfig.WebSocketURL = val
	}
	if val := os.Getenv("MASSENGER_MODE"); val != "" {
		defaultLinkConfig.Mode = val
	}
	if val, err := strconv.Atoi(os.Getenv("MASSENGER_BAUD")); err == nil && val > 0 {
		defaultLinkConfig.Serial.BaudRate = val
	}
}

// SetupLinkFlags sets up command line flags.
func SetupLinkFlags() {
	flag.StringVar(&defaultLinkConfig.Serial.Port, "port", defaultLinkConfig.Serial.Port, "Serial port.")
	flag.IntVar(&defaultLinkConfig.Serial.BaudRate, "baud", defaultLinkConfig.Serial.BaudRate, "Serial baud rate.")
	flag.StringVar(&defaultLinkConfig.WebSocketURL, "ws", defaultLinkConfig.WebSocketURL, "WebSocket URL of a serial adapter.")
	flag.StringVar(&defaultLinkConfig.Mode, "mode", defaultLinkConfig.Mode, "Framing mode: ascii, slip or auto.")
	flag.IntVar(&defaultLinkConfig.BufferSize, "buffer", defaultLinkConfig.BufferSize, "Receive buffer size.")
	flag.BoolVar(&defaultLinkConfig.BigEndian, "big-endian", defaultLinkConfig.BigEndian, "Binary arguments are big endian.")
	flag.BoolVar(&defaultLinkConfig.TerminateAddress, "terminate-address", defaultLinkConfig.TerminateAddress, "Write NUL after address in binary frames.")
}

// DefaultLink gets the default link config.
func DefaultLink() *LinkConfig {
	return &defaultLinkConfig
}

// NewLinkConfig creates a LinkConfig with default configurations.
func NewLinkConfig() *LinkConfig {
	conf := defaultLinkConfig
	serialConf := *conf.Serial
	conf.Serial = &serialConf
	return &conf
}

// Name gets the human readable link endpoint.
func (c *LinkConfig) Name() string {
	if c.WebSocketURL != "" {
		return c.WebSocketURL
	}
	return c.Serial.Port
}

// MassengerConfig converts the options to a massenger.Config.
func (c *LinkConfig) MassengerConfig() (massenger.Config, error) {
	conf := massenger.DefaultConfig()
	mode, err := massenger.ParseMode(c.Mode)
	if err != nil {
		return conf, err
	}
	conf.Mode = mode
	if c.BufferSize > 0 {
		conf.BufferSize = c.BufferSize
	}
	if c.BigEndian {
		conf.ByteOrder = binary.BigEndian
	}
	conf.TerminateAddress = c.TerminateAddress
	return conf, nil
}

// Link is an opened transport with its Massenger.
type Link struct {
	Name      string
	Transport *massenger.StreamTransport
	Massenger *massenger.Massenger
}

// Open opens the transport. The transport must be run to receive bytes.
func (c *LinkConfig) Open() (*Link, error) {
	conf, err := c.MassengerConfig()
	if err != nil {
		return nil, err
	}
	var t *massenger.StreamTransport
	if c.WebSocketURL != "" {
		t, err = websocket.Dial(c.WebSocketURL, c.Origin)
	} else {
		t, err = c.Serial.Open()
	}
	if err != nil {
		return nil, err
	}
	return &Link{Name: c.Name(), Transport: t, Massenger: conf.New(t)}, nil
}

// MustOpen opens the link and fails on error.
func (c *LinkConfig) MustOpen() *Link {
	link, err := c.Open()
	if err != nil {
		log.Fatalln(err)
	}
	return link
}

// Run implements Runnable.
func (l *Link) Run(ctx context.Context) error {
	if err := l.Transport.Run(ctx); err != nil && err != context.Canceled {
		return fmt.Errorf("link %s: %w", l.Name, err)
	}
	return nil
}

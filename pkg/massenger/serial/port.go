// Package serial opens serial ports as massenger transports.
package serial

import (
	"fmt"
	"os"
	"time"

	"github.com/golang/glog"
	"go.bug.st/serial"

	"github.com/robotalks/massenger/pkg/massenger"
)

// Config defines serial port settings.
type Config struct {
	// Port is the device path, e.g. /dev/ttyUSB0.
	Port     string
	BaudRate int
	// ReadTimeout bounds a single read so the read loop notices closing.
	ReadTimeout time.Duration
}

var defaultConfig = Config{
	BaudRate:    115200,
	ReadTimeout: 100 * time.Millisecond,
}

func init() {
	if val := os.Getenv("MASSENGER_PORT"); val != "" {
		defaultConfig.Port = val
	}
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Ports lists serial ports available on the system.
func Ports() ([]string, error) {
	return serial.GetPortsList()
}

// Open opens the port and wraps it as a StreamTransport.
// The caller must Run the transport to receive bytes.
func (c *Config) Open() (*massenger.StreamTransport, error) {
	if c.Port == "" {
		return nil, fmt.Errorf("serial port must be specified")
	}
	port, err := serial.Open(c.Port, &serial.Mode{
		BaudRate: c.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", c.Port, err)
	}
	if c.ReadTimeout > 0 {
		if err = port.SetReadTimeout(c.ReadTimeout); err != nil {
			port.Close()
			return nil, fmt.Errorf("set read timeout on %s: %w", c.Port, err)
		}
	}
	glog.Infof("opened %s at %d baud", c.Port, c.BaudRate)
	return massenger.NewStreamTransport(port), nil
}

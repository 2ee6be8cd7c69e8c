// Package hal is the hardware abstraction layer for FRC control boards.
package hal

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

var (
	// ErrDisconnected is returned while the board link is down.
	ErrDisconnected = errors.New("control board not connected")
	// ErrUnknownDriver is returned by New for unregistered driver names.
	ErrUnknownDriver = errors.New("unknown control board driver")
)

// Info describes a board model.
type Info struct {
	ShortName    string
	LongName     string
	LEDOutputs   int
	PWMOutputs   int
	AnalogInputs int
	SwitchInputs int
}

// Board is a control board reachable through some link.
type Board interface {
	Info() Info
	Open(ctx context.Context) error
	Close() error
	// Ping checks the link; nil means the board answered.
	Ping(ctx context.Context) error
	ReadSwitches() ([]bool, error)
	ReadAnalog() ([]uint16, error)
	WriteLEDs(leds []bool) error
	WritePWM(values []uint16) error
}

// Config selects and parameterizes a driver.
type Config struct {
	Driver    string
	Transport string // "tcp" or "rtu"
	Endpoint  string
	BaudRate  int
	SlaveID   byte
	Timeout   time.Duration
}

// Factory builds a board from its config.
type Factory func(cfg Config) (Board, error)

var (
	driversMu sync.RWMutex
	drivers   = map[string]Factory{}
)

// Register makes a driver available to New under name.
func Register(name string, f Factory) {
	driversMu.Lock()
	defer driversMu.Unlock()
	drivers[name] = f
}

// Drivers lists the registered driver names.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the board named by cfg.Driver.
func New(cfg Config) (Board, error) {
	driversMu.RLock()
	f, ok := drivers[cfg.Driver]
	driversMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
	return f(cfg)
}

func checkLen(what string, got, want int) error {
	if got != want {
		return fmt.Errorf("%s: got %d values, board has %d", what, got, want)
	}
	return nil
}

package hal

import (
	"context"
	"fmt"
	"sync"
)

// Simulator board identity and pin counts.
const (
	SimulatorShortName = "ControlBoard_1v1_Simulator"
	SimulatorLongName  = "FRC Control Board v1.1 Simulator"

	LEDOutputs   = 16
	PWMOutputs   = 11
	AnalogInputs = 16
	SwitchInputs = 16
)

func init() {
	Register(SimulatorShortName, func(Config) (Board, error) {
		return NewSimulator(), nil
	})
}

// Simulator is an in-memory control board. Inputs are driven with
// SetSwitch and SetAnalog; outputs are observed with LEDs and PWM.
type Simulator struct {
	mu        sync.Mutex
	connected bool
	open      bool
	leds      []bool
	pwm       []uint16
	analog    []uint16
	switches  []bool
}

// NewSimulator returns a simulator that reports itself connected once opened.
func NewSimulator() *Simulator {
	return &Simulator{
		connected: true,
		leds:      make([]bool, LEDOutputs),
		pwm:       make([]uint16, PWMOutputs),
		analog:    make([]uint16, AnalogInputs),
		switches:  make([]bool, SwitchInputs),
	}
}

func (s *Simulator) Info() Info {
	return Info{
		ShortName:    SimulatorShortName,
		LongName:     SimulatorLongName,
		LEDOutputs:   LEDOutputs,
		PWMOutputs:   PWMOutputs,
		AnalogInputs: AnalogInputs,
		SwitchInputs: SwitchInputs,
	}
}

func (s *Simulator) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
	return nil
}

func (s *Simulator) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	return nil
}

// SetConnected simulates plugging or unplugging the board.
func (s *Simulator) SetConnected(connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = connected
}

func (s *Simulator) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readyUnsafe()
}

func (s *Simulator) readyUnsafe() error {
	if !s.open || !s.connected {
		return ErrDisconnected
	}
	return nil
}

func (s *Simulator) ReadSwitches() ([]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyUnsafe(); err != nil {
		return nil, err
	}
	return append([]bool(nil), s.switches...), nil
}

func (s *Simulator) ReadAnalog() ([]uint16, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyUnsafe(); err != nil {
		return nil, err
	}
	return append([]uint16(nil), s.analog...), nil
}

func (s *Simulator) WriteLEDs(leds []bool) error {
	if err := checkLen("leds", len(leds), LEDOutputs); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyUnsafe(); err != nil {
		return err
	}
	copy(s.leds, leds)
	return nil
}

func (s *Simulator) WritePWM(values []uint16) error {
	if err := checkLen("pwm", len(values), PWMOutputs); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.readyUnsafe(); err != nil {
		return err
	}
	copy(s.pwm, values)
	return nil
}

// SetSwitch sets switch input i.
func (s *Simulator) SetSwitch(i int, on bool) error {
	if i < 0 || i >= SwitchInputs {
		return fmt.Errorf("switch %d out of range 0..%d", i, SwitchInputs-1)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.switches[i] = on
	return nil
}

// SetAnalog sets analog input i.
func (s *Simulator) SetAnalog(i int, v uint16) error {
	if i < 0 || i >= AnalogInputs {
		return fmt.Errorf("analog input %d out of range 0..%d", i, AnalogInputs-1)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analog[i] = v
	return nil
}

// LEDs returns the LED outputs last written.
func (s *Simulator) LEDs() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bool(nil), s.leds...)
}

// PWM returns the PWM outputs last written.
func (s *Simulator) PWM() []uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uint16(nil), s.pwm...)
}

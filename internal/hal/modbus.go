package hal

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"
	"go.uber.org/zap"

	"github.com/user/controlboard/internal/logger"
)

// Hardware board identity.
const (
	ModbusShortName = "ControlBoard_1v1"
	ModbusLongName  = "FRC Control Board v1.1"
)

// Register map of the v1.1 board firmware.
const (
	switchInputsAddr = 0 // discrete inputs
	analogInputsAddr = 0 // input registers
	ledCoilsAddr     = 0 // coils
	pwmRegistersAddr = 0 // holding registers
)

func init() {
	Register(ModbusShortName, func(cfg Config) (Board, error) {
		return NewModbusBoard(cfg)
	})
}

// modbusClient is the subset of modbus.Client the board uses.
type modbusClient interface {
	ReadDiscreteInputs(address, quantity uint16) ([]byte, error)
	ReadInputRegisters(address, quantity uint16) ([]byte, error)
	WriteMultipleCoils(address, quantity uint16, value []byte) ([]byte, error)
	WriteMultipleRegisters(address, quantity uint16, value []byte) ([]byte, error)
}

type linkHandler interface {
	Connect() error
	Close() error
}

// ModbusBoard talks to a v1.1 control board over Modbus TCP or RTU.
// Requests are serialized.
type ModbusBoard struct {
	mu      sync.Mutex
	cfg     Config
	handler linkHandler
	client  modbusClient
}

// NewModbusBoard validates cfg; the link is established by Open.
func NewModbusBoard(cfg Config) (*ModbusBoard, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("modbus board: endpoint required")
	}
	switch cfg.Transport {
	case "", "tcp", "rtu":
	default:
		return nil, fmt.Errorf("modbus board: unknown transport %q", cfg.Transport)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 500 * time.Millisecond
	}
	if cfg.SlaveID == 0 {
		cfg.SlaveID = 1
	}
	return &ModbusBoard{cfg: cfg}, nil
}

func (b *ModbusBoard) Info() Info {
	return Info{
		ShortName:    ModbusShortName,
		LongName:     ModbusLongName,
		LEDOutputs:   LEDOutputs,
		PWMOutputs:   PWMOutputs,
		AnalogInputs: AnalogInputs,
		SwitchInputs: SwitchInputs,
	}
}

func (b *ModbusBoard) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.client != nil {
		return nil
	}

	var h interface {
		linkHandler
		modbus.ClientHandler
	}
	if b.cfg.Transport == "rtu" {
		rtu := modbus.NewRTUClientHandler(b.cfg.Endpoint)
		rtu.BaudRate = b.cfg.BaudRate
		rtu.DataBits = 8
		rtu.Parity = "N"
		rtu.StopBits = 1
		rtu.SlaveId = b.cfg.SlaveID
		rtu.Timeout = b.cfg.Timeout
		h = rtu
	} else {
		tcp := modbus.NewTCPClientHandler(b.cfg.Endpoint)
		tcp.SlaveId = b.cfg.SlaveID
		tcp.Timeout = b.cfg.Timeout
		h = tcp
	}

	if err := h.Connect(); err != nil {
		return fmt.Errorf("modbus board %s: %w", b.cfg.Endpoint, err)
	}
	b.handler = h
	b.client = modbus.NewClient(h)

	logger.Named("modbus").Info("board link open",
		zap.String("transport", b.cfg.Transport),
		zap.String("endpoint", b.cfg.Endpoint),
		zap.Uint8("slave", b.cfg.SlaveID))
	return nil
}

func (b *ModbusBoard) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.client = nil
	if b.handler == nil {
		return nil
	}
	err := b.handler.Close()
	b.handler = nil
	return err
}

func (b *ModbusBoard) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := b.ReadSwitches()
	return err
}

func (b *ModbusBoard) ReadSwitches() ([]bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.client == nil {
		return nil, ErrDisconnected
	}
	raw, err := b.client.ReadDiscreteInputs(switchInputsAddr, SwitchInputs)
	if err != nil {
		return nil, fmt.Errorf("read switches: %w", err)
	}
	return unpackBits(raw, SwitchInputs), nil
}

func (b *ModbusBoard) ReadAnalog() ([]uint16, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.client == nil {
		return nil, ErrDisconnected
	}
	raw, err := b.client.ReadInputRegisters(analogInputsAddr, AnalogInputs)
	if err != nil {
		return nil, fmt.Errorf("read analog: %w", err)
	}
	if len(raw) < 2*AnalogInputs {
		return nil, fmt.Errorf("read analog: short response (%d bytes)", len(raw))
	}
	return unpackRegisters(raw), nil
}

func (b *ModbusBoard) WriteLEDs(leds []bool) error {
	if err := checkLen("leds", len(leds), LEDOutputs); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.client == nil {
		return ErrDisconnected
	}
	if _, err := b.client.WriteMultipleCoils(ledCoilsAddr, LEDOutputs, packBits(leds)); err != nil {
		return fmt.Errorf("write leds: %w", err)
	}
	return nil
}

func (b *ModbusBoard) WritePWM(values []uint16) error {
	if err := checkLen("pwm", len(values), PWMOutputs); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.client == nil {
		return ErrDisconnected
	}
	if _, err := b.client.WriteMultipleRegisters(pwmRegistersAddr, PWMOutputs, packRegisters(values)); err != nil {
		return fmt.Errorf("write pwm: %w", err)
	}
	return nil
}

func packBits(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, v := range bits {
		if v {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

func unpackBits(raw []byte, n int) []bool {
	out := make([]bool, n)
	for i := 0; i < n && i/8 < len(raw); i++ {
		out[i] = raw[i/8]&(1<<uint(i%8)) != 0
	}
	return out
}

func packRegisters(regs []uint16) []byte {
	out := make([]byte, 2*len(regs))
	for i, v := range regs {
		binary.BigEndian.PutUint16(out[2*i:], v)
	}
	return out
}

func unpackRegisters(raw []byte) []uint16 {
	out := make([]uint16, len(raw)/2)
	for i := range out {
		out[i] = binary.BigEndian.Uint16(raw[2*i:])
	}
	return out
}

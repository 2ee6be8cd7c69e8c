package hal

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatorInfo(t *testing.T) {
	info := NewSimulator().Info()
	assert.Equal(t, "ControlBoard_1v1_Simulator", info.ShortName)
	assert.Equal(t, "FRC Control Board v1.1 Simulator", info.LongName)
	assert.Equal(t, 16, info.LEDOutputs)
	assert.Equal(t, 11, info.PWMOutputs)
	assert.Equal(t, 16, info.AnalogInputs)
	assert.Equal(t, 16, info.SwitchInputs)
}

func TestSimulatorLifecycle(t *testing.T) {
	ctx := context.Background()
	sim := NewSimulator()

	assert.ErrorIs(t, sim.Ping(ctx), ErrDisconnected, "closed board is not reachable")

	require.NoError(t, sim.Open(ctx))
	assert.NoError(t, sim.Ping(ctx))

	sim.SetConnected(false)
	assert.ErrorIs(t, sim.Ping(ctx), ErrDisconnected)
	_, err := sim.ReadSwitches()
	assert.ErrorIs(t, err, ErrDisconnected)

	sim.SetConnected(true)
	require.NoError(t, sim.Close())
	assert.ErrorIs(t, sim.Ping(ctx), ErrDisconnected)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	require.NoError(t, sim.Open(ctx))
	assert.ErrorIs(t, sim.Ping(cancelled), context.Canceled)
}

func TestSimulatorIO(t *testing.T) {
	sim := NewSimulator()
	require.NoError(t, sim.Open(context.Background()))

	require.NoError(t, sim.SetSwitch(3, true))
	require.NoError(t, sim.SetAnalog(15, 1023))
	assert.Error(t, sim.SetSwitch(16, true))
	assert.Error(t, sim.SetAnalog(-1, 0))

	switches, err := sim.ReadSwitches()
	require.NoError(t, err)
	want := make([]bool, SwitchInputs)
	want[3] = true
	if diff := cmp.Diff(want, switches); diff != "" {
		t.Errorf("switches mismatch (-want +got):\n%s", diff)
	}

	analog, err := sim.ReadAnalog()
	require.NoError(t, err)
	assert.Equal(t, uint16(1023), analog[15])

	leds := make([]bool, LEDOutputs)
	leds[0], leds[15] = true, true
	require.NoError(t, sim.WriteLEDs(leds))
	assert.Equal(t, leds, sim.LEDs())
	assert.Error(t, sim.WriteLEDs(leds[:3]))

	pwm := make([]uint16, PWMOutputs)
	pwm[10] = 1500
	require.NoError(t, sim.WritePWM(pwm))
	assert.Equal(t, pwm, sim.PWM())
	assert.Error(t, sim.WritePWM(make([]uint16, 16)))

	// Returned slices are copies.
	switches[0] = true
	again, _ := sim.ReadSwitches()
	assert.False(t, again[0])
}

func TestRegistry(t *testing.T) {
	assert.Contains(t, Drivers(), SimulatorShortName)
	assert.Contains(t, Drivers(), ModbusShortName)

	b, err := New(Config{Driver: SimulatorShortName})
	require.NoError(t, err)
	assert.IsType(t, &Simulator{}, b)

	_, err = New(Config{Driver: "ControlBoard_9v9"})
	assert.ErrorIs(t, err, ErrUnknownDriver)

	_, err = New(Config{Driver: ModbusShortName})
	assert.Error(t, err, "modbus board needs an endpoint")

	_, err = New(Config{Driver: ModbusShortName, Endpoint: "x", Transport: "can"})
	assert.Error(t, err)
}

type fakeModbus struct {
	discrete  []byte
	inputRegs []byte
	coils     []byte
	holding   []byte
	lastQty   uint16
	err       error
}

func (f *fakeModbus) ReadDiscreteInputs(address, quantity uint16) ([]byte, error) {
	f.lastQty = quantity
	return f.discrete, f.err
}

func (f *fakeModbus) ReadInputRegisters(address, quantity uint16) ([]byte, error) {
	f.lastQty = quantity
	return f.inputRegs, f.err
}

func (f *fakeModbus) WriteMultipleCoils(address, quantity uint16, value []byte) ([]byte, error) {
	f.lastQty = quantity
	f.coils = value
	return nil, f.err
}

func (f *fakeModbus) WriteMultipleRegisters(address, quantity uint16, value []byte) ([]byte, error) {
	f.lastQty = quantity
	f.holding = value
	return nil, f.err
}

func TestModbusBoardMapping(t *testing.T) {
	b, err := NewModbusBoard(Config{Endpoint: "10.1.18.2:502"})
	require.NoError(t, err)

	_, err = b.ReadSwitches()
	assert.ErrorIs(t, err, ErrDisconnected, "not opened")

	fake := &fakeModbus{
		discrete:  []byte{0b0000_0101, 0b1000_0000},
		inputRegs: make([]byte, 2*AnalogInputs),
	}
	fake.inputRegs[0], fake.inputRegs[1] = 0x01, 0x02
	b.client = fake

	require.NoError(t, b.Ping(context.Background()))

	switches, err := b.ReadSwitches()
	require.NoError(t, err)
	assert.Equal(t, uint16(SwitchInputs), fake.lastQty)
	assert.True(t, switches[0])
	assert.False(t, switches[1])
	assert.True(t, switches[2])
	assert.True(t, switches[15])

	analog, err := b.ReadAnalog()
	require.NoError(t, err)
	assert.Len(t, analog, AnalogInputs)
	assert.Equal(t, uint16(0x0102), analog[0])

	leds := make([]bool, LEDOutputs)
	leds[1], leds[8] = true, true
	require.NoError(t, b.WriteLEDs(leds))
	assert.Equal(t, []byte{0b0000_0010, 0b0000_0001}, fake.coils)

	pwm := make([]uint16, PWMOutputs)
	pwm[0] = 0xABCD
	require.NoError(t, b.WritePWM(pwm))
	assert.Equal(t, uint16(PWMOutputs), fake.lastQty)
	assert.Equal(t, []byte{0xAB, 0xCD}, fake.holding[:2])
	assert.Len(t, fake.holding, 2*PWMOutputs)

	fake.inputRegs = fake.inputRegs[:4]
	_, err = b.ReadAnalog()
	assert.Error(t, err)

	fake.err = errors.New("exception '2' (illegal data address)")
	assert.Error(t, b.Ping(context.Background()))
}

func TestBitPacking(t *testing.T) {
	bits := []bool{true, false, true, true, false, false, false, false, false, true}
	assert.Equal(t, bits, unpackBits(packBits(bits), len(bits)))

	regs := []uint16{0, 1, 0xFFFF, 0x1234}
	assert.Equal(t, regs, unpackRegisters(packRegisters(regs)))
}

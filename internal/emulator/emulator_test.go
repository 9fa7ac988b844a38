package emulator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// recordingFrontend stores all rendered frames.
type recordingFrontend struct {
	mu     sync.Mutex
	frames []Frame
	err    error
}

func (r *recordingFrontend) Render(frame Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, frame)
	return r.err
}

func (r *recordingFrontend) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

func (r *recordingFrontend) last() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames[len(r.frames)-1]
}

func newTestEmulator(t *testing.T, frontend Frontend, rate int, program ...byte) (*Emulator, *chip8.VM) {
	t.Helper()

	vm := chip8.New(nil)
	assert.NoError(t, vm.LoadProgram(program))

	e, err := New(log.NewTestLogger(t), vm, frontend, rate)
	assert.NoError(t, err)
	return e, vm
}

func TestNew_RateTooLow(t *testing.T) {
	_, err := New(log.NewTestLogger(t), chip8.New(nil), nil, TimerRate-1)
	assert.Error(t, err)
}

func TestNew_RateTooHigh(t *testing.T) {
	_, err := New(log.NewTestLogger(t), chip8.New(nil), nil, 2_000_000_000)
	assert.ErrorContains(t, err, "exceeds the maximum")

	e, err := New(log.NewTestLogger(t), chip8.New(nil), nil, MaxRate)
	assert.NoError(t, err)
	assert.NotNil(t, e)
}

func TestRunFor_TicksTimers(t *testing.T) {
	// ld V0, 60; ld DT, V0; jp 0x204
	e, vm := newTestEmulator(t, nil, 600, 0x60, 0x3C, 0xF0, 0x15, 0x12, 0x04)

	assert.NoError(t, e.RunFor(2))
	assert.Equal(t, uint8(60), vm.DelayTimer())

	// 600 Hz instruction rate ticks the timers every 10 steps
	assert.NoError(t, e.RunFor(100))
	assert.Equal(t, uint8(50), vm.DelayTimer())
}

func TestRunFor_SkipsInvalidInstructions(t *testing.T) {
	// invalid, ld V1, 7, jp 0x204
	e, vm := newTestEmulator(t, nil, 600, 0x01, 0x23, 0x61, 0x07, 0x12, 0x04)

	assert.NoError(t, e.RunFor(3))
	assert.Equal(t, uint8(7), vm.V(1))
	assert.Equal(t, 1, e.Skipped())

	frame := e.Frame()
	assert.True(t, errors.Is(frame.Err, chip8.ErrInvalidOpcode))
	assert.Equal(t, uint64(3), frame.Steps)
}

func TestRunFor_StopsOnHalt(t *testing.T) {
	e, _ := newTestEmulator(t, nil, 600, 0x00, 0xEE)

	err := e.RunFor(10)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, chip8.ErrStackUnderflow))
	assert.Equal(t, uint64(1), e.Frame().Steps)
}

func TestRun_RendersAndStopsOnHalt(t *testing.T) {
	frontend := &recordingFrontend{}
	// cls, ret on empty stack
	e, vm := newTestEmulator(t, frontend, 1000, 0x00, 0xE0, 0x00, 0xEE)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := e.Run(ctx)
	assert.True(t, errors.Is(err, chip8.ErrStackUnderflow))
	assert.True(t, frontend.count() >= 2)
	assert.False(t, vm.FrameBuffer().Dirty())

	last := frontend.last()
	assert.True(t, errors.Is(last.Err, chip8.ErrStackUnderflow))
}

func TestRun_Cancel(t *testing.T) {
	frontend := &recordingFrontend{}
	// jp 0x200
	e, _ := newTestEmulator(t, frontend, 1000, 0x12, 0x00)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := e.Run(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.True(t, frontend.count() >= 1)
}

func TestRun_FrontendError(t *testing.T) {
	frontend := &recordingFrontend{err: errors.New("display closed")}
	e, _ := newTestEmulator(t, frontend, 1000, 0x12, 0x00)

	err := e.Run(context.Background())
	assert.ErrorContains(t, err, "display closed")
}

func TestFrame(t *testing.T) {
	// ld V0, 5; ld ST, V0; ld V1, 0; ld F, V1; drw V1, V1, 5
	e, _ := newTestEmulator(t, nil, 600, 0x60, 0x05, 0xF0, 0x18, 0x61, 0x00, 0xF1, 0x29, 0xD1, 0x15)
	assert.NoError(t, e.RunFor(5))

	frame := e.Frame()
	assert.True(t, frame.Sound)
	assert.Equal(t, uint8(5), frame.State.V[0])
	assert.True(t, frame.Pixels[0])
	assert.True(t, frame.Pixels[3])
	assert.False(t, frame.Pixels[4])
}

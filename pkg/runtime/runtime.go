package runtime

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/christopher-kleine/w4tones/pkg/debug"
	"github.com/christopher-kleine/w4tones/pkg/tones"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

const (
	MemSystemFlags uint32 = 0x001f
	MemUser        uint32 = 0x19a0
)

const (
	FlagPreserveScreen byte = 1
	FlagMute           byte = 1 << 2
)

// UpdateRate is how often a cart's update export is called.
const UpdateRate = 60

var ErrNoCart = errors.New("no cart loaded")

// Runtime hosts a WASM cart and gives it the tone channel.
type Runtime struct {
	runtime  wazero.Runtime
	cart     api.Module
	cartName string
	ctx      context.Context

	Tones     *tones.Player
	scheduler *tones.Scheduler

	muted atomic.Bool
	flags atomic.Uint32 // cart system flags as of the last update
}

// NewRuntime builds the host module. driver receives the tone output and
// period is the scheduler tick.
func NewRuntime(ctx context.Context, driver tones.Driver, period time.Duration, opts ...tones.Option) (*Runtime, error) {
	var err error

	result := &Runtime{
		ctx: ctx,
	}

	result.Tones = tones.New(result.outputEnabled, driver, opts...)
	result.scheduler = tones.NewScheduler(result.Tones, period)

	result.runtime = wazero.NewRuntime(result.ctx)

	builder := result.runtime.NewHostModuleBuilder("env")
	_, err = builder.
		// Sound
		NewFunctionBuilder().WithFunc(result.tone).Export("tone").
		NewFunctionBuilder().WithFunc(result.tone2).Export("tone2").
		NewFunctionBuilder().WithFunc(result.tone3).Export("tone3").
		NewFunctionBuilder().WithFunc(result.tones).Export("tones").
		NewFunctionBuilder().WithFunc(result.noTone).Export("noTone").
		NewFunctionBuilder().WithFunc(result.tonesPlaying).Export("tonesPlaying").
		NewFunctionBuilder().WithFunc(result.volumeMode).Export("volumeMode").
		// Other
		NewFunctionBuilder().WithFunc(result.trace).Export("trace").
		Instantiate(result.ctx)

	if err != nil {
		result.runtime.Close(result.ctx)
		return nil, err
	}

	return result, nil
}

// LoadCart instantiates code and calls its start export if there is one.
func (rt *Runtime) LoadCart(code []byte, name string) error {
	var err error

	rt.cartName = name

	rt.cart, err = rt.runtime.InstantiateWithConfig(rt.ctx, code, wazero.NewModuleConfig().WithName("cart"))
	if err != nil {
		return err
	}

	if fn := rt.cart.ExportedFunction("start"); fn != nil {
		if _, err := fn.Call(rt.ctx); err != nil {
			return err
		}
	}

	rt.sampleFlags()
	debug.Log("runtime", "loaded cart %s", name)

	return nil
}

func (rt *Runtime) CartName() string {
	return rt.cartName
}

// Scheduler returns the tick source of the tone channel. Run it alongside the
// update loop.
func (rt *Runtime) Scheduler() *tones.Scheduler {
	return rt.scheduler
}

// Update calls the cart's update export once.
func (rt *Runtime) Update() error {
	if rt.cart == nil {
		return ErrNoCart
	}

	if fn := rt.cart.ExportedFunction("update"); fn != nil {
		if _, err := fn.Call(rt.ctx); err != nil {
			return err
		}
	}

	rt.sampleFlags()
	return nil
}

// Run drives a cart without a window: the scheduler ticks in the background
// and update is called UpdateRate times a second until ctx ends.
func (rt *Runtime) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go rt.scheduler.Run(ctx)

	ticker := time.NewTicker(time.Second / UpdateRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			rt.Tones.Stop()
			return ctx.Err()
		case <-ticker.C:
			if err := rt.Update(); err != nil {
				rt.Tones.Stop()
				return err
			}
		}
	}
}

// SetMuted is the host side mute switch.
func (rt *Runtime) SetMuted(muted bool) {
	rt.muted.Store(muted)
}

// HostMuted reports the host switch alone.
func (rt *Runtime) HostMuted() bool {
	return rt.muted.Load()
}

// Muted reports whether either the host or the cart has muted output.
func (rt *Runtime) Muted() bool {
	return rt.muted.Load() || byte(rt.flags.Load())&FlagMute != 0
}

func (rt *Runtime) outputEnabled() bool {
	return !rt.Muted()
}

// sampleFlags copies the system flags out of cart memory so the tick side
// never reads memory the cart is writing.
func (rt *Runtime) sampleFlags() {
	mem := rt.cart.Memory()
	if mem == nil {
		return
	}
	if flags, ok := mem.ReadByte(MemSystemFlags); ok {
		rt.flags.Store(uint32(flags))
	}
}

func (rt *Runtime) Close() {
	if rt.Tones != nil {
		rt.Tones.Stop()
	}
	if rt.runtime != nil {
		rt.runtime.Close(rt.ctx)
	}
}

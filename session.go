package nucleus

import (
	"context"
	"fmt"

	"github.com/viant/nucleus/model/image"
	"github.com/viant/nucleus/model/state"
	"github.com/viant/nucleus/runtime/asm"
	"github.com/viant/nucleus/runtime/kernel"
	"github.com/viant/nucleus/runtime/machine"
	"github.com/viant/nucleus/runtime/memory"
	"github.com/viant/nucleus/service/event"
)

// session holds the hardware built from an image for one boot
type session struct {
	memory  *memory.Memory
	machine *machine.Machine
	initial *state.State
}

func (r *Runtime) assemble(img *image.Image, config *Config) (*session, error) {
	programs := make(map[string]*asm.Program, len(img.Programs))
	for name, source := range img.Programs {
		program, err := asm.Assemble(name, source)
		if err != nil {
			return nil, fmt.Errorf("image %v: %w", img.Name, err)
		}
		programs[name] = program
	}
	mem := memory.New(config.MemoryWords)
	for addr, value := range img.Memory {
		if err := mem.Store(addr, value); err != nil {
			return nil, fmt.Errorf("image %v: memory %d: %w", img.Name, addr, err)
		}
	}
	for addr, area := range img.Areas {
		if area == nil {
			continue
		}
		s, err := area.State()
		if err != nil {
			return nil, fmt.Errorf("image %v: area %d: %w", img.Name, addr, err)
		}
		if err = mem.SaveState(addr, s); err != nil {
			return nil, fmt.Errorf("image %v: area %d: %w", img.Name, addr, err)
		}
	}
	initial, err := img.Init.State()
	if err != nil {
		return nil, fmt.Errorf("image %v: init: %w", img.Name, err)
	}
	behaviors, err := img.DeviceBehaviors()
	if err != nil {
		return nil, fmt.Errorf("image %v: %w", img.Name, err)
	}
	options := []machine.Option{machine.WithDeviceLatency(config.DeviceLatency)}
	for id, behavior := range behaviors {
		options = append(options, machine.WithDevice(id, machine.Device{
			Latency: behavior.Latency,
			Status:  behavior.Status,
			Length:  behavior.Length,
		}))
	}
	if config.TimeLimit > 0 {
		options = append(options, machine.WithTimeLimit(config.TimeLimit))
	}
	return &session{
		memory:  mem,
		machine: machine.New(mem, programs, options...),
		initial: initial,
	}, nil
}

// publisher returns a kernel listener forwarding events to the event service
func (r *Runtime) publisher(ctx context.Context, sessionID, imageName string) (kernel.Listener, error) {
	publisher, err := event.PublisherOf[kernel.Event](r.eventService)
	if err != nil {
		return nil, err
	}
	return func(e *kernel.Event) {
		evt := event.NewEvent(&event.Context{
			SessionID: sessionID,
			Image:     imageName,
			EventType: string(e.Type),
			Pid:       e.Pid,
		}, *e)
		if err := publisher.Publish(ctx, evt); err != nil {
			r.logger.Printf("failed to publish %v event: %v", e.Type, err)
		}
	}, nil
}

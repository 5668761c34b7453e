package nucleus

import (
	"context"
	"fmt"
	"log"

	"github.com/viant/nucleus/internal/clock"
	"github.com/viant/nucleus/internal/idgen"
	"github.com/viant/nucleus/model/image"
	"github.com/viant/nucleus/model/report"
	"github.com/viant/nucleus/progress"
	"github.com/viant/nucleus/runtime/kernel"
	"github.com/viant/nucleus/service/dao"
	"github.com/viant/nucleus/service/event"
	iservice "github.com/viant/nucleus/service/image"
	"github.com/viant/nucleus/service/transcript"
	"github.com/viant/nucleus/tracing"
)

// Runtime boots images and keeps their reports
type Runtime struct {
	config       *Config
	logger       *log.Logger
	listeners    []kernel.Listener
	eventService *event.Service
	imageService *iservice.Service
	reportDAO    dao.Service[string, report.Report]
}

// LoadImage loads a boot image from URL
func (r *Runtime) LoadImage(ctx context.Context, URL string) (*image.Image, error) {
	return r.imageService.Load(ctx, URL)
}

// DecodeImage decodes a YAML boot image
func (r *Runtime) DecodeImage(name string, data []byte) (*image.Image, error) {
	ret, err := r.imageService.Decode(data)
	if err != nil {
		return nil, err
	}
	if ret.Name == "" {
		ret.Name = name
	}
	if err = ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

// BootURL loads the image at URL and boots it
func (r *Runtime) BootURL(ctx context.Context, URL string) (*report.Report, error) {
	img, err := r.LoadImage(ctx, URL)
	if err != nil {
		return nil, err
	}
	return r.Boot(ctx, img)
}

// Boot runs img until the kernel halts the machine. The returned report is
// stored even when the machine stops with an error, in which case both are returned.
func (r *Runtime) Boot(ctx context.Context, img *image.Image) (*report.Report, error) {
	config := r.config.Merge(img.Config)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("image %v: %w", img.Name, err)
	}
	hw, err := r.assemble(img, config)
	if err != nil {
		return nil, err
	}
	ret := &report.Report{ID: idgen.New(), Image: img.Name, StartedAt: clock.Now()}
	tracker := progress.New(ret.ID, img.Name, ret.StartedAt)
	recorder := transcript.NewRecorder(false)
	options := []kernel.Option{
		kernel.WithLogger(r.logger),
		kernel.WithProgress(tracker),
		kernel.WithListener(recorder.Listen),
	}
	for _, listener := range r.listeners {
		options = append(options, kernel.WithListener(listener))
	}
	if r.eventService != nil {
		publish, err := r.publisher(ctx, ret.ID, img.Name)
		if err != nil {
			return nil, err
		}
		options = append(options, kernel.WithListener(publish))
	}
	k, err := kernel.New(hw.machine, hw.memory, config.Kernel(), options...)
	if err != nil {
		return nil, fmt.Errorf("image %v: %w", img.Name, err)
	}
	hw.machine.Attach(k)

	ctx, span := tracing.StartSpan(ctx, "nucleus.Boot", "INTERNAL")
	span.WithAttributes(map[string]string{"image": img.Name, "session": ret.ID})
	runErr := hw.machine.Run(ctx, hw.initial)
	tracing.EndSpan(span, runErr)

	status, message := k.Status()
	ret.Status = string(status)
	ret.Message = message
	ret.Elapsed = hw.machine.Now()
	ret.Progress = tracker.Snapshot().Counters
	ret.Transcript = recorder.Lines()
	ret.Duration = clock.Since(ret.StartedAt)
	if runErr != nil {
		ret.Error = runErr.Error()
		runErr = fmt.Errorf("image %v: %w", img.Name, runErr)
	}
	if err = r.reportDAO.Save(ctx, ret); err != nil {
		return ret, fmt.Errorf("failed to save report %v: %w", ret.ID, err)
	}
	return ret, runErr
}

// Report returns a stored boot report
func (r *Runtime) Report(ctx context.Context, id string) (*report.Report, error) {
	return r.reportDAO.Load(ctx, id)
}

// Reports lists stored boot reports, filterable by Status and Image
func (r *Runtime) Reports(ctx context.Context, parameters ...*dao.Parameter) ([]*report.Report, error) {
	return r.reportDAO.List(ctx, parameters...)
}

// Package memory stores boot reports in memory.
package memory

import (
	"github.com/viant/nucleus/model/report"
	"github.com/viant/nucleus/service/dao"
	rfilter "github.com/viant/nucleus/service/dao/report"
	"github.com/viant/nucleus/service/dao/store"
)

// Service is an in-memory report store
type Service struct {
	*store.MemoryStore[string, report.Report]
}

var _ dao.Service[string, report.Report] = (*Service)(nil)

// New creates an in-memory report store
func New() *Service {
	return &Service{
		MemoryStore: store.NewMemoryStore[string, report.Report](func(r *report.Report) string {
			return r.ID
		}, rfilter.Filter),
	}
}

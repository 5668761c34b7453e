// Package fs stores boot reports as JSON files on any afs backed location.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/nucleus/model/report"
	"github.com/viant/nucleus/service/dao"
	rfilter "github.com/viant/nucleus/service/dao/report"
)

// Service implements a filesystem-based report storage
type Service struct {
	baseURL string
	fs      afs.Service
	mu      sync.RWMutex
}

var _ dao.Service[string, report.Report] = (*Service)(nil)

// Save persists a report
func (s *Service) Save(ctx context.Context, r *report.Report) error {
	if r == nil {
		return dao.ErrNilEntity
	}
	if r.ID == "" {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	URL := s.reportURL(r.ID)
	if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save report to %s: %w", URL, err)
	}
	return nil
}

// Load retrieves a report
func (s *Service) Load(ctx context.Context, id string) (*report.Report, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	URL := s.reportURL(id)
	if ok, _ := s.fs.Exists(ctx, URL); !ok {
		return nil, fmt.Errorf("report %s: %w", id, dao.ErrNotFound)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", URL, err)
	}
	ret := &report.Report{}
	if err = json.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report %s: %w", URL, err)
	}
	return ret, nil
}

// Delete removes a report
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	URL := s.reportURL(id)
	if ok, _ := s.fs.Exists(ctx, URL); !ok {
		return fmt.Errorf("report %s: %w", id, dao.ErrNotFound)
	}
	if err := s.fs.Delete(ctx, URL); err != nil {
		return fmt.Errorf("failed to delete report %s: %w", URL, err)
	}
	return nil
}

// List returns stored reports ordered by start time
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	objects, err := s.fs.List(ctx, s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	var result []*report.Report
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			log.Printf("failed to read report %s: %v", object.URL(), err)
			continue
		}
		r := &report.Report{}
		if err = json.Unmarshal(data, r); err != nil {
			log.Printf("failed to unmarshal report %s: %v", object.URL(), err)
			continue
		}
		if !rfilter.Filter(r, parameters) {
			continue
		}
		result = append(result, r)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartedAt.Before(result[j].StartedAt)
	})
	return result, nil
}

func (s *Service) reportURL(id string) string {
	return url.Join(s.baseURL, id+".json")
}

// New creates a report store rooted at baseURL; a plain path means the local file system
func New(ctx context.Context, fs afs.Service, baseURL string) (*Service, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	if fs == nil {
		fs = afs.New()
	}
	baseURL = url.Normalize(baseURL, file.Scheme)
	if ok, _ := fs.Exists(ctx, baseURL); !ok {
		if err := fs.Create(ctx, baseURL, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create report directory %s: %w", baseURL, err)
		}
	}
	return &Service{baseURL: baseURL, fs: fs}, nil
}

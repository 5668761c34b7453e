// Package image loads boot images from any afs supported URL.
package image

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/nucleus/model/image"
)

// Service loads boot images
type Service struct {
	fs afs.Service
}

// Load downloads, expands and decodes the image at URL; a missing extension defaults to .yaml
func (s *Service) Load(ctx context.Context, URL string) (*image.Image, error) {
	if filepath.Ext(URL) == "" {
		URL += ".yaml"
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load image from %s: %w", URL, err)
	}
	ret, err := s.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load image from %s: %w", URL, err)
	}
	if ret.Name == "" {
		base := filepath.Base(URL)
		ret.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if err = ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

// Decode expands ${env.KEY} expressions and decodes YAML
func (s *Service) Decode(data []byte) (*image.Image, error) {
	return image.Decode([]byte(expandEnv(string(data))))
}

// New creates an image service
func New(fs afs.Service) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs}
}

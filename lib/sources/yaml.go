// Package sources loads tracked-item descriptors from the configured
// backends: a local urls.yaml and the tracker database.
package sources

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"pagewatch/config"
	"pagewatch/lib/models"
)

type yamlItem struct {
	Name          string `yaml:"name"`
	URL           string `yaml:"url"`
	Selector      string `yaml:"selector"`
	Expires       string `yaml:"expires"`
	NotifyEmail   string `yaml:"notify_email"`
	JSRender      bool   `yaml:"js_render"`
	CheckInterval string `yaml:"check_interval"`
}

type yamlConfig struct {
	URLs []yamlItem `yaml:"urls"`
}

// FileSource reads tracked items from urls.yaml. Baselines for these items
// live in the flat-file store, keyed by URL. A missing config file is an
// empty source, not an error.
type FileSource struct {
	log  *zap.Logger
	path string
}

func NewFileSource(lc fx.Lifecycle, log *zap.Logger, cfg *config.Config) *FileSource {
	return &FileSource{log: log, path: cfg.URLsConfig}
}

func (s *FileSource) Load(ctx context.Context, interval string) (models.TrackedItems, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg yamlConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}

	// Interval filtering is client-side for this source.
	items := make(models.TrackedItems, 0, len(cfg.URLs))
	for _, entry := range cfg.URLs {
		if entry.URL == "" {
			s.log.Sugar().Warnf("Skipping %s entry without a url", s.path)
			continue
		}
		if interval != "all" && entry.CheckInterval != interval {
			continue
		}
		items = append(items, entry.item())
	}
	return items, nil
}

func (entry yamlItem) item() *models.TrackedItem {
	item := &models.TrackedItem{
		Name:        entry.Name,
		URL:         entry.URL,
		Selector:    entry.Selector,
		RenderMode:  models.RenderStatic,
		ExpiresOn:   entry.Expires,
		NotifyEmail: entry.NotifyEmail,
		Interval:    entry.CheckInterval,
		Source:      models.SourceFile,
	}
	if entry.JSRender {
		item.RenderMode = models.RenderJS
	}
	return item
}

package file

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/saniyar-dev/subxray/internal/link"
	"github.com/saniyar-dev/subxray/internal/logger"
	"github.com/saniyar-dev/subxray/internal/sink"
)

var (
	separatorRuns = regexp.MustCompile(`[\s/\\|:<>*?"']+`)
	invalidChars  = regexp.MustCompile(`[^\p{L}\p{N}_\-.]`)
)

// SanitizeName turns remarks into a safe filename stem: separator and quote
// runs become underscores, everything outside letters, digits, "_", "-", "."
// is dropped, and an empty result gets a placeholder.
func SanitizeName(name string) string {
	name = separatorRuns.ReplaceAllString(name, "_")
	name = invalidChars.ReplaceAllString(name, "")
	if name == "" {
		return "unnamed_config"
	}
	return name
}

// Filename is the on-disk name a config persists under.
func Filename(cfg *link.Config) string {
	return SanitizeName(cfg.Remarks) + ".json"
}

type Sink struct {
	dir string
}

func (s *Sink) Persist(cfg *link.Config) error {
	name := Filename(cfg)

	data, err := sink.Encode(cfg)
	if err != nil {
		return &sink.PersistError{Name: name, Err: err}
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &sink.PersistError{Name: name, Err: err}
	}

	logger.Log.Debugf("Wrote config file: %s", path)
	return nil
}

func init() {
	sink.Register("file", func(params map[string]interface{}) (sink.Sink, error) {
		dir, _ := params["dir"].(string)
		if dir == "" {
			dir = "."
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
		return &Sink{dir: dir}, nil
	})
}

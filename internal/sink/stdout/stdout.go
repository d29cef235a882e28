package stdout

import (
	"fmt"

	"github.com/saniyar-dev/subxray/internal/link"
	"github.com/saniyar-dev/subxray/internal/sink"
)

// Sink prints configs to standard output instead of writing files.
type Sink struct{}

func (s *Sink) Persist(cfg *link.Config) error {
	data, err := sink.Encode(cfg)
	if err != nil {
		return &sink.PersistError{Name: cfg.Remarks, Err: err}
	}

	fmt.Printf("========== %s ==========\n", cfg.Remarks)
	fmt.Print(string(data))
	return nil
}

func init() {
	sink.Register("stdout", func(map[string]interface{}) (sink.Sink, error) {
		return &Sink{}, nil
	})
}

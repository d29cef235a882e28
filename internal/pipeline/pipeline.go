package pipeline

import (
	"errors"

	"github.com/saniyar-dev/subxray/internal/link"
	"github.com/saniyar-dev/subxray/internal/logger"
	"github.com/saniyar-dev/subxray/internal/sink"
)

type Options struct {
	// OmitFirst drops the first link before processing. Subscriptions often
	// lead with a traffic-stats pseudo-link.
	OmitFirst bool
	// Progress is called once per processed link.
	Progress func()
	// Observer is called for every successfully persisted config.
	Observer func(cfg *link.Config)
}

type Result struct {
	Generated int
	Failed    int
}

// Run decodes and persists links strictly in order, one at a time. Every
// failure is per-link: a malformed or unsupported link is logged, counted and
// skipped, never aborting the rest of the list.
func Run(links []string, out sink.Sink, opts Options) Result {
	if opts.OmitFirst && len(links) > 0 {
		logger.Log.Infof("Omitting first link: %s", short(links[0]))
		links = links[1:]
	}

	var res Result
	for _, raw := range links {
		logger.Log.Debugf("Processing link: %s", short(raw))

		cfg, err := link.Decode(raw)
		if err != nil {
			if errors.Is(err, link.ErrUnsupportedProtocol) {
				logger.Log.Warnf("Skipping unsupported link: %s", short(raw))
			} else {
				logger.Log.Errorf("Failed to decode link %s: %v", short(raw), err)
			}
			res.Failed++
			step(opts)
			continue
		}

		if err := out.Persist(cfg); err != nil {
			logger.Log.Errorf("Failed to persist %q: %v", cfg.Remarks, err)
			res.Failed++
			step(opts)
			continue
		}

		res.Generated++
		if opts.Observer != nil {
			opts.Observer(cfg)
		}
		step(opts)
	}
	return res
}

func step(opts Options) {
	if opts.Progress != nil {
		opts.Progress()
	}
}

func short(link string) string {
	if len(link) <= 50 {
		return link
	}
	return link[:50] + "..."
}

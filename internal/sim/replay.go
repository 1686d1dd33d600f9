package sim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vcrobe/neonjsx/dom/htmldom"
	"github.com/vcrobe/neonjsx/signals"
	"github.com/vcrobe/neonjsx/storage"
	"github.com/vcrobe/neonjsx/visual"
)

// startMs is the page clock when the monitor starts.
const startMs = 1000

// Report is the outcome of one replay.
type Report struct {
	Name     string
	LowPower bool
	Limits   visual.Limits

	Metrics visual.Metrics
	// Replayed counts frames delivered to the monitor, Remaining those left
	// over because the window ended or never opened.
	Replayed  int
	Remaining int

	Prompted bool
	Mode     visual.Mode
	Stored   string
	Status   string
}

// Replay runs tr through a monitor built on a headless document, memory
// stores and a hand-driven frame scheduler. ctx is checked between frames.
func Replay(ctx context.Context, tr Trace, cfg visual.Config, logger *slog.Logger) (Report, error) {
	if err := tr.Validate(); err != nil {
		return Report{}, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	doc := htmldom.New()
	local := storage.NewMemory()
	session := storage.NewMemory()
	if tr.StoredMode != "" {
		if err := local.Set(cfg.StorageKey, tr.StoredMode); err != nil {
			return Report{}, err
		}
	}
	if tr.Dismissed {
		if err := session.Set(cfg.DismissedKey, "1"); err != nil {
			return Report{}, err
		}
	}

	clock := float64(startMs)
	frames := &visual.ManualFrames{}
	env := visual.Env{
		Document:             doc,
		Body:                 doc.Body(),
		Local:                local,
		Session:              session,
		Frames:               frames,
		Now:                  func() float64 { return clock },
		Hints:                visual.DeviceHints{Cores: tr.Hints.Cores, MemoryGB: tr.Hints.MemoryGB},
		PrefersReducedMotion: func() bool { return tr.ReducedMotion },
		Visible:              func() bool { return !tr.Hidden },
	}
	var longTasks *visual.ManualLongTasks
	if tr.LongTasks != nil {
		longTasks = &visual.ManualLongTasks{}
		env.LongTasks = longTasks
	}

	mode := signals.New(visual.Full)
	m, err := visual.New(env, mode, cfg, logger)
	if err != nil {
		return Report{}, fmt.Errorf("replaying %s: %w", tr.Name, err)
	}
	defer m.Close()

	m.Start()

	offsets := tr.Offsets()
	replayed := 0
	for _, off := range offsets {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}
		if frames.Pending() == 0 {
			break
		}
		clock = startMs + off
		frames.Fire(clock)
		replayed++
		if replayed == 1 && longTasks != nil {
			longTasks.Report(*tr.LongTasks...)
		}
	}

	rep := Report{
		Name:      tr.Name,
		LowPower:  m.LowPower(),
		Limits:    cfg.Limits(m.LowPower()),
		Metrics:   m.Snapshot(),
		Replayed:  replayed,
		Remaining: len(offsets) - replayed,
		Prompted:  m.Prompts() > 0,
	}
	if stick := doc.ByID(visual.StickID); stick != nil {
		rep.Status = stick.TextContent()
	}

	if m.BannerVisible() {
		switch tr.Respond {
		case "reduce":
			htmldom.Click(doc.ByAttr(visual.ActionAttr, visual.ActionReduce))
		case "dismiss":
			htmldom.Click(doc.ByAttr(visual.ActionAttr, visual.ActionDismiss))
		}
	}

	rep.Mode = mode.Get()
	rep.Stored, _, _ = local.Get(cfg.StorageKey)
	logger.Debug("sim: replay finished", "trace", tr.Name, "frames", replayed, "prompted", rep.Prompted, "mode", rep.Mode)
	return rep, nil
}

package term

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/dino/config"
	"github.com/pthm-cable/dino/control"
	"github.com/pthm-cable/dino/game"
)

// Options configures the terminal driver.
type Options struct {
	Night    bool
	Interval time.Duration // wall time per tick, 0 = configured frame rate
}

// Driver runs sessions on a tcell screen. Events are read on a helper
// goroutine and handled on the loop goroutine between ticks, so only the
// loop touches the session.
//
// Terminals report key presses but no releases. A pressed key is held for
// KeyHoldTicks ticks after its last press or auto-repeat, then released.
type Driver struct {
	screen   tcell.Screen
	cfg      *config.Config
	styles   styles
	interval time.Duration

	holdTicks int
	held      map[control.Key]int
	buttons   tcell.ButtonMask

	events    chan tcell.Event
	quit      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

// New creates a driver on an initialized screen. The caller owns the screen
// and must call Close before finalizing it.
func New(screen tcell.Screen, cfg *config.Config, opts Options) *Driver {
	interval := opts.Interval
	if interval <= 0 {
		interval = time.Second / time.Duration(max(cfg.Screen.TargetFPS, 1))
	}
	screen.EnableMouse()
	return &Driver{
		screen:    screen,
		cfg:       cfg,
		styles:    stylesFor(opts.Night),
		interval:  interval,
		holdTicks: max(cfg.Derived.KeyHoldTicks, 1),
		held:      make(map[control.Key]int),
		events:    make(chan tcell.Event, 100),
		quit:      make(chan struct{}),
	}
}

func (d *Driver) start() {
	d.startOnce.Do(func() {
		go func() {
			for {
				ev := d.screen.PollEvent()
				if ev == nil {
					return
				}
				select {
				case d.events <- ev:
				case <-d.quit:
					return
				}
			}
		}()
	})
}

// Close stops forwarding events.
func (d *Driver) Close() {
	d.closeOnce.Do(func() { close(d.quit) })
}

// Run implements game.Driver.
func (d *Driver) Run(ctx context.Context, s game.Session) error {
	d.start()
	input, _ := s.(game.InputHandler)
	dt := d.cfg.Physics.DT

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.draw(s)
	for !s.Done() {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", game.ErrExitRequested, context.Cause(ctx))

		case ev := <-d.events:
			if err := d.handleEvent(ev, input); err != nil {
				return err
			}

		case <-ticker.C:
			if err := s.Step(dt); err != nil {
				return err
			}
			d.releaseExpired(input)
			d.draw(s)
		}
	}
	return nil
}

// handleEvent forwards one terminal event to the session.
func (d *Driver) handleEvent(ev tcell.Event, input game.InputHandler) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return fmt.Errorf("%w: escape pressed", game.ErrExitRequested)
		}
		k := mapKey(ev)
		if k == control.KeyNone || input == nil {
			return nil
		}
		if _, down := d.held[k]; !down {
			input.KeyDown(k)
		}
		d.held[k] = d.holdTicks

	case *tcell.EventMouse:
		btn := ev.Buttons()
		pressed := btn&tcell.Button1 != 0 && d.buttons&tcell.Button1 == 0
		d.buttons = btn
		if pressed && input != nil {
			col, row := ev.Position()
			x, y := d.grid().ToWorld(col, row)
			input.Click(x, y)
		}

	case *tcell.EventResize:
		d.screen.Sync()
	}
	return nil
}

// releaseExpired counts down held keys and releases those that ran out.
func (d *Driver) releaseExpired(input game.InputHandler) {
	for k, n := range d.held {
		if n--; n > 0 {
			d.held[k] = n
			continue
		}
		delete(d.held, k)
		if input != nil {
			input.KeyUp(k)
		}
	}
}

// mapKey translates a terminal key to a game key.
func mapKey(ev *tcell.EventKey) control.Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return control.KeyUp
	case tcell.KeyDown:
		return control.KeyDown
	case tcell.KeyEnter:
		return control.KeyEnter
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return control.KeySpace
		case 'w', 'W':
			return control.KeyW
		case 's', 'S':
			return control.KeyS
		}
	}
	return control.KeyNone
}

func (d *Driver) grid() Grid {
	cols, rows := d.screen.Size()
	return Grid{
		Cols:   max(cols, 1),
		Rows:   max(rows, 1),
		WorldW: float64(d.cfg.Screen.Width),
		WorldH: float64(d.cfg.Screen.Height),
	}
}

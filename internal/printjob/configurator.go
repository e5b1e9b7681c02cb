// Package printjob configures uploaded documents into priced cart lines.
package printjob

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"printbazar/m/domain"
	"printbazar/m/internal/pricing"
)

type State string

const (
	StateIdle       State = "idle"
	StateUploading  State = "uploading"
	StateCounted    State = "counted"
	StateConfigured State = "configured"
	StateFailed     State = "failed"
)

var (
	ErrNoFile     = errors.New("no file uploaded")
	ErrNotCounted = errors.New("page count not available yet")
	ErrNoPages    = errors.New("document has no pages")
	ErrBadOption  = errors.New("invalid print option")
)

// File is the uploaded document placeholder.
type File struct {
	Name string `json:"name"`
	Ref  string `json:"ref"`
}

type Options struct {
	Mode    domain.PrintMode `json:"print_mode"`
	Sides   domain.Sides     `json:"sides"`
	Binding domain.Binding   `json:"binding"`
}

// DefaultOptions mirrors what the storefront preselects.
func DefaultOptions() Options {
	return Options{Mode: domain.PrintBlackWhite, Sides: domain.SidesDouble, Binding: domain.BindingSpiral}
}

func (o Options) validate() error {
	if _, err := domain.ParsePrintMode(string(o.Mode)); err != nil {
		return fmt.Errorf("%w: %v", ErrBadOption, err)
	}
	if _, err := domain.ParseSides(string(o.Sides)); err != nil {
		return fmt.Errorf("%w: %v", ErrBadOption, err)
	}
	if _, err := domain.ParseBinding(string(o.Binding)); err != nil {
		return fmt.Errorf("%w: %v", ErrBadOption, err)
	}
	return nil
}

// Snapshot is a read-only view of the configurator.
type Snapshot struct {
	State      State        `json:"state"`
	File       *File        `json:"file,omitempty"`
	PageCount  int          `json:"page_count"`
	Options    Options      `json:"options"`
	Quote      domain.Money `json:"quote"`
	Error      string       `json:"error,omitempty"`
	Generation uint64       `json:"generation"`
}

// Configurator walks Idle -> Uploading -> Counted -> Configured.
// Page counting runs in the background; each upload gets a generation token
// and a completion carrying an older token is dropped.
type Configurator struct {
	mu      sync.Mutex
	counter PageCounter
	rates   pricing.RateCard
	newKey  func() string

	state State
	file  *File
	pages int
	opts  Options
	err   error
	gen   uint64
	done  chan struct{}
}

func New(counter PageCounter, rates pricing.RateCard) *Configurator {
	return &Configurator{
		counter: counter,
		rates:   rates,
		newKey:  func() string { return "custom-" + domain.NewID() },
		state:   StateIdle,
		opts:    DefaultOptions(),
	}
}

// Upload starts page detection for file and returns its generation token.
// Any detection still in flight is superseded.
func (c *Configurator) Upload(ctx context.Context, file File) (uint64, error) {
	if file.Ref == "" || file.Name == "" {
		return 0, ErrNoFile
	}

	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.state = StateUploading
	c.file = &file
	c.pages = 0
	c.err = nil
	done := make(chan struct{})
	c.done = done
	c.mu.Unlock()

	// Detection is not cancellable by the caller; a dismissed result is dropped by token.
	bg := context.WithoutCancel(ctx)
	go func() {
		defer close(done)
		n, err := c.counter.CountPages(bg, file.Ref)
		c.finish(gen, n, err)
	}()
	return gen, nil
}

func (c *Configurator) finish(gen uint64, pages int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		log.Printf("printjob: dropping page count for generation %d (current %d)", gen, c.gen)
		return
	}
	switch {
	case err != nil:
		c.state = StateFailed
		c.err = err
	case pages < 1:
		c.state = StateFailed
		c.err = ErrNoPages
	default:
		c.state = StateCounted
		c.pages = pages
	}
}

// Wait blocks until the detection of the current upload has settled.
func (c *Configurator) Wait(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done != nil {
		select {
		case <-ctx.Done():
			return Snapshot{}, ctx.Err()
		case <-done:
		}
	}
	return c.Snapshot(), nil
}

// Configure selects print options once the page count is known.
func (c *Configurator) Configure(opts Options) (Snapshot, error) {
	if err := opts.validate(); err != nil {
		return Snapshot{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateCounted && c.state != StateConfigured {
		return Snapshot{}, c.notReady()
	}
	c.opts = opts
	c.state = StateConfigured
	return c.snapshotLocked(), nil
}

// Commit turns the configured job into a fresh cart line and resets to Idle.
func (c *Configurator) Commit() (domain.LineItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateCounted && c.state != StateConfigured {
		return domain.LineItem{}, c.notReady()
	}
	if c.file == nil {
		return domain.LineItem{}, ErrNoFile
	}
	if c.pages < 1 {
		return domain.LineItem{}, ErrNoPages
	}
	line := domain.CustomPrintLine(c.newKey(),
		c.rates.Quote(c.pages, c.opts.Mode, c.opts.Binding),
		c.rates.Cost(c.pages, c.opts.Binding),
		domain.PrintFile{
			Name:      c.file.Name,
			Ref:       c.file.Ref,
			PageCount: c.pages,
			Mode:      c.opts.Mode,
			Sides:     c.opts.Sides,
			Binding:   c.opts.Binding,
		})
	c.resetLocked()
	return line, nil
}

// Reset discards the current job; a detection still running is ignored when it lands.
func (c *Configurator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Configurator) resetLocked() {
	c.gen++
	c.state = StateIdle
	c.file = nil
	c.pages = 0
	c.err = nil
	c.opts = DefaultOptions()
	c.done = nil
}

func (c *Configurator) notReady() error {
	switch c.state {
	case StateIdle:
		return ErrNoFile
	case StateFailed:
		return fmt.Errorf("%w: %v", ErrNotCounted, c.err)
	}
	return ErrNotCounted
}

func (c *Configurator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Configurator) snapshotLocked() Snapshot {
	s := Snapshot{
		State:      c.state,
		PageCount:  c.pages,
		Options:    c.opts,
		Quote:      c.rates.Quote(c.pages, c.opts.Mode, c.opts.Binding),
		Generation: c.gen,
	}
	if c.file != nil {
		f := *c.file
		s.File = &f
	}
	if c.pages == 0 {
		s.Quote = domain.Zero
	}
	if c.err != nil {
		s.Error = c.err.Error()
	}
	return s
}

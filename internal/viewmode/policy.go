// Package viewmode picks the catalog layout for a visitor. The choice lives in a
// key-value store for 24 hours; after that, or when nothing usable is stored, a new
// layout is drawn at random and stored.
package viewmode

import (
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"

	"shopfront/internal/domain"
)

const (
	KeyPrefix    = "product_view_mode"
	ModeKey      = KeyPrefix
	TimestampKey = KeyPrefix + "_timestamp"

	// Expiry is measured in whole seconds; a record exactly Expiry old is still valid.
	Expiry = 24 * 60 * 60
)

// Store is the key-value store the preference is kept in. Get reports ok=false
// for a missing key.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

type Policy struct {
	store   Store
	now     func() time.Time
	coin    func() bool
	mu      sync.Locker
	onError func(op string, err error)
}

type Option func(*Policy)

func WithClock(now func() time.Time) Option { return func(p *Policy) { p.now = now } }

// WithCoin replaces the random draw; true selects the list layout.
func WithCoin(coin func() bool) Option { return func(p *Policy) { p.coin = coin } }

// WithLocker shares the read-modify-write lock between policies built over the same store.
func WithLocker(l sync.Locker) Option { return func(p *Policy) { p.mu = l } }

// WithErrorHook receives store failures, which never reach the caller.
func WithErrorHook(fn func(op string, err error)) Option {
	return func(p *Policy) { p.onError = fn }
}

func New(store Store, opts ...Option) *Policy {
	p := &Policy{
		store:   store,
		now:     time.Now,
		coin:    func() bool { return rand.Intn(2) == 0 },
		mu:      &sync.Mutex{},
		onError: func(string, error) {},
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Resolve returns the stored layout while it is fresh. Otherwise it clears what is
// stored, draws a new layout, stores it and returns it. Resolving a fresh record does
// not extend its lifetime.
func (p *Policy) Resolve() domain.ViewMode {
	p.mu.Lock()
	defer p.mu.Unlock()

	if mode, ok := p.stored(); ok {
		return mode
	}
	p.clear()
	mode := p.random()
	p.persist(mode)
	return mode
}

// Persist stores mode with the current time. Last write wins. A mode other than
// list or grid is refused and reported to the error hook.
func (p *Policy) Persist(mode domain.ViewMode) {
	if _, ok := domain.ParseViewMode(string(mode)); !ok {
		p.onError("persist", errors.Errorf("unknown view mode %q", string(mode)))
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.persist(mode)
}

func (p *Policy) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clear()
}

func (p *Policy) stored() (domain.ViewMode, bool) {
	raw, ok := p.get(ModeKey)
	if !ok {
		return "", false
	}
	ts, ok := p.get(TimestampKey)
	if !ok {
		return "", false
	}
	storedAt, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return "", false
	}
	mode, ok := domain.ParseViewMode(raw)
	if !ok {
		return "", false
	}
	if p.now().Unix()-storedAt > Expiry {
		return "", false
	}
	return mode, true
}

func (p *Policy) get(key string) (string, bool) {
	v, ok, err := p.store.Get(key)
	if err != nil {
		p.onError("get", err)
		return "", false
	}
	return v, ok && v != ""
}

func (p *Policy) persist(mode domain.ViewMode) {
	if err := p.store.Set(ModeKey, string(mode)); err != nil {
		p.onError("set", err)
		return
	}
	if err := p.store.Set(TimestampKey, strconv.FormatInt(p.now().Unix(), 10)); err != nil {
		p.onError("set", err)
	}
}

func (p *Policy) clear() {
	for _, k := range []string{ModeKey, TimestampKey} {
		if err := p.store.Remove(k); err != nil {
			p.onError("remove", err)
		}
	}
}

func (p *Policy) random() domain.ViewMode {
	if p.coin() {
		return domain.ViewModeList
	}
	return domain.ViewModeGrid
}

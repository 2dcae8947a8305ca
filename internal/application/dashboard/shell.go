package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/labomak/dashboard/internal/application/gateway"
	"github.com/labomak/dashboard/internal/application/offerno"
	"github.com/labomak/dashboard/internal/application/validation"
)

var ErrUnknownModule = errors.New("bilinmeyen modül")

// Module is one top-level view of the shell.
type Module interface {
	Key() string
	// Load runs on every activation.
	Load(ctx context.Context) error
}

// Title is the heading pair shown for the active module.
type Title struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

var titles = map[string]Title{
	ModuleHome:      {Title: "Dashboard", Subtitle: "Genel sistem durumu ve istatistikler"},
	ModuleOffers:    {Title: "Teklif İşlemleri", Subtitle: "Teklif oluşturma ve yönetimi"},
	ModuleProducts:  {Title: "Ürün İşlemleri", Subtitle: "Ürün kataloğu yönetimi"},
	ModuleCustomers: {Title: "Müşteri İşlemleri", Subtitle: "Müşteri bilgileri yönetimi"},
}

// TitleOf returns the heading of a module, or the generic one.
func TitleOf(module string) Title {
	if t, ok := titles[module]; ok {
		return t
	}
	return Title{Title: "Dashboard", Subtitle: "Genel Bakış"}
}

// Shell switches between modules. A module is constructed on its first
// activation and reused afterwards; every activation calls its Load.
type Shell struct {
	order     []string
	factories map[string]func() Module

	mu      sync.Mutex
	modules map[string]Module
	active  string
	builds  map[string]int
}

func NewShell() *Shell {
	return &Shell{
		factories: map[string]func() Module{},
		modules:   map[string]Module{},
		builds:    map[string]int{},
	}
}

// Register adds a module factory. Registration order is menu order.
func (s *Shell) Register(key string, factory func() Module) {
	if _, exists := s.factories[key]; !exists {
		s.order = append(s.order, key)
	}
	s.factories[key] = factory
}

// Modules lists the menu keys in order.
func (s *Shell) Modules() []string {
	return append([]string(nil), s.order...)
}

// Activate shows the module named key. An unknown key is an error and
// leaves the active module unchanged. A Load error is returned but the
// module stays active, as a failed fetch shows an empty view.
func (s *Shell) Activate(ctx context.Context, key string) (Module, error) {
	factory, ok := s.factories[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModule, key)
	}

	s.mu.Lock()
	m, built := s.modules[key]
	if !built {
		m = factory()
		s.modules[key] = m
		s.builds[key]++
	}
	s.active = key
	s.mu.Unlock()

	if err := m.Load(ctx); err != nil {
		return m, err
	}
	return m, nil
}

// Active is the key of the visible module, empty before the first activation.
func (s *Shell) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Visible reports whether the panel of key is shown; exactly one is.
func (s *Shell) Visible(key string) bool {
	return s.Active() == key
}

// Title is the heading of the active module.
func (s *Shell) Title() Title {
	return TitleOf(s.Active())
}

// Module returns an already constructed module.
func (s *Shell) Module(key string) (Module, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.modules[key]
	return m, ok
}

// Builds reports how many times the module was constructed.
func (s *Shell) Builds(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.builds[key]
}

// NewDashboardShell registers the four Labomak modules over one gateway.
func NewDashboardShell(gw *gateway.Gateway, numbers *offerno.Generator, prober *validation.ImageProber) *Shell {
	s := NewShell()
	s.Register(ModuleHome, func() Module { return NewHome(gw) })
	s.Register(ModuleOffers, func() Module {
		m := NewEntityModule(OfferDescriptor(gw, numbers), OfferTabs(), prober)
		m.summary = offerSummary
		return m
	})
	s.Register(ModuleProducts, func() Module {
		m := NewEntityModule(ProductDescriptor(gw), ProductTabs(), prober)
		m.summary = productSummary
		return m
	})
	s.Register(ModuleCustomers, func() Module {
		return NewEntityModule(CustomerDescriptor(gw), CustomerTabs(), prober)
	})
	return s
}

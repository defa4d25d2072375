package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/gomarketplace/internal/cart"
	"github.com/jask/gomarketplace/internal/catalog"
	"github.com/jask/gomarketplace/internal/config"
)

const defaultOpTimeout = 5 * time.Second

// currencySymbols is the cycle the currency key walks through.
var currencySymbols = []string{"R$", "$", "€"}

// App ties together the catalog and cart views.
type App struct {
	ctx        context.Context
	cfg        config.Config
	saveConfig func(config.Config) error
	store      *cart.Store
	catalog    *catalog.Catalog
	log        *slog.Logger
	keys       keyMap

	state       appState
	products    []catalog.Product
	items       []cart.Item
	loaded      bool
	catalogIdx  int
	cartIdx     int
	search      textinput.Model
	searching   bool
	status      string
	currency    string
	opTimeout   time.Duration
	updates     <-chan []cart.Item
	unsubscribe func()
}

type appState string

const (
	viewCatalog appState = "catalog"
	viewCart    appState = "cart"
)

// New builds the UI. The cart store is taken from ctx, so New fails with
// cart.ErrNoProvider when called outside a cart provider.
func New(ctx context.Context, cfg config.Config, cat *catalog.Catalog, log *slog.Logger) (*App, error) {
	store, err := cart.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	timeout := cfg.Cart.Timeout
	if timeout <= 0 {
		timeout = defaultOpTimeout
	}

	search := textinput.New()
	search.Placeholder = "search products"
	search.Prompt = "/ "
	search.CharLimit = 64

	updates, unsubscribe := store.Subscribe()
	return &App{
		ctx:         ctx,
		cfg:         cfg,
		saveConfig:  config.Save,
		store:       store,
		catalog:     cat,
		log:         log.With("component", "tui"),
		keys:        defaultKeyMap(),
		state:       viewCatalog,
		products:    cat.Products(),
		items:       store.Items(),
		loaded:      store.Loaded(),
		search:      search,
		currency:    cfg.UI.CurrencySymbol,
		opTimeout:   timeout,
		updates:     updates,
		unsubscribe: unsubscribe,
	}, nil
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.waitForCart(), a.waitForLoad())
}

// Close stops listening to the store.
func (a *App) Close() {
	a.unsubscribe()
}

func (a *App) waitForCart() tea.Cmd {
	return func() tea.Msg {
		items, ok := <-a.updates
		if !ok {
			return nil
		}
		return cartMsg(items)
	}
}

func (a *App) waitForLoad() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-a.store.Ready():
			return cartReadyMsg{}
		case <-a.ctx.Done():
			return nil
		}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.searching {
			return a.handleSearchKey(m)
		}
		return a.handleKey(m)
	case cartMsg:
		a.items = []cart.Item(m)
		if a.cartIdx >= len(a.items) {
			a.cartIdx = max(len(a.items)-1, 0)
		}
		return a, a.waitForCart()
	case cartReadyMsg:
		a.loaded = true
	case currencySavedMsg:
		a.cfg = m.cfg
		a.currency = m.cfg.UI.CurrencySymbol
		a.status = fmt.Sprintf("currency set to %s", a.currency)
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.log.Error("cart operation failed", "err", m.error)
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		a.Close()
		return a, tea.Quit
	case key.Matches(m, a.keys.SwitchView):
		if a.state == viewCatalog {
			a.state = viewCart
		} else {
			a.state = viewCatalog
		}
		a.status = ""
	case key.Matches(m, a.keys.Up):
		a.moveCursor(-1)
	case key.Matches(m, a.keys.Down):
		a.moveCursor(1)
	case key.Matches(m, a.keys.Currency):
		return a, a.currencyCmd(nextCurrency(a.currency))
	}

	if a.state == viewCatalog {
		switch {
		case key.Matches(m, a.keys.Add):
			if len(a.products) == 0 {
				return a, nil
			}
			return a, a.addCmd(a.products[a.catalogIdx])
		case key.Matches(m, a.keys.Search):
			a.searching = true
			a.search.Focus()
			return a, textinput.Blink
		case key.Matches(m, a.keys.ClearSearch):
			a.search.SetValue("")
			a.applySearch()
		}
		return a, nil
	}

	if len(a.items) == 0 {
		if key.Matches(m, a.keys.Clear) {
			a.status = "cart is already empty"
		}
		return a, nil
	}
	item := a.items[a.cartIdx]
	switch {
	case key.Matches(m, a.keys.Increment):
		return a, a.incrementCmd(item)
	case key.Matches(m, a.keys.Decrement):
		return a, a.decrementCmd(item)
	case key.Matches(m, a.keys.Remove):
		return a, a.removeCmd(item)
	case key.Matches(m, a.keys.Clear):
		return a, a.clearCmd()
	}
	return a, nil
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.ClearSearch):
		a.searching = false
		a.search.Blur()
		a.search.SetValue("")
		a.applySearch()
		return a, nil
	case key.Matches(m, a.keys.ConfirmSearch):
		a.searching = false
		a.search.Blur()
		return a, nil
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(m)
	a.applySearch()
	return a, cmd
}

func (a *App) applySearch() {
	a.products = a.catalog.Search(a.search.Value())
	a.catalogIdx = 0
}

func (a *App) moveCursor(delta int) {
	if a.state == viewCatalog {
		a.catalogIdx = clamp(a.catalogIdx+delta, len(a.products))
		return
	}
	a.cartIdx = clamp(a.cartIdx+delta, len(a.items))
}

func (a *App) totals() cart.Totals { return cart.Summarize(a.items) }

func (a *App) totalsCount() int { return a.totals().Count }

func (a *App) quantityOf(id string) int {
	for _, it := range a.items {
		if it.ID == id {
			return it.Quantity
		}
	}
	return 0
}

func nextCurrency(current string) string {
	for i, sym := range currencySymbols {
		if sym == current {
			return currencySymbols[(i+1)%len(currencySymbols)]
		}
	}
	return currencySymbols[0]
}

func clamp(i, n int) int {
	if i < 0 || n == 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// commands

func (a *App) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(a.ctx, a.opTimeout)
}

func (a *App) addCmd(p catalog.Product) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.opContext()
		defer cancel()
		if err := a.store.AddToCart(ctx, p.CartProduct()); err != nil {
			return errMsg{err}
		}
		return statusMsg(fmt.Sprintf("added %s", p.Title))
	}
}

func (a *App) incrementCmd(it cart.Item) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.opContext()
		defer cancel()
		if err := a.store.Increment(ctx, it.ID); err != nil {
			return errMsg{err}
		}
		return statusMsg(fmt.Sprintf("%s +1", it.Title))
	}
}

func (a *App) decrementCmd(it cart.Item) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.opContext()
		defer cancel()
		if err := a.store.Decrement(ctx, it.ID); err != nil {
			return errMsg{err}
		}
		if it.Quantity <= 1 {
			return statusMsg(fmt.Sprintf("removed %s", it.Title))
		}
		return statusMsg(fmt.Sprintf("%s -1", it.Title))
	}
}

func (a *App) removeCmd(it cart.Item) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.opContext()
		defer cancel()
		if err := a.store.Remove(ctx, it.ID); err != nil {
			return errMsg{err}
		}
		return statusMsg(fmt.Sprintf("removed %s", it.Title))
	}
}

func (a *App) clearCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.opContext()
		defer cancel()
		if err := a.store.Clear(ctx); err != nil {
			return errMsg{err}
		}
		return statusMsg("cart cleared")
	}
}

// currencyCmd persists the new symbol; the view switches only once saved.
func (a *App) currencyCmd(symbol string) tea.Cmd {
	cfg := a.cfg
	cfg.UI.CurrencySymbol = symbol
	return func() tea.Msg {
		if err := a.saveConfig(cfg); err != nil {
			return errMsg{fmt.Errorf("save config: %w", err)}
		}
		return currencySavedMsg{cfg: cfg}
	}
}

type cartMsg []cart.Item

type cartReadyMsg struct{}

type statusMsg string

type errMsg struct{ error }

type currencySavedMsg struct{ cfg config.Config }

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const appName = "GoMarketplace"

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n\n")

	if a.state == viewCatalog {
		b.WriteString(a.renderCatalog())
	} else {
		b.WriteString(a.renderCart())
	}

	b.WriteString("\n\n")
	b.WriteString(a.renderTotals())
	b.WriteString("\n")
	if line := a.renderStatus(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(a.renderHelp()))
	return b.String()
}

func (a *App) renderHeader() string {
	tabs := []struct {
		label string
		state appState
	}{
		{"Catalog", viewCatalog},
		{fmt.Sprintf("Cart (%d)", a.totalsCount()), viewCart},
	}
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.state == a.state {
			parts = append(parts, activeTab.Render(t.label))
		} else {
			parts = append(parts, tabStyle.Render(t.label))
		}
	}
	return titleStyle.Render(appName) + "  " + strings.Join(parts, dimStyle.Render("│"))
}

func (a *App) renderCatalog() string {
	var b strings.Builder
	if a.searching || a.search.Value() != "" {
		b.WriteString(a.search.View())
		b.WriteString("\n\n")
	}
	if len(a.products) == 0 {
		b.WriteString(dimStyle.Render("no products match"))
		return b.String()
	}

	width := 0
	for _, p := range a.products {
		width = max(width, lipgloss.Width(p.Title))
	}
	for i, p := range a.products {
		if i > 0 {
			b.WriteString("\n")
		}
		line := padRight(p.Title, width) + "  " + priceStyle.Render(formatMoney(a.currency, p.Price))
		if qty := a.quantityOf(p.ID); qty > 0 {
			line += dimStyle.Render(fmt.Sprintf("  in cart: %d", qty))
		}
		b.WriteString(a.renderRow(line, i == a.catalogIdx))
	}
	return b.String()
}

func (a *App) renderCart() string {
	if len(a.items) == 0 {
		return dimStyle.Render("your cart is empty, press tab to browse the catalog")
	}

	width := 0
	for _, it := range a.items {
		width = max(width, lipgloss.Width(it.Title))
	}
	var b strings.Builder
	for i, it := range a.items {
		if i > 0 {
			b.WriteString("\n")
		}
		line := fmt.Sprintf("%3dx  %s  %s  %s",
			it.Quantity,
			padRight(it.Title, width),
			dimStyle.Render(formatMoney(a.currency, it.Price)),
			priceStyle.Render(formatMoney(a.currency, it.Subtotal())),
		)
		if _, ok := a.catalog.Get(it.ID); !ok {
			line += warningStyle.Render("  not in catalog")
		}
		b.WriteString(a.renderRow(line, i == a.cartIdx))
	}
	return b.String()
}

func (a *App) renderRow(line string, selected bool) string {
	if selected {
		return cursorStyle.Render("▶ ") + rowStyle.Render(line)
	}
	return "  " + rowStyle.Render(line)
}

func (a *App) renderTotals() string {
	if !a.loaded {
		return warningStyle.Render("loading cart...")
	}
	t := a.totals()
	noun := "items"
	if t.Count == 1 {
		noun = "item"
	}
	return totalStyle.Render(fmt.Sprintf("%d %s  total %s", t.Count, noun, formatMoney(a.currency, t.Amount)))
}

func (a *App) renderStatus() string {
	var parts []string
	if h := a.store.StorageHealth(); h != "" {
		parts = append(parts, errorStyle.Render("storage: "+h))
	}
	switch {
	case a.status == "":
	case strings.HasPrefix(a.status, "error:"):
		parts = append(parts, errorStyle.Render(a.status))
	default:
		parts = append(parts, warningStyle.Render(a.status))
	}
	return strings.Join(parts, "  ")
}

func (a *App) renderHelp() string {
	k := a.keys
	switch {
	case a.searching:
		return helpLine(k.ConfirmSearch, k.ClearSearch)
	case a.state == viewCatalog:
		return helpLine(k.Up, k.Down, k.Add, k.Search, k.Currency, k.SwitchView, k.Quit)
	default:
		return helpLine(k.Up, k.Down, k.Increment, k.Decrement, k.Remove, k.Clear, k.SwitchView, k.Quit)
	}
}

func padRight(s string, width int) string {
	if pad := width - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// formatMoney renders 59.9 as "R$ 59,90".
func formatMoney(symbol string, amount float64) string {
	s := strings.Replace(fmt.Sprintf("%.2f", amount), ".", ",", 1)
	if symbol == "" {
		return s
	}
	return symbol + " " + s
}

// Package table provides the customer table component for the TUI.
package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/mcc-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mcc-cli/internal/core/domain"
	"github.com/custodia-labs/mcc-cli/internal/core/ports/driving"
)

// column is a sortable table column.
type column struct {
	field domain.SortField
	title string
	width int
}

var columns = []column{
	{domain.SortFieldID, "ID", 12},
	{domain.SortFieldName, "Name", 36},
	{domain.SortFieldType, "Type", 10},
	{domain.SortFieldLevel, "Level", 6},
}

// Customers renders the filtered, sorted customer list with a cursor.
// Filter, sort and selection state live in the CustomerViewService.
type Customers struct {
	view    driving.CustomerViewService
	styles  *styles.Styles
	cursor  int
	offset  int
	height  int
	focused bool
	loading bool
}

// NewCustomers creates a table over the given view.
func NewCustomers(s *styles.Styles, view driving.CustomerViewService) *Customers {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Customers{view: view, styles: s, height: 10}
}

// Refresh clamps the cursor after the visible list changed.
func (c *Customers) Refresh() {
	n := len(c.view.Visible())
	if c.cursor >= n {
		c.cursor = n - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

// MoveUp moves the cursor up.
func (c *Customers) MoveUp() {
	if c.cursor > 0 {
		c.cursor--
	}
}

// MoveDown moves the cursor down.
func (c *Customers) MoveDown() {
	if c.cursor < len(c.view.Visible())-1 {
		c.cursor++
	}
}

// Current returns the customer under the cursor.
func (c *Customers) Current() *domain.Customer {
	visible := c.view.Visible()
	if c.cursor < 0 || c.cursor >= len(visible) {
		return nil
	}
	cust := visible[c.cursor]
	return &cust
}

// SelectCurrent makes the row under the cursor the selected customer.
func (c *Customers) SelectCurrent() {
	if cur := c.Current(); cur != nil {
		c.view.Select(cur.ID)
	}
}

// Sort sorts by field, toggling direction on the active column.
func (c *Customers) Sort(field domain.SortField) {
	c.view.Sort(field)
	c.Refresh()
}

// SetLoading shows or hides the loading indicator.
func (c *Customers) SetLoading(loading bool) { c.loading = loading }

// Focus marks the table as the active field.
func (c *Customers) Focus() { c.focused = true }

// Blur clears focus.
func (c *Customers) Blur() { c.focused = false }

// Focused returns whether the table is the active field.
func (c *Customers) Focused() bool { return c.focused }

// SetHeight sets how many rows fit on screen.
func (c *Customers) SetHeight(h int) {
	if h < 1 {
		h = 1
	}
	c.height = h
}

// View renders the table.
func (c *Customers) View() string {
	visible := c.view.Visible()
	lines := []string{c.renderHeader()}

	switch {
	case c.loading && len(visible) == 0:
		lines = append(lines, c.styles.Muted.Render("Loading customers..."))
	case len(visible) == 0 && c.view.FilterTerm() != "":
		lines = append(lines, c.styles.Muted.Render(fmt.Sprintf("No customers match %q", c.view.FilterTerm())))
	case len(visible) == 0:
		lines = append(lines, c.styles.Muted.Render("No customers"))
	default:
		c.scroll()
		end := c.offset + c.height
		if end > len(visible) {
			end = len(visible)
		}
		var selectedID string
		if sel := c.view.Selected(); sel != nil {
			selectedID = sel.ID
		}
		for i := c.offset; i < end; i++ {
			lines = append(lines, c.renderRow(i, visible[i], visible[i].ID == selectedID))
		}
	}

	footer := fmt.Sprintf("%d customers", len(visible))
	if c.loading {
		footer += " · refreshing..."
	}
	lines = append(lines, c.styles.Muted.Render(footer))
	return strings.Join(lines, "\n")
}

func (c *Customers) scroll() {
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.height {
		c.offset = c.cursor - c.height + 1
	}
}

func (c *Customers) renderHeader() string {
	order := c.view.Order()
	cells := make([]string, len(columns))
	for i, col := range columns {
		title := col.title
		if col.field == order.Field {
			if order.Direction == domain.SortAsc {
				title += " ▲"
			} else {
				title += " ▼"
			}
		}
		cells[i] = pad(title, col.width)
	}
	return "    " + c.styles.TableHeader.Render(strings.Join(cells, " "))
}

func (c *Customers) renderRow(i int, cust domain.Customer, selected bool) string {
	level := "-"
	if cust.Level != nil {
		level = strconv.Itoa(*cust.Level)
	}
	values := []string{cust.ID, cust.Name, string(cust.Type), level}
	cells := make([]string, len(columns))
	for j, col := range columns {
		cells[j] = pad(values[j], col.width)
	}
	text := strings.Join(cells, " ")

	marker := "[ ]"
	if selected {
		marker = "[x]"
	}
	row := marker + " " + text

	switch {
	case c.focused && i == c.cursor:
		return c.styles.Selected.Render(row)
	case cust.IsManager():
		return c.styles.ManagerRow.Render(row)
	default:
		return c.styles.Normal.Render(row)
	}
}

// pad truncates or right-pads s to width display cells.
func pad(s string, width int) string {
	if lipgloss.Width(s) > width {
		r := []rune(s)
		for len(r) > 0 && lipgloss.Width(string(r)) > width-1 {
			r = r[:len(r)-1]
		}
		return string(r) + "…"
	}
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}

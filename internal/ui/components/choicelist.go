package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpath/internal/ui/theme"
)

// ChoiceList selects one option, or several when Multi is set. It never
// reveals which options are correct.
type ChoiceList struct {
	Options []string
	Multi   bool
	Cursor  int
	chosen  map[int]bool
}

// NewChoiceList creates a list with the options in selected pre-chosen.
func NewChoiceList(options []string, multi bool, selected []string) ChoiceList {
	c := ChoiceList{
		Options: options,
		Multi:   multi,
		chosen:  make(map[int]bool),
	}
	for _, sel := range selected {
		for i, opt := range options {
			if strings.EqualFold(opt, sel) {
				c.chosen[i] = true
				if !multi {
					c.Cursor = i
				}
			}
		}
	}
	return c
}

// Update moves the cursor and toggles choices. changed reports whether the
// chosen set changed.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
		return c, false
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
		return c, false
	case "enter", "space", " ":
		return c.toggle(c.Cursor), true
	}

	// Number keys pick directly.
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		i := int(key[0] - '1')
		if i < len(c.Options) {
			c.Cursor = i
			return c.toggle(i), true
		}
	}
	return c, false
}

func (c ChoiceList) toggle(i int) ChoiceList {
	if i < 0 || i >= len(c.Options) {
		return c
	}
	next := make(map[int]bool, len(c.chosen)+1)
	if c.Multi {
		for k, v := range c.chosen {
			next[k] = v
		}
		next[i] = !next[i]
	} else {
		next[i] = true
	}
	c.chosen = next
	return c
}

// Chosen returns the chosen options in display order.
func (c ChoiceList) Chosen() []string {
	var out []string
	for i, opt := range c.Options {
		if c.chosen[i] {
			out = append(out, opt)
		}
	}
	return out
}

// View renders the options with their number keys.
func (c ChoiceList) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		cursor := "  "
		if i == c.Cursor {
			cursor = "▸ "
		}
		mark := "( )"
		if c.Multi {
			mark = "[ ]"
		}
		if c.chosen[i] {
			mark = "(•)"
			if c.Multi {
				mark = "[x]"
			}
		}

		line := fmt.Sprintf("%s%d. %s %s", cursor, i+1, mark, opt)
		style := theme.Unselected
		if i == c.Cursor {
			style = theme.Selected
		} else if c.chosen[i] {
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wanderdesk/internal/model"
)

// RenderHelp renders context-sensitive help footer.
func RenderHelp(desc screenDesc, mode model.Mode, keys KeyMap, formKeys FormKeyMap, width int) string {
	if mode == model.ModeInsert {
		return renderHelpLine(bindingHelp(formKeys.NextField, formKeys.Save, formKeys.Preview, formKeys.Cancel), width)
	}

	entries := bindingHelp(keys.Down, keys.PrevTab, keys.NextPage, keys.PrevPage, keys.Search, keys.ActiveFilter)
	if desc.form != formNone {
		entries = append(entries, bindingHelp(keys.Add, keys.Edit, keys.Delete, keys.Restore)...)
	}
	if desc.toggle {
		entries = append(entries, bindingHelp(keys.Toggle)...)
	}
	entries = append(entries, helpKey("u/ctrl+r", "undo/redo"), helpKey("?", "help"))
	return renderHelpLine(entries, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Navigation"),
		helpSection([]helpItem{
			{"j / ↓", "Move down"},
			{"k / ↑", "Move up"},
			{"h / ← , l / →", "Previous / next tab"},
			{"1-8", "Go to tab"},
			{"] / [", "Next / previous page"},
			{"gg", "Jump to top"},
			{"G", "Jump to bottom"},
			{"ctrl+d", "Half page down"},
			{"ctrl+u", "Half page up"},
			{"r", "Reload page"},
			{"q", "Quit"},
			{"?", "Toggle help"},
		}),
		titleSection("Lists"),
		helpSection([]helpItem{
			{"f", "Search by name (enter to apply, esc to close)"},
			{"x", "Cycle active / inactive / all"},
			{"tab / shift+tab", "Cycle active column"},
			{"/ then 1-9", "Jump to column"},
			{"s / S", "Sort page by active column asc/desc"},
			{"c / C", "Hide active column / show all"},
			{"n / N", "Filter page by selected value / clear"},
		}),
		titleSection("Records"),
		helpSection([]helpItem{
			{"a", "Add a record"},
			{"enter / e", "Edit the selected record"},
			{"d", "Delete (asks for y)"},
			{"R", "Restore a deleted record (asks for y)"},
			{"t", "Toggle country status"},
			{"u / ctrl+r", "Undo / redo the last delete, restore or toggle"},
		}),
		titleSection("Forms"),
		helpSection([]helpItem{
			{"tab / shift+tab", "Next / previous field"},
			{"↓ / enter", "Open a dropdown, pick an entry"},
			{"space", "Flip a checkbox"},
			{"j/k h/l", "Open hours: day / slot"},
			{"a x c enter", "Open hours: add, remove, closed, edit slot"},
			{"ctrl+p", "Show the JSON that will be sent"},
			{"ctrl+s", "Save"},
			{"esc", "Cancel"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// helpContent renders the key binding reference shown in the pager.
func helpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("cpdeck Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Navigation"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s   %s\n", keyStyle.Render("↑/↓, j/k"), descStyle.Render("Move selection up/down")))
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("PgUp/PgDn"), descStyle.Render("Move ten slots up/down")))
	help.WriteString(fmt.Sprintf("  %s       %s\n", keyStyle.Render("gg/G"), descStyle.Render("Go to top/bottom")))
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("Ctrl+e/y"), descStyle.Render("Scroll window without moving selection")))
	help.WriteString(fmt.Sprintf("  %s      %s\n", keyStyle.Render("1-9"), descStyle.Render("Count prefix, e.g. 5j moves five slots")))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Contests & Problems"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s    %s\n", keyStyle.Render("Enter"), descStyle.Render("Open source / expand contest / edit solution")))
	help.WriteString(fmt.Sprintf("  %s    %s\n", keyStyle.Render("Space"), descStyle.Render("Toggle contest expansion")))
	help.WriteString(fmt.Sprintf("  %s      %s\n", keyStyle.Render("h/l"), descStyle.Render("Collapse/expand contest")))
	help.WriteString(fmt.Sprintf("  %s        %s\n", keyStyle.Render("q"), descStyle.Render("Back (quit at the top level)")))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Commands"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s    %s\n", keyStyle.Render(":edit"), descStyle.Render("Edit the selected problem's solution")))
	help.WriteString(fmt.Sprintf("  %s    %s\n", keyStyle.Render(":test"), descStyle.Render("Compile and run the solution")))
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(":submit"), descStyle.Render("Submit the solution")))
	help.WriteString(fmt.Sprintf("  %s   %s\n", keyStyle.Render(":login"), descStyle.Render("Log in to the current source")))
	help.WriteString(fmt.Sprintf("  %s      %s\n", keyStyle.Render(":q"), descStyle.Render("Quit")))
	help.WriteString("\n")
	help.WriteString(descStyle.Render("  Commands match by unique prefix, :e works for :edit."))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s        %s\n", keyStyle.Render("?"), descStyle.Render("Toggle this help")))

	return help.String()
}

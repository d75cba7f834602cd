package ui

import (
	"os"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func editorName() string {
	if v := strings.TrimSpace(os.Getenv("VISUAL")); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("EDITOR")); v != "" {
		return v
	}
	return "vi"
}

// openEditor suspends the UI and opens the solution file in the user's
// editor. The returned command resumes the UI when the editor exits.
func openEditor(path string) tea.Cmd {
	args := strings.Fields(editorName())
	if len(args) == 0 {
		args = []string{"vi"}
	}

	cmd := exec.Command(args[0], append(args[1:], path)...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorDoneMsg{path: path, err: err}
	})
}

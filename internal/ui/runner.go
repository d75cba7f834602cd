package ui

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cpdeck/internal/lang"
)

// RunOps compiles and runs solution files outside the UI, handing the
// terminal over for the program's stdin and stdout.
type RunOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewRunOps creates a new run operations instance
func NewRunOps() *RunOps {
	return &RunOps{}
}

// SetProgram sets the program reference for terminal management
func (r *RunOps) SetProgram(program *tea.Program) {
	r.program = program
}

// RunSolution compiles the solution and runs it attached to the terminal.
// The user types the program's input directly and ends it with ctrl+d.
func (r *RunOps) RunSolution(l lang.Language, path string) error {
	if r.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := r.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Clear screen to reduce visual artifacts when returning
		fmt.Print("\x1b[2J\x1b[H")
		time.Sleep(150 * time.Millisecond)
		_ = r.program.RestoreTerminal()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	program, err := l.Compile(ctx, path)
	cancel()
	if err != nil {
		fmt.Println(err)
		waitForEnter()
		return nil
	}

	fmt.Printf("Running %s (end input with ctrl+d)\n", path)
	if err := l.Run(context.Background(), program, os.Stdin, os.Stdout); err != nil {
		fmt.Printf("\nProgram exited with error: %v\n", err)
	} else {
		fmt.Println("\nProgram finished")
	}
	waitForEnter()
	return nil
}

func waitForEnter() {
	fmt.Print("Press Enter to return")
	reader := bufio.NewReader(os.Stdin)
	_, _ = reader.ReadString('\n')
}

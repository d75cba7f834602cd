// Package lang knows how to compile and run solution files for the
// supported programming languages.
package lang

import (
	"context"
	"fmt"
	"io"
	"log"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// Language describes one supported programming language: how a solution
// file for it is compiled and how the resulting program is run.
type Language struct {
	Name      string
	Extension string

	compile func(ctx context.Context, sourcePath string) (string, error)
	run     func(ctx context.Context, programPath string, stdin io.Reader, stdout io.Writer) error
}

// Compile compiles the source file and returns the path of the runnable
// artifact. Interpreted languages return the source path unchanged.
func (l Language) Compile(ctx context.Context, sourcePath string) (string, error) {
	log.Printf("Compiling %s with %s", sourcePath, l.Name)
	return l.compile(ctx, sourcePath)
}

// Run executes the compiled program with the given streams.
func (l Language) Run(ctx context.Context, programPath string, stdin io.Reader, stdout io.Writer) error {
	return l.run(ctx, programPath, stdin, stdout)
}

// Registry maps language names to their definitions. It is populated once
// at startup and read-only afterwards.
type Registry struct {
	langs map[string]Language
}

// Default returns a registry with the built-in languages.
func Default() *Registry {
	r := &Registry{langs: make(map[string]Language)}
	r.add(python())
	r.add(cpp())
	r.add(java())
	return r
}

func (r *Registry) add(l Language) {
	r.langs[l.Name] = l
}

// Lookup resolves a language by name.
func (r *Registry) Lookup(name string) (Language, bool) {
	l, ok := r.langs[name]
	return l, ok
}

// Names returns the registered language names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.langs))
	for name := range r.langs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// compileWith runs a compiler command, folding its diagnostics into the
// returned error on failure.
func compileWith(ctx context.Context, outPath string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s failed: %w\n%s", name, err, strings.TrimSpace(string(out)))
	}
	log.Printf("The output file is %s", outPath)
	return outPath, nil
}

func runWith(ctx context.Context, stdin io.Reader, stdout io.Writer, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stdout
	return cmd.Run()
}

func python() Language {
	return Language{
		Name:      "python",
		Extension: ".py",
		compile: func(ctx context.Context, sourcePath string) (string, error) {
			// Nothing to do; the source is the program.
			return sourcePath, nil
		},
		run: func(ctx context.Context, programPath string, stdin io.Reader, stdout io.Writer) error {
			return runWith(ctx, stdin, stdout, "python3", programPath)
		},
	}
}

func cpp() Language {
	return Language{
		Name:      "c++",
		Extension: ".cpp",
		compile: func(ctx context.Context, sourcePath string) (string, error) {
			outPath := strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath)) + ".out"
			return compileWith(ctx, outPath, "g++", sourcePath, "-O2", "-o", outPath)
		},
		run: func(ctx context.Context, programPath string, stdin io.Reader, stdout io.Writer) error {
			return runWith(ctx, stdin, stdout, programPath)
		},
	}
}

func java() Language {
	return Language{
		Name:      "java",
		Extension: ".java",
		compile: func(ctx context.Context, sourcePath string) (string, error) {
			dir := filepath.Dir(sourcePath)
			outPath := strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath)) + ".class"
			return compileWith(ctx, outPath, "javac", sourcePath, "-d", dir)
		},
		run: func(ctx context.Context, programPath string, stdin io.Reader, stdout io.Writer) error {
			dir := filepath.Dir(programPath)
			class := strings.TrimSuffix(filepath.Base(programPath), filepath.Ext(programPath))
			return runWith(ctx, stdin, stdout, "java", "-cp", dir, class)
		},
	}
}

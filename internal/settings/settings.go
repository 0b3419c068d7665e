package settings

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/suiware/create-sui-dapp/internal/templates"
)

// ErrInvalidInput signals settings that cannot be used. The CLI reports it
// as a generic "incorrect input" error.
var ErrInvalidInput = errors.New("incorrect input")

// ProjectSettings is the resolved input for one scaffolding run.
type ProjectSettings struct {
	ProjectName string
	Template    string
}

// Request carries everything known before any prompt is shown.
type Request struct {
	Argument        string // positional project-name argument
	ArgumentGiven   bool
	Template        string // explicit --template value; empty when not given
	DefaultTemplate string // configured default; falls back to the registry default
	DefaultName     string // suggestion shown by the name prompt
}

// Resolve returns the settings for req. With an argument no prompt is shown;
// without one the project name and template are read from in, with prompts
// written to out.
func Resolve(reg *templates.Registry, req Request, in io.Reader, out io.Writer) (*ProjectSettings, error) {
	if req.ArgumentGiven {
		return fromArgument(reg, req)
	}
	return fromPrompts(reg, req, in, out)
}

func fromArgument(reg *templates.Registry, req Request) (*ProjectSettings, error) {
	name := strings.TrimSpace(req.Argument)
	if name == "" {
		return nil, fmt.Errorf("%w: project name cannot be empty", ErrInvalidInput)
	}

	id := req.Template
	if id == "" {
		id = defaultTemplate(reg, req.DefaultTemplate)
	}
	if _, err := reg.Lookup(id); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return &ProjectSettings{ProjectName: name, Template: id}, nil
}

func fromPrompts(reg *templates.Registry, req Request, in io.Reader, out io.Writer) (*ProjectSettings, error) {
	if req.Template != "" {
		if _, err := reg.Lookup(req.Template); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}

	reader := bufio.NewReader(in)
	name, err := promptName(reader, out, req.DefaultName)
	if err != nil {
		return nil, err
	}

	if req.Template != "" {
		return &ProjectSettings{ProjectName: name, Template: req.Template}, nil
	}

	id, err := selectTemplate(reader, out, reg, defaultTemplate(reg, req.DefaultTemplate))
	if err != nil {
		return nil, err
	}
	return &ProjectSettings{ProjectName: name, Template: id}, nil
}

// promptName asks until a non-blank name is entered or input ends.
func promptName(reader *bufio.Reader, w io.Writer, suggestion string) (string, error) {
	for {
		if suggestion != "" {
			fmt.Fprintf(w, "? Please specify a name for your project (e.g. %s): ", suggestion)
		} else {
			fmt.Fprint(w, "? Please specify a name for your project: ")
		}

		line, err := reader.ReadString('\n')
		if name := strings.TrimSpace(line); name != "" {
			return name, nil
		}
		if err != nil {
			return "", fmt.Errorf("%w: no project name given", ErrInvalidInput)
		}
		fmt.Fprintln(w, ">> Project name cannot be empty")
	}
}

// selectTemplate presents a numbered menu. Enter picks def; a number or a
// template id picks that template.
func selectTemplate(reader *bufio.Reader, w io.Writer, reg *templates.Registry, def string) (string, error) {
	defIdx := reg.Index(def)

	fmt.Fprintln(w, "? Please select a template:")
	for i, t := range reg.Templates {
		marker := " "
		if i == defIdx {
			marker = "*"
		}
		fmt.Fprintf(w, " %s %d) %s\n", marker, i+1, t.Label)
	}

	for {
		fmt.Fprintf(w, "Enter number [1-%d] (default %d): ", len(reg.Templates), defIdx+1)

		line, err := reader.ReadString('\n')
		answer := strings.TrimSpace(line)

		switch {
		case answer == "" && err == nil:
			return def, nil
		case answer == "":
			return "", fmt.Errorf("%w: no template selected", ErrInvalidInput)
		}

		if num, convErr := strconv.Atoi(answer); convErr == nil && num >= 1 && num <= len(reg.Templates) {
			return reg.Templates[num-1].ID, nil
		}
		if reg.Has(answer) {
			return answer, nil
		}
		if err != nil {
			return "", fmt.Errorf("%w: invalid selection %q", ErrInvalidInput, answer)
		}
		fmt.Fprintf(w, ">> Invalid selection %q: choose 1-%d\n", answer, len(reg.Templates))
	}
}

func defaultTemplate(reg *templates.Registry, configured string) string {
	if configured != "" && reg.Has(configured) {
		return configured
	}
	return reg.Default
}

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/gaurav-prasanna/pinpipe/core"
)

// errInputClosed is returned when stdin ends while a prompt is waiting.
var errInputClosed = eris.New("prompt: input closed")

// Prompter asks the operator questions on a line-oriented terminal.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter reading from in and writing to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// ask prints label and returns the trimmed answer.
func (p *Prompter) ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		if err == io.EOF {
			return "", errInputClosed
		}
		return "", eris.Wrap(err, "prompt: read")
	}
	return strings.TrimSpace(line), nil
}

// askFloat repeats the question until the answer parses as a number.
func (p *Prompter) askFloat(label string) (float64, error) {
	for {
		answer, err := p.ask(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(answer, 64)
		if err == nil {
			return v, nil
		}
		fmt.Fprintln(p.out, "Invalid number. Please enter a decimal value.")
	}
}

// ManualEntry collects trail details after an automatic fetch failed.
// It satisfies core.ManualEntryFunc.
func (p *Prompter) ManualEntry(ctx context.Context, req core.ManualRequest) (*core.ManualEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fmt.Fprintf(p.out, "\nCould not auto-fetch trail data: %v\n", req.Reason)
	fmt.Fprintln(p.out, "Enter trail information:")

	var entry core.ManualEntry
	var err error
	if entry.Name, err = p.ask("Trail name (Enter to use the URL): "); err != nil {
		return nil, err
	}
	if entry.Lat, err = p.askFloat("Latitude (e.g., 61.1796): "); err != nil {
		return nil, err
	}
	if entry.Lng, err = p.askFloat("Longitude (e.g., -149.8353): "); err != nil {
		return nil, err
	}
	if entry.Distance, err = p.ask("Distance in miles (e.g., 3.5): "); err != nil {
		return nil, err
	}
	if entry.Elevation, err = p.ask("Elevation gain in feet (e.g., 1350): "); err != nil {
		return nil, err
	}
	return &entry, nil
}

// SelectCategory lists categories, marking the suggested one, and repeats
// until a valid number is chosen.
func (p *Prompter) SelectCategory(categories []string, suggested string) (string, error) {
	if len(categories) == 0 {
		return "", eris.New("prompt: no categories to choose from")
	}
	fmt.Fprintln(p.out, "\nAvailable categories:")
	for i, name := range categories {
		marker := ""
		if name == suggested {
			marker = " (suggested)"
		}
		fmt.Fprintf(p.out, "%d. %s%s\n", i+1, name, marker)
	}

	for {
		answer, err := p.ask(fmt.Sprintf("\nSelect category (1-%d): ", len(categories)))
		if err != nil {
			return "", err
		}
		if answer == "" && suggested != "" {
			return suggested, nil
		}
		if idx, err := strconv.Atoi(answer); err == nil && idx >= 1 && idx <= len(categories) {
			return categories[idx-1], nil
		}
		fmt.Fprintln(p.out, "Invalid choice. Try again.")
	}
}

// Description shows the current description and returns a replacement, or
// "" to keep it.
func (p *Prompter) Description(current string) (string, error) {
	fmt.Fprintf(p.out, "\nCurrent description: %s\n", current)
	return p.ask("Enter custom description (or press Enter to keep current): ")
}

// LearnMoreLink asks for an optional external link.
func (p *Prompter) LearnMoreLink() (string, error) {
	fmt.Fprintln(p.out, "\nOptional: Add a 'Learn more' link (e.g., Wikipedia, website)")
	return p.ask("Enter URL (or press Enter to skip): ")
}

// Confirm asks a yes/no question; only "y" and "yes" count as yes.
func (p *Prompter) Confirm(question string) (bool, error) {
	answer, err := p.ask(question + " (y/n): ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

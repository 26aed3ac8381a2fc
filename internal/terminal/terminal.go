package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"autopost/internal/document"
	"autopost/internal/media"
	"autopost/internal/pipeline"
	"autopost/internal/post"
	"autopost/internal/sheet"
)

// Key codes for the confirm loop.
const (
	keyEnter     = '\r'
	keyNewline   = '\n'
	keyBackspace = 0x7f
	keyCtrlH     = 0x08
	keySpace     = ' '
	keyEscape    = 0x1b
)

// Terminal is the interactive implementation of pipeline.Decisions.
type Terminal struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
	raw    bool
}

var _ pipeline.Decisions = (*Terminal)(nil)

// New creates a Terminal over the given streams. Raw single-keystroke input
// is used only when in is a real terminal.
func New(in *os.File, out io.Writer) *Terminal {
	raw := false
	if in != nil {
		fd := in.Fd()
		raw = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return &Terminal{
		in:     in,
		out:    out,
		reader: bufio.NewReader(in),
		raw:    raw,
	}
}

// Interactive reports whether single-keystroke input is available.
func (t *Terminal) Interactive() bool {
	return t.raw
}

// RedactionStart shows the numbered preview and asks where the body starts.
// Enter or space accepts the suggested line; otherwise the answer must be a
// number within the body.
func (t *Terminal) RedactionStart(_ context.Context, preview []string, defaultLine, lineCount int) (int, error) {
	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, text.Bold.Sprint("Story opening:"))
	for i, line := range preview {
		marker := " "
		if i+1 == defaultLine {
			marker = text.FgCyan.Sprint(">")
		}
		fmt.Fprintf(t.out, " %s %2d  %s\n", marker, i+1, line)
	}

	for {
		answer, err := t.readLine(fmt.Sprintf("Body starts at line [%d]: ", defaultLine))
		if err != nil {
			return 0, err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			return defaultLine, nil
		}
		line, err := strconv.Atoi(answer)
		if err != nil || line < 1 || line > lineCount {
			fmt.Fprintf(t.out, "%s\n", text.FgRed.Sprintf("enter a number between 1 and %d", lineCount))
			continue
		}
		return line, nil
	}
}

// ChooseHeadline lists the parsed options and accepts a number or free text.
// Free text becomes the headline verbatim.
func (t *Terminal) ChooseHeadline(_ context.Context, candidate sheet.Candidate, contextPreview string, options []document.HeadlineOption) (string, error) {
	fmt.Fprintln(t.out)
	fmt.Fprintf(t.out, "%s row %d (%s)\n", text.Bold.Sprint("Headline for"), candidate.Row, candidate.Section)
	if contextPreview != "" {
		fmt.Fprintf(t.out, "  %s\n", text.Faint.Sprint(contextPreview+"..."))
	}
	for i, option := range options {
		label := option.Headline
		if option.Category != "" {
			label = fmt.Sprintf("%s  %s", label, text.Faint.Sprint("["+option.Category+"]"))
		}
		fmt.Fprintf(t.out, "  %2d  %s\n", i+1, label)
	}

	prompt := "Headline (number or text): "
	if len(options) == 0 {
		prompt = "No options found; type a headline: "
	}
	for {
		answer, err := t.readLine(prompt)
		if err != nil {
			return "", err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			fmt.Fprintln(t.out, text.FgRed.Sprint("a headline is required"))
			continue
		}
		if n, err := strconv.Atoi(answer); err == nil {
			if n < 1 || n > len(options) {
				fmt.Fprintln(t.out, text.FgRed.Sprintf("enter a number between 1 and %d, or type a headline", len(options)))
				continue
			}
			return options[n-1].Headline, nil
		}
		return answer, nil
	}
}

// ChooseCutline lists the parsed cutlines. Enter means no caption; a number
// picks an option; anything else becomes a custom caption.
func (t *Terminal) ChooseCutline(_ context.Context, candidate sheet.Candidate, options []document.CutlineOption) (document.CutlineOption, error) {
	fmt.Fprintln(t.out)
	fmt.Fprintf(t.out, "%s row %d\n", text.Bold.Sprint("Image caption for"), candidate.Row)
	for i, option := range options {
		label := option.Cutline
		if option.PhotoCredit != "" {
			label += text.Faint.Sprint("  (credit: " + option.PhotoCredit + ")")
		}
		fmt.Fprintf(t.out, "  %2d  %s\n", i+1, label)
	}

	for {
		answer, err := t.readLine("Caption (number, text, or enter for none): ")
		if err != nil {
			return document.CutlineOption{}, err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			return document.CutlineOption{}, nil
		}
		if n, err := strconv.Atoi(answer); err == nil {
			if n < 1 || n > len(options) {
				fmt.Fprintln(t.out, text.FgRed.Sprintf("enter a number between 1 and %d, or type a caption", len(options)))
				continue
			}
			return options[n-1], nil
		}
		return document.CutlineOption{Cutline: answer}, nil
	}
}

// ConfirmPost shows the assembled row and waits for the disposition
// keystroke: enter publishes, backspace saves a draft, space skips, and
// escape exits the batch.
func (t *Terminal) ConfirmPost(_ context.Context, status *post.RowStatus) (pipeline.Action, error) {
	fmt.Fprintln(t.out)
	fmt.Fprintf(t.out, "%s\n", text.Bold.Sprintf("Row %d  %s", status.Row, status.Title))
	fmt.Fprintf(t.out, "  section:    %s\n", status.Section)
	fmt.Fprintf(t.out, "  image:      %s\n", status.Image.Status)
	fmt.Fprintf(t.out, "  authors:    %s\n", describeAuthors(status.Authors))
	fmt.Fprintf(t.out, "  categories: %s\n", status.Categories.Status)
	fmt.Fprintln(t.out, text.Faint.Sprint("  enter=publish  backspace=draft  space=skip  esc=exit"))

	if !t.raw {
		return t.confirmByLine()
	}
	for {
		key, err := t.readKey()
		if err != nil {
			return pipeline.ActionExit, err
		}
		switch key {
		case keyEnter, keyNewline:
			return pipeline.ActionPublish, nil
		case keyBackspace, keyCtrlH:
			return pipeline.ActionDraft, nil
		case keySpace:
			return pipeline.ActionSkip, nil
		case keyEscape:
			return pipeline.ActionExit, nil
		}
	}
}

// confirmByLine is the non-terminal fallback for the confirm prompt.
func (t *Terminal) confirmByLine() (pipeline.Action, error) {
	for {
		answer, err := t.readLine("publish/draft/skip/exit [p]: ")
		if err != nil {
			return pipeline.ActionExit, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "", "p", "publish":
			return pipeline.ActionPublish, nil
		case "d", "draft":
			return pipeline.ActionDraft, nil
		case "s", "skip":
			return pipeline.ActionSkip, nil
		case "q", "x", "exit":
			return pipeline.ActionExit, nil
		}
	}
}

// ImageFallback asks what to do about a failed image upload.
func (t *Terminal) ImageFallback(_ context.Context, reason string) (media.FallbackChoice, string, error) {
	fmt.Fprintln(t.out)
	fmt.Fprintf(t.out, "%s %s\n", text.FgRed.Sprint("Image upload failed:"), reason)
	fmt.Fprintln(t.out, "  1  try a different URL")
	fmt.Fprintln(t.out, "  2  upload a local file")
	fmt.Fprintln(t.out, "  3  continue without an image")

	for {
		answer, err := t.readLine("Choice [3]: ")
		if err != nil {
			return media.FallbackSkip, "", err
		}
		switch strings.TrimSpace(answer) {
		case "1":
			url, err := t.readLine("Image URL: ")
			if err != nil {
				return media.FallbackSkip, "", err
			}
			return media.FallbackNewURL, strings.TrimSpace(url), nil
		case "2":
			path, err := t.readLine("File path: ")
			if err != nil {
				return media.FallbackSkip, "", err
			}
			return media.FallbackLocalFile, strings.TrimSpace(path), nil
		case "", "3":
			return media.FallbackSkip, "", nil
		}
	}
}

func (t *Terminal) readLine(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	line, err := t.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readKey reads one keystroke with the terminal in raw mode.
func (t *Terminal) readKey() (byte, error) {
	fd := int(t.in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return 0, fmt.Errorf("enter raw mode: %w", err)
	}
	defer term.Restore(fd, state)

	buf := make([]byte, 1)
	if _, err := t.in.Read(buf); err != nil {
		return 0, fmt.Errorf("read key: %w", err)
	}
	return buf[0], nil
}

func describeAuthors(authors post.AuthorStatus) string {
	if len(authors.Applied) == 0 {
		return authors.Status
	}
	return fmt.Sprintf("%s (%s)", strings.Join(authors.Applied, ", "), authors.Status)
}

package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/alpdilgen/memoq-qa-resolver/internal/resolve"
)

// Prompter asks the operator to decide each error on the terminal. It
// implements resolve.Asker.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter reading decisions from in and writing the
// error context to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Ask shows one error with the oracle's recommendation and reads the
// operator's choice. It re-prompts on unrecognized input and returns an
// error only when the input stream ends.
func (p *Prompter) Ask(req resolve.Request) (resolve.Response, error) {
	p.printError(req)

	for {
		fmt.Fprint(p.out, promptStyle.Render("Action [(f)ix / (e)dit / (i)gnore / (s)kip]: "))
		line, err := p.in.ReadString('\n')
		if err != nil && line == "" {
			return resolve.Response{}, fmt.Errorf("reading operator input: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "f", "fix":
			return resolve.Response{Action: resolve.ActionFix}, nil
		case "e", "edit":
			return p.readManualText()
		case "i", "ignore":
			return resolve.Response{Action: resolve.ActionIgnore}, nil
		case "s", "skip":
			return resolve.Response{Action: resolve.ActionSkip}, nil
		default:
			fmt.Fprintln(p.out, mutedStyle.Render("Please answer f, e, i, or s."))
		}
	}
}

// readManualText collects the replacement text for an edit. An empty line
// cancels back to a skip.
func (p *Prompter) readManualText() (resolve.Response, error) {
	fmt.Fprint(p.out, promptStyle.Render("New target text (empty to cancel): "))
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return resolve.Response{}, fmt.Errorf("reading replacement text: %w", err)
	}

	text := strings.TrimRight(line, "\r\n")
	if text == "" {
		return resolve.Response{Action: resolve.ActionSkip}, nil
	}
	return resolve.Response{Action: resolve.ActionEdit, ManualText: text}, nil
}

// printError renders one error's full context: texts, extracted record, and
// the oracle recommendation.
func (p *Prompter) printError(req resolve.Request) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, headerStyle.Render(fmt.Sprintf("--- %s error %d/%d (segment %s) ---",
		req.Category, req.Index, req.Total, req.UnitID)))
	fmt.Fprintf(p.out, "%s %s\n", labelStyle.Render("Source:"), sourceStyle.Render(req.SourceText))
	fmt.Fprintf(p.out, "%s %s\n", labelStyle.Render("Target:"), targetStyle.Render(req.TargetText))

	if req.Term != nil {
		fmt.Fprintf(p.out, "%s %q\n", labelStyle.Render("Source term:"), req.Term.SourceTerm)
		fmt.Fprintf(p.out, "%s %s\n", labelStyle.Render("Suggested terms:"),
			strings.Join(req.Term.TargetSuggestions, ", "))
	}
	if req.Consistency != nil {
		fmt.Fprintf(p.out, "%s %q\n", labelStyle.Render("Expected wording:"), req.Consistency.ConsistentText)
		fmt.Fprintf(p.out, "%s %q\n", labelStyle.Render("Current wording:"), req.Consistency.InconsistentText)
		if len(req.Consistency.RelatedSegments) > 0 {
			fmt.Fprintf(p.out, "%s %s\n", labelStyle.Render("Related segments:"),
				strings.Join(req.Consistency.RelatedSegments, ", "))
		}
	}

	if req.Decision.NeedsFix {
		fmt.Fprintf(p.out, "%s %s\n", labelStyle.Render("Recommendation:"), fixStyle.Render("fix"))
		fmt.Fprintf(p.out, "%s %s\n", labelStyle.Render("Proposed text:"), fixStyle.Render(req.Decision.NewText))
	} else {
		fmt.Fprintf(p.out, "%s %s\n", labelStyle.Render("Recommendation:"), noFixStyle.Render("no fix needed"))
	}
	if req.Decision.Explanation != "" {
		fmt.Fprintf(p.out, "%s %s\n", labelStyle.Render("Explanation:"), req.Decision.Explanation)
	}
}

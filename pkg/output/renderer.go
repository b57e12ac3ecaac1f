package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/bundlechain/pkg/errors"
	"github.com/arthur-debert/bundlechain/pkg/logging"
	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// Renderer writes reports in one format
type Renderer struct {
	writer io.Writer
	format Format
	styles *Styles
}

// NewRenderer creates a renderer for w. FormatAuto must be resolved by the
// caller since only an *os.File can be probed for terminal support.
func NewRenderer(w io.Writer, format Format) (*Renderer, error) {
	if format == FormatAuto {
		format = FormatText
	}
	if format.String() == "unknown" {
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format %d", int(format))
	}

	logger := logging.GetLogger("output.Renderer")
	logger.Debug().
		Str("format", format.String()).
		Msg("Creating renderer")

	return &Renderer{
		writer: w,
		format: format,
		styles: NewStyles(w),
	}, nil
}

// Format returns the format the renderer writes
func (r *Renderer) Format() Format {
	return r.format
}

// Render writes the report
func (r *Renderer) Render(report *Report) error {
	var (
		out string
		err error
	)
	switch r.format {
	case FormatJSON:
		out, err = renderJSON(report)
	case FormatYAML:
		out, err = renderYAML(report)
	case FormatTOML:
		out, err = renderTOML(report)
	case FormatTerminal:
		out, err = r.renderTerminal(report)
	default:
		out = renderText(report.tree())
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to render %s output", r.format)
	}

	_, err = io.WriteString(r.writer, strings.TrimRight(out, "\n")+"\n")
	return err
}

// RenderError writes err in the renderer's format
func (r *Renderer) RenderError(err error) error {
	switch r.format {
	case FormatJSON:
		payload := map[string]interface{}{
			"error": err.Error(),
			"code":  string(errors.GetErrorCode(err)),
		}
		if details := errors.GetErrorDetails(err); len(details) > 0 {
			payload["details"] = details
		}
		data, marshalErr := json.MarshalIndent(payload, "", "  ")
		if marshalErr != nil {
			return marshalErr
		}
		_, writeErr := fmt.Fprintln(r.writer, string(data))
		return writeErr
	case FormatTerminal:
		_, writeErr := fmt.Fprintf(r.writer, "%s %s\n", r.styles.Render("Error", "Error:"), err)
		return writeErr
	default:
		_, writeErr := fmt.Fprintf(r.writer, "Error: %s\n", err)
		return writeErr
	}
}

func renderJSON(report *Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	return string(data), err
}

func renderYAML(report *Report) (string, error) {
	var buf strings.Builder
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderTOML(report *Report) (string, error) {
	data, err := toml.Marshal(report)
	return string(data), err
}

func renderText(n node) string {
	var b strings.Builder
	writeText(&b, n, 0)
	return b.String()
}

func writeText(b *strings.Builder, n node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.text)
	b.WriteByte('\n')
	for _, child := range n.children {
		writeText(b, child, depth+1)
	}
}

func (r *Renderer) renderTerminal(report *Report) (string, error) {
	root := pterm.TreeNode{Children: []pterm.TreeNode{r.treeNode(report.tree())}}
	return pterm.DefaultTree.WithRoot(root).Srender()
}

func (r *Renderer) treeNode(n node) pterm.TreeNode {
	text := n.text
	if n.style != "" {
		text = r.styles.Render(n.style, n.text)
	}
	tn := pterm.TreeNode{Text: text}
	for _, child := range n.children {
		tn.Children = append(tn.Children, r.treeNode(child))
	}
	return tn
}

package cli

import (
	"encoding/json"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/prodsync/pdgate/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	warnColor = color.New(color.FgYellow)
	keyColor  = color.New(color.FgCyan)
)

func outputOf(c *cli.Command) io.Writer {
	if root := c.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printPrepareResponse(w io.Writer, resp *model.PrepareResponse) {
	okColor.Fprintln(w, "File prepared")
	keyColor.Fprint(w, "  FilePath: ")
	_, _ = io.WriteString(w, resp.FilePath+"\n")
	for _, msg := range resp.ErrorMessage {
		warnColor.Fprintf(w, "  ! %s\n", msg)
	}
}

func printDownloadResult(w io.Writer, result *model.DownloadResult) {
	okColor.Fprintln(w, result.Message())
	keyColor.Fprint(w, "  Location: ")
	_, _ = io.WriteString(w, result.Location+"\n")
}

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"capotokeys/internal/application"
	"capotokeys/internal/application/commands"
	"capotokeys/internal/domain"
)

var (
	capo      int
	semitones int
	title     string
	withPDF   bool
	noSave    bool
	copyOut   bool
)

var transposeCmd = &cobra.Command{
	Use:   "transpose",
	Short: "Transpose a chord sheet read from stdin",
	Long: `Read a chord sheet from stdin, move every chord up by the capo amount and
print the result. The result is also saved as <title>-capo<N>.txt in the
outputs directory, plus a PDF with --pdf.

When no amount is given and stdin is a terminal, the capo is asked for.

Examples:
  capotokeys transpose --capo 3 --title "My Song" < song.txt
  pbpaste | capotokeys --semitones 2 --no-save
  capotokeys transpose --capo 5 --pdf --conflict overwrite < song.txt`,
	Args: cobra.NoArgs,
	RunE: runTranspose,
}

func init() {
	addTransposeFlags(transposeCmd)
	rootCmd.AddCommand(transposeCmd)
}

func addTransposeFlags(c *cobra.Command) {
	flags := c.Flags()
	flags.IntVar(&capo, "capo", 0, "capo fret (0-11)")
	flags.IntVar(&semitones, "semitones", 0, "semitones to transpose up (0-11), overrides --capo")
	flags.StringVarP(&title, "title", "t", application.DefaultTitle, "sheet title, used for the file name and PDF header")
	flags.BoolVar(&withPDF, "pdf", false, "also write a PDF")
	flags.BoolVar(&noSave, "no-save", false, "print only, do not write files")
	flags.BoolVar(&copyOut, "copy", false, "copy the transposed text to the clipboard")
}

func runTranspose(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	in := bufio.NewReader(cmd.InOrStdin())
	interactive := isTerminal(cmd.InOrStdin())

	amount, err := resolveAmount(cmd, in, interactive)
	if err != nil {
		return err
	}

	if interactive {
		fmt.Fprintln(cmd.ErrOrStderr(), "Paste the chord sheet, then press Ctrl-D:")
	}
	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading sheet: %w", err)
	}
	text := string(raw)

	var transposed string
	if noSave {
		tc := commands.NewTransposeCommand(text, amount)
		result, err := tc.Execute(ctx)
		if err != nil {
			return err
		}
		transposed = result.Text
		logger.Debug("transposed", zap.Int("amount", int(result.Amount)), zap.Int("chords", result.Chords))
	} else {
		gc := commands.NewGenerateCommand(GetRepo(), renderer, text, title, amount)
		gc.PDF = withPDF
		gc.Conflict = cfg.Conflict()
		gc.Layout = cfg.PDF
		result, err := gc.Execute(ctx)
		if err != nil {
			return err
		}
		transposed = result.Text
		logger.Debug("generated",
			zap.String("stem", result.Stem),
			zap.Strings("files", result.Files),
			zap.Bool("renamed", result.Renamed),
		)
		defer fmt.Fprintln(cmd.ErrOrStderr(), result.Message)
	}

	fmt.Fprint(cmd.OutOrStdout(), transposed)
	if !strings.HasSuffix(transposed, "\n") {
		fmt.Fprintln(cmd.OutOrStdout())
	}

	if copyOut {
		if err := clipboard.WriteAll(transposed); err != nil {
			return fmt.Errorf("clipboard: %w", err)
		}
	}
	return nil
}

// resolveAmount picks --semitones over --capo, and prompts when neither is
// set and stdin is interactive
func resolveAmount(cmd *cobra.Command, in *bufio.Reader, interactive bool) (int, error) {
	switch {
	case cmd.Flags().Changed("semitones"):
		return semitones, nil
	case cmd.Flags().Changed("capo"):
		return capo, nil
	case !interactive:
		return 0, errors.New("provide --capo or --semitones")
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Capo number? (0-11): ")
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return 0, fmt.Errorf("reading capo: %w", err)
	}
	amount, err := domain.ParseTransposeAmount(line)
	if err != nil {
		return 0, &application.ValidationError{Field: "capo", Message: err.Error()}
	}
	return int(amount), nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

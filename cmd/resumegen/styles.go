package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-formatter/internal/rendering"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List the named resume styles",
	RunE:  runStyles,
}

func init() {
	rootCmd.AddCommand(stylesCmd)
}

func runStyles(_ *cobra.Command, _ []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tHEADINGS\tNAME ALIGN\tFONT\tSECTIONS\tSUFFIX")

	for _, cfg := range rendering.Styles() {
		sections := make([]string, len(cfg.SectionOrder))
		for i, s := range cfg.SectionOrder {
			sections[i] = string(s)
		}
		name := cfg.Name
		if name == rendering.DefaultStyle {
			name += " (default)"
		}
		suffix := cfg.FileSuffix
		if suffix == "" {
			suffix = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s %.0fpt\t%s\t%s\n",
			name, cfg.HeadingStyle, cfg.NameAlignment, cfg.FontFamily, cfg.BaseFontSizePt,
			strings.Join(sections, ","), suffix)
	}

	return w.Flush()
}

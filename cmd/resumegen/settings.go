package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-formatter/internal/config"
	"github.com/jonathan/resume-formatter/internal/keywords"
	"github.com/jonathan/resume-formatter/internal/rendering"
)

// loadSettings layers the optional config file over the environment and the
// built-in defaults. Flags are applied afterwards by each command.
func loadSettings(path string) (config.Config, error) {
	var file *config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		file = loaded
	}
	return config.Resolve(file), nil
}

// stringFlag overrides dst when the flag was set on the command line
func stringFlag(cmd *cobra.Command, name string, value string, dst *string) {
	if cmd.Flags().Changed(name) {
		*dst = value
	}
}

// boolFlag overrides dst when the flag was set, so --no-highlight=false
// turns off a config file's no_highlight
func boolFlag(cmd *cobra.Command, name string, value bool, dst *bool) {
	if cmd.Flags().Changed(name) {
		*dst = value
	}
}

// collectKeywords merges keywords from the config file, the keyword file and
// the command line, in that order. A missing keyword file contributes nothing.
func collectKeywords(settings config.Config, fromFlags []string) ([]string, error) {
	out := append([]string(nil), settings.Keywords...)

	fromFile, err := keywords.LoadList(settings.KeywordsFile)
	if err != nil {
		return nil, err
	}
	out = append(out, fromFile...)
	return append(out, splitKeywords(fromFlags)...), nil
}

// splitKeywords flattens repeated -k values; -k "AWS, Python" is two keywords
func splitKeywords(values []string) []string {
	var out []string
	for _, kw := range values {
		for _, part := range strings.Split(kw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// selectStyles resolves a style name, or "all", and applies overrides
func selectStyles(name, font string, fontSize float64, noHighlight bool) ([]rendering.Config, error) {
	var cfgs []rendering.Config
	if strings.EqualFold(strings.TrimSpace(name), "all") {
		cfgs = rendering.Styles()
	} else {
		cfg, err := rendering.LookupStyle(name)
		if err != nil {
			return nil, err
		}
		cfgs = []rendering.Config{cfg}
	}

	for i := range cfgs {
		cfgs[i] = cfgs[i].WithFont(font, fontSize)
		if noHighlight {
			cfgs[i] = cfgs[i].WithHighlight(false)
		}
		if err := cfgs[i].Validate(); err != nil {
			return nil, fmt.Errorf("style %s: %w", cfgs[i].Name, err)
		}
	}
	return cfgs, nil
}

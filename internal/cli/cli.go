package cli

import (
	"fmt"

	"github.com/spf13/pflag"
)

// HeaderOnlyConfig holds the command-line flag values for header-only.
type HeaderOnlyConfig struct {
	Root    string
	Sources bool
	Check   bool
	Watch   bool
	Plain   bool
	Only    string
	Output  string
}

// ParseHeaderOnly defines and parses the header-only flags using pflag.
func ParseHeaderOnly() (*HeaderOnlyConfig, error) {
	cfg := &HeaderOnlyConfig{}

	pflag.StringVarP(&cfg.Root, "root", "C", "", "Repository root (default: walk up from the current directory).")
	pflag.BoolVarP(&cfg.Sources, "sources", "s", false, "Also inline platform sources under preprocessor guards.")
	pflag.StringVar(&cfg.Only, "only", "", "Only process headers matching this glob (e.g. 'k*.hpp').")
	pflag.StringVarP(&cfg.Output, "output", "o", "", "Override the output directory.")
	pflag.BoolVar(&cfg.Plain, "plain", false, "Print a plain summary instead of the interactive view.")

	// Mutually exclusive mode group
	pflag.BoolVar(&cfg.Check, "check", false, "Verify generated headers are up to date; write nothing.")
	pflag.BoolVarP(&cfg.Watch, "watch", "w", false, "Regenerate whenever the header or source trees change.")

	pflag.Usage = func() {
		fmt.Println("Usage: header-only [flags]")
		fmt.Println("\nGenerate self-contained header-only variants of the LibOS headers.")
		fmt.Println("\nExample: header-only --sources")
		fmt.Println("\nFlags:")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects flag combinations that cannot run together.
func (c *HeaderOnlyConfig) Validate() error {
	if c.Check && c.Watch {
		return fmt.Errorf("error: --check and --watch are mutually exclusive")
	}
	return nil
}

// UpdateVersionConfig holds the command-line flag values for update-version.
type UpdateVersionConfig struct {
	Root      string
	Copy      bool
	PrintOnly bool
}

// ParseUpdateVersion defines and parses the update-version flags using pflag.
func ParseUpdateVersion() (*UpdateVersionConfig, error) {
	cfg := &UpdateVersionConfig{}

	pflag.StringVarP(&cfg.Root, "root", "C", "", "Repository root (default: walk up from the current directory).")
	pflag.BoolVarP(&cfg.Copy, "copy", "c", false, "Copy the extracted version to the clipboard.")
	pflag.BoolVarP(&cfg.PrintOnly, "print-only", "p", false, "Print the version without stamping the doc configs.")

	pflag.Usage = func() {
		fmt.Println("Usage: update-version [flags]")
		fmt.Println("\nExtract the LibOS version and stamp it into the Doxygen and Sphinx configs.")
		fmt.Println("\nFlags:")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	return cfg, nil
}

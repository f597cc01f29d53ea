package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/quforge/quarith/internal/ui"
)

// usageTheme picks the theme for usage text. Usage can print before the
// application initializes themes, so NO_COLOR is honored here directly.
func usageTheme() ui.Theme {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return ui.NoColorTheme
	}
	return ui.GetCurrentTheme()
}

// setCustomUsage installs a colored usage function on the flag set,
// grouping the header, invocation line and per-flag help.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		t := usageTheme()
		out := fs.Output()

		fmt.Fprintf(out, "\n%sQuantum Arithmetic Circuit Builder%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "Builds QFT-based adder, subtractor and multiplier circuits.\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n  %s [flags]\n\n%sFlags:%s\n", t.Warning, t.Reset, fs.Name(), t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			name, usage := flag.UnquoteUsage(f)
			flagSig := "-" + f.Name
			if len(name) > 0 {
				flagSig += " " + name
			}

			fmt.Fprintf(out, "  %s%-25s%s %s", t.Primary, flagSig, t.Reset, usage)

			// Zero-value defaults add nothing to the help line.
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Secondary, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintln(out)
	}
}

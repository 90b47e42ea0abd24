package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

func writeHelp(w io.Writer, cmd *Command) {
	if cmd.Short != "" {
		fmt.Fprintf(w, "%s - %s\n", cmd.Path(), cmd.Short)
	} else {
		fmt.Fprintln(w, cmd.Path())
	}
	if cmd.Long != "" {
		fmt.Fprintf(w, "\n%s\n", strings.TrimRight(cmd.Long, "\n"))
	}

	fmt.Fprintf(w, "\nUsage:\n  %s\n", usageLine(cmd))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if len(cmd.children) > 0 {
		fmt.Fprintln(tw, "\nCommands:")
		children := cmd.Commands()
		sort.Slice(children, func(i, j int) bool { return children[i].Name < children[j].Name })
		for _, child := range children {
			if child.Short == "" {
				fmt.Fprintf(tw, "  %s\n", child.Name)
				continue
			}
			fmt.Fprintf(tw, "  %s\t%s\n", child.Name, child.Short)
		}
	}
	if flags := cmd.active().sorted(); len(flags) > 0 {
		fmt.Fprintln(tw, "\nFlags:")
		for _, f := range flags {
			fmt.Fprintln(tw, flagHelpLine(f))
		}
	}
	tw.Flush()

	if cmd.Example != "" {
		fmt.Fprintln(w, "\nExample:")
		for _, line := range strings.Split(strings.TrimRight(cmd.Example, "\n"), "\n") {
			if line == "" {
				fmt.Fprintln(w)
				continue
			}
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}

func usageLine(cmd *Command) string {
	segments := []string{cmd.Path()}
	if len(cmd.active().byName) > 0 {
		segments = append(segments, "[flags]")
	}
	if len(cmd.children) > 0 {
		if cmd.Run == nil {
			segments = append(segments, "<command>")
		} else {
			segments = append(segments, "[command]")
		}
	}
	if cmd.Run != nil && cmd.Synopsis != "" {
		segments = append(segments, cmd.Synopsis)
	}
	return strings.Join(segments, " ")
}

func flagHelpLine(f *Flag) string {
	names := "    --" + f.Name
	if f.Shorthand != 0 {
		names = fmt.Sprintf("-%c, --%s", f.Shorthand, f.Name)
	}
	if k := f.value.kind(); k != "bool" {
		names += " <" + k + ">"
	}
	usage := strings.TrimSpace(f.Usage)
	if f.Default != "" && f.Default != "false" && f.Default != "0" && f.Default != "0s" {
		usage += fmt.Sprintf(" (default %s)", f.Default)
	}
	if usage == "" {
		return "  " + names
	}
	return fmt.Sprintf("  %s\t%s", names, strings.TrimSpace(usage))
}

// Command batchren renames files in bulk: it loads a directory tree into an
// interactive session, previews find/replace and numbering against every file
// name, and applies the plan once it is free of collisions.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SymphonyNineth/batchren/internal/config"
	"github.com/SymphonyNineth/batchren/internal/ui"
	"github.com/SymphonyNineth/batchren/internal/ui/common"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	var (
		showVersion = flag.Bool("version", false, "print the version and exit")
		debugFile   = flag.String("debug", "", "append debug logs to the given file")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: batchren [flags] [directory]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	if *debugFile != "" {
		f, err := tea.LogToFile(*debugFile, "batchren")
		if err != nil {
			fmt.Fprintf(os.Stderr, "batchren: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	target := "."
	if flag.NArg() > 0 {
		target = flag.Arg(0)
	}

	common.DefaultPalette.Update(config.Current.UI.Colors)

	program := tea.NewProgram(ui.New(target), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "batchren: %v\n", err)
		os.Exit(1)
	}
}

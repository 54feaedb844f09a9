package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Domain   *DomainCommand
	Show     *ShowCommand
	Replay   *ReplayCommand
	Popup    *PopupCommand
	Classify *ClassifyCommand
	Serve    *ServeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "timemap"
	parser.LongDescription = "Time-scrubbed map of historical events and routes."

	cmds := &commands{
		Domain:   &DomainCommand{globals: &globals, version: version},
		Show:     &ShowCommand{globals: &globals, version: version},
		Replay:   &ReplayCommand{globals: &globals, version: version},
		Popup:    &PopupCommand{globals: &globals, version: version},
		Classify: &ClassifyCommand{globals: &globals, version: version},
		Serve:    &ServeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("domain", "Show the time domain and record counts", "Show the time control domain, the match policies and how many records were loaded or skipped.", cmds.Domain)
	parser.AddCommand("show", "Show records visible at a time", "Move the control to a position and print the records left on the map.", cmds.Show)
	parser.AddCommand("replay", "Step through every control stop", "Move the control through every stop in order and print what each one shows.", cmds.Replay)
	parser.AddCommand("popup", "Print the popup of a record", "Print the escaped popup markup of one event or route.", cmds.Popup)
	parser.AddCommand("classify", "Resolve categories to visual classes", "Resolve the given categories, or every category in the dataset, to their visual class.", cmds.Classify)
	parser.AddCommand("serve", "Serve the map session over HTTP", "Serve the map session over HTTP (domain, time moves, GeoJSON layers, metrics).", cmds.Serve)

	return parser, &globals, cmds
}

// Run is the main entry point for the timemap CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("timemap %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}

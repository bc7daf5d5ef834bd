package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/term"
)

func main() {
	if err := run(&app{}, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes one command line and always releases what setup acquired.
func run(a *app, args []string, out io.Writer) error {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(out)
	return multierr.Append(cmd.Execute(), a.teardown())
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "xmlbin",
		Short: "Convert XML documents to flat binary records described by an XSD",
		Long: `xmlbin compiles an XSD element into a fixed binary layout, encodes XML
documents into records of that layout, decodes records back into XML and
emits the matching C header.

Run without a command and with --xsd, --xml and --root to convert in one go
(header and binary are written to --out). Run without arguments on a
terminal to start the interactive wizard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Name() == "interactive" || (!cmd.HasParent() && !batchMode(cmd)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if batchMode(cmd) {
				return a.runConvert(cmd)
			}
			if !isTerminal() {
				_ = cmd.Usage()
				return fmt.Errorf("no inputs given and stdin is not a terminal")
			}
			return a.runInteractive()
		},
	}

	f := root.PersistentFlags()
	f.StringVarP(&a.configFile, "config", "c", "", "session file (YAML)")
	f.StringVar(&a.flags.XSD, "xsd", "", "schema file")
	f.StringVar(&a.flags.XML, "xml", "", "XML document")
	f.StringVar(&a.flags.Binary, "bin", "", "binary record file (default <out>/binFile.bin)")
	f.StringVarP(&a.flags.OutDir, "out", "o", "", "output directory")
	f.StringVarP(&a.flags.Root, "root", "r", "", "root element name")
	f.StringVar(&a.flags.Namespace, "namespace", "", "namespace URI of the document elements")
	f.StringVar(&a.flags.Prefix, "prefix", "", "prefix for elements created by decode")
	f.StringVar(&a.flags.DateTimePattern, "datetime-pattern", "", "storage pattern of xs:dateTime leaves (default yyyyMMddHHmmss)")
	f.BoolVar(&a.flags.AllowLong, "allow-long", false, "map xs:long to int64 instead of rejecting it")
	f.StringVar(&a.flags.Log.Level, "log-level", "", "log level: debug, info, warn, error")
	f.StringVar(&a.flags.Log.File, "log-file", "", "rotated JSON log file")
	f.StringVar(&a.flags.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")

	root.AddCommand(
		newHeaderCmd(a),
		newEncodeCmd(a),
		newDecodeCmd(a),
		newInspectCmd(a),
		newConvertCmd(a),
		newInteractiveCmd(a),
	)
	return root
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// batchMode reports whether the root command was given any flag, in which
// case it converts instead of starting the wizard.
func batchMode(cmd *cobra.Command) bool {
	return cmd.Flags().NFlag() > 0
}

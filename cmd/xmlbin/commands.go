package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/wippyai/xmlbin/layout"
)

func newHeaderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "header",
		Short: "Write the C header for the root element",
		Long:  "Compiles --root from --xsd and writes <out>/headerFile.h.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.session
			if err := s.Require("xsd", "root"); err != nil {
				return err
			}
			conv, err := a.converter(s)
			if err != nil {
				return err
			}
			if err := a.writeHeader(conv, s.HeaderPath()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "header: %s\n", s.HeaderPath())
			return nil
		},
	}
}

func newEncodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "encode",
		Short: "Encode an XML document into a binary record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.session
			if err := s.Require("xsd", "xml", "root"); err != nil {
				return err
			}
			conv, err := a.converter(s)
			if err != nil {
				return err
			}
			n, err := a.encode(conv, s.XML, s.BinaryPath())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "record: %s (%d bytes)\n", s.BinaryPath(), n)
			return nil
		},
	}
}

func newDecodeCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode a binary record back into XML",
		Long: `Reads the record at --bin (default <out>/binFile.bin) and prints the
rebuilt document, or writes it to --output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			s := a.session
			if err := s.Require("xsd", "root"); err != nil {
				return err
			}
			conv, err := a.converter(s)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, cerr := os.Create(output)
				if cerr != nil {
					return fmt.Errorf("create output: %w", cerr)
				}
				defer multierr.AppendInvoke(&err, multierr.Close(f))
				w = f
			}
			return a.decode(conv, s.BinaryPath(), w)
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "write the document to this file instead of stdout")
	return cmd
}

func newInspectCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the compiled layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.session
			if err := s.Require("xsd", "root"); err != nil {
				return err
			}
			conv, err := a.converter(s)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := layout.DescribeJSON(conv.Layout(), s.Root)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "%s\n", data)
				return err
			}

			table, err := layoutTable(conv.Describe())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "%s\nrecord size: %d bytes\n", table, conv.Size())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the layout as JSON")
	return cmd
}

func layoutTable(entries []layout.Entry) (string, error) {
	data := pterm.TableData{{"Path", "Ident", "Kind", "Offset", "Size", "Align", "Number"}}
	for _, e := range entries {
		kind := e.Kind
		if len(e.Values) > 0 {
			kind += " {" + strings.Join(e.Values, ",") + "}"
		}
		data = append(data, []string{
			strings.Repeat("  ", e.Depth) + e.Path,
			e.Ident,
			kind,
			strconv.FormatUint(uint64(e.Offset), 10),
			strconv.FormatUint(uint64(e.Size), 10),
			strconv.FormatUint(uint64(e.Align), 10),
			strconv.FormatUint(uint64(e.Number), 10),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert",
		Short: "Write the header and encode the document in one step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConvert(cmd)
		},
	}
}

func (a *app) runConvert(cmd *cobra.Command) error {
	res, err := a.convert(a.session)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "header: %s\nrecord: %s (%d bytes)\n", res.HeaderPath, res.BinaryPath, res.Size)
	return nil
}

func newInteractiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Prompt for inputs and convert",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInteractive()
		},
	}
}

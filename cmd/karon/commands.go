package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/csm-adapt/karon/graph"
	"github.com/csm-adapt/karon/sample"
	"github.com/csm-adapt/karon/store/sqlite"
	"github.com/csm-adapt/karon/tabular"
	"github.com/spf13/cobra"
	tp "github.com/xlab/treeprint"
)

// input is a table argument, optionally prefixed by a contact:
// "Wolf=wolf.xlsx" tags every record of wolf.xlsx with contact Wolf.
type input struct {
	contact, path string
}

func parseInput(arg string) input {
	if contact, path, ok := strings.Cut(arg, "="); ok && contact != "" && path != "" {
		return input{contact: contact, path: path}
	}
	return input{path: arg}
}

func isWorkbook(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}

// records reads the records of a single input table.
func (a *app) records(in input) ([]tabular.Record, error) {
	f, err := os.Open(in.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	opts := []tabular.Option{tabular.Header(a.cfg.HeaderRow)}
	if in.contact != "" {
		opts = append(opts, tabular.Tag(a.cfg.Contact, in.contact))
	}
	var records []tabular.Record
	if isWorkbook(in.path) {
		records, err = tabular.ReadXLSX(f, opts...)
	} else {
		records, err = tabular.ReadCSV(f, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", in.path, err)
	}
	tracer().Infof("%s: %d records", in.path, len(records))
	return records, nil
}

// lineage reads the input tables and links their records into trees. Parents
// may be found in any of the tables. It returns the samples in input order
// and the roots of the lineage trees.
func (a *app) lineage(args ...string) ([]*sample.Node, []*sample.Node, error) {
	var records []tabular.Record
	for _, arg := range args {
		recs, err := a.records(parseInput(arg))
		if err != nil {
			return nil, nil, err
		}
		records = append(records, recs...)
	}
	samples, err := tabular.Samples(records,
		sample.Requires(a.cfg.IDField),
		sample.Defaults(map[string]any{a.cfg.ParentField: ""}))
	if err != nil {
		return nil, nil, err
	}
	nodes := sample.Nodes(samples)
	roots, err := sample.Builder(a.cfg.IDField, a.cfg.ParentField, a.cfg.Comparator()).Build(nodes)
	if err != nil {
		return nil, nil, err
	}
	tracer().Infof("%d samples in %d lineage(s)", len(nodes), len(roots))
	return nodes, roots, nil
}

func (a *app) label(n *sample.Node) string {
	return fmt.Sprint(sample.Get(a.cfg.IDField)(n))
}

func treeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree [contact=]<records.{csv,xlsx}>...",
		Short: "Print the lineage trees of tables of samples",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, roots, err := a.lineage(args...)
			if err != nil {
				return err
			}
			printer := tp.New()
			for _, root := range roots {
				a.printLineage(printer, root)
			}
			fmt.Fprint(cmd.OutOrStdout(), printer.String())
			return nil
		},
	}
}

func (a *app) printLineage(printer tp.Tree, n *sample.Node) {
	if n.IsLeaf() {
		printer.AddNode(a.label(n))
		return
	}
	branch := printer.AddBranch(a.label(n))
	for _, ch := range n.Children() {
		a.printLineage(branch, ch)
	}
}

func reduceCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "reduce [contact=]<records.{csv,xlsx}>...",
		Short: "Aggregate and propagate sample fields through their lineages",
		Long: `Every field of a sample is propagated to its descendants, if they lack it.
Configured reductions (e.g. the mean) of a field over all descendants of a
lineage root are stored with the root and propagated as well.

Input tables may be CSV files or Excel workbooks, and a lineage may span
several of them. Prefixing a table with "contact=" sets the contact column
of all its records. The resulting table is written to stdout as CSV, or to
the --output file, as a workbook if its name ends in .xlsx.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, roots, err := a.lineage(args...)
			if err != nil {
				return err
			}
			reducers, err := a.cfg.Reducers()
			if err != nil {
				return err
			}
			for _, root := range roots {
				keys := a.cfg.Keys
				if len(keys) == 0 {
					keys = sample.Keys(root, a.cfg.IDField, a.cfg.ParentField)
				}
				sample.Process(root, keys, reducers...)
			}
			samples := make([]*sample.Sample, len(nodes))
			for i, n := range nodes {
				samples[i] = n.Payload
			}
			if output == "" {
				return tabular.WriteCSV(cmd.OutOrStdout(), samples, a.cfg.Leading...)
			}
			return writeTable(output, samples, a.cfg.Leading)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the table to this file (.csv or .xlsx)")
	return cmd
}

func writeTable(path string, samples []*sample.Sample, leading []string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if isWorkbook(path) {
		return tabular.WriteXLSX(f, samples, leading...)
	}
	return tabular.WriteCSV(f, samples, leading...)
}

func graphCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "graph [contact=]<records.{csv,xlsx}>...",
		Short: "Convert the lineages of tables into a graph document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, roots, err := a.lineage(args...)
			if err != nil {
				return err
			}
			g, err := graph.FromTree(roots, a.label)
			if err != nil {
				return err
			}
			f, err := a.format(format)
			if err != nil {
				return err
			}
			return graph.Encode(cmd.OutOrStdout(), g, f)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (json, yaml); default from config")
	return cmd
}

func (a *app) format(flag string) (graph.Format, error) {
	if flag == "" {
		return a.cfg.DocumentFormat(), nil
	}
	return graph.ParseFormat(flag)
}

var operations = map[string]func(*graph.Graph, ...*graph.Node) *graph.Graph{
	"aggregate":   graph.Aggregate,
	"propagate":   graph.Propagate,
	"disseminate": graph.Disseminate,
}

func disseminateCmd(a *app) *cobra.Command {
	var op, format, save string
	cmd := &cobra.Command{
		Use:   "disseminate <graph.{json,yaml}>",
		Short: "Run aggregate, propagate or disseminate on a graph document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, ok := operations[op]
			if !ok {
				return fmt.Errorf("unknown operation %q", op)
			}
			g, err := readGraph(args[0])
			if err != nil {
				return err
			}
			run(g)
			if save != "" {
				if err := a.save(cmd.Context(), save, g); err != nil {
					return err
				}
			}
			f, err := a.format(format)
			if err != nil {
				return err
			}
			return graph.Encode(cmd.OutOrStdout(), g, f)
		},
	}
	cmd.Flags().StringVar(&op, "op", "disseminate", "operation (aggregate, propagate, disseminate)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (json, yaml); default from config")
	cmd.Flags().StringVar(&save, "save", "", "save the result in the store under this name")
	return cmd
}

func readGraph(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := graph.Decode(f, graph.FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

func (a *app) withStore(ctx context.Context, f func(*sqlite.Store) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := sqlite.Open(ctx, a.cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()
	return f(s)
}

func (a *app) save(ctx context.Context, name string, g *graph.Graph) error {
	return a.withStore(ctx, func(s *sqlite.Store) error {
		return s.Save(ctx, name, g)
	})
}

func storeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect graphs saved in the store",
	}
	var format string
	show := &cobra.Command{
		Use:   "show <name>",
		Short: "Write a stored graph as a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(s *sqlite.Store) error {
				g, err := s.Load(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				f, err := a.format(format)
				if err != nil {
					return err
				}
				return graph.Encode(cmd.OutOrStdout(), g, f)
			})
		},
	}
	show.Flags().StringVarP(&format, "format", "f", "", "output format (json, yaml); default from config")
	cmd.AddCommand(
		&cobra.Command{
			Use:   "ls",
			Short: "List stored graphs",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withStore(cmd.Context(), func(s *sqlite.Store) error {
					entries, err := s.List(cmd.Context())
					if err != nil {
						return err
					}
					return listEntries(cmd.OutOrStdout(), entries)
				})
			},
		},
		show,
		&cobra.Command{
			Use:   "rm <name>...",
			Short: "Delete stored graphs",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withStore(cmd.Context(), func(s *sqlite.Store) error {
					for _, name := range slices.Compact(slices.Sorted(slices.Values(args))) {
						ok, err := s.Delete(cmd.Context(), name)
						if err != nil {
							return err
						}
						if !ok {
							tracer().Infof("no graph named %q", name)
						}
					}
					return nil
				})
			},
		},
	)
	return cmd
}

func listEntries(w io.Writer, entries []sqlite.Entry) error {
	for _, e := range entries {
		if _, err := fmt.Fprintf(w, "%s\t%d nodes\t%d edges\n", e.Name, e.Nodes, e.Edges); err != nil {
			return err
		}
	}
	return nil
}


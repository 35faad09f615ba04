/*
Command karon builds sample lineages from tables and disseminates their
attributes.

	karon tree lineage.csv                 print the lineage trees
	karon reduce lineage.csv               aggregate and propagate fields, write a table
	karon reduce Wolf=a.xlsx Mines=b.csv   merge tables, tagging each with a contact
	karon graph lineage.csv                convert lineages into a graph document
	karon disseminate -op aggregate g.json run a graph algorithm on a document
	karon store ls                         list graphs saved with --save

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
Copyright © 2026 The karon Authors

*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/csm-adapt/karon/config"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
)

// tracer traces with key 'karon.cmd'.
func tracer() tracing.Trace {
	return tracing.Select("karon.cmd")
}

var traceKeys = []string{
	"karon.cmd", "karon.attribute", "karon.reduce", "karon.tree", "karon.operational",
	"karon.sample", "karon.graph", "karon.tabular", "karon.store",
}

// app carries the settings shared by all sub-commands.
type app struct {
	configPath string
	trace      string
	cfg        *config.Config
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "karon",
		Short:         "Build sample lineages and disseminate their attributes",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setTraceLevel(a.trace); err != nil {
				return err
			}
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.trace, "trace", "error", "trace level (error, info, debug)")
	root.AddCommand(
		treeCmd(a),
		reduceCmd(a),
		graphCmd(a),
		disseminateCmd(a),
		storeCmd(a),
	)
	return root
}

func setTraceLevel(level string) error {
	var l tracing.TraceLevel
	switch strings.ToLower(level) {
	case "error", "":
		l = tracing.LevelError
	case "info":
		l = tracing.LevelInfo
	case "debug":
		l = tracing.LevelDebug
	default:
		return fmt.Errorf("unknown trace level %q", level)
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(l)
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jyesselm/find-pair-sub002/internal/frames"
	"github.com/jyesselm/find-pair-sub002/internal/helix"
	"github.com/jyesselm/find-pair-sub002/internal/output"
	"github.com/jyesselm/find-pair-sub002/internal/pair"
	"github.com/jyesselm/find-pair-sub002/internal/pdb"
	"github.com/jyesselm/find-pair-sub002/internal/record"
)

func newAnalyzeCmd(verbose *bool) *cobra.Command {
	var (
		outputFormat string
		outputFile   string
		recordFile   string
		allPairs     bool
		includeC1    bool
		workers      int
	)

	cmd := &cobra.Command{
		Use:   "analyze <structure.pdb>",
		Short: "Find base pairs and helices in a PDB structure",
		Example: `  find-pair analyze 1ehz.pdb
  find-pair analyze -f json -o 1ehz.json 1ehz.pdb
  find-pair analyze --record validations.duckdb 1ehz.pdb
  find-pair analyze --all-pairs 1ehz.pdb`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(analyzeOptions{
				input:        args[0],
				outputFormat: outputFormat,
				outputFile:   outputFile,
				recordFile:   recordFile,
				allPairs:     allPairs,
				includeC1:    includeC1,
				workers:      workers,
				verbose:      *verbose,
			})
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output-format", "f", "tab", "output format: tab, json, inp")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&recordFile, "record", "", "stream every validation snapshot to a .jsonl or .duckdb file")
	cmd.Flags().BoolVar(&allPairs, "all-pairs", false, "report every valid pair instead of the mutual-best-match set")
	cmd.Flags().BoolVar(&includeC1, "c1", false, "include C1' in the frame-fit templates")
	cmd.Flags().IntVar(&workers, "workers", 0, "validation workers (default: one per CPU)")

	return cmd
}

type analyzeOptions struct {
	input        string
	outputFormat string
	outputFile   string
	recordFile   string
	allPairs     bool
	includeC1    bool
	workers      int
	verbose      bool
}

func runAnalyze(opts analyzeOptions) error {
	logger, err := newLogger(opts.verbose)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	s, err := pdb.ParseFile(opts.input)
	if err != nil {
		return err
	}
	logger.Info("structure loaded",
		zap.String("id", s.ID),
		zap.Int("residues", s.NumResidues()),
		zap.Int("chains", len(s.Chains)))

	calc := frames.NewCalculator()
	calc.SetIncludeC1(opts.includeC1)
	calc.SetLogger(logger)
	calc.AllFrames(s)

	cfg := configFromViper()
	finder := pair.NewFinder(cfg)
	finder.SetLogger(logger)
	finder.SetWorkers(opts.workers)

	var pairs []pair.BasePair
	switch {
	case opts.allPairs:
		pairs = finder.AllPairs(s)
	case opts.recordFile != "":
		sink, err := record.Open(opts.recordFile)
		if err != nil {
			return err
		}
		pairs, err = finder.FindPairsWithRecording(s, sink)
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	default:
		pairs = finder.FindPairs(s)
	}

	organizer := helix.NewOrganizer()
	organizer.SetLogger(logger)
	segments := organizer.Organize(s, pairs)

	out := os.Stdout
	if opts.outputFile != "" {
		out, err = os.Create(opts.outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer out.Close()
	}

	switch opts.outputFormat {
	case "tab":
		w := output.NewTabWriter(out)
		if err := w.WriteHeader(); err != nil {
			return err
		}
		for _, bp := range pairs {
			if err := w.Write(s, bp); err != nil {
				return err
			}
		}
		return w.Flush()
	case "json":
		return output.WriteJSON(out, s, pairs, segments)
	case "inp":
		return output.WriteInp(out, opts.input, s, pairs, segments)
	default:
		return fmt.Errorf("unknown output format %q", opts.outputFormat)
	}
}

// configFromViper starts from the legacy defaults and applies any
// thresholds set in the config file. The resulting value is immutable for
// the rest of the run.
func configFromViper() pair.Config {
	cfg := pair.DefaultConfig()

	set := func(key string, dst *float64) {
		if viper.IsSet(key) {
			*dst = viper.GetFloat64(key)
		}
	}
	set("thresholds.max_dorg", &cfg.MaxDorg)
	set("thresholds.min_dorg", &cfg.MinDorg)
	set("thresholds.max_dv", &cfg.MaxDv)
	set("thresholds.max_plane_angle", &cfg.MaxPlaneAngle)
	set("thresholds.min_dnn", &cfg.MinDNN)
	set("thresholds.max_overlap", &cfg.MaxOverlap)
	set("thresholds.hbond_min_dist", &cfg.HBond.MinDist)
	set("thresholds.hbond_max_dist_base", &cfg.HBond.MaxDistBase)
	set("thresholds.hbond_max_dist_backbone", &cfg.HBond.MaxDistBackbone)
	if viper.IsSet("thresholds.min_base_hbonds") {
		cfg.MinBaseHBonds = viper.GetInt("thresholds.min_base_hbonds")
	}
	return cfg
}

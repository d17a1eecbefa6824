package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/guigolab/readstats"
	"github.com/guigolab/readstats/config"
	"github.com/guigolab/readstats/report"
	"github.com/guigolab/readstats/stats"
	"github.com/guigolab/readstats/utils"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = ""
	commit  = ""
	date    = ""
)

var (
	bam, name, reference, loglevel, output, format, plotFile string
	cpu, maxReads, skip, minMapQ, minLength                  int
	ascii                                                    bool
)

func sampleName(path string) string {
	if name != "" {
		return name
	}
	return strings.TrimSuffix(filepath.Base(path), ".bam")
}

func run(cmd *cobra.Command, args []string) (err error) {
	// Set loglevel
	level, err := log.ParseLevel(loglevel)
	if err != nil {
		return
	}
	log.SetLevel(level)
	logger := log.WithFields(log.Fields{
		"version":   version,
		"commit":    commit,
		"buildTime": date,
	})
	logger.Infof("Running %s", cmd.Use)
	log.Infof("Using %v out of %v logical CPUs", cpu, runtime.NumCPU())

	cfg := config.NewConfig(cpu, maxReads, skip, minMapQ, minLength, reference)
	if err = cfg.Validate(); err != nil {
		return
	}
	sample, err := readstats.NewSample(sampleName(bam), bam, cfg)
	utils.Check(err)
	defer sample.Close()

	w, err := utils.NewWriter(output)
	if err != nil {
		return
	}
	summary := sample.Summary()
	switch format {
	case "json":
		err = utils.OutputJSON(w, summary)
	case "text":
		err = summary.Output(w)
	default:
		err = errors.Errorf("unknown output format %s", format)
	}
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return
	}

	if plotFile != "" {
		if perr := report.Plot(sample.ReadStatistics, sample.Name, plotFile); perr != nil {
			log.WithError(perr).Warn("Cannot plot insert sizes")
		}
	}
	if ascii {
		graph, aerr := report.ASCII(sample.ReadStatistics, 80)
		if aerr != nil {
			log.WithError(aerr).Warn("Cannot plot insert sizes")
		} else {
			fmt.Fprintln(os.Stderr, graph)
		}
	}
	return
}

func show(cmd *cobra.Command, args []string) (err error) {
	r, err := utils.NewReader(args[0])
	if err != nil {
		return
	}
	defer r.Close()
	summary, err := stats.ReadSummary(r)
	if err != nil {
		return
	}
	w, err := utils.NewWriter(output)
	if err != nil {
		return
	}
	err = summary.Output(w)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return
}

func setReadstatsFlags(c *cobra.Command) {
	c.Flags().StringVarP(&bam, "input", "i", "", "indexed BAM file (required)")
	c.PersistentFlags().StringVarP(&name, "name", "", "", "sample name (defaults to the input file name)")
	c.PersistentFlags().StringVarP(&reference, "reference", "r", "", "indexed FASTA reference used to compute missing NM tags")
	c.PersistentFlags().StringVarP(&loglevel, "loglevel", "", "warn", "logging level")
	c.PersistentFlags().StringVarP(&output, "output", "o", "-", "output file")
	c.PersistentFlags().StringVarP(&format, "format", "f", "json", "output format (json or text)")
	c.PersistentFlags().StringVarP(&plotFile, "plot", "", "", "save an insert size plot to this file")
	c.PersistentFlags().BoolVarP(&ascii, "ascii", "", false, "print the insert size density to stderr")
	c.PersistentFlags().IntVarP(&cpu, "cpu", "c", 1, "number of cpus used for BAM decompression")
	c.PersistentFlags().IntVarP(&maxReads, "reads", "n", config.DefaultMaxReads, "maximum number of read pairs to sample")
	c.PersistentFlags().IntVarP(&skip, "skip", "", 0, "number of records to skip before sampling")
	c.PersistentFlags().IntVarP(&minMapQ, "min-mapq", "q", config.DefaultMinMapQ, "minimum mapping quality of sampled pairs")
	c.PersistentFlags().IntVarP(&minLength, "min-length", "", 0, "minimum length of sampled chromosomes")
	c.MarkFlagRequired("input")

	c.SetVersionTemplate(`{{with .Name}}{{printf "== %s ==\n" .}}{{end}}{{printf "%s\n" .Version}}`)
}

func main() {
	var rootCmd = &cobra.Command{
		Use:     "readstats",
		Short:   "Library read statistics",
		Long:    "readstats - sample pairing, orientation, insert size and read length statistics from an indexed BAM file",
		RunE:    run,
		Version: buildVersion(version, commit, date),
	}

	setReadstatsFlags(rootCmd)
	rootCmd.AddCommand(&cobra.Command{
		Use:   "show <summary.json>",
		Short: "Print a saved JSON summary as text",
		Args:  cobra.ExactArgs(1),
		RunE:  show,
	})

	if err := rootCmd.Execute(); err != nil {
		log.Debug(err)
		os.Exit(1)
	}
}

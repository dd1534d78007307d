package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"cap-structure-generator/internal/pipeline"
	"cap-structure-generator/internal/rules"
	"cap-structure-generator/internal/structure"
)

const stdoutPath = "-"

type options struct {
	headerPath   string
	templatePath string
	outputPath   string
	rulesPath    string
	mappingsOut  string
	verbose      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	var logger *zap.Logger

	cmd := &cobra.Command{
		Use:   "cap-structure-generator",
		Short: "Parameter-Framework XML structure file generator",
		Long: `Generates the common types structure file of the configurable audio policy.

Stream types and input/output device masks are read from the audio base C
header and appended to the ComponentType nodes of the structure template:
bit fields as BitParameter elements, enumerations as ValuePair elements.

The output file is only written when generation succeeds.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = newLogger(cmd.ErrOrStderr(), opts.verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.OutOrStdout(), opts, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.headerPath, "androidaudiobaseheader", "", "Android Audio Base C header file (required)")
	flags.StringVar(&opts.templatePath, "commontypesstructure", "", "Structure XML base file (required)")
	flags.StringVar(&opts.outputPath, "outputfile", "", "Structure XML file to write, - for stdout (required)")
	flags.StringVar(&opts.rulesPath, "rules", "", "YAML rule file overriding the built-in rules")
	flags.StringVar(&opts.mappingsOut, "mappings-out", "", "Write the finalized mappings as YAML to this file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log every matched header line")

	for _, name := range []string{"androidaudiobaseheader", "commontypesstructure", "outputfile"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

// newLogger builds a console logger on w; Info by default, Debug when verbose.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config.EncoderConfig), zapcore.AddSync(w), config.Level)

	return zap.New(core)
}

func runGenerate(stdout io.Writer, opts *options, logger *zap.Logger) error {
	rs := rules.Default()

	if opts.rulesPath != "" {
		var err error

		rs, err = rules.LoadFile(opts.rulesPath)
		if err != nil {
			return err
		}
	}

	headerFile, err := os.Open(opts.headerPath)
	if err != nil {
		return fmt.Errorf("opening header: %w", err)
	}

	defer func() { _ = headerFile.Close() }()

	templateFile, err := os.Open(opts.templatePath)
	if err != nil {
		return fmt.Errorf("opening structure template: %w", err)
	}

	defer func() { _ = templateFile.Close() }()

	logger.Info("checking header", zap.String("path", opts.headerPath))
	logger.Info("importing structure template", zap.String("path", opts.templatePath))

	pipelineOpts := pipeline.Options{Rules: rs, Logger: logger}

	var report *pipeline.Report
	if opts.outputPath == stdoutPath {
		report, err = pipeline.Generate(headerFile, templateFile, stdout, pipelineOpts)
	} else {
		report, err = pipeline.Run(headerFile, templateFile, pipelineOpts)
	}

	if err != nil {
		return err
	}

	if opts.mappingsOut != "" {
		data, err := pipeline.ExportMappingsYAML(report.Table)
		if err != nil {
			return fmt.Errorf("exporting mappings: %w", err)
		}

		if err := structure.WriteFile(data, opts.mappingsOut); err != nil {
			return err
		}
	}

	if opts.outputPath != stdoutPath {
		if err := structure.WriteFile(report.Output, opts.outputPath); err != nil {
			return err
		}
	}

	logger.Info("structure file generated",
		zap.String("path", opts.outputPath),
		zap.Int("constants", report.Constants),
		zap.Int("warnings", len(report.Diagnostics.Warnings)),
	)

	return nil
}

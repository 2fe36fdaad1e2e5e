// Command casc resolves an HTML document against a stylesheet of set/show
// rules and prints the resolved, located content tree. It is a demonstration
// driver for the cascade engine, wired to the built-in stack layouter.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/npillmayer/cascade"
	"github.com/npillmayer/cascade/content/htmladapter"
	"github.com/npillmayer/cascade/contentdbg"
	"github.com/npillmayer/cascade/rules"
	"github.com/npillmayer/cascade/rules/cssadapter"
	"github.com/npillmayer/tyse/core/dimen"
)

// config is the YAML run configuration.
type config struct {
	Log struct {
		Level string `yaml:"level"` // none | normal | debug
	} `yaml:"log"`
	Layout struct {
		PageHeight int `yaml:"page-height"` // in points
		Leading    int `yaml:"leading"`     // in points
	} `yaml:"layout"`
	MaxPasses int `yaml:"max-passes"`
}

func loadConfig(path string) (*config, error) {
	conf := &config{}
	conf.Log.Level = "normal"
	if path == "" {
		return conf, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read configuration: %w", err)
	}
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("unable to parse configuration: %w", err)
	}
	return conf, nil
}

func prepareLogger(level string) (*zap.Logger, error) {
	switch level {
	case "none":
		return zap.NewNop(), nil
	case "debug":
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stderr), zapcore.DebugLevel)
		return zap.New(core), nil
	default:
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		ec.TimeKey = zapcore.OmitKey
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stderr), zapcore.InfoLevel)
		return zap.New(core), nil
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return errors.New("expecting exactly one input document (HTML)")
	}
	conf, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	log, err := prepareLogger(conf.Log.Level)
	if err != nil {
		return err
	}
	defer log.Sync()

	input, err := os.Open(cmd.Args().First())
	if err != nil {
		return fmt.Errorf("unable to open input document: %w", err)
	}
	defer input.Close()
	doc, err := htmladapter.Parse(input)
	if err != nil {
		return fmt.Errorf("unable to parse input document: %w", err)
	}

	var sheet string
	if path := cmd.String("rules"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("unable to read stylesheet: %w", err)
		}
		sheet = string(data)
	}
	root := func(chain rules.Chain) error {
		if sheet == "" {
			return nil
		}
		return cssadapter.Load(sheet, chain)
	}

	layouter := &cascade.StackLayouter{
		PageHeight: dimen.DU(conf.Layout.PageHeight) * dimen.PT,
		Leading:    dimen.DU(conf.Layout.Leading) * dimen.PT,
	}
	var opts []cascade.Option
	if conf.MaxPasses > 0 {
		opts = append(opts, cascade.MaxPasses(conf.MaxPasses))
	}
	driver := cascade.NewDriver(layouter, opts...)

	log.Info("resolving document", zap.String("input", cmd.Args().First()))
	result, err := driver.Process(doc, root)
	if err != nil {
		var div *cascade.DivergenceError
		if errors.As(err, &div) {
			log.Error("document does not stabilize",
				zap.String("subject", div.Subject),
				zap.String("previous", div.Previous),
				zap.String("last", div.Last))
		}
		return err
	}
	log.Info("document resolved",
		zap.Int("passes", result.Passes),
		zap.Int("frames", len(result.Frames)))

	if cmd.Bool("dot") {
		return contentdbg.ToGraphViz(result.Tree, os.Stdout)
	}
	fmt.Print(contentdbg.Print(result.Tree))
	return nil
}

func main() {
	app := &cli.Command{
		Name:            "casc",
		Usage:           "style resolution engine for content documents",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load run configuration from `FILE` (YAML)"},
			&cli.StringFlag{Name: "rules", Aliases: []string{"r"}, Usage: "load set/show rules from `FILE` (CSS syntax)"},
			&cli.BoolFlag{Name: "dot", Usage: "print the resolved tree as a GraphViz digraph"},
		},
		Action:    run,
		ArgsUsage: "DOCUMENT",
	}
	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// Package main provides a CLI converting, checking and staging engine input
// files.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/viant/comets"
	"github.com/viant/comets/model/metabolic"
	"gopkg.in/yaml.v3"
)

const usage = `usage: cometsfmt [-config URL] <command> [flags]

commands:
  convert  -in MODEL -out URL      write MODEL (native or SBML) in the native format
  check    -in URL [-yaml]         round trip a model or layout and print the diffs
  layout   -models A,B -out URL    build a one cell layout seeded with the models
  prepare  -layout URL -dir DIR    write the control files of a run into DIR
`

func main() {
	var configURL string
	flag.StringVar(&configURL, "config", "", "YAML configuration URL")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	cfg, err := comets.LoadConfig(ctx, nil, configURL)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	srv, err := comets.NewService(comets.WithConfig(cfg))
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	if err = run(ctx, srv, flag.Arg(0), flag.Args()[1:]); err != nil {
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}
}

func run(ctx context.Context, srv *comets.Service, command string, args []string) error {
	switch command {
	case "convert":
		return convert(ctx, srv, args)
	case "check":
		return check(ctx, srv, args)
	case "layout":
		return buildLayout(ctx, srv, args)
	case "prepare":
		return prepare(ctx, srv, args)
	}
	flag.Usage()
	return fmt.Errorf("unknown command %q", command)
}

func convert(ctx context.Context, srv *comets.Service, args []string) error {
	set := flag.NewFlagSet("convert", flag.ExitOnError)
	in := set.String("in", "", "source model URL")
	out := set.String("out", "", "destination URL")
	_ = set.Parse(args)
	if *in == "" || *out == "" {
		return fmt.Errorf("both -in and -out are required")
	}
	model, _, err := srv.LoadModel(ctx, *in)
	if err != nil {
		return err
	}
	return srv.SaveModel(ctx, model, *out)
}

func check(ctx context.Context, srv *comets.Service, args []string) error {
	set := flag.NewFlagSet("check", flag.ExitOnError)
	in := set.String("in", "", "model or layout URL")
	asYAML := set.Bool("yaml", false, "print the report as YAML")
	_ = set.Parse(args)
	if *in == "" {
		return fmt.Errorf("-in is required")
	}
	report, err := srv.Check(ctx, *in)
	if err != nil {
		return err
	}
	if *asYAML {
		data, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		if !report.Stable() {
			return fmt.Errorf("%v is not stable under re-encoding", *in)
		}
		return nil
	}
	for _, issue := range report.Issues {
		fmt.Printf("issue: %v\n", issue)
	}
	if report.SourceStats.Changed() {
		fmt.Printf("canonical form differs from source (+%d -%d)\n%s", report.SourceStats.Added, report.SourceStats.Removed, report.SourceDiff)
	}
	if !report.Stable() {
		fmt.Print(report.Diff)
		return fmt.Errorf("%v is not stable under re-encoding", *in)
	}
	fmt.Printf("%v: ok\n", *in)
	return nil
}

func buildLayout(ctx context.Context, srv *comets.Service, args []string) error {
	set := flag.NewFlagSet("layout", flag.ExitOnError)
	models := set.String("models", "", "comma separated model URLs")
	out := set.String("out", "", "layout URL")
	_ = set.Parse(args)
	if *models == "" || *out == "" {
		return fmt.Errorf("both -models and -out are required")
	}
	var loaded []*metabolic.Model
	for _, URL := range strings.Split(*models, ",") {
		model, _, err := srv.LoadModel(ctx, strings.TrimSpace(URL))
		if err != nil {
			return err
		}
		loaded = append(loaded, model)
	}
	return srv.SaveLayout(ctx, srv.NewLayout(loaded...), *out)
}

func prepare(ctx context.Context, srv *comets.Service, args []string) error {
	set := flag.NewFlagSet("prepare", flag.ExitOnError)
	layoutURL := set.String("layout", "", "layout URL")
	dir := set.String("dir", "", "run directory (default: config workDir)")
	_ = set.Parse(args)
	if *layoutURL == "" {
		return fmt.Errorf("-layout is required")
	}
	l, _, err := srv.LoadLayout(ctx, *layoutURL)
	if err != nil {
		return err
	}
	run, err := srv.Prepare(ctx, l, nil, *dir)
	if err != nil {
		return err
	}
	fmt.Printf("run %v prepared, script: %v\n", run.ID, run.ScriptURL)
	return nil
}

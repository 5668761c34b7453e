package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/viant/afs"
	"github.com/viant/nucleus"
	"github.com/viant/nucleus/model/report"
	"github.com/viant/nucleus/runtime/kernel"
	rfs "github.com/viant/nucleus/service/dao/report/fs"
	"github.com/viant/nucleus/service/transcript"
	"gopkg.in/yaml.v3"
)

const version = "0.1.0"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nucleus -image <URL> [-expect <URL>] [-out <URL>] [-trace <file>] [-log <file>] [-reports <URL>]\n")
		fmt.Fprintf(os.Stderr, "Boots a nucleus image on the simulated machine and prints the run report\n")
		flag.PrintDefaults()
	}
	imageURL := flag.String("image", "", "boot image URL (file path, file://, mem://, s3:// ...)")
	expectURL := flag.String("expect", "", "golden transcript URL to compare the run against")
	outURL := flag.String("out", "", "URL to save the run transcript to")
	traceFile := flag.String("trace", "", "OpenTelemetry span output file")
	logFile := flag.String("log", "", "kernel log file, the log is also written to stdout")
	reportsURL := flag.String("reports", "", "directory URL to store run reports in")
	quiet := flag.Bool("q", false, "do not write the kernel log to stdout")
	flag.Parse()
	if *imageURL == "" {
		flag.Usage()
		os.Exit(1)
	}
	os.Exit(run(context.Background(), &options{
		imageURL:   *imageURL,
		expectURL:  *expectURL,
		outURL:     *outURL,
		traceFile:  *traceFile,
		logFile:    *logFile,
		reportsURL: *reportsURL,
		quiet:      *quiet,
	}))
}

type options struct {
	imageURL   string
	expectURL  string
	outURL     string
	traceFile  string
	logFile    string
	reportsURL string
	quiet      bool
}

// run boots the image and returns the process exit code: 0 on a normal halt
// matching the expected transcript, 1 on error, 2 on transcript mismatch, 3 on
// deadlock or panic.
func run(ctx context.Context, opts *options) int {
	fs := afs.New()
	var writers []io.Writer
	if !opts.quiet {
		writers = append(writers, os.Stdout)
	}
	if opts.logFile != "" {
		f, err := os.Create(opts.logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file: %v\n", err)
			return 1
		}
		defer f.Close()
		writers = append(writers, f)
	}
	logger := log.New(io.MultiWriter(writers...), "", 0)

	serviceOptions := []nucleus.Option{nucleus.WithLogger(logger), nucleus.WithFS(fs)}
	if opts.traceFile != "" {
		serviceOptions = append(serviceOptions, nucleus.WithTracing("nucleus", version, opts.traceFile))
	}
	if opts.reportsURL != "" {
		reports, err := rfs.New(ctx, fs, opts.reportsURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening report store: %v\n", err)
			return 1
		}
		serviceOptions = append(serviceOptions, nucleus.WithReportDAO(reports))
	}
	srv := nucleus.New(serviceOptions...)
	if err := srv.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initialising tracing: %v\n", err)
		return 1
	}
	rpt, err := srv.Runtime().BootURL(ctx, opts.imageURL)
	if rpt == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	printSummary(rpt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	actual := transcript.Text(rpt.Transcript)
	if opts.outURL != "" {
		recorder := transcript.NewRecorder(false)
		for _, line := range rpt.Transcript {
			recorder.Append(line)
		}
		if err = recorder.Save(ctx, fs, opts.outURL); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	if opts.expectURL != "" {
		expected, err := fs.DownloadWithURL(ctx, opts.expectURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading expected transcript: %v\n", err)
			return 1
		}
		result, err := transcript.Compare(string(expected), actual)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error comparing transcripts: %v\n", err)
			return 1
		}
		if !result.Equal() {
			fmt.Print(result.Diff)
			fmt.Printf("transcript mismatch: +%d -%d lines in %d hunk(s)\n", result.Stats.Added, result.Stats.Removed, result.Hunks)
			return 2
		}
		fmt.Println("transcript matched")
	}
	if rpt.Status != string(kernel.Normal) {
		return 3
	}
	return 0
}

func printSummary(rpt *report.Report) {
	summary := *rpt
	summary.Transcript = nil
	data, err := yaml.Marshal(summary)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
		return
	}
	fmt.Printf("---\n%s", data)
}

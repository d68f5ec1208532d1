// Copyright (C) The Lightning Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package sahap

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"

	"github.com/sahap-tools/sahap/wif"
)

func openWifFile(path string) (io.ReadCloser, error) {
	return wif.Open(path)
}

// canonicalPloidy is the fixed ploidy of the CLI build, per spec.md §6.
const canonicalPloidy = 2

// Main is the sahap command-line entrypoint:
//
//	sahap <reads.wif> [ground_truth] [millions_of_iterations=10]
//
// Exit 0 on success, 1 on argument error. Consensus goes to stdout,
// progress and diagnostics to stderr.
func Main() {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		logrus.StandardLogger().Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	}
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(rawArgs []string, stdout, stderr *os.File) int {
	log := logrus.StandardLogger()

	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintln(stderr, "usage: sahap [-pprof addr:port] <reads.wif> [ground_truth] [millions_of_iterations=10]")
	}
	pprof := flags.String("pprof", "", "serve Go profile data at http://`[addr]:port`")
	if err := flags.Parse(rawArgs); err == flag.ErrHelp {
		return 0
	} else if err != nil {
		return 1
	}

	if *pprof != "" {
		go func() {
			log.Println(http.ListenAndServe(*pprof, nil))
		}()
	}

	args := flags.Args()
	if len(args) < 1 || len(args) > 3 {
		flags.Usage()
		return 1
	}

	readsPath := args[0]
	var truthPath string
	millions := 10
	switch len(args) {
	case 2:
		if n, err := strconv.Atoi(args[1]); err == nil {
			millions = n
		} else {
			truthPath = args[1]
		}
	case 3:
		truthPath = args[1]
		n, err := strconv.Atoi(args[2])
		if err != nil {
			fmt.Fprintf(stderr, "invalid millions_of_iterations %q: %v\n", args[2], err)
			return 1
		}
		millions = n
	}

	rc, err := openWifFile(readsPath)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	defer rc.Close()

	input, err := LoadReads(rc, canonicalPloidy)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	if truthPath != "" {
		tf, err := openWifFile(truthPath)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
		err = LoadGroundTruth(input, tf)
		tf.Close()
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
	}

	seed := Seed()
	log.WithField("seed", seed).Info("seeded RNG")
	rng := rand.New(rand.NewSource(seed))

	g := NewGenome(input, rng, ScoreMEC)
	maxIterations := uint64(millions) * 1_000_000
	g.AutoSchedule(maxIterations)

	ctrl := NewController(g, log)
	if err := ctrl.Run(); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	if input.HasGroundTruth {
		loss := g.CompareGroundTruth(input.GroundTruth)
		log.WithField("errors_vs_truth", loss).Info("finished")
	}

	if err := g.WriteConsensus(stdout); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	return 0
}

// Copyright 2016 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command ampctl is a small demonstration and diagnostic tool for the
// amp synchronization primitives: it reports the host's CPU topology
// and runs a bounded producer/consumer demo built on
// amp.ConditionVariable.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/bjoernknafla/ampsync/amp/amputil"
	"github.com/bjoernknafla/ampsync/cmd/pflagvar"
	"github.com/bjoernknafla/ampsync/vlog"
)

// demoFlags are registered via struct tags using pflagvar, in place
// of hand-written pflag.IntVar/BoolVar calls for every field.
type demoFlags struct {
	Producers int  `flag:"producers,4,number of producer goroutines in the demo subcommand"`
	QueueSize int  `flag:"queue-size,8,bounded queue capacity for the demo subcommand"`
	Items     int  `flag:"items,100,number of items each producer emits"`
	Verbose   bool `flag:"verbose,false,log every enqueue and dequeue"`
}

var flags demoFlags

func init() {
	loggingFlagSet := flag.NewFlagSet("ampctl", flag.ContinueOnError)
	vlog.RegisterLoggingFlags(loggingFlagSet, &vlog.CommandLineLoggingFlags, "")
	pflag.CommandLine.AddGoFlagSet(loggingFlagSet)

	if err := pflagvar.RegisterFlagsInStruct(pflag.CommandLine, "flag", &flags, nil, nil); err != nil {
		panic(err)
	}
}

func main() {
	pflag.Parse()
	if err := vlog.Log.ConfigureFromLoggingFlags(&vlog.CommandLineLoggingFlags); err != nil {
		fmt.Fprintln(os.Stderr, "ampctl:", err)
	}

	args := pflag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "platform":
		err = runPlatform()
	case "demo":
		err = runDemo(flags)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		vlog.Log.Errorf("ampctl: %v", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: ampctl [flags] <platform|demo>")
	pflag.PrintDefaults()
}

func runPlatform() error {
	defer vlog.LogCall()()
	p := amputil.Inspect()
	fmt.Printf("logical cpus:  %d\n", p.LogicalCPUCount)
	fmt.Printf("physical cpus: %d\n", p.PhysicalCPUCount)
	return nil
}

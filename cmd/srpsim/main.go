package main

import (
	"flag"
	"fmt"
	"os"

	srp "github.com/nicosta1132/srp-go"
	"go.uber.org/zap"
)

var (
	flagWindow   = flag.Int("window", 4, "sliding window size")
	flagPackets  = flag.Int("packets", 30, "number of packets to deliver")
	flagSeed     = flag.Int64("seed", 42, "seed for the loss source")
	flagLoss     = flag.Float64("loss", -1, "run a single scenario with this loss probability instead of the comparison table")
	flagRealtime = flag.Bool("realtime", false, "run against the wall clock instead of virtual time")
	flagVerbose  = flag.Bool("v", false, "show more detailed console output")
)

type scenario struct {
	name string
	loss float64
}

var scenarios = []scenario{
	{"No loss", 0.0},
	{"Low loss", 0.1},
	{"Medium loss", 0.2},
	{"High loss", 0.3},
	{"Very high loss", 0.4},
}

func main() {
	flag.Parse()

	log := zap.NewNop()
	if *flagVerbose {
		var err error
		log, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer log.Sync()
	}

	if *flagLoss >= 0 {
		result, err := run(*flagLoss, log)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		printRow(fmt.Sprintf("loss=%.2f", *flagLoss), result, *flagPackets)
		return
	}

	fmt.Printf("SELECTIVE REPEAT PROTOCOL COMPARISON (window=%d, packets=%d, seed=%d)\n",
		*flagWindow, *flagPackets, *flagSeed)
	fmt.Println("Condition      | Efficiency | Delivered | Status")
	fmt.Println("---------------------------------------------------")
	for _, sc := range scenarios {
		result, err := run(sc.loss, log)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		printRow(sc.name, result, *flagPackets)
	}
}

func run(loss float64, log *zap.Logger) (srp.Result, error) {
	conf := srp.Config{
		WindowSize:      *flagWindow,
		LossProbability: loss,
		TotalPackets:    *flagPackets,
		Seed:            *flagSeed,
		Logger:          log,
	}
	if !*flagRealtime {
		conf.Clock = srp.NewVirtualClock()
	}
	sim, err := srp.NewSimulator(conf)
	if err != nil {
		return srp.Result{}, err
	}
	return sim.Run(), nil
}

func printRow(name string, result srp.Result, total int) {
	// efficiency k: transmissions needed per delivered packet
	efficiency := 1.0
	if result.Delivered > 0 {
		efficiency = float64(result.Transmissions) / float64(result.Delivered)
	}
	status := "incomplete"
	if result.Completed {
		status = "ok"
	}
	fmt.Printf("%-14s | k=%5.2f    | %2d/%-2d     | %s (%.1fs)\n",
		name, efficiency, result.Delivered, total, status, result.Elapsed.Seconds())
}

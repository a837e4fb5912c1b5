package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gitlab.bertha.cloud/partitio/isi/pping"
)

var (
	count        uint16
	interval     float64
	timeout      float64
	size         int
	unrestricted bool
	debug        bool
)

func main() {
	cmd := &cobra.Command{
		Use:           "pping DESTINATION",
		Short:         "A prettier ping utility",
		Args:          cobra.ExactArgs(1),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().Uint16VarP(&count, "count", "c", 0, "stop after <count> replies (0 means no limit)")
	cmd.Flags().Float64VarP(&interval, "interval", "i", 1.0, "seconds between sending each packet")
	cmd.Flags().Float64VarP(&timeout, "timeout", "W", 2.0, "time to wait for a response, in seconds")
	cmd.Flags().IntVarP(&size, "size", "s", 56, "echo payload size in bytes")
	cmd.Flags().BoolVar(&unrestricted, "unrestricted", false, "lift the 200ms interval floor for unprivileged users")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")

	if err := cmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	opts := []pping.Option{pping.WithPayloadSize(size)}
	if unrestricted {
		opts = append(opts, pping.Unrestricted())
	}
	cfg, err := pping.NewConfig(args[0], count, seconds(interval), seconds(timeout), opts...)
	if err != nil {
		return err
	}

	s, err := pping.NewSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = s.Run(ctx)
	return err
}

func seconds(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}

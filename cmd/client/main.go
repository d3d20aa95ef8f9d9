package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/zllovesuki/OverlayManager/client"
	"github.com/zllovesuki/OverlayManager/supervisor"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Compile time injected variables
var (
	Version = "v0.0.0-dev"
)

var (
	address string
	timeout time.Duration

	rootCmd = &cobra.Command{
		Use:   "client",
		Short: "Remote control for a running OverlayManager",
		Long:  "Presses remote keys and shows banners on a running OverlayManager over gRPC. Without a command it opens the keypad.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeypad(cmd.Context())
		},
		SilenceUsage: true,
	}

	tuiCmd = &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal keypad",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeypad(cmd.Context())
		},
	}

	keyCmd = &cobra.Command{
		Use:   "key NAME...",
		Short: "Press remote keys in order, e.g. key 1 2 or key vol+",
		Args:  cobra.MinimumNArgs(1),
		RunE: withClient(func(ctx context.Context, c *client.Client, args []string) error {
			for _, name := range args {
				if err := c.PressKey(ctx, name); err != nil {
					return errors.Wrapf(err, "pressing %s", name)
				}
			}
			return nil
		}),
	}

	channelCmd = &cobra.Command{
		Use:   "channel NUMBER",
		Short: "Show the channel number banner",
		Args:  cobra.ExactArgs(1),
		RunE: withClient(func(ctx context.Context, c *client.Client, args []string) error {
			n, err := parseChannel(args[0])
			if err != nil {
				return err
			}
			return c.ShowChannelNumber(ctx, n)
		}),
	}

	unavailableCmd = &cobra.Command{
		Use:   "unavailable NUMBER",
		Short: "Show the channel unavailable banner",
		Args:  cobra.ExactArgs(1),
		RunE: withClient(func(ctx context.Context, c *client.Client, args []string) error {
			n, err := parseChannel(args[0])
			if err != nil {
				return err
			}
			return c.ShowChannelUnavailable(ctx, n)
		}),
	}

	infoCmd = &cobra.Command{
		Use:   "info NUMBER [LANGUAGE...]",
		Short: "Show the channel info banner with its subtitle languages",
		Args:  cobra.MinimumNArgs(1),
		RunE: withClient(func(ctx context.Context, c *client.Client, args []string) error {
			n, err := parseChannel(args[0])
			if err != nil {
				return err
			}
			return c.ShowChannelInfo(ctx, n, args[1:])
		}),
	}

	volumeCmd = &cobra.Command{
		Use:   "volume PERCENT",
		Short: "Show the volume bar, e.g. volume 75.5",
		Args:  cobra.ExactArgs(1),
		RunE: withClient(func(ctx context.Context, c *client.Client, args []string) error {
			p, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return errors.Wrapf(err, "invalid percentage %q", args[0])
			}
			return c.ShowVolumeLevel(ctx, p/100)
		}),
	}

	stateCmd = &cobra.Command{
		Use:   "state",
		Short: "Print what is on screen and the tuner state",
		Args:  cobra.NoArgs,
		RunE: withClient(func(ctx context.Context, c *client.Client, args []string) error {
			st, err := c.State(ctx)
			if err != nil {
				return err
			}
			fmt.Print(client.FormatState(st))
			return nil
		}),
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&address, "address", "a", supervisor.DefaultGRPCAddress, "gRPC address of the manager")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Second*5, "deadline of one-shot commands")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(channelCmd)
	rootCmd.AddCommand(unavailableCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(volumeCmd)
	rootCmd.AddCommand(stateCmd)

	rootCmd.Version = Version
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func runKeypad(ctx context.Context) error {
	// tview owns the terminal; keep logs out of it
	log.SetOutput(io.Discard)
	return client.NewKeypad(address, Version).Serve(ctx)
}

func withClient(fn func(ctx context.Context, c *client.Client, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		c, err := client.Dial(ctx, address, Version)
		if err != nil {
			return err
		}
		defer c.Close()

		return fn(ctx, c, args)
	}
}

func parseChannel(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid channel %q", s)
	}
	return uint16(n), nil
}

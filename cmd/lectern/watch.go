package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/lectern"
)

var watchResolve bool

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Reparse a presentation whenever it changes",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := append(options(args[0]), lectern.WithWatcherErrorHandler(func(err error) {
			slog.Error("watcher error", "error", err)
		}))
		updates, err := lectern.Watch(ctx, args[0], watchResolve, opts...)
		if err != nil {
			fatal("Error starting watcher", err)
		}

		slog.Info("watching", "path", args[0])
		for u := range updates {
			if u.Err != nil {
				slog.Error("presentation invalid", "event", u.Event.Type, "error", u.Err)
				continue
			}
			fmt.Printf("%s: %s, %d slides, %d media\n",
				u.Event.Type, u.Presentation.Meta.Ref, u.Presentation.Slides.Len(), len(u.Presentation.Slides.MediaURIs))
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchResolve, "resolve", false, "Resolve media on every change")
}

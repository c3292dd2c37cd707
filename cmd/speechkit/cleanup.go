package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ent0n29/speechkit/internal/app"
)

func newCleanupCommand() *cobra.Command {
	var expiredOnly bool
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove generated audio files from the audio directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadRuntime()
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			files, err := app.NewFileStore(cfg, log, nil)
			if err != nil {
				return err
			}
			var n int
			if expiredOnly {
				n = files.Sweep(time.Now())
			} else {
				n = files.CleanupAll()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleaned up %d temporary files in %s\n", n, files.Dir())
			return nil
		},
	}
	cmd.Flags().BoolVar(&expiredOnly, "expired", false, "only remove files older than AUDIO_MAX_AGE")
	return cmd
}

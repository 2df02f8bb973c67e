package cmd

import (
	"fmt"
	"os"

	"github.com/nxadm/tail"
	"github.com/spf13/cobra"
)

func init() {
	logsCmd.Flags().BoolP("follow", "f", false, "Follow the log file")
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Print the application log",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		logFile := cfg.LogFile()
		if _, err := os.Stat(logFile); os.IsNotExist(err) {
			return fmt.Errorf("no log file at %s", logFile)
		}

		follow, _ := cmd.Flags().GetBool("follow")
		t, err := tail.TailFile(logFile, tail.Config{
			Follow: follow,
			ReOpen: follow,
			Logger: tail.DiscardingLogger,
		})
		if err != nil {
			return err
		}
		defer t.Cleanup()

		go func() {
			<-cmd.Context().Done()
			t.Stop()
		}()

		for line := range t.Lines {
			if line.Err != nil {
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), line.Text)
		}
		return nil
	},
}

// Package cmd implements the command-line interface for shibi.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/shibi-dl/shibi/color"
	"github.com/shibi-dl/shibi/icon"
	"github.com/shibi-dl/shibi/piped"
	"github.com/shibi-dl/shibi/style"
	"github.com/shibi-dl/shibi/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(instancesCmd)
	instancesCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON string")

	instancesCmd.SetOut(os.Stdout)
}

// instanceRow is the serializable health view of one mirror.
type instanceRow struct {
	Host     string `json:"host"`
	Online   bool   `json:"online"`
	CDN      bool   `json:"cdn"`
	PingMs   int64  `json:"pingMs"`
	Priority int    `json:"priority"`
}

// instancesCmd probes the whole mirror fleet and displays per-instance health.
var instancesCmd = &cobra.Command{
	Use:     "instances",
	Aliases: []string{"mirrors"},
	Short:   "Probe the mirror fleet and display each instance's health",
	Run: func(cmd *cobra.Command, args []string) {
		registry := piped.Default()

		erase := util.PrintErasable(fmt.Sprintf("%s Probing mirrors...", icon.Get(icon.Progress)))
		registry.StartProbes(context.Background())
		registry.Settled()
		erase()

		ranked := registry.Ranked()
		offline := lo.Filter(registry.Instances(), func(i *piped.Instance, _ int) bool {
			return !i.Online()
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			rows := lo.Map(append(ranked, offline...), func(i *piped.Instance, _ int) instanceRow {
				return instanceRow{
					Host:     i.Host(),
					Online:   i.Online(),
					CDN:      i.CDN(),
					PingMs:   i.Ping().Milliseconds(),
					Priority: i.Priority(),
				}
			})

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			lo.Must0(encoder.Encode(rows))
			return
		}

		for _, i := range ranked {
			line := fmt.Sprintf("%s %s %s",
				style.Fg(color.Green)(icon.Get(icon.Mirror)),
				style.Bold(i.Domain()),
				style.Faint(fmt.Sprintf("%dms", i.Ping().Milliseconds())),
			)
			if i.CDN() {
				line += " " + style.Fg(color.Blue)("cdn")
			}
			if i.Priority() > 0 {
				line += " " + style.Fg(color.Yellow)("official")
			}
			cmd.Println(line)
		}

		for _, i := range offline {
			cmd.Printf("%s %s %s\n",
				style.Fg(color.Red)(icon.Get(icon.Offline)),
				style.Faint(i.Domain()),
				style.Fg(color.Red)("offline"),
			)
		}

		cmd.Println()
		cmd.Println(style.Faint(fmt.Sprintf("%s healthy out of %s",
			util.Quantify(len(ranked), "mirror", "mirrors"),
			util.Quantify(len(registry.Instances()), "probe", "probes"),
		)))
	},
}

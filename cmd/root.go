// Package cmd implements the command-line interface for shibi.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/shibi-dl/shibi/color"
	"github.com/shibi-dl/shibi/constant"
	"github.com/shibi-dl/shibi/download"
	"github.com/shibi-dl/shibi/icon"
	"github.com/shibi-dl/shibi/key"
	"github.com/shibi-dl/shibi/log"
	"github.com/shibi-dl/shibi/piped"
	"github.com/shibi-dl/shibi/query"
	"github.com/shibi-dl/shibi/style"
	"github.com/shibi-dl/shibi/ui"
	"github.com/shibi-dl/shibi/util"
	"github.com/shibi-dl/shibi/version"
	"github.com/shibi-dl/shibi/where"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// containers lists the muxable output containers.
var containers = []string{"mp4", "mkv", "webm"}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Persist finished downloads to the localized history")
	lo.Must0(viper.BindPFlag(key.HistorySaveOnDownload, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.Flags().BoolP("audio-only", "a", false, "Download the audio stream alone into an m4a container")
	rootCmd.Flags().Bool("video-only", false, "Download the video stream alone, without an audio track")
	rootCmd.MarkFlagsMutuallyExclusive("audio-only", "video-only")
	rootCmd.Flags().StringP("quality", "q", "", "Pick the video stream with this quality label without prompting (e.g. 720p)")

	rootCmd.Flags().StringP("container", "c", "", "Output container, skips the prompt")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("container", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return containers, cobra.ShellCompDirectiveNoFileComp
	}))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the shibi application.
var rootCmd = &cobra.Command{
	Use:   constant.Shibi + " [url]",
	Short: "A command-line YouTube downloader running on the Piped mirror fleet",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A command-line YouTube downloader running on the Piped mirror fleet"),
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		var input string
		if len(args) > 0 {
			input = args[0]
		} else {
			prompt := &survey.Input{
				Message: "Video URL or ID",
				Suggest: query.SuggestMany,
			}
			handleErr(survey.AskOne(prompt, &input, survey.WithValidator(survey.Required)))
		}

		videoID, ok := query.VideoID(input).Get()
		if !ok {
			handleErr(fmt.Errorf("no video ID found in %q", input))
		}
		_ = query.Remember(input, 1)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		details, err := resolveDetails(ctx, videoID)
		handleErr(err)

		var (
			videoStream *piped.Stream
			audioStream *piped.Stream
		)

		audioOnly := lo.Must(cmd.Flags().GetBool("audio-only"))
		videoOnly := lo.Must(cmd.Flags().GetBool("video-only"))
		quality := lo.Must(cmd.Flags().GetString("quality"))

		if !audioOnly {
			if quality != "" {
				videoStream, ok = lo.Find(details.VideoStreams, func(s *piped.Stream) bool {
					return s.Quality == quality
				})
				if !ok {
					handleErr(fmt.Errorf("no %s stream for this video", quality))
				}
			} else {
				videoStream = pickStream(fmt.Sprintf("%s Video stream", icon.Get(icon.Video)), details.VideoStreams)
			}
		}

		switch {
		case videoOnly:
		case audioOnly:
			audioStream = pickStream(fmt.Sprintf("%s Audio stream", icon.Get(icon.Audio)), details.AudioStreams)
		default:
			audioStream = pickAudio(details.AudioStreams)
		}

		if !audioOnly {
			container := lo.Must(cmd.Flags().GetString("container"))
			if container == "" {
				prompt := &survey.Select{
					Message: "Output container",
					Options: containers,
					Default: viper.GetString(key.DownloadsContainer),
				}
				handleErr(survey.AskOne(prompt, &container))
			}
			viper.Set(key.DownloadsContainer, container)
		}

		tracker := ui.NewTracker(details.Title)

		result := make(chan error, 1)
		go func() {
			_, err := download.Download(ctx, details, download.Options{
				Video:     videoStream,
				Audio:     audioStream,
				OnFetch:   tracker.OnFetch,
				OnProcess: tracker.OnProcess,
			})
			result <- err
			tracker.Finish(err)
		}()

		canceled, err := tracker.Run()
		handleErr(err)
		if canceled {
			cancel()
			handleErr(errors.New("download canceled"))
		}

		if err := <-result; err != nil {
			log.Error(err)
			os.Exit(1)
		}
	},
}

// resolveDetails probes the mirror fleet and resolves the stream listing,
// failing over across the ranking until the fleet is exhausted.
func resolveDetails(ctx context.Context, videoID string) (*piped.Details, error) {
	registry := piped.Default()

	erase := util.PrintErasable(fmt.Sprintf("%s Probing mirrors...", icon.Get(icon.Progress)))
	registry.StartProbes(ctx)
	registry.Settled()
	erase()

	for {
		ranked := registry.Ranked()
		if len(ranked) == 0 {
			return nil, errors.New("no healthy mirror available")
		}
		if piped.FastestCDN(registry.Instances()).IsAbsent() {
			return nil, errors.New("no cdn-capable mirror available")
		}

		details, err := ranked[0].Streams(ctx, videoID, registry)
		switch {
		case err == nil:
			return details, nil
		case errors.Is(err, piped.ErrOffline), errors.Is(err, piped.ErrCDNOffline):
			// The failing instance is gone from the next ranking.
			log.Warnf("retrying resolution: %v", err)
		default:
			return nil, err
		}
	}
}

// noAudio is the picker entry for a silent, video-only artifact.
const noAudio = "No audio"

func audioOptions(streams []*piped.Stream) []string {
	options := lo.Map(streams, func(s *piped.Stream, _ int) string {
		return s.String()
	})
	return append(options, noAudio)
}

// pickAudio prompts for the audio track of a combined download, offering
// an explicit opt-out. A nil result means video-only. An empty list is
// not fatal here since the video stream alone makes a valid artifact.
func pickAudio(streams []*piped.Stream) *piped.Stream {
	if len(streams) == 0 {
		return nil
	}

	options := audioOptions(streams)

	var choice string
	handleErr(survey.AskOne(&survey.Select{
		Message: fmt.Sprintf("%s Audio stream", icon.Get(icon.Audio)),
		Options: options,
	}, &choice))

	if choice == noAudio {
		return nil
	}
	return streams[lo.IndexOf(options, choice)]
}

func pickStream(message string, streams []*piped.Stream) *piped.Stream {
	if len(streams) == 0 {
		handleErr(errors.New("no matching streams for this video"))
	}
	if len(streams) == 1 {
		return streams[0]
	}

	options := lo.Map(streams, func(s *piped.Stream, _ int) string {
		return s.String()
	})

	var choice string
	handleErr(survey.AskOne(&survey.Select{Message: message, Options: options}, &choice))

	return streams[lo.IndexOf(options, choice)]
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}

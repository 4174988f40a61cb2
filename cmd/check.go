// Package cmd implements the command-line interface for shibi.
package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/shibi-dl/shibi/ffmpeg"
	"github.com/shibi-dl/shibi/icon"
	"github.com/shibi-dl/shibi/key"
	"github.com/shibi-dl/shibi/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.SetOut(os.Stdout)
}

// CheckDependencies verifies the availability of required system dependencies.
// The current implementation validates the presence of ffmpeg in the system PATH.
func CheckDependencies() {
	if !ffmpeg.NewExec().Available() {
		printMissingDependencyError(viper.GetString(key.FFmpegPath))
		os.Exit(1)
	}
}

// checkCmd reports the state of external collaborators.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the availability of required external dependencies",
	Run: func(cmd *cobra.Command, args []string) {
		processor := ffmpeg.NewExec()

		banner, err := processor.Version()
		if err != nil {
			printMissingDependencyError(viper.GetString(key.FFmpegPath))
			os.Exit(1)
		}

		cmd.Printf("%s %s\n", icon.Get(icon.Success), banner)
	},
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case "darwin":
		installCmd = "brew install ffmpeg"
	case "linux":
		installCmd = "sudo apt install ffmpeg"
	case "windows":
		installCmd = "scoop install ffmpeg"
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}

// Package snake holds the interactive prompts used by the CLI.
package snake

import (
	"errors"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"tableflip.dev/moodlog/pkg/palette"
)

// PromptMood asks the user to pick one of moods.
func PromptMood(cmd *cobra.Command, moods palette.Palette) (palette.Mood, error) {
	if len(moods) == 0 {
		return palette.Mood{}, errors.New("no moods to choose from")
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Label | bold }} {{ .Accent | faint }}",
		Inactive: "   {{ .Label }} {{ .Accent | faint }}",
		Selected: "{{ .Label | bold | green }}",
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "How are you feeling",
		Items:     []palette.Mood(moods),
		Templates: templates,
		Size:      len(moods),
		Searcher:  moodSearcher(moods),
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopWriteCloser{cmd.OutOrStdout()},
	}

	i, _, err := prompt.Run()
	if err != nil {
		return palette.Mood{}, err
	}
	return moods[i], nil
}

func moodSearcher(moods palette.Palette) func(string, int) bool {
	return func(input string, index int) bool {
		name := strings.Replace(strings.ToLower(moods[index].Label), " ", "", -1)
		input = strings.Replace(strings.ToLower(input), " ", "", -1)

		return strings.Contains(name, input)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

package snake

import (
	"io"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// PromptNote asks for a free-form note, offering current as the default.
// An empty answer keeps current.
func PromptNote(cmd *cobra.Command, current string) (string, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} : ",
		Valid:   "{{ . | green }} : ",
		Invalid: "{{ . | red }} : ",
		Success: "{{ . | bold }} : ",
	}

	prompt := promptui.Prompt{
		Label:     "Note",
		Default:   current,
		Templates: templates,
		Stdin:     io.NopCloser(cmd.InOrStdin()),
		Stdout:    nopWriteCloser{cmd.OutOrStdout()},
	}

	result, err := prompt.Run()
	if err != nil {
		return "", err
	}
	if result == "" {
		result = current
	}
	return result, nil
}

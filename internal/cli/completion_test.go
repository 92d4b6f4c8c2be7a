package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rileyhilliard/popkit/internal/errors"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bareRootCmd returns a root without any subcommands so the generated
// scripts only contain the boilerplate.
func bareRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "popkit",
		Short: "Terminal widget toolkit",
	}
}

func TestCompletionGeneration(t *testing.T) {
	tests := []struct {
		name     string
		generate func(*cobra.Command, *bytes.Buffer) error
		want     []string
	}{
		{
			name:     "bash",
			generate: func(c *cobra.Command, b *bytes.Buffer) error { return c.GenBashCompletion(b) },
			want:     []string{"# bash completion for popkit", "__popkit_debug", "complete -o default -F __start_popkit popkit"},
		},
		{
			name:     "zsh",
			generate: func(c *cobra.Command, b *bytes.Buffer) error { return c.GenZshCompletion(b) },
			want:     []string{"#compdef popkit", "_popkit()"},
		},
		{
			name:     "fish",
			generate: func(c *cobra.Command, b *bytes.Buffer) error { return c.GenFishCompletion(b, true) },
			want:     []string{"fish completion for popkit", "complete -c popkit"},
		},
		{
			name:     "powershell",
			generate: func(c *cobra.Command, b *bytes.Buffer) error { return c.GenPowerShellCompletion(b) },
			want:     []string{"Register-ArgumentCompleter"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.generate(bareRootCmd(), &buf))
			for _, w := range tt.want {
				assert.Contains(t, buf.String(), w)
			}
		})
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := executeCommand(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "__start_popkit")
}

func TestCompletionCommand_RejectsUnknownShell(t *testing.T) {
	_, err := executeCommand(t, "completion", "tcsh")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrOption))
	assert.Contains(t, err.Error(), "Unknown shell: tcsh")
}

func TestCompletionCommand_Metadata(t *testing.T) {
	shells, directive := completionCmd.ValidArgsFunction(completionCmd, nil, "")
	assert.Equal(t, []string{"bash", "zsh", "fish", "powershell"}, shells)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	assert.True(t, strings.HasPrefix(completionCmd.Use, "completion"))

	found := false
	for _, c := range rootCmd.Commands() {
		if c.Name() == "completion" {
			found = true
		}
	}
	assert.True(t, found, "completion is registered on the root command")
}

func TestCompletionCommand_ShellListSurvivesGeneration(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		_, err := executeCommand(t, "completion", shell)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"bash", "zsh", "fish", "powershell"}, completionShells)
	shells, _ := completionCmd.ValidArgsFunction(completionCmd, nil, "")
	shells[0] = "tcsh"
	assert.Equal(t, "bash", completionShells[0], "callers get a copy")
}

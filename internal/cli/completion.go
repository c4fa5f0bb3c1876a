package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wikigraph/pkg/wiki"
)

// maxTitleCompletions bounds the titles offered for --from and --to.
const maxTitleCompletions = 64

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for wikigraph.

Graph file arguments complete to .txt files. The --from and --to flags of
the path command complete to article titles read from the graph file given
on the command line.

Bash:
  $ source <(wikigraph completion bash)

Zsh:
  $ wikigraph completion zsh > "${fpath[1]}/_wikigraph"

Fish:
  $ wikigraph completion fish | source

PowerShell:
  PS> wikigraph completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}

	return cmd
}

// completeGraphFile completes the single graph file argument.
func completeGraphFile(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"txt"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeTitle offers article titles starting with toComplete, read from
// the graph file in args. Nothing is offered until the file is known or
// when it does not load.
func completeTitle(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	g, err := wiki.LoadFile(ctx, args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveError
	}
	return matchTitles(g, toComplete, maxTitleCompletions), cobra.ShellCompDirectiveNoFileComp
}

// matchTitles returns up to limit distinct titles with the given prefix,
// in article order.
func matchTitles(g *wiki.Graph, prefix string, limit int) []string {
	var out []string
	seen := make(map[string]struct{})
	for id := 0; id < g.PageCount() && len(out) < limit; id++ {
		t := g.Title(id)
		if !strings.HasPrefix(t, prefix) {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/samber/lo"
)

// CompletionCmd prints a shell completion script generated from the command tree
type CompletionCmd struct {
	Shell string `arg:"" enum:"bash,zsh,fish" help:"Shell type (bash, zsh, fish)"`
}

// windowArgCommands take a window name as their first positional argument
var windowArgCommands = []string{"kill", "start"}

type completionNode struct {
	Subcommands []string
	Flags       []string
}

type completionIndex struct {
	Nodes      map[string]completionNode // keyed by command path joined with "__"
	EnumByFlag map[string][]string       // --format -> text ndjson
}

// Run executes the completion command
func (c *CompletionCmd) Run(globals *Globals, ctx *kong.Context) error {
	var model *kong.Node
	if ctx != nil && ctx.Model != nil {
		model = ctx.Model.Node
	}
	idx := buildCompletionIndex(model)

	var script string
	switch c.Shell {
	case "bash":
		script = bashCompletion(idx, globals.Session)
	case "zsh":
		script = zshCompletion(idx, globals.Session)
	case "fish":
		script = fishCompletion(idx, globals.Session)
	default:
		return fmt.Errorf("unsupported shell: %s", c.Shell)
	}
	_, err := fmt.Fprint(globals.Stdout, script)
	return err
}

func buildCompletionIndex(model *kong.Node) completionIndex {
	idx := completionIndex{Nodes: map[string]completionNode{}, EnumByFlag: map[string][]string{}}
	if model == nil {
		return idx
	}

	var walk func(n *kong.Node, path []string)
	walk = func(n *kong.Node, path []string) {
		children := lo.Filter(n.Children, func(child *kong.Node, _ int) bool {
			return child != nil && child.Type == kong.CommandNode && !child.Hidden
		})

		var sub []string
		for _, child := range children {
			sub = append(sub, child.Name)
			sub = append(sub, child.Aliases...)
		}

		var flags []string
		for _, group := range n.AllFlags(true) {
			for _, f := range group {
				tokens := flagCompletionTokens(f)
				flags = append(flags, tokens...)
				if values := enumValues(f.Enum); len(values) > 0 {
					for _, token := range tokens {
						if _, ok := idx.EnumByFlag[token]; !ok {
							idx.EnumByFlag[token] = values
						}
					}
				}
			}
		}

		idx.Nodes[strings.Join(path, "__")] = completionNode{
			Subcommands: sortedUnique(sub),
			Flags:       sortedUnique(flags),
		}
		for _, child := range children {
			walk(child, append(slices.Clone(path), child.Name))
		}
	}
	walk(model, nil)
	return idx
}

func flagCompletionTokens(f *kong.Flag) []string {
	if f == nil {
		return nil
	}
	tokens := []string{"--" + f.Name}
	if f.Short != 0 {
		tokens = append(tokens, "-"+string(f.Short))
	}
	for _, a := range f.Aliases {
		tokens = append(tokens, "--"+a)
	}
	return tokens
}

func enumValues(raw string) []string {
	values := lo.Map(strings.Split(raw, ","), func(v string, _ int) string { return strings.TrimSpace(v) })
	return lo.Compact(values)
}

func sortedUnique(in []string) []string {
	out := lo.Uniq(lo.Compact(in))
	slices.Sort(out)
	return out
}

func (idx completionIndex) paths() []string {
	paths := lo.Keys(idx.Nodes)
	slices.Sort(paths)
	return paths
}

func (idx completionIndex) enumTokens() []string {
	tokens := lo.Keys(idx.EnumByFlag)
	slices.Sort(tokens)
	return tokens
}

// windowListCommand lists window names in the session, preferring COVE_SESSION
func windowListCommand(session string) string {
	return fmt.Sprintf(`tmux list-windows -t "${COVE_SESSION:-%s}" -F '#{window_name}' 2>/dev/null`, session)
}

func bashCompletion(idx completionIndex, session string) string {
	var sb strings.Builder
	sb.WriteString(`# cove bash completion script
# Add to ~/.bashrc:
#   eval "$(cove completion bash)"

_cove_completions() {
    local cur prev words cword
    _init_completion || return

    local cmdpath=""
    local candidate=""
    local i
    for ((i=1; i < cword; i++)); do
        local w=${words[i]}
        [[ -z "${w}" || "${w}" == -* ]] && continue
        candidate="${candidate:+${candidate}__}${w}"
        case "${candidate}" in
`)
	for _, path := range idx.paths() {
		if path != "" {
			fmt.Fprintf(&sb, "            %s) cmdpath=\"${candidate}\" ;;\n", path)
		}
	}
	sb.WriteString(`            *) break ;;
        esac
    done

    case "${prev}" in
`)
	for _, token := range idx.enumTokens() {
		fmt.Fprintf(&sb, "        %s)\n            COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n            return\n            ;;\n",
			token, strings.Join(idx.EnumByFlag[token], " "))
	}
	sb.WriteString("    esac\n\n    local subcommands=\"\"\n    local flags=\"\"\n    case \"${cmdpath}\" in\n")
	for _, path := range idx.paths() {
		node := idx.Nodes[path]
		fmt.Fprintf(&sb, "        %q)\n            subcommands=%q\n            flags=%q\n            ;;\n",
			path, strings.Join(node.Subcommands, " "), strings.Join(node.Flags, " "))
	}
	sb.WriteString(`    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=($(compgen -W "${flags}" -- "${cur}"))
        return
    fi

    case "${cmdpath}" in
`)
	fmt.Fprintf(&sb, "        %s)\n            COMPREPLY=($(compgen -W \"$(%s)\" -- \"${cur}\"))\n            return\n            ;;\n",
		strings.Join(windowArgCommands, "|"), windowListCommand(session))
	sb.WriteString(`    esac

    if [[ -n "${subcommands}" ]]; then
        COMPREPLY=($(compgen -W "${subcommands}" -- "${cur}"))
    fi
}

complete -F _cove_completions cove
`)
	return sb.String()
}

func zshCompletion(idx completionIndex, session string) string {
	var sb strings.Builder
	sb.WriteString(`#compdef cove
# cove zsh completion script
# Add to ~/.zshrc:
#   eval "$(cove completion zsh)"

_cove() {
  local cur="${words[CURRENT]}"
  local prev="${words[CURRENT-1]}"
  local cmdpath="" candidate=""
  local i
  for ((i=2; i < CURRENT; i++)); do
    local w="${words[i]}"
    [[ -z "${w}" || "${w}" == -* ]] && continue
    candidate="${candidate:+${candidate}__}${w}"
    case "${candidate}" in
`)
	for _, path := range idx.paths() {
		if path != "" {
			fmt.Fprintf(&sb, "      %s) cmdpath=\"${candidate}\" ;;\n", path)
		}
	}
	sb.WriteString("      *) break ;;\n    esac\n  done\n\n  case \"${prev}\" in\n")
	for _, token := range idx.enumTokens() {
		fmt.Fprintf(&sb, "    %s) compadd -- %s; return ;;\n", token, strings.Join(idx.EnumByFlag[token], " "))
	}
	sb.WriteString("  esac\n\n  local -a subcommands flags\n  case \"${cmdpath}\" in\n")
	for _, path := range idx.paths() {
		node := idx.Nodes[path]
		fmt.Fprintf(&sb, "    %q)\n      subcommands=(%s)\n      flags=(%s)\n      ;;\n",
			path, strings.Join(node.Subcommands, " "), strings.Join(node.Flags, " "))
	}
	sb.WriteString(`  esac

  if [[ "${cur}" == -* ]]; then
    compadd -- ${flags[@]}
    return
  fi

  case "${cmdpath}" in
`)
	fmt.Fprintf(&sb, "    %s) compadd -- ${(f)\"$(%s)\"}; return ;;\n",
		strings.Join(windowArgCommands, "|"), windowListCommand(session))
	sb.WriteString(`  esac

  (( ${#subcommands[@]} > 0 )) && compadd -- ${subcommands[@]}
}

compdef _cove cove
`)
	return sb.String()
}

func fishCompletion(idx completionIndex, session string) string {
	var sb strings.Builder
	sb.WriteString(`# cove fish completion script
# Add to ~/.config/fish/completions/cove.fish

complete -c cove -f

`)
	root := idx.Nodes[""]
	for _, cmd := range root.Subcommands {
		fmt.Fprintf(&sb, "complete -c cove -n \"__fish_use_subcommand\" -a %q\n", cmd)
	}
	for _, path := range idx.paths() {
		if path == "" || strings.Contains(path, "__") {
			continue
		}
		for _, sub := range idx.Nodes[path].Subcommands {
			fmt.Fprintf(&sb, "complete -c cove -n \"__fish_seen_subcommand_from %s\" -a %q\n", path, sub)
		}
	}
	for _, flag := range root.Flags {
		if !strings.HasPrefix(flag, "--") {
			continue
		}
		long := strings.TrimPrefix(flag, "--")
		if enum := idx.EnumByFlag[flag]; len(enum) > 0 {
			fmt.Fprintf(&sb, "complete -c cove -l %s -xa %q\n", long, strings.Join(enum, " "))
			continue
		}
		fmt.Fprintf(&sb, "complete -c cove -l %s\n", long)
	}
	fmt.Fprintf(&sb, "\n# Window names\ncomplete -c cove -n \"__fish_seen_subcommand_from %s\" -a \"(tmux list-windows -t (set -q COVE_SESSION; and echo $COVE_SESSION; or echo %s) -F '#{window_name}' 2>/dev/null)\"\n",
		strings.Join(windowArgCommands, " "), session)
	return sb.String()
}

package main

import (
	"os"
	"strings"

	"stagetimer-cli/internal/cli"
)

func isConnectURL(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "ws://") || strings.HasPrefix(s, "wss://")
}

func rewriteDirectConnectArgs(argv []string) []string {
	// Convenience: `stagetimer ws://host:port/ws` works like
	// `stagetimer output --connect ws://host:port/ws`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite
	// argv before parsing. Users often pass persistent flags first, so we
	// must find the first positional token, not just argv[1].
	if len(argv) < 2 {
		return argv
	}

	// Minimal persistent-flag awareness. Unknown flags are skipped without
	// consuming a value so we never eat the URL by mistake.
	valueFlags := map[string]bool{
		"--dir":        true,
		"--profile":    true,
		"--listen":     true,
		"--osc-listen": true,
		"--format":     true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isConnectURL(argv[i+1]) {
				out := make([]string, 0, len(argv)+2)
				out = append(out, argv[:i+1]...)
				out = append(out, "output", "--connect")
				out = append(out, argv[i+1:]...)
				return out
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") {
				continue
			}
			if boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++ // skip value if present
				continue
			}
			continue
		}

		// First positional token.
		if isConnectURL(a) {
			out := make([]string, 0, len(argv)+2)
			out = append(out, argv[:i]...)
			out = append(out, "output", "--connect")
			out = append(out, argv[i:]...)
			return out
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectConnectArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

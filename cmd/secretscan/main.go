// secretscan is a pre-commit helper: it scans staged changes for credential
// material (client secrets, bearer tokens, private keys) and exits non-zero
// when anything suspicious is found. Wire it up via .git/hooks/pre-commit.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

type pattern struct {
	name string
	re   *regexp.Regexp
}

var patterns = []pattern{
	{"client secret assignment", regexp.MustCompile(`(?i)(client[_-]?secret|api[_-]?key|password)\s*[:=]\s*['"][^'"]{8,}['"]`)},
	{"bearer token", regexp.MustCompile(`(?i)bearer\s+[a-z0-9_\-.]{20,}`)},
	{"JWT-like token", regexp.MustCompile(`eyJ[A-Za-z0-9_-]{20,}\.[A-Za-z0-9_-]{20,}`)},
	{"private key block", regexp.MustCompile(`-----BEGIN [A-Z ]*PRIVATE KEY-----`)},
	{"azure client secret env", regexp.MustCompile(`GRAPH_CLIENT_SECRET\s*=\s*\S{8,}`)},
}

type finding struct {
	line    int
	pattern string
	text    string
}

// scan inspects added lines of a unified diff for credential patterns.
func scan(r io.Reader) ([]finding, error) {
	var findings []finding
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		// only additions matter; context and removals are already committed
		if !strings.HasPrefix(text, "+") || strings.HasPrefix(text, "+++") {
			continue
		}
		for _, p := range patterns {
			if p.re.MatchString(text) {
				findings = append(findings, finding{line: line, pattern: p.name, text: strings.TrimPrefix(text, "+")})
			}
		}
	}
	return findings, scanner.Err()
}

func main() {
	cmd := exec.Command("git", "diff", "--cached", "--unified=0")
	out, err := cmd.StdoutPipe()
	if err != nil {
		fmt.Fprintln(os.Stderr, "secretscan:", err)
		os.Exit(2)
	}
	if err := cmd.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "secretscan:", err)
		os.Exit(2)
	}

	findings, err := scan(out)
	if err != nil {
		fmt.Fprintln(os.Stderr, "secretscan:", err)
		os.Exit(2)
	}
	if err := cmd.Wait(); err != nil {
		fmt.Fprintln(os.Stderr, "secretscan: git diff:", err)
		os.Exit(2)
	}

	if len(findings) > 0 {
		fmt.Fprintln(os.Stderr, "secretscan: possible credentials in staged changes:")
		for _, f := range findings {
			fmt.Fprintf(os.Stderr, "  [%s] %s\n", f.pattern, f.text)
		}
		os.Exit(1)
	}
}

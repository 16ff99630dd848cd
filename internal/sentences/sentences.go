// Package sentences loads sentence pools from files.
package sentences

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load reads one sentence per line from the provided file path. Blank lines
// and lines starting with '#' are skipped; inner whitespace is collapsed.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only sentence file.
			_ = cerr
		}
	}()

	var out []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.Join(strings.Fields(line), " ")
		if !Filter(line) {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("sentence file is empty")
	}
	return out, nil
}

package batch

import (
	"bufio"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrEmpty is returned for a batch file with no URLs.
var ErrEmpty = eris.New("batch: no URLs found")

// ReadFile returns the URLs in path, one per line, trimmed. Blank lines
// and lines starting with # are skipped.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "batch: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	var urls []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if IsComment(line) {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrapf(err, "batch: read %s", path)
	}
	if len(urls) == 0 {
		return nil, eris.Wrapf(ErrEmpty, "batch: %s", path)
	}
	return urls, nil
}

package sources

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadURLList reads page URLs from a file, one per line. Blank lines and
// lines starting with # are skipped; trailing commas are dropped so a list
// pasted from a spreadsheet still works.
func ReadURLList(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open page list: %w", err)
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimRight(line, ", \t")
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "http://") && !strings.HasPrefix(line, "https://") {
			return nil, fmt.Errorf("page list line %d: not an http(s) URL: %q", lineNum, line)
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading page list at line %d: %w", lineNum, err)
	}
	return urls, nil
}

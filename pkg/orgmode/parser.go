package orgmode

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"
)

var (
	headingRegex  = regexp.MustCompile(`^\*+\s+(TODO|DONE)(?:\s+(?:\[#([A-Z])\]\s*)?(.*?))?\s*$`)
	tagSuffix     = regexp.MustCompile(`\s+:([\w@#%]+:)+$`)
	checkboxRegex = regexp.MustCompile(`^\s*[-+]\s+\[( |X|x|-)\]\s+(.*)$`)
)

// Heading is one TODO or DONE heading.
type Heading struct {
	Title    string
	Done     bool
	Priority string
	Tags     []string
}

// ParseFile parses the Org-mode file at path.
func ParseFile(path string) ([]Heading, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse returns the TODO/DONE headings and unchecked or checked list items of r
// in file order. Items with a blank title are skipped.
func Parse(r io.Reader) ([]Heading, error) {
	var headings []Heading
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if m := headingRegex.FindStringSubmatch(line); m != nil {
			h := Heading{Done: m[1] == "DONE", Priority: m[2]}
			title := m[3]
			if tags := tagSuffix.FindString(title); tags != "" {
				title = strings.TrimSuffix(title, tags)
				h.Tags = strings.Split(strings.Trim(strings.TrimSpace(tags), ":"), ":")
			}
			h.Title = strings.TrimSpace(title)
			if h.Title != "" {
				headings = append(headings, h)
			}
			continue
		}

		if m := checkboxRegex.FindStringSubmatch(line); m != nil {
			title := strings.TrimSpace(m[2])
			if title != "" {
				headings = append(headings, Heading{Title: title, Done: m[1] == "X" || m[1] == "x"})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return headings, nil
}

// OpenTitles returns the titles of headings that are not done.
func OpenTitles(headings []Heading) []string {
	var titles []string
	for _, h := range headings {
		if !h.Done {
			titles = append(titles, h.Title)
		}
	}
	return titles
}

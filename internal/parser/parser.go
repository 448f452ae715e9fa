package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// MissingMetadataError is returned when a report lacks the fields without which a
// record cannot be filed. No partial document is returned alongside it.
type MissingMetadataError struct {
	Missing []string
}

func (e *MissingMetadataError) Error() string {
	return fmt.Sprintf("missing required metadata: %s", strings.Join(e.Missing, ", "))
}

var (
	layerStartRegex = regexp.MustCompile(`^\d+(?:\.\d+)?\b`)
	sampleIDRegex   = regexp.MustCompile(`[A-Z]-\d+`)
)

// Markers that switch the parser between phases. The stratum header opens the layer
// table; any terminal marker inside the table opens the trailer.
var (
	stratumHeaderMarkers = []string{
		"DESCRIPTION OF STRATA",
		"STRATUM DESCRIPTION",
		"SOIL/ROCK DESCRIPTION",
	}
	terminalMarkers = []string{
		"END OF BORELOG",
		"END OF LOG",
	}
)

// Parse converts raw borehole report text into a structured Document. It is a pure
// function: the same text always yields a structurally identical document. Only
// missing required metadata aborts the parse; every other malformed or absent field
// resolves to its zero value and the rest of the document is kept.
func Parse(raw string) (*Document, error) {
	p := &docParser{lines: splitLines(raw)}
	doc := &Document{}

	p.parseMetadata(&doc.Metadata)
	doc.Layers = p.parseLayers()
	doc.CoreQuality = p.parseTrailer(&doc.Metadata)
	doc.Remarks = scanSampleRemarks(p.lines)

	var missing []string
	if doc.Metadata.ProjectName == "" {
		missing = append(missing, "project name")
	}
	if doc.Metadata.JobCode == "" {
		missing = append(missing, "job code")
	}
	if len(missing) > 0 {
		return nil, &MissingMetadataError{Missing: missing}
	}
	return doc, nil
}

// splitLines trims every line and drops blank ones so the phase cursor only ever
// sees meaningful input.
func splitLines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// docParser walks the trimmed line slice with a single forward cursor. Lookahead
// consumption for multi-line fields advances the cursor past the swallowed lines.
type docParser struct {
	lines []string
	pos   int
}

func (p *docParser) done() bool {
	return p.pos >= len(p.lines)
}

func (p *docParser) peek(offset int) (string, bool) {
	idx := p.pos + offset
	if idx >= len(p.lines) {
		return "", false
	}
	return p.lines[idx], true
}

// matchLabel performs a case-insensitive `Label: value` prefix match. Labels are not
// mutually exclusive across lines, only within one: the first matching rule wins.
func matchLabel(line, label string) (string, bool) {
	if len(line) < len(label) || !strings.EqualFold(line[:len(label)], label) {
		return "", false
	}
	rest := strings.TrimSpace(line[len(label):])
	if !strings.HasPrefix(rest, ":") {
		return "", false
	}
	return strings.TrimSpace(rest[1:]), true
}

func containsAnyFold(line string, markers []string) bool {
	upper := strings.ToUpper(line)
	for _, m := range markers {
		if strings.Contains(upper, m) {
			return true
		}
	}
	return false
}

func isStratumHeader(line string) bool {
	return containsAnyFold(line, stratumHeaderMarkers)
}

func isTerminalMarker(line string) bool {
	if containsAnyFold(line, terminalMarkers) {
		return true
	}
	// A restated termination depth closes the layer table as well.
	_, ok := matchLabel(line, "Termination Depth")
	return ok
}

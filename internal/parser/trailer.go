package parser

import "strings"

// parseTrailer consumes everything after the layer table: the restated termination
// depth and the optional core quality summary block. Sample remarks are collected by
// a whole-document scan instead, since hand-typed reports do not place them reliably.
func (p *docParser) parseTrailer(m *ReportMetadata) *CoreQualitySummary {
	var summary *CoreQualitySummary
	inSummary := false

	for !p.done() {
		line := p.lines[p.pos]
		p.pos++

		if v, ok := matchLabel(line, "Termination Depth"); ok {
			if m.TerminationDepth == nil {
				m.TerminationDepth = parseOptionalFloat(v)
			}
			continue
		}
		if _, ok := matchLabel(line, "Core Quality Summary"); ok {
			summary = &CoreQualitySummary{}
			inSummary = true
			continue
		}
		if !inSummary {
			continue
		}
		if v, ok := matchLabel(line, "TCR %"); ok {
			summary.TCRPercent = parseOptionalFloat(v)
		} else if v, ok := matchLabel(line, "RQD %"); ok {
			summary.RQDPercent = parseOptionalFloat(v)
		}
	}
	return summary
}

// scanSampleRemarks scans the whole document for SAMPLE RECEIVED / SAMPLE NOT
// RECEIVED markers. Every sample id on a marker line becomes one remark; phase
// ordering is deliberately not required here.
func scanSampleRemarks(lines []string) []SampleRemark {
	var remarks []SampleRemark
	for _, line := range lines {
		upper := strings.ToUpper(line)
		var status RemarkStatus
		switch {
		case strings.Contains(upper, "SAMPLE NOT RECEIVED"):
			status = RemarkNotReceived
		case strings.Contains(upper, "SAMPLE RECEIVED"):
			status = RemarkReceived
		default:
			continue
		}
		for _, id := range sampleIDRegex.FindAllString(line, -1) {
			remarks = append(remarks, SampleRemark{SampleID: id, Status: status})
		}
	}
	return remarks
}

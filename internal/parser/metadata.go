package parser

// metadataRule binds one or more `Label:` prefixes to a setter. The rules form an
// ordered table so new header fields are one entry, not another branch in a
// conditional chain.
type metadataRule struct {
	labels []string
	apply  func(p *docParser, m *ReportMetadata, value string)
}

// lookaheadWindow bounds how far multi-line fields (coordinates, lab test counts)
// may reach for continuation values.
const lookaheadWindow = 5

var metadataRules = []metadataRule{
	{labels: []string{"Project Name", "Project"}, apply: func(_ *docParser, m *ReportMetadata, v string) {
		m.ProjectName = v
	}},
	{labels: []string{"Job Code", "Job No"}, apply: func(_ *docParser, m *ReportMetadata, v string) {
		m.JobCode = v
	}},
	{labels: []string{"Location"}, apply: func(_ *docParser, m *ReportMetadata, v string) {
		m.Location = v
	}},
	{labels: []string{"Borehole No", "Borehole Number", "BH No"}, apply: func(_ *docParser, m *ReportMetadata, v string) {
		m.BoreholeNumber = v
	}},
	{labels: []string{"Method of Boring", "Boring Method"}, apply: func(_ *docParser, m *ReportMetadata, v string) {
		m.BoringMethod = v
	}},
	{labels: []string{"Diameter of Hole", "Hole Diameter"}, apply: func(_ *docParser, m *ReportMetadata, v string) {
		m.HoleDiameterMM = parseOptionalFloat(v)
	}},
	{labels: []string{"Termination Depth"}, apply: func(_ *docParser, m *ReportMetadata, v string) {
		m.TerminationDepth = parseOptionalFloat(v)
	}},
	{labels: []string{"Standing Water Level"}, apply: func(_ *docParser, m *ReportMetadata, v string) {
		m.StandingWaterLevel = parseOptionalFloat(v)
	}},
	{labels: []string{"Date of Commencement", "Commencement Date"}, apply: func(_ *docParser, m *ReportMetadata, v string) {
		m.CommencementDate = v
	}},
	{labels: []string{"Date of Completion", "Completion Date"}, apply: func(_ *docParser, m *ReportMetadata, v string) {
		m.CompletionDate = v
	}},
	{labels: []string{"Coordinates"}, apply: applyCoordinates},
	{labels: []string{"Lab Tests", "Laboratory Tests"}, apply: applyLabTests},
}

// parseMetadata runs the metadata phase: each line is tested against the rule table
// in order until the stratum table header is reached.
func (p *docParser) parseMetadata(m *ReportMetadata) {
	for !p.done() {
		line := p.lines[p.pos]
		if isStratumHeader(line) {
			p.pos++
			return
		}
		p.pos++
	rules:
		for _, rule := range metadataRules {
			for _, label := range rule.labels {
				if value, ok := matchLabel(line, label); ok {
					rule.apply(p, m, value)
					break rules
				}
			}
		}
	}
}

// applyCoordinates picks up easting/northing from a bounded window of continuation
// lines, consuming every line it recognizes so the outer loop never sees them.
func applyCoordinates(p *docParser, m *ReportMetadata, _ string) {
	for i := 0; i < lookaheadWindow; i++ {
		line, ok := p.peek(0)
		if !ok {
			break
		}
		if v, ok := matchLabel(line, "Easting"); ok {
			m.Easting = parseOptionalFloat(v)
		} else if v, ok := matchLabel(line, "E"); ok {
			m.Easting = parseOptionalFloat(v)
		} else if v, ok := matchLabel(line, "Northing"); ok {
			m.Northing = parseOptionalFloat(v)
		} else if v, ok := matchLabel(line, "N"); ok {
			m.Northing = parseOptionalFloat(v)
		} else {
			break
		}
		p.consumeNext()
	}
}

// applyLabTests reads SPT / vane shear counts from the lines following a
// `Lab Tests:` header.
func applyLabTests(p *docParser, m *ReportMetadata, _ string) {
	for i := 0; i < lookaheadWindow; i++ {
		line, ok := p.peek(0)
		if !ok {
			break
		}
		if v, ok := matchLabel(line, "SPT"); ok {
			m.SPTTestCount = parseOptionalInt(v)
		} else if v, ok := matchLabel(line, "Vane Shear"); ok {
			m.VSTestCount = parseOptionalInt(v)
		} else if v, ok := matchLabel(line, "VS"); ok {
			m.VSTestCount = parseOptionalInt(v)
		} else {
			break
		}
		p.consumeNext()
	}
}

// consumeNext removes the line right under the cursor, advancing the document past
// a continuation value picked up by lookahead.
func (p *docParser) consumeNext() {
	if p.pos >= len(p.lines) {
		return
	}
	p.lines = append(p.lines[:p.pos], p.lines[p.pos+1:]...)
}

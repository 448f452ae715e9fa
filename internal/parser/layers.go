package parser

import "strings"

// detailRule attributes one layer detail line to a field of the current layer,
// using the same label-prefix matching as the metadata phase.
type detailRule struct {
	labels []string
	apply  func(l *SoilLayer, value string)
}

var detailRules = []detailRule{
	{labels: []string{"Description"}, apply: func(l *SoilLayer, v string) {
		l.Description = v
	}},
	{labels: []string{"Sample ID", "Sample No"}, apply: func(l *SoilLayer, v string) {
		l.SampleID = v
	}},
	{labels: []string{"Sample Type"}, apply: func(l *SoilLayer, v string) {
		l.SampleType = v
	}},
	{labels: []string{"Sample Depth"}, apply: func(l *SoilLayer, v string) {
		l.SampleDepth = parseOptionalFloat(v)
	}},
	{labels: []string{"SPT Blows", "Blows"}, apply: func(l *SoilLayer, v string) {
		l.SPTBlows = parseBlowCounts(v)
	}},
	{labels: []string{"N-Value", "N Value"}, apply: func(l *SoilLayer, v string) {
		l.NValue = parseOptionalFloat(v)
	}},
	{labels: []string{"Run Length"}, apply: func(l *SoilLayer, v string) {
		l.RunLength = parseOptionalFloat(v)
	}},
	{labels: []string{"Total Core Length"}, apply: func(l *SoilLayer, v string) {
		l.TotalCoreLengthCM = parseOptionalFloat(v)
	}},
	{labels: []string{"TCR %", "TCR"}, apply: func(l *SoilLayer, v string) {
		l.TCRPercent = parseOptionalFloat(v)
	}},
	{labels: []string{"RQD Length"}, apply: func(l *SoilLayer, v string) {
		l.RQDLengthCM = parseOptionalFloat(v)
	}},
	{labels: []string{"RQD %", "RQD"}, apply: func(l *SoilLayer, v string) {
		l.RQDPercent = parseOptionalFloat(v)
	}},
	{labels: []string{"Colour of Return Water", "Return Water Colour"}, apply: func(l *SoilLayer, v string) {
		l.ReturnWaterColour = v
	}},
	{labels: []string{"Water Loss"}, apply: func(l *SoilLayer, v string) {
		l.WaterLoss = v
	}},
	{labels: []string{"Diameter of Borehole"}, apply: func(l *SoilLayer, v string) {
		l.BoreholeDiameter = parseOptionalFloat(v)
	}},
	{labels: []string{"Remarks"}, apply: func(l *SoilLayer, v string) {
		l.Remarks = v
	}},
}

// parseLayers runs the layer-table phase. A new layer begins at every line leading
// with a decimal depth; lines until the next depth line belong to the current layer.
// Malformed layers keep whatever fields were extracted rather than being dropped.
func (p *docParser) parseLayers() []SoilLayer {
	var layers []SoilLayer
	var current *SoilLayer
	var fallbackDesc string

	closeCurrent := func() {
		if current == nil {
			return
		}
		if current.Description == "" {
			current.Description = fallbackDesc
		}
		layers = append(layers, *current)
		current = nil
	}

	for !p.done() {
		line := p.lines[p.pos]
		if isTerminalMarker(line) {
			// Leave the marker for the trailer phase.
			break
		}
		p.pos++

		if layerStartRegex.MatchString(line) {
			closeCurrent()
			layer, desc := parseLayerLine(line)
			current = &layer
			fallbackDesc = desc
			continue
		}

		if current == nil {
			continue
		}
		for _, rule := range detailRules {
			matched := false
			for _, label := range rule.labels {
				if value, ok := matchLabel(line, label); ok {
					rule.apply(current, value)
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
	}
	closeCurrent()
	return layers
}

// parseLayerLine reads `depth_from depth_to thickness <description...>`. The
// trailing text is returned separately: it only becomes the description if no
// explicit description detail line follows.
func parseLayerLine(line string) (SoilLayer, string) {
	fields := strings.Fields(line)
	var layer SoilLayer
	if v := parseOptionalFloat(fields[0]); v != nil {
		layer.DepthFrom = *v
	}
	if len(fields) > 1 {
		if v := parseOptionalFloat(fields[1]); v != nil {
			layer.DepthTo = *v
		}
	}
	if len(fields) > 2 {
		if v := parseOptionalFloat(fields[2]); v != nil {
			layer.Thickness = *v
		}
	}
	desc := ""
	if len(fields) > 3 {
		desc = strings.Join(fields[3:], " ")
	}
	return layer, desc
}

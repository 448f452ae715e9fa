package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/soilworks/borelog-registry/internal/parser"
)

const sheetName = "Borelog"

var stratumHeaders = []string{
	"From (m)", "To (m)", "Thickness (m)", "Description",
	"Sample ID", "Sample Type", "Sample Depth (m)",
	"N-Value", "TCR %", "RQD %",
}

// BuildWorkbook renders a parsed borehole document as a spreadsheet for field
// engineers who still review logs in Excel.
func BuildWorkbook(title string, doc *parser.Document) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
	})
	f.SetCellValue(sheetName, "A1", title)
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))

	row := writeMetadata(f, &doc.Metadata, 4)
	row = writeStratumTable(f, doc.Layers, row+1)
	writeCoreQuality(f, doc.CoreQuality, row+1)

	return f, nil
}

func writeMetadata(f *excelize.File, meta *parser.ReportMetadata, row int) int {
	labelStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})

	fields := []struct {
		label string
		value any
	}{
		{"Project", meta.ProjectName},
		{"Job Code", meta.JobCode},
		{"Location", meta.Location},
		{"Borehole No", meta.BoreholeNumber},
		{"Boring Method", meta.BoringMethod},
		{"Termination Depth (m)", floatOrBlank(meta.TerminationDepth)},
		{"Standing Water Level (m)", floatOrBlank(meta.StandingWaterLevel)},
		{"Commenced", meta.CommencementDate},
		{"Completed", meta.CompletionDate},
	}

	for _, field := range fields {
		if field.value == "" || field.value == nil {
			continue
		}
		labelCell, _ := excelize.CoordinatesToCellName(1, row)
		valueCell, _ := excelize.CoordinatesToCellName(2, row)
		f.SetCellValue(sheetName, labelCell, field.label)
		f.SetCellStyle(sheetName, labelCell, labelCell, labelStyle)
		f.SetCellValue(sheetName, valueCell, field.value)
		row++
	}
	return row
}

func writeStratumTable(f *excelize.File, layers []parser.SoilLayer, row int) int {
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})

	for col, header := range stratumHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}
	row++

	for _, l := range layers {
		values := []any{
			l.DepthFrom, l.DepthTo, l.Thickness, l.Description,
			l.SampleID, l.SampleType, floatOrBlank(l.SampleDepth),
			floatOrBlank(l.NValue), floatOrBlank(l.TCRPercent), floatOrBlank(l.RQDPercent),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if value != nil && value != "" {
				f.SetCellValue(sheetName, cell, value)
			}
		}
		row++
	}

	f.SetColWidth(sheetName, "D", "D", 40)
	return row
}

func writeCoreQuality(f *excelize.File, cq *parser.CoreQualitySummary, row int) {
	if cq == nil {
		return
	}
	labelCell, _ := excelize.CoordinatesToCellName(1, row)
	f.SetCellValue(sheetName, labelCell, "Core Quality Summary")

	if cq.TCRPercent != nil {
		cell, _ := excelize.CoordinatesToCellName(1, row+1)
		f.SetCellValue(sheetName, cell, fmt.Sprintf("TCR: %.1f%%", *cq.TCRPercent))
	}
	if cq.RQDPercent != nil {
		cell, _ := excelize.CoordinatesToCellName(1, row+2)
		f.SetCellValue(sheetName, cell, fmt.Sprintf("RQD: %.1f%%", *cq.RQDPercent))
	}
}

func floatOrBlank(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

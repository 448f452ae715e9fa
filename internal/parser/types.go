package parser

import "encoding/json"

// RemarkStatus tags a trailer sample remark.
type RemarkStatus string

const (
	RemarkReceived    RemarkStatus = "RECEIVED"
	RemarkNotReceived RemarkStatus = "NOT_RECEIVED"
)

// ReportMetadata holds the header fields of a borehole report. Only ProjectName and
// JobCode are mandatory; every other field may be absent in hand-typed reports.
type ReportMetadata struct {
	ProjectName        string   `json:"project_name"`
	JobCode            string   `json:"job_code"`
	Location           string   `json:"location,omitempty"`
	BoreholeNumber     string   `json:"borehole_number,omitempty"`
	BoringMethod       string   `json:"boring_method,omitempty"`
	HoleDiameterMM     *float64 `json:"hole_diameter_mm,omitempty"`
	TerminationDepth   *float64 `json:"termination_depth,omitempty"`
	StandingWaterLevel *float64 `json:"standing_water_level,omitempty"`
	CommencementDate   string   `json:"commencement_date,omitempty"`
	CompletionDate     string   `json:"completion_date,omitempty"`
	Easting            *float64 `json:"easting,omitempty"`
	Northing           *float64 `json:"northing,omitempty"`
	SPTTestCount       *int     `json:"spt_test_count,omitempty"`
	VSTestCount        *int     `json:"vs_test_count,omitempty"`
}

// SoilLayer is one depth interval of the stratum table together with the optional
// sample fields collected from its detail lines.
type SoilLayer struct {
	DepthFrom   float64 `json:"depth_from"`
	DepthTo     float64 `json:"depth_to"`
	Thickness   float64 `json:"thickness"`
	Description string  `json:"description"`

	SampleID          string   `json:"sample_id,omitempty"`
	SampleType        string   `json:"sample_type,omitempty"`
	SampleDepth       *float64 `json:"sample_depth,omitempty"`
	SPTBlows          []*float64 `json:"spt_blows,omitempty"`
	NValue            *float64 `json:"n_value,omitempty"`
	RunLength         *float64 `json:"run_length,omitempty"`
	TotalCoreLengthCM *float64 `json:"total_core_length_cm,omitempty"`
	TCRPercent        *float64 `json:"tcr_percent,omitempty"`
	RQDLengthCM       *float64 `json:"rqd_length_cm,omitempty"`
	RQDPercent        *float64 `json:"rqd_percent,omitempty"`
	ReturnWaterColour string   `json:"return_water_colour,omitempty"`
	WaterLoss         string   `json:"water_loss,omitempty"`
	BoreholeDiameter  *float64 `json:"borehole_diameter,omitempty"`
	Remarks           string   `json:"remarks,omitempty"`
}

// SampleRemark records a trailer statement about a shipped sample.
type SampleRemark struct {
	SampleID string       `json:"sample_id"`
	Status   RemarkStatus `json:"status"`
}

// CoreQualitySummary is the aggregate core recovery block at the end of a report.
type CoreQualitySummary struct {
	TCRPercent *float64 `json:"tcr_percent,omitempty"`
	RQDPercent *float64 `json:"rqd_percent,omitempty"`
}

// Document is the structured form of one parsed borehole report.
type Document struct {
	Metadata    ReportMetadata      `json:"metadata"`
	Layers      []SoilLayer         `json:"layers"`
	Remarks     []SampleRemark      `json:"remarks,omitempty"`
	CoreQuality *CoreQualitySummary `json:"core_quality,omitempty"`
}

func (d Document) String() string {
	val, _ := json.Marshal(d)
	return string(val)
}

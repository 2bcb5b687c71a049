package internal

// TextFragment is one positioned string on a PDF page, as delivered by the
// text-layout provider. Coordinates use the PDF convention: origin at the
// bottom-left corner, so a larger Y means higher on the page.
type TextFragment struct {
	Text string
	X    float64
	Y    float64
}

// Shift is one recorded duty service. Machine-extracted shifts always carry
// date, start/end times and the source file name; manual entries may carry
// only a date, an hour amount and a free-text description.
type Shift struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"` // DD/MM/YYYY
	StartTime   string  `json:"startTime,omitempty"`
	EndTime     string  `json:"endTime,omitempty"`
	Hours       float64 `json:"hours"`
	FileName    string  `json:"fileName,omitempty"`
	Description string  `json:"description,omitempty"`
	IsManual    bool    `json:"isManual"`
}

type MonthData struct {
	MonthYear  string  `json:"monthYear"` // MM/YYYY
	TotalHours float64 `json:"totalHours"`
	Shifts     []Shift `json:"shifts"`
}

// ProcessResult is the outcome of one parse run over a batch of roster files.
// A new run replaces it wholesale; manual entries are merged into a copy at
// presentation time, never into this value.
type ProcessResult struct {
	Months       map[string]*MonthData `json:"months"`
	DetectedName string                `json:"detectedName,omitempty"`
	TargetSearch string                `json:"targetSearch"`
}

func NewProcessResult(targetSearch string) *ProcessResult {
	return &ProcessResult{Months: map[string]*MonthData{}, TargetSearch: targetSearch}
}

// LLMShift is one shift as reported by the generative-model extraction path.
// Dates use ISO form there, unlike the roster's DD/MM/YYYY.
type LLMShift struct {
	Date        string  `json:"date"` // YYYY-MM-DD
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	Description string  `json:"description,omitempty"`
	HoursWorked float64 `json:"hoursWorked"`
}

type AnalysisSummary struct {
	PersonName  string     `json:"personName"`
	Shifts      []LLMShift `json:"shifts"`
	TotalHours  float64    `json:"totalHours"`
	MonthlyGoal float64    `json:"monthlyGoal"`
	Balance     float64    `json:"balance"`
}

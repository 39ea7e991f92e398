package domain

import "time"

// DocumentType is a classification label from the fixed candidate set.
// Unknown labels are still valid values; they only lose the curated
// directory mapping and fall back to a pluralized name.
type DocumentType string

const (
	TypeInvoice  DocumentType = "Invoice"
	TypeProtocol DocumentType = "Protocol"
	TypeReport   DocumentType = "Report"
)

var labelToDir = map[DocumentType]string{
	TypeInvoice:  "Invoices",
	TypeProtocol: "Protocols",
	TypeReport:   "Reports",
}

// CandidateLabels returns the label set handed to the classifier,
// in a stable order.
func CandidateLabels() []DocumentType {
	return []DocumentType{TypeInvoice, TypeProtocol, TypeReport}
}

// DirectoryName maps a label to its archive directory. Labels outside the
// candidate set pluralize to label+"s", which may create branches outside
// the pre-created tree.
func (t DocumentType) DirectoryName() string {
	if dir, ok := labelToDir[t]; ok {
		return dir
	}
	return string(t) + "s"
}

// Classification is the top-ranked classifier result for one document.
type Classification struct {
	Label      DocumentType `json:"label"`
	Confidence float64      `json:"confidence"`
}

type SortStatus string

const (
	StatusMoved   SortStatus = "moved"
	StatusSkipped SortStatus = "skipped"
	StatusFailed  SortStatus = "failed"
)

// SortOutcome describes what happened to one input file in one poll cycle.
// Skipped files stay in the input directory and are retried next cycle.
type SortOutcome struct {
	Source     string       `json:"source"`
	Target     string       `json:"target,omitempty"`
	Label      DocumentType `json:"label,omitempty"`
	Confidence float64      `json:"confidence,omitempty"`
	Status     SortStatus   `json:"status"`
	Reason     string       `json:"reason,omitempty"`
}

// SortRecord is the persisted form of an outcome for the sort history.
type SortRecord struct {
	ID         string       `json:"id"`
	Filename   string       `json:"filename"`
	Source     string       `json:"source"`
	Target     string       `json:"target,omitempty"`
	Label      DocumentType `json:"label,omitempty"`
	Confidence float64      `json:"confidence"`
	Status     SortStatus   `json:"status"`
	Reason     string       `json:"reason,omitempty"`
	SortedAt   time.Time    `json:"sorted_at"`
}

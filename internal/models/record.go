package models

// Record is a loosely typed row from the external record store
type Record struct {
	ID          string         `json:"id" yaml:"id"`
	Fields      map[string]any `json:"fields" yaml:"fields"`
	CreatedTime string         `json:"createdTime,omitempty" yaml:"createdTime,omitempty"`
}

// Diagnostic is a data-quality finding raised while mapping records
type Diagnostic struct {
	Table    string `json:"table" yaml:"table"`
	RecordID string `json:"recordId" yaml:"record_id"`
	Field    string `json:"field" yaml:"field"`
	Message  string `json:"message" yaml:"message"`
}

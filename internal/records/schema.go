// Package records defines the fixed catalogue record schema for slide
// metadata and assembles records from model output, filename identifiers and
// static defaults.
package records

// Record is one catalogue entry in the EMu/EAD import schema. Every fixed
// schema field is always serialized, even when empty: downstream import
// tooling expects the complete key set. The trailing metadata fields describe
// the processing of the item, not the slide itself.
type Record struct {
	ColDepartment         string `json:"ColDepartment"`
	PhotoCollectionRef    string `json:"PhoPhotoCollectionRef.irn"`
	RepositoryRef         string `json:"EADRepositoryRef.irn"`
	ColObjectType         string `json:"ColObjectType"`
	PhoRecordLevel        string `json:"PhoRecordLevel"`
	EADLevelAttribute     string `json:"EADLevelAttribute"`
	ColObjectStatus       string `json:"ColObjectStatus"`
	PhoRecordStatus       string `json:"PhoRecordStatus"`
	EADUnitTitle          string `json:"EADUnitTitle"`
	EADUnitID             string `json:"EADUnitID"`
	EADIdentifier         string `json:"EADIdentifier"`
	ParentRecordRef       string `json:"ColParentRecordRef.irn"`
	EADScopeAndContent    string `json:"EADScopeAndContent"`
	EADExtent             string `json:"EADExtent_tab"`
	EADUnitDate           string `json:"EADUnitDate"`
	EADUnitDateEarliest   string `json:"EADUnitDateEarliest"`
	EADUnitDateLatest     string `json:"EADUnitDateLatest"`
	OriginationRef        string `json:"EADOriginationRef_tab.irn"`
	EADPhysicalTechnical  string `json:"EADPhysicalTechnical"`
	CurrentLocationRef    string `json:"LocCurrentLocationRef.irn"`
	AdmPublishWebNoPasswd string `json:"AdmPublishWebNoPassword"`
	PhoMedia              string `json:"PhoMedia_tab"`
	PhoFormat             string `json:"PhoFormat_tab"`

	Filename   string `json:"filename,omitempty"`
	Status     string `json:"status,omitempty"`
	Error      string `json:"error,omitempty"`
	ParseError bool   `json:"parse_error,omitempty"`
}

// Item processing status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// schemaFields maps every fixed schema field name to its slot in a Record,
// in serialization order
var schemaFields = []struct {
	Name string
	ptr  func(*Record) *string
}{
	{"ColDepartment", func(r *Record) *string { return &r.ColDepartment }},
	{"PhoPhotoCollectionRef.irn", func(r *Record) *string { return &r.PhotoCollectionRef }},
	{"EADRepositoryRef.irn", func(r *Record) *string { return &r.RepositoryRef }},
	{"ColObjectType", func(r *Record) *string { return &r.ColObjectType }},
	{"PhoRecordLevel", func(r *Record) *string { return &r.PhoRecordLevel }},
	{"EADLevelAttribute", func(r *Record) *string { return &r.EADLevelAttribute }},
	{"ColObjectStatus", func(r *Record) *string { return &r.ColObjectStatus }},
	{"PhoRecordStatus", func(r *Record) *string { return &r.PhoRecordStatus }},
	{"EADUnitTitle", func(r *Record) *string { return &r.EADUnitTitle }},
	{"EADUnitID", func(r *Record) *string { return &r.EADUnitID }},
	{"EADIdentifier", func(r *Record) *string { return &r.EADIdentifier }},
	{"ColParentRecordRef.irn", func(r *Record) *string { return &r.ParentRecordRef }},
	{"EADScopeAndContent", func(r *Record) *string { return &r.EADScopeAndContent }},
	{"EADExtent_tab", func(r *Record) *string { return &r.EADExtent }},
	{"EADUnitDate", func(r *Record) *string { return &r.EADUnitDate }},
	{"EADUnitDateEarliest", func(r *Record) *string { return &r.EADUnitDateEarliest }},
	{"EADUnitDateLatest", func(r *Record) *string { return &r.EADUnitDateLatest }},
	{"EADOriginationRef_tab.irn", func(r *Record) *string { return &r.OriginationRef }},
	{"EADPhysicalTechnical", func(r *Record) *string { return &r.EADPhysicalTechnical }},
	{"LocCurrentLocationRef.irn", func(r *Record) *string { return &r.CurrentLocationRef }},
	{"AdmPublishWebNoPassword", func(r *Record) *string { return &r.AdmPublishWebNoPasswd }},
	{"PhoMedia_tab", func(r *Record) *string { return &r.PhoMedia }},
	{"PhoFormat_tab", func(r *Record) *string { return &r.PhoFormat }},
}

// identifierFields are populated from the filename's archival reference when
// the model does not supply them
var identifierFields = map[string]bool{
	"EADUnitID":     true,
	"EADIdentifier": true,
}

// FieldNames returns the fixed schema field names in serialization order.
func FieldNames() []string {
	names := make([]string, 0, len(schemaFields))
	for _, f := range schemaFields {
		names = append(names, f.Name)
	}
	return names
}

// Field returns the value of the named schema field, and whether the name is
// part of the fixed schema.
func (r *Record) Field(name string) (string, bool) {
	for _, f := range schemaFields {
		if f.Name == name {
			return *f.ptr(r), true
		}
	}
	return "", false
}

package batch

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/graemejk/StA-Slides/internal/records"
	"github.com/parquet-go/parquet-go"
)

// Output formats for the batch result set
const (
	FormatJSON    = "json"
	FormatParquet = "parquet"
)

// WriteResults serializes the result set to path in the given format.
func WriteResults(path, format string, results []records.Record) error {
	switch format {
	case FormatJSON:
		return writeJSON(path, results)
	case FormatParquet:
		return writeParquet(path, results)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func writeJSON(path string, results []records.Record) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}

	return nil
}

// parquetRow is the flat column layout for parquet export. Dotted schema
// names are not valid parquet column names, so the irn reference columns use
// snake case.
type parquetRow struct {
	Filename              string `parquet:"filename"`
	Status                string `parquet:"status"`
	Error                 string `parquet:"error"`
	ParseError            bool   `parquet:"parse_error"`
	ColDepartment         string `parquet:"col_department"`
	PhotoCollectionRef    string `parquet:"pho_photo_collection_ref_irn"`
	RepositoryRef         string `parquet:"ead_repository_ref_irn"`
	ColObjectType         string `parquet:"col_object_type"`
	PhoRecordLevel        string `parquet:"pho_record_level"`
	EADLevelAttribute     string `parquet:"ead_level_attribute"`
	ColObjectStatus       string `parquet:"col_object_status"`
	PhoRecordStatus       string `parquet:"pho_record_status"`
	EADUnitTitle          string `parquet:"ead_unit_title"`
	EADUnitID             string `parquet:"ead_unit_id"`
	EADIdentifier         string `parquet:"ead_identifier"`
	ParentRecordRef       string `parquet:"col_parent_record_ref_irn"`
	EADScopeAndContent    string `parquet:"ead_scope_and_content"`
	EADExtent             string `parquet:"ead_extent_tab"`
	EADUnitDate           string `parquet:"ead_unit_date"`
	EADUnitDateEarliest   string `parquet:"ead_unit_date_earliest"`
	EADUnitDateLatest     string `parquet:"ead_unit_date_latest"`
	OriginationRef        string `parquet:"ead_origination_ref_tab_irn"`
	EADPhysicalTechnical  string `parquet:"ead_physical_technical"`
	CurrentLocationRef    string `parquet:"loc_current_location_ref_irn"`
	AdmPublishWebNoPasswd string `parquet:"adm_publish_web_no_password"`
	PhoMedia              string `parquet:"pho_media_tab"`
	PhoFormat             string `parquet:"pho_format_tab"`
}

func writeParquet(path string, results []records.Record) error {
	rows := make([]parquetRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, parquetRow{
			Filename:              r.Filename,
			Status:                r.Status,
			Error:                 r.Error,
			ParseError:            r.ParseError,
			ColDepartment:         r.ColDepartment,
			PhotoCollectionRef:    r.PhotoCollectionRef,
			RepositoryRef:         r.RepositoryRef,
			ColObjectType:         r.ColObjectType,
			PhoRecordLevel:        r.PhoRecordLevel,
			EADLevelAttribute:     r.EADLevelAttribute,
			ColObjectStatus:       r.ColObjectStatus,
			PhoRecordStatus:       r.PhoRecordStatus,
			EADUnitTitle:          r.EADUnitTitle,
			EADUnitID:             r.EADUnitID,
			EADIdentifier:         r.EADIdentifier,
			ParentRecordRef:       r.ParentRecordRef,
			EADScopeAndContent:    r.EADScopeAndContent,
			EADExtent:             r.EADExtent,
			EADUnitDate:           r.EADUnitDate,
			EADUnitDateEarliest:   r.EADUnitDateEarliest,
			EADUnitDateLatest:     r.EADUnitDateLatest,
			OriginationRef:        r.OriginationRef,
			EADPhysicalTechnical:  r.EADPhysicalTechnical,
			CurrentLocationRef:    r.CurrentLocationRef,
			AdmPublishWebNoPasswd: r.AdmPublishWebNoPasswd,
			PhoMedia:              r.PhoMedia,
			PhoFormat:             r.PhoFormat,
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}

	writer := parquet.NewGenericWriter[parquetRow](f)
	if _, err := writer.Write(rows); err != nil {
		f.Close()
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}

	return f.Close()
}

// PrintSummary reports the final tally of the run on stdout.
func PrintSummary(results []records.Record) {
	successful := 0
	failed := 0
	flagged := 0
	for _, r := range results {
		switch r.Status {
		case records.StatusSuccess:
			successful++
		default:
			failed++
		}
		if r.ParseError {
			flagged++
		}
	}

	fmt.Println("\n========================================")
	fmt.Println("Batch Summary")
	fmt.Println("========================================")
	fmt.Printf("Total processed:    %d\n", len(results))
	fmt.Printf("Successful:         %d\n", successful)
	fmt.Printf("Failed:             %d\n", failed)
	fmt.Printf("Needs review:       %d\n", flagged)
	fmt.Println("========================================")
}

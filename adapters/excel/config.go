package excel

// ReaderConfig holds configuration for the file data source
type ReaderConfig struct {
	FilePath string `json:"file_path"`
	// Sheet selects the worksheet of an .xlsx file; empty means the first sheet.
	Sheet string `json:"sheet"`
}

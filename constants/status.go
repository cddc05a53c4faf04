package constants

// Response messages returned by the HTTP surface. Clients match on these
// exact strings, so keep them stable.
const (
	MsgUploaded         = "File uploaded and data saved"
	MsgNoFile           = "No file uploaded"
	MsgInvalidFileType  = "Error: Only PDF, PNG, JPEG files are allowed!"
	MsgFileTooLarge     = "File too large"
	MsgFieldsNotFound   = "Error extracting name or email"
	MsgExtractionFailed = "Error parsing PDF"
	MsgSaveFailed       = "Error saving data"
	MsgListFailed       = "Error fetching forms"
)

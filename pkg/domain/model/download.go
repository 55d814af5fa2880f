package model

import (
	"fmt"
	"strings"
)

// DownloadedFilePrefix is prepended to the last path segment of a remote file path to form the
// local file name.
const DownloadedFilePrefix = "downloaded_"

// PrepareRequest asks the remote service to build a product file for download.
type PrepareRequest struct {
	User            string    `json:"User"`
	Password        string    `json:"Password" masq:"secret"`
	Product         string    `json:"Product"`
	PublicationYear string    `json:"PublicationYear"`
	Language        string    `json:"Language"`
	StartDate       Timestamp `json:"StartDate"`
	EndDate         Timestamp `json:"EndDate"`
}

// PrepareResponse is returned to the caller of the prepare operation.
type PrepareResponse struct {
	ErrorMessage []string `json:"ErrorMessage"`
	FilePath     string   `json:"FilePath"`
}

// GetDownloadRequest asks the remote service for the bytes of a prepared file.
type GetDownloadRequest struct {
	User     string `json:"User"`
	Password string `json:"Password" masq:"secret"`
	FilePath string `json:"FilePath"`
}

// PrepareCall holds the parameters sent to the remote PrepareDownloadFile operation.
// StartDate and EndDate are already ISO-8601 text.
type PrepareCall struct {
	User            string
	Password        string `masq:"secret"`
	Product         string
	PublicationYear string
	Language        string
	StartDate       string
	EndDate         string
}

// PrepareResult is the reply of the remote PrepareDownloadFile operation.
type PrepareResult struct {
	ErrorMessage []string
	FilePath     string
}

// GetDownloadCall holds the parameters sent to the remote GetDownloadFile operation.
type GetDownloadCall struct {
	User     string
	Password string `masq:"secret"`
	FilePath string
}

// DownloadResult describes a payload stored by a file sink.
type DownloadResult struct {
	FileName string // Derived file name, e.g. downloaded_report.pdf
	Location string // Where the sink put it (local path or gs:// URL)
	Size     int64  // Payload size in bytes
}

// Message is the confirmation returned to the caller.
func (x *DownloadResult) Message() string {
	return fmt.Sprintf("File saved as '%s'", x.FileName)
}

// DownloadedFileName derives the local file name from a remote file path. Only "/" separates
// segments; a path ending in "/" yields the bare prefix.
func DownloadedFileName(filePath string) string {
	return DownloadedFilePrefix + filePath[strings.LastIndex(filePath, "/")+1:]
}

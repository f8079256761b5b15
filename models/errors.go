package models

import "fmt"

// UnsupportedFileTypeError is returned for uploads whose extension has no extractor.
type UnsupportedFileTypeError struct {
	Ext string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("Unsupported file type: %s. Please upload a PDF or text file.", e.Ext)
}

// ExtractionError covers unreadable PDFs, empty model replies and replies that
// are not JSON even after recovery.
type ExtractionError struct {
	Msg string
	Err error
}

func NewExtractionError(msg string, err error) *ExtractionError {
	return &ExtractionError{Msg: msg, Err: err}
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// UploadAdmissionError rejects a request before any file is processed (400).
type UploadAdmissionError struct {
	Reason  string
	Details string
}

func (e *UploadAdmissionError) Error() string {
	if e.Details == "" {
		return e.Reason
	}
	return e.Reason + ": " + e.Details
}

// TransportError is a failure reading the request or staging its files (500).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

package filestore

import (
	"io"
)

// FileManager abstracts where dataset files and generated reports live.
type FileManager interface {
	Create(path, fileName string, reader io.Reader) error
	Get(path, fileName string) (io.ReadCloser, error)
	GetObjectSize(path, fileName string) (int64, error)
	ListFiles(path string) []string

	GetDatasetDir() string
	GetDatasetFilePathAndName(datasetFile string) (string, string)
	GetReportsDir() string
	GetReportFilePathAndName(reportFile string) (string, string)
}

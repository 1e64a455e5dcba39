package store

import (
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"ecomdash/filestore"
	"ecomdash/metrics"
	"ecomdash/model"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DefaultDatasetBaseURL Public archive serving the Olist CSV files.
const DefaultDatasetBaseURL = "https://media.githubusercontent.com/media/contekan-si-al/Proyek-Analisis-Data-E-Commerce/main/data/"

// DatasetLoader fetches dataset CSVs over HTTP and keeps a write-through
// copy on the file manager so every file downloads at most once.
type DatasetLoader struct {
	baseURL     string
	client      *http.Client
	diskManager filestore.FileManager

	// Progress, when set, receives a writer per download sized by the
	// response content length. Scripts use it to render progress bars.
	Progress func(datasetName string, totalBytes int64) io.Writer
}

func NewDatasetLoader(baseURL string, timeout time.Duration, diskManager filestore.FileManager) *DatasetLoader {
	return &DatasetLoader{
		baseURL:     baseURL,
		client:      &http.Client{Timeout: timeout},
		diskManager: diskManager,
	}
}

func (dl *DatasetLoader) GetDatasetURL(name string) (string, error) {
	fileName, exists := model.DatasetFiles[name]
	if !exists {
		return "", errors.Errorf("unknown dataset %s", name)
	}

	baseURL := dl.baseURL
	if !strings.HasSuffix(baseURL, "/") {
		baseURL = baseURL + "/"
	}
	return baseURL + fileName, nil
}

// Download Fetches one dataset CSV and writes it to the dataset directory.
func (dl *DatasetLoader) Download(name string) error {
	url, err := dl.GetDatasetURL(name)
	if err != nil {
		return err
	}

	logCtx := log.WithFields(log.Fields{"dataset": name, "url": url})
	resp, err := dl.client.Get(url)
	if err != nil {
		return errors.Wrapf(err, "failed to download dataset %s", name)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("failed to download dataset %s: status %s", name, resp.Status)
	}

	var body io.Reader = resp.Body
	if dl.Progress != nil {
		body = io.TeeReader(body, dl.Progress(name, resp.ContentLength))
	}

	path, fileName := dl.diskManager.GetDatasetFilePathAndName(model.DatasetFiles[name])
	if err := dl.diskManager.Create(path, fileName, body); err != nil {
		return errors.Wrapf(err, "failed to store dataset %s", name)
	}

	if size, sizeErr := dl.diskManager.GetObjectSize(path, fileName); sizeErr == nil {
		metrics.RecordBytesSize(metrics.BytesDatasetFileSize, float64(size))
		logCtx = logCtx.WithField("size_in_bytes", size)
	}
	logCtx.Info("Downloaded dataset.")
	return nil
}

// Open Returns a reader for the dataset CSV, downloading it first when it
// is not on disk yet. Caller should close the returned reader.
func (dl *DatasetLoader) Open(name string) (io.ReadCloser, error) {
	fileName, exists := model.DatasetFiles[name]
	if !exists {
		return nil, errors.Errorf("unknown dataset %s", name)
	}

	path, file := dl.diskManager.GetDatasetFilePathAndName(fileName)
	reader, err := dl.diskManager.Get(path, file)
	if err == nil {
		return reader, nil
	}
	if !os.IsNotExist(err) {
		log.WithError(err).WithField("dataset", name).
			Warn("Failed to open dataset file. Retrying with a fresh download.")
	}

	if err := dl.Download(name); err != nil {
		return nil, err
	}
	reader, err = dl.diskManager.Get(path, file)
	return reader, errors.Wrapf(err, "failed to open dataset %s after download", name)
}

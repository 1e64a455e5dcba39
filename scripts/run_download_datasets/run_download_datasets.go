package main

// Pre-downloads every dataset CSV so the server can start without
// hitting the archive.
// go run run_download_datasets.go --data_dir=/usr/local/var/ecomdash

import (
	"flag"
	"io"
	"time"

	"ecomdash/model"
	serviceDisk "ecomdash/services/disk"
	"ecomdash/store"

	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
)

func main() {
	datasetBaseURL := flag.String("dataset_base_url", store.DefaultDatasetBaseURL, "")
	dataDir := flag.String("data_dir", "/usr/local/var/ecomdash", "")
	downloadTimeoutSecs := flag.Int("download_timeout_secs", 300, "")
	flag.Parse()

	diskManager := serviceDisk.New(*dataDir)
	loader := store.NewDatasetLoader(*datasetBaseURL,
		time.Duration(*downloadTimeoutSecs)*time.Second, diskManager)
	loader.Progress = func(datasetName string, totalBytes int64) io.Writer {
		return progressbar.DefaultBytes(totalBytes, datasetName)
	}

	for _, name := range model.DatasetNames {
		if err := loader.Download(name); err != nil {
			log.WithError(err).WithField("dataset", name).Fatal("Failed to download dataset.")
		}
	}
	log.WithField("data_dir", *dataDir).Info("Downloaded all datasets.")
}

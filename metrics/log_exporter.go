package metrics

import (
	log "github.com/sirupsen/logrus"
	"go.opencensus.io/stats/view"
)

// logExporter Writes aggregated view data to the application log. Stands in
// for a cloud monitoring backend, which this deployment does not have.
type logExporter struct {
	appName string
}

func (exporter *logExporter) ExportView(viewData *view.Data) {
	for _, row := range viewData.Rows {
		fields := log.Fields{"app_name": exporter.appName, "view": viewData.View.Name}
		for _, rowTag := range row.Tags {
			fields[rowTag.Key.Name()] = rowTag.Value
		}

		switch data := row.Data.(type) {
		case *view.CountData:
			fields["count"] = data.Value
		case *view.SumData:
			fields["sum"] = data.Value
		case *view.DistributionData:
			fields["count"] = data.Count
			fields["min"] = data.Min
			fields["max"] = data.Max
			fields["mean"] = data.Mean
		case *view.LastValueData:
			fields["last_value"] = data.Value
		}

		log.WithFields(fields).Debug("Reporting metrics view.")
	}
}

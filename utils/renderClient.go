package utils

import (
	"time"

	"lms/config"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

var renderClient = resty.New().SetTimeout(10 * time.Second)

// QueueCertificateRender asks the external renderer to pre-build the
// certificate PDF so the download link resolves quickly. Best-effort: any
// failure is logged and the certificate response is unaffected.
func QueueCertificateRender(record CertificateRecord) {
	if config.AppConfig == nil || config.AppConfig.CertRendererURL == "" {
		return
	}

	resp, err := renderClient.R().
		SetHeader("Content-Type", "application/json").
		SetBody(record).
		Post(config.AppConfig.CertRendererURL + "/render")
	if err != nil {
		logrus.WithError(err).WithField("certificate", record.CertificateID).
			Warn("Certificate render queue request failed")
		return
	}
	if resp.StatusCode() >= 300 {
		logrus.WithFields(logrus.Fields{
			"certificate": record.CertificateID,
			"status":      resp.StatusCode(),
		}).Warn("Certificate renderer rejected the render request")
	}
}

// Package validator checks export configuration records before they are used.
package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vinforge/forgedfate/internal/models"
)

const (
	MsgServerHostRequired   = "Server host is required"
	MsgPortRequired         = "Valid port number (1-65535) is required"
	MsgPrivilegedPort       = "Port numbers below 1024 may require elevated privileges"
	MsgDataFormat           = "Data format must be one of json, csv, simple"
	MsgElasticsearchURL     = "Elasticsearch URL is required"
	MsgElasticsearchScheme  = "URL should start with http:// or https://"
	MsgBrokerHostRequired   = "MQTT broker host is required"
	MsgNonStandardMQTTPorts = "Standard MQTT ports are 1883 (unencrypted) and 8883 (SSL)"
)

var schemeRe = regexp.MustCompile(`^https?://`)

// Validate returns the errors and warnings of the record. It has no side effects.
func Validate(kind models.DestinationKind, config models.ExportConfig) (models.ValidationResult, error) {
	result := models.ValidationResult{Errors: []string{}, Warnings: []string{}}

	switch cfg := config.(type) {
	case models.StreamConfig:
		if kind != models.KindTCP && kind != models.KindUDP {
			return result, fmt.Errorf("stream configuration cannot be used for %s", kind)
		}
		if strings.TrimSpace(cfg.ServerHost) == "" {
			result.Errors = append(result.Errors, MsgServerHostRequired)
		}
		if !validPort(cfg.ServerPort) {
			result.Errors = append(result.Errors, MsgPortRequired)
		}
		if !cfg.DataFormat.Valid() {
			result.Errors = append(result.Errors, MsgDataFormat)
		}
		if cfg.ServerPort > 0 && cfg.ServerPort < 1024 {
			result.Warnings = append(result.Warnings, MsgPrivilegedPort)
		}
	case models.ElasticsearchConfig:
		if kind != models.KindElasticsearch {
			return result, fmt.Errorf("elasticsearch configuration cannot be used for %s", kind)
		}
		hosts := strings.TrimSpace(cfg.Hosts)
		switch {
		case hosts == "":
			result.Errors = append(result.Errors, MsgElasticsearchURL)
		case !schemeRe.MatchString(cfg.Hosts):
			result.Warnings = append(result.Warnings, MsgElasticsearchScheme)
		}
	case models.MQTTConfig:
		if kind != models.KindMQTT {
			return result, fmt.Errorf("mqtt configuration cannot be used for %s", kind)
		}
		if strings.TrimSpace(cfg.BrokerHost) == "" {
			result.Errors = append(result.Errors, MsgBrokerHostRequired)
		}
		if !validPort(cfg.BrokerPort) {
			result.Errors = append(result.Errors, MsgPortRequired)
		}
		if cfg.BrokerPort != 0 && cfg.BrokerPort != 1883 && cfg.BrokerPort != 8883 {
			result.Warnings = append(result.Warnings, MsgNonStandardMQTTPorts)
		}
	default:
		return result, fmt.Errorf("unsupported configuration %T for %s", config, kind)
	}

	return result, nil
}

func validPort(port int) bool {
	return port >= 1 && port <= 65535
}

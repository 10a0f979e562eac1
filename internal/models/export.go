package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DataFormat is the serialization used by the stream exporters.
type DataFormat string

const (
	DataFormatJSON   DataFormat = "json"
	DataFormatCSV    DataFormat = "csv"
	DataFormatSimple DataFormat = "simple"
)

func (f DataFormat) Valid() bool {
	switch f {
	case DataFormatJSON, DataFormatCSV, DataFormatSimple:
		return true
	default:
		return false
	}
}

// Field is a single named configuration value, as shown to the operator.
type Field struct {
	Name  string
	Value any
}

// ExportConfig is implemented by the configuration record of each destination kind.
type ExportConfig interface {
	IsEnabled() bool
	// Fields returns the record's fields in display order, enabled flag excluded.
	Fields() []Field
}

// StreamConfig configures the tcp and udp exporters.
// Ports are kept as int so out of range values reach the validator.
type StreamConfig struct {
	Enabled    bool       `json:"enabled" yaml:"enabled"`
	ServerHost string     `json:"server_host" yaml:"server_host"`
	ServerPort int        `json:"server_port" yaml:"server_port"`
	DataFormat DataFormat `json:"data_format" yaml:"data_format"`
	UpdateRate uint32     `json:"update_rate" yaml:"update_rate"`
}

func (c StreamConfig) IsEnabled() bool { return c.Enabled }

func (c StreamConfig) Fields() []Field {
	return []Field{
		{Name: "server_host", Value: c.ServerHost},
		{Name: "server_port", Value: c.ServerPort},
		{Name: "data_format", Value: c.DataFormat},
		{Name: "update_rate", Value: c.UpdateRate},
	}
}

type ElasticsearchConfig struct {
	Enabled     bool   `json:"enabled" yaml:"enabled"`
	Hosts       string `json:"hosts" yaml:"hosts"`
	Username    string `json:"username" yaml:"username"`
	Password    string `json:"password" yaml:"password"`
	IndexPrefix string `json:"index_prefix" yaml:"index_prefix"`
	OfflineMode bool   `json:"offline_mode" yaml:"offline_mode"`
}

func (c ElasticsearchConfig) IsEnabled() bool { return c.Enabled }

func (c ElasticsearchConfig) Fields() []Field {
	return []Field{
		{Name: "hosts", Value: c.Hosts},
		{Name: "username", Value: c.Username},
		{Name: "password", Value: c.Password},
		{Name: "index_prefix", Value: c.IndexPrefix},
		{Name: "offline_mode", Value: c.OfflineMode},
	}
}

type MQTTConfig struct {
	Enabled     bool   `json:"enabled" yaml:"enabled"`
	BrokerHost  string `json:"broker_host" yaml:"broker_host"`
	BrokerPort  int    `json:"broker_port" yaml:"broker_port"`
	TopicPrefix string `json:"topic_prefix" yaml:"topic_prefix"`
	Username    string `json:"username" yaml:"username"`
	Password    string `json:"password" yaml:"password"`
}

func (c MQTTConfig) IsEnabled() bool { return c.Enabled }

func (c MQTTConfig) Fields() []Field {
	return []Field{
		{Name: "broker_host", Value: c.BrokerHost},
		{Name: "broker_port", Value: c.BrokerPort},
		{Name: "topic_prefix", Value: c.TopicPrefix},
		{Name: "username", Value: c.Username},
		{Name: "password", Value: c.Password},
	}
}

// ConfigSet holds one configuration record per destination kind.
type ConfigSet struct {
	TCP           StreamConfig        `json:"tcp" yaml:"tcp"`
	UDP           StreamConfig        `json:"udp" yaml:"udp"`
	Elasticsearch ElasticsearchConfig `json:"elasticsearch" yaml:"elasticsearch"`
	MQTT          MQTTConfig          `json:"mqtt" yaml:"mqtt"`
}

func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		Enabled:    false,
		ServerHost: "172.18.18.20",
		ServerPort: 8685,
		DataFormat: DataFormatJSON,
		UpdateRate: 5,
	}
}

func DefaultConfigSet() ConfigSet {
	return ConfigSet{
		TCP: DefaultStreamConfig(),
		UDP: DefaultStreamConfig(),
		Elasticsearch: ElasticsearchConfig{
			Hosts:       "http://localhost:9200",
			IndexPrefix: "kismet",
		},
		MQTT: MQTTConfig{
			BrokerHost:  "localhost",
			BrokerPort:  1883,
			TopicPrefix: "kismet",
		},
	}
}

// Get returns the record of the given kind.
func (s ConfigSet) Get(kind DestinationKind) (ExportConfig, error) {
	switch kind {
	case KindTCP:
		return s.TCP, nil
	case KindUDP:
		return s.UDP, nil
	case KindElasticsearch:
		return s.Elasticsearch, nil
	case KindMQTT:
		return s.MQTT, nil
	default:
		return nil, fmt.Errorf("unknown destination kind: %s", kind)
	}
}

// Enabled returns the kinds whose record is enabled, in display order.
func (s ConfigSet) Enabled() []DestinationKind {
	enabled := make([]DestinationKind, 0, len(Kinds))
	for _, k := range Kinds {
		cfg, _ := s.Get(k)
		if cfg.IsEnabled() {
			enabled = append(enabled, k)
		}
	}
	return enabled
}

// Merge decodes a partial JSON object onto the record of the given kind.
// Keys not present in data keep their current value. Unknown keys are rejected.
func (s *ConfigSet) Merge(kind DestinationKind, data []byte) error {
	var target any
	switch kind {
	case KindTCP:
		target = &s.TCP
	case KindUDP:
		target = &s.UDP
	case KindElasticsearch:
		target = &s.Elasticsearch
	case KindMQTT:
		target = &s.MQTT
	default:
		return fmt.Errorf("unknown destination kind: %s", kind)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(target)
}

// HasField reports whether the record of the given kind has a field with this name.
func (s ConfigSet) HasField(kind DestinationKind, name string) bool {
	if name == "enabled" {
		return kind.Valid()
	}
	cfg, err := s.Get(kind)
	if err != nil {
		return false
	}
	for _, f := range cfg.Fields() {
		if f.Name == name {
			return true
		}
	}
	return false
}

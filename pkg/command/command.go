// Package command renders the command line which runs the exporter for a destination.
package command

import (
	"fmt"
	"strings"

	"github.com/vinforge/forgedfate/internal/models"
)

const (
	DefaultRealtimeBase      = "python kismet_realtime_export.py"
	DefaultElasticsearchBase = "python kismet_elasticsearch_export.py"
)

// Builder renders export command lines. It has no side effects.
type Builder struct {
	realtimeBase      string
	elasticsearchBase string
}

type Option func(*Builder)

// WithRealtimeBase sets the invocation used by the tcp, udp and mqtt exporters.
func WithRealtimeBase(base string) Option {
	return func(b *Builder) {
		if base != "" {
			b.realtimeBase = base
		}
	}
}

// WithElasticsearchBase sets the invocation used by the elasticsearch exporter.
func WithElasticsearchBase(base string) Option {
	return func(b *Builder) {
		if base != "" {
			b.elasticsearchBase = base
		}
	}
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		realtimeBase:      DefaultRealtimeBase,
		elasticsearchBase: DefaultElasticsearchBase,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the command line for the record. The enabled flag plays no part.
// Credentials are rendered verbatim.
func (b *Builder) Build(kind models.DestinationKind, config models.ExportConfig) (string, error) {
	var sb strings.Builder

	switch cfg := config.(type) {
	case models.StreamConfig:
		if kind != models.KindTCP && kind != models.KindUDP {
			return "", fmt.Errorf("stream configuration cannot be used for %s", kind)
		}
		sb.WriteString(b.realtimeBase)
		fmt.Fprintf(&sb, " --export-type %s", kind)
		fmt.Fprintf(&sb, " --server-host %s", cfg.ServerHost)
		fmt.Fprintf(&sb, " --server-port %d", cfg.ServerPort)
		fmt.Fprintf(&sb, " --data-format %s", cfg.DataFormat)
		fmt.Fprintf(&sb, " --update-rate %d", cfg.UpdateRate)
	case models.ElasticsearchConfig:
		if kind != models.KindElasticsearch {
			return "", fmt.Errorf("elasticsearch configuration cannot be used for %s", kind)
		}
		sb.WriteString(b.elasticsearchBase)
		fmt.Fprintf(&sb, " --es-hosts \"%s\"", cfg.Hosts)
		if cfg.Username != "" {
			fmt.Fprintf(&sb, " --es-username %s", cfg.Username)
		}
		if cfg.Password != "" {
			fmt.Fprintf(&sb, " --es-password %s", cfg.Password)
		}
		fmt.Fprintf(&sb, " --index-prefix %s", cfg.IndexPrefix)
		if cfg.OfflineMode {
			sb.WriteString(" --offline")
		}
	case models.MQTTConfig:
		if kind != models.KindMQTT {
			return "", fmt.Errorf("mqtt configuration cannot be used for %s", kind)
		}
		sb.WriteString(b.realtimeBase)
		sb.WriteString(" --export-type mqtt")
		fmt.Fprintf(&sb, " --mqtt-host %s", cfg.BrokerHost)
		fmt.Fprintf(&sb, " --mqtt-port %d", cfg.BrokerPort)
		fmt.Fprintf(&sb, " --mqtt-topic-prefix %s", cfg.TopicPrefix)
		if cfg.Username != "" {
			fmt.Fprintf(&sb, " --mqtt-username %s", cfg.Username)
		}
		if cfg.Password != "" {
			fmt.Fprintf(&sb, " --mqtt-password %s", cfg.Password)
		}
	default:
		return "", fmt.Errorf("unsupported configuration %T for %s", config, kind)
	}

	return sb.String(), nil
}

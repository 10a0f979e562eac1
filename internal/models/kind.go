package models

import "fmt"

// DestinationKind identifies an export destination.
type DestinationKind string

const (
	KindTCP           DestinationKind = "tcp"
	KindUDP           DestinationKind = "udp"
	KindElasticsearch DestinationKind = "elasticsearch"
	KindMQTT          DestinationKind = "mqtt"
)

// Kinds lists every destination kind in display order.
var Kinds = []DestinationKind{KindTCP, KindUDP, KindElasticsearch, KindMQTT}

func (k DestinationKind) String() string {
	return string(k)
}

func (k DestinationKind) Valid() bool {
	switch k {
	case KindTCP, KindUDP, KindElasticsearch, KindMQTT:
		return true
	default:
		return false
	}
}

func ParseDestinationKind(s string) (DestinationKind, error) {
	k := DestinationKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown destination kind: %s", s)
	}
	return k, nil
}

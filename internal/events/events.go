// Package events publishes a feed of admin mutations over MQTT so external
// dashboards can react without polling. Players do not subscribe.
package events

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

const publishTimeout = 2 * time.Second

// Event describes one admin mutation, e.g. kind "playlist.updated".
type Event struct {
	Kind string    `json:"kind"`
	ID   string    `json:"id"`
	At   time.Time `json:"at"`
}

type Publisher interface {
	Publish(kind, id string)
}

// Nop drops every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(string, string) {}

type MQTTPublisher struct {
	client mqtt.Client
	topic  string
}

// NewMQTTPublisher connects to the broker and publishes to
// "<prefix>/events".
func NewMQTTPublisher(brokerURL, clientID, prefix string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(5 * time.Second)
	opts.OnConnect = func(mqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("[events] connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Msg("[events] MQTT connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	return &MQTTPublisher{
		client: client,
		topic:  Topic(prefix),
	}, nil
}

func Topic(prefix string) string {
	return strings.TrimRight(prefix, "/") + "/events"
}

// Publish sends the event at QoS 1. Failures are logged and otherwise
// ignored; the feed is advisory.
func (p *MQTTPublisher) Publish(kind, id string) {
	payload, err := json.Marshal(Event{Kind: kind, ID: id, At: time.Now().UTC()})
	if err != nil {
		log.Error().Err(err).Str("kind", kind).Msg("[events] failed to encode event")
		return
	}

	token := p.client.Publish(p.topic, 1, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		log.Warn().Str("kind", kind).Str("id", id).Msg("[events] publish timed out")
		return
	}
	if err := token.Error(); err != nil {
		log.Warn().Err(err).Str("kind", kind).Str("id", id).Msg("[events] publish failed")
		return
	}
	log.Debug().Str("topic", p.topic).Str("kind", kind).Str("id", id).Msg("[events] published")
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}

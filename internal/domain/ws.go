package domain

import "encoding/json"

const (
	WsChannelSnapshot = "snapshot"
	WsChannelCPU      = "cpu"
	WsChannelGPU      = "gpu"
	WsChannelMemory   = "memory"
	WsChannelPower    = "power"
	WsChannelThermal  = "thermal"
	WsChannelDisk     = "disk"
	WsChannelNetwork  = "network"
)

const (
	WsEventSnapshot     = "snapshot"
	WsEventFamily       = "family_update"
	WsEventSubscribed   = "subscribed"
	WsEventUnsubscribed = "unsubscribed"
	WsEventError        = "error"
)

const (
	WsSubscribe   = "subscribe"
	WsUnsubscribe = "unsubscribe"
)

type WsClientMessage struct {
	Type    string          `json:"type"`
	Channel string          `json:"channel,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type WsServerEvent struct {
	Channel string `json:"channel"`
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

func WsChannels() []string {
	return []string{
		WsChannelSnapshot,
		WsChannelCPU,
		WsChannelGPU,
		WsChannelMemory,
		WsChannelPower,
		WsChannelThermal,
		WsChannelDisk,
		WsChannelNetwork,
	}
}

package api

import (
	"io"

	"github.com/gorilla/websocket"

	"lodging_server/server/multimedia/domain"
)

// wsChunkReceiver adapts one websocket connection to the transfer
// service's inbound stream contract.
type wsChunkReceiver struct {
	conn *websocket.Conn
}

func (r *wsChunkReceiver) Recv() (domain.Chunk, error) {
	var msg chunkMessage
	if err := r.conn.ReadJSON(&msg); err != nil {
		return domain.Chunk{}, err
	}
	if msg.Done {
		return domain.Chunk{}, io.EOF
	}
	return domain.Chunk{
		OwnerID:   msg.ModelID,
		SlotIndex: msg.MultimediaIndex,
		Data:      msg.Data,
	}, nil
}

// wsChunkSender adapts one websocket connection to the transfer service's
// outbound stream contract.
type wsChunkSender struct {
	conn *websocket.Conn
}

func (s *wsChunkSender) Send(data []byte) error {
	return s.conn.WriteJSON(chunkMessage{Data: data})
}

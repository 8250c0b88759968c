package api

// chunkMessage is one frame of a streamed transfer. Data rides base64 in
// the JSON encoding. For client-streaming calls the client signals end of
// stream with a frame carrying done=true (routing/data fields on that
// frame are ignored); closing the socket without it counts as a transport
// abort and nothing is persisted. For server-streaming calls the server
// emits data frames followed by a done frame.
type chunkMessage struct {
	ModelID         string `json:"model_id,omitempty"`
	MultimediaIndex *int   `json:"multimedia_index,omitempty"`
	Data            []byte `json:"data,omitempty"`
	Done            bool   `json:"done,omitempty"`
}

// downloadRequest is the single request frame of a server-streaming call.
type downloadRequest struct {
	ModelID         string `json:"model_id"`
	MultimediaIndex *int   `json:"multimedia_index,omitempty"`
}

// resultMessage is the single terminal acknowledgement of an upload or
// update stream.
type resultMessage struct {
	Description string `json:"description"`
}

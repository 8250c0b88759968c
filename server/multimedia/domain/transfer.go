package domain

// Chunk is one inbound frame of a client-streaming transfer. Routing
// metadata (OwnerID, SlotIndex) is authoritative only on the first frame
// that carries it; later frames' routing fields are ignored. SlotIndex is
// a pointer so an explicit index 0 is distinguishable from an absent one.
type Chunk struct {
	OwnerID   string
	SlotIndex *int
	Data      []byte
}

// TransferResult is the single terminal acknowledgement of an upload or
// update stream. Exactly one is emitted per completed stream.
type TransferResult struct {
	OK          bool
	Description string
}

func SuccessResult(description string) TransferResult {
	return TransferResult{OK: true, Description: "success: " + description}
}

func FailureResult(description string) TransferResult {
	return TransferResult{Description: "failure: " + description}
}

func BlockedResult(description string) TransferResult {
	return TransferResult{Description: "blocked: " + description}
}

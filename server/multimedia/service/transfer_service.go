package service

import (
	"bytes"
	"context"
	"errors"
	"io"

	commonlog "lodging_server/server/common/log"
	"lodging_server/server/multimedia/chunk"
	"lodging_server/server/multimedia/domain"
)

// BlobStore is the adapter over the document store's binary fields.
type BlobStore interface {
	ReadProfilePhoto(ctx context.Context, userID string) ([]byte, error)
	WriteProfilePhoto(ctx context.Context, userID string, data []byte) error
	AppendMultimedia(ctx context.Context, accommodationID string, data []byte) (int, error)
	ReadMultimediaAt(ctx context.Context, accommodationID string, index int) ([]byte, error)
	WriteMultimediaAt(ctx context.Context, accommodationID string, index int, data []byte) error
}

type BookingStore interface {
	HasCurrentBooking(ctx context.Context, accommodationID string) (bool, error)
}

// ChunkReceiver yields the inbound frames of one client-streaming call.
// Recv returns io.EOF on a clean end-of-stream signal; any other error is
// a transport abort.
type ChunkReceiver interface {
	Recv() (domain.Chunk, error)
}

// ChunkSender emits the outbound frames of one server-streaming call.
type ChunkSender interface {
	Send(data []byte) error
}

type Thumbnailer interface {
	StoreThumbnail(ctx context.Context, accommodationID string, slot int, data []byte) (string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, payload any) error
}

// TransferService implements the chunked transfer protocol: upload streams
// are reassembled into a single buffer and persisted once, download
// streams re-frame a stored blob. Each call owns its accumulation state
// exclusively; concurrent streams to the same owner race at the store
// with last-write-wins semantics.
type TransferService struct {
	blobs     BlobStore
	bookings  BookingStore
	thumbs    Thumbnailer
	events    EventPublisher
	chunkSize int
}

func NewTransferService(blobs BlobStore, bookings BookingStore) *TransferService {
	return &TransferService{blobs: blobs, bookings: bookings, chunkSize: chunk.DefaultSize}
}

// UseThumbnailer enables best-effort gallery thumbnails in object storage.
func (s *TransferService) UseThumbnailer(t Thumbnailer) {
	s.thumbs = t
}

// UsePublisher enables multimedia change events on the message bus.
func (s *TransferService) UsePublisher(p EventPublisher) {
	s.events = p
}

func (s *TransferService) SetChunkSize(size int) {
	if size > 0 {
		s.chunkSize = size
	}
}

// transferState is the per-call accumulation state of one upload stream.
// Routing fields are tracked with explicit captured-flags so an explicit
// slot index of 0 is not mistaken for an unset one.
type transferState struct {
	buf      bytes.Buffer
	ownerID  string
	ownerSet bool
	slot     int
	slotSet  bool
}

func (st *transferState) consume(c domain.Chunk) {
	if !st.ownerSet && c.OwnerID != "" {
		st.ownerID = c.OwnerID
		st.ownerSet = true
	}
	if !st.slotSet && c.SlotIndex != nil {
		st.slot = *c.SlotIndex
		st.slotSet = true
	}
	st.buf.Write(c.Data)
}

// receive drains the stream into a fresh state. A non-EOF receive error
// means the transport died mid-stream; the partial buffer is discarded and
// nothing is ever written to the store for that call.
func (s *TransferService) receive(stream ChunkReceiver) (*transferState, error) {
	st := &transferState{}
	for {
		c, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return st, nil
		}
		if err != nil {
			return nil, err
		}
		st.consume(c)
	}
}

// ReceiveProfilePhoto consumes an upload stream and replaces the user's
// profile photo. The returned TransferResult is the single terminal
// acknowledgement; a non-nil error means the transport aborted and no
// acknowledgement can be delivered.
func (s *TransferService) ReceiveProfilePhoto(ctx context.Context, stream ChunkReceiver) (domain.TransferResult, error) {
	st, err := s.receive(stream)
	if err != nil {
		commonlog.Warnf("profile photo upload aborted mid-stream: %v", err)
		return domain.TransferResult{}, err
	}
	if !st.ownerSet {
		return domain.FailureResult("no user id on any chunk"), nil
	}

	if err := s.blobs.WriteProfilePhoto(ctx, st.ownerID, st.buf.Bytes()); err != nil {
		commonlog.Errorf("write profile photo user_id=%s: %v", st.ownerID, err)
		return domain.FailureResult("error uploading photo"), nil
	}

	s.publish(ctx, "profile_photo.updated", map[string]any{
		"model_id":   st.ownerID,
		"size_bytes": st.buf.Len(),
	})
	commonlog.Infof("profile photo updated user_id=%s size_bytes=%d", st.ownerID, st.buf.Len())
	return domain.SuccessResult("profile photo updated"), nil
}

// ReceiveAccommodationMultimedia consumes an upload stream and appends the
// payload to the accommodation's gallery.
func (s *TransferService) ReceiveAccommodationMultimedia(ctx context.Context, stream ChunkReceiver) (domain.TransferResult, error) {
	st, err := s.receive(stream)
	if err != nil {
		commonlog.Warnf("accommodation multimedia upload aborted mid-stream: %v", err)
		return domain.TransferResult{}, err
	}
	if !st.ownerSet {
		return domain.FailureResult("no accommodation id on any chunk"), nil
	}

	slot, err := s.blobs.AppendMultimedia(ctx, st.ownerID, st.buf.Bytes())
	if err != nil {
		commonlog.Errorf("append multimedia accommodation_id=%s: %v", st.ownerID, err)
		return domain.FailureResult("error uploading multimedia"), nil
	}

	s.storeThumbnail(ctx, st.ownerID, slot, st.buf.Bytes())
	s.publish(ctx, "accommodation.multimedia.appended", map[string]any{
		"model_id":   st.ownerID,
		"slot":       slot,
		"size_bytes": st.buf.Len(),
	})
	commonlog.Infof("multimedia appended accommodation_id=%s slot=%d size_bytes=%d", st.ownerID, slot, st.buf.Len())
	return domain.SuccessResult("accommodation multimedia updated"), nil
}

// ReceiveAccommodationMultimediaUpdate consumes an upload stream and
// overwrites one gallery slot in place. The write is blocked while the
// accommodation has a booking in Current status. The slot index defaults
// to 0 only when no inbound chunk ever defined it.
func (s *TransferService) ReceiveAccommodationMultimediaUpdate(ctx context.Context, stream ChunkReceiver) (domain.TransferResult, error) {
	st, err := s.receive(stream)
	if err != nil {
		commonlog.Warnf("accommodation multimedia update aborted mid-stream: %v", err)
		return domain.TransferResult{}, err
	}
	if !st.ownerSet {
		return domain.FailureResult("no accommodation id on any chunk"), nil
	}

	blocked, err := s.bookings.HasCurrentBooking(ctx, st.ownerID)
	if err != nil {
		commonlog.Errorf("check current bookings accommodation_id=%s: %v", st.ownerID, err)
		return domain.FailureResult("error uploading multimedia"), nil
	}
	if blocked {
		commonlog.Infof("multimedia update blocked accommodation_id=%s: active booking exists", st.ownerID)
		return domain.BlockedResult("active booking exists"), nil
	}

	if err := s.blobs.WriteMultimediaAt(ctx, st.ownerID, st.slot, st.buf.Bytes()); err != nil {
		commonlog.Errorf("write multimedia accommodation_id=%s slot=%d: %v", st.ownerID, st.slot, err)
		switch {
		case errors.Is(err, domain.ErrIndexOutOfRange):
			return domain.FailureResult("multimedia index out of range"), nil
		case errors.Is(err, domain.ErrEntityNotFound):
			return domain.FailureResult("accommodation not found"), nil
		default:
			return domain.FailureResult("error uploading multimedia"), nil
		}
	}

	s.storeThumbnail(ctx, st.ownerID, st.slot, st.buf.Bytes())
	s.publish(ctx, "accommodation.multimedia.updated", map[string]any{
		"model_id":   st.ownerID,
		"slot":       st.slot,
		"size_bytes": st.buf.Len(),
	})
	commonlog.Infof("multimedia updated accommodation_id=%s slot=%d size_bytes=%d", st.ownerID, st.slot, st.buf.Len())
	return domain.SuccessResult("accommodation multimedia updated"), nil
}

// StreamProfilePhoto emits the stored photo as fixed-size frames. On any
// miss the stream closes with zero frames and no error payload; callers
// only see an empty stream ("silent empty stream on miss"). The distinct
// causes are logged here for operational visibility.
func (s *TransferService) StreamProfilePhoto(ctx context.Context, userID string, out ChunkSender) error {
	data, err := s.blobs.ReadProfilePhoto(ctx, userID)
	if err != nil {
		s.logMiss("profile photo", userID, -1, err)
		return nil
	}
	return s.stream(data, out)
}

// StreamAccommodationMultimedia emits one gallery slot as fixed-size
// frames, with the same silent-empty-stream miss behavior.
func (s *TransferService) StreamAccommodationMultimedia(ctx context.Context, accommodationID string, index int, out ChunkSender) error {
	data, err := s.blobs.ReadMultimediaAt(ctx, accommodationID, index)
	if err != nil {
		s.logMiss("accommodation multimedia", accommodationID, index, err)
		return nil
	}
	return s.stream(data, out)
}

func (s *TransferService) stream(data []byte, out ChunkSender) error {
	for _, part := range chunk.Split(data, s.chunkSize) {
		if err := out.Send(part); err != nil {
			return err
		}
	}
	return nil
}

func (s *TransferService) logMiss(kind, ownerID string, index int, err error) {
	switch {
	case errors.Is(err, domain.ErrEntityNotFound):
		commonlog.Warnf("%s download miss owner_id=%s: owner not found", kind, ownerID)
	case errors.Is(err, domain.ErrFieldEmpty):
		commonlog.Warnf("%s download miss owner_id=%s: no data stored", kind, ownerID)
	case errors.Is(err, domain.ErrIndexOutOfRange):
		commonlog.Warnf("%s download miss owner_id=%s index=%d: index out of range", kind, ownerID, index)
	default:
		commonlog.Errorf("%s download owner_id=%s: %v", kind, ownerID, err)
	}
}

func (s *TransferService) storeThumbnail(ctx context.Context, accommodationID string, slot int, data []byte) {
	if s.thumbs == nil {
		return
	}
	key, err := s.thumbs.StoreThumbnail(ctx, accommodationID, slot, data)
	if err != nil {
		commonlog.Warnf("store thumbnail accommodation_id=%s slot=%d: %v", accommodationID, slot, err)
		return
	}
	commonlog.Debugf("thumbnail stored accommodation_id=%s slot=%d key=%s", accommodationID, slot, key)
}

func (s *TransferService) publish(ctx context.Context, key string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, key, payload); err != nil {
		commonlog.Warnf("publish %s event: %v", key, err)
	}
}

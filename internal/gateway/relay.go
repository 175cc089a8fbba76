package gateway

import (
	"fmt"
	"log"

	"chatwire/backend/internal/blob"
	"chatwire/backend/internal/models"
	"chatwire/backend/internal/storage"
)

// MessageRelay persists a chat message and then forwards it to the
// receiver's live connection, if there is one. Persist-before-deliver is
// the invariant: a message that failed to persist is never delivered,
// and an offline receiver is a normal outcome, not an error.
type MessageRelay struct {
	storage  storage.Storage
	presence *Presence
}

func NewMessageRelay(s storage.Storage, p *Presence) *MessageRelay {
	return &MessageRelay{storage: s, presence: p}
}

func (r *MessageRelay) Relay(senderID, receiverID, content string) error {
	msg := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := r.storage.SaveMessage(msg); err != nil {
		return fmt.Errorf("persist message: %w", err)
	}

	if conn, ok := r.presence.ConnectionFor(receiverID); ok {
		trySend(conn, NewEnvelope(EventMessageUser, MessageDelivered{
			Message:    content,
			SenderID:   senderID,
			ReceiverID: receiverID,
		}))
	}
	return nil
}

// FileRelay stores an uploaded payload, persists the file-reference
// message, and then notifies both participants. The blob write completes
// durably and the record is persisted before either notification goes
// out; any failure aborts before the notify step.
type FileRelay struct {
	storage  storage.Storage
	blobs    *blob.Store
	presence *Presence
}

func NewFileRelay(s storage.Storage, b *blob.Store, p *Presence) *FileRelay {
	return &FileRelay{storage: s, blobs: b, presence: p}
}

func (r *FileRelay) Relay(senderID, receiverID string, file File) error {
	fileName, err := r.blobs.Save(file.Name, file.Data)
	if err != nil {
		return fmt.Errorf("store file: %w", err)
	}

	msg := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		FileName:   fileName,
	}
	if err := r.storage.SaveMessage(msg); err != nil {
		return fmt.Errorf("persist file message: %w", err)
	}

	env := NewEnvelope(EventFileUser, FileDelivered{
		FileName:   fileName,
		SenderID:   senderID,
		ReceiverID: receiverID,
	})
	for _, userID := range []string{receiverID, senderID} {
		if conn, ok := r.presence.ConnectionFor(userID); ok {
			trySend(conn, env)
		}
	}

	log.Printf("Stored file %s (%d bytes) from %s to %s", fileName, len(file.Data), senderID, receiverID)
	return nil
}

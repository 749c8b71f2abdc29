package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var (
	ErrAttachDocumentCommandIsNotConstructed = errors.New(
		"AttachDocumentCommand must be created via NewAttachDocumentCommand constructor",
	)
	ErrDocumentIDIsRequired = errors.New("documentID is required")
)

// AttachDocumentCommand links a blob-store document (photo, customs form) to
// a parcel. The document content itself lives in the external blob store.
type AttachDocumentCommand struct { //nolint:recvcheck //using for validation
	parcelID   kernel.UUID
	documentID string

	guard guard.ConstructorGuard
}

// NewAttachDocumentCommand creates a command to attach a document reference.
func NewAttachDocumentCommand(parcelID kernel.UUID, documentID string) (AttachDocumentCommand, error) {
	cmd := AttachDocumentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setDocumentID(documentID),
	); err != nil {
		return AttachDocumentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AttachDocumentCommand) Validate() error {
	return c.guard.Validate(ErrAttachDocumentCommandIsNotConstructed)
}

// ParcelID returns the parcel receiving the document.
func (c AttachDocumentCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// DocumentID returns the blob-store document identifier.
func (c AttachDocumentCommand) DocumentID() string {
	return c.documentID
}

func (c *AttachDocumentCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *AttachDocumentCommand) setDocumentID(documentID string) error {
	if documentID == "" {
		return ErrDocumentIDIsRequired
	}

	c.documentID = documentID
	return nil
}

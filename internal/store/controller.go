package store

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"rhystmorgan/contactsTUI/internal/models"
	"rhystmorgan/contactsTUI/internal/remote"
	"rhystmorgan/contactsTUI/internal/validation"
)

// Source is the remote contact collaborator.
type Source interface {
	ListContacts(ctx context.Context) ([]remote.ContactRecord, error)
	ReplaceContact(ctx context.Context, record remote.ContactRecord) error
	DeleteContact(ctx context.Context, id int) error
}

// Controller maps each user action onto one store operation. The blocking
// methods (Load, Update, Remove) compose the split halves below; an event loop
// that must not block calls Fetch and Push off-loop and ApplyLoad and Commit on it.
type Controller struct {
	store  *Store
	source Source
	logger *zap.Logger
}

var errNoSource = errors.New("no contact service configured")

func NewController(store *Store, source Source, logger *zap.Logger) *Controller {
	if store == nil {
		store = New(DefaultInitialID)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		store:  store,
		source: source,
		logger: logger.Named("store"),
	}
}

func (c *Controller) Store() *Store {
	return c.store
}

// Fetch reads the contact set from the source. It does not touch the store.
func (c *Controller) Fetch(ctx context.Context) ([]remote.ContactRecord, error) {
	if c.source == nil {
		return nil, errNoSource
	}
	return c.source.ListContacts(ctx)
}

// ApplyLoad installs the result of Fetch. On failure the remote contacts are
// dropped and a remote error is returned; local additions keep working afterwards.
func (c *Controller) ApplyLoad(records []remote.ContactRecord, fetchErr error) error {
	if fetchErr != nil {
		c.store.Clear()
		c.logger.Error("failed to load contacts", zap.Error(fetchErr))
		return NewRemoteError(MsgLoadFailed, fetchErr)
	}

	c.store.Seed(records)
	c.logger.Info("contacts loaded",
		zap.Int("count", c.store.Len()),
		zap.Int("next_id", c.store.NextID()))
	return nil
}

func (c *Controller) Load(ctx context.Context) error {
	records, err := c.Fetch(ctx)
	return c.ApplyLoad(records, err)
}

// Add creates a local contact. New contacts are never sent to the source.
func (c *Controller) Add(in validation.FormInput) (models.Contact, error) {
	contact, err := c.store.Add(in)
	if err != nil {
		c.logger.Debug("add rejected", zap.Error(err))
		return models.Contact{}, err
	}
	c.logger.Info("contact added", zap.Int("id", contact.ID))
	return contact, nil
}

func (c *Controller) PrepareUpdate(id int, in validation.FormInput) (Change, error) {
	ch, err := c.store.PrepareUpdate(id, in)
	if err != nil {
		c.logger.Debug("update rejected", zap.Int("id", id), zap.Error(err))
	}
	return ch, err
}

func (c *Controller) PrepareRemove(id int) (Change, bool) {
	return c.store.PrepareRemove(id)
}

// Push notifies the source of a remote-origin change. Local changes pass
// through without a call. It does not touch the store.
func (c *Controller) Push(ctx context.Context, ch Change) error {
	if !ch.NeedsRemote() {
		return nil
	}
	if c.source == nil {
		return c.pushFailed(ch, errNoSource)
	}

	var err error
	switch ch.Kind {
	case ChangeUpdate:
		err = c.source.ReplaceContact(ctx, ch.Record())
	case ChangeRemove:
		err = c.source.DeleteContact(ctx, ch.Contact.ID)
	}
	if err != nil {
		return c.pushFailed(ch, err)
	}
	return nil
}

func (c *Controller) pushFailed(ch Change, err error) error {
	c.logger.Warn("remote change failed",
		zap.Stringer("kind", ch.Kind),
		zap.Int("id", ch.Contact.ID),
		zap.Error(err))

	if ch.Kind == ChangeRemove {
		return NewRemoteError(MsgDeleteFailed, err)
	}
	return NewRemoteError(MsgUpdateFailed, err)
}

// Commit applies a change that was prepared (and pushed, if remote).
func (c *Controller) Commit(ch Change) error {
	if err := c.store.Commit(ch); err != nil {
		c.logger.Warn("commit failed", zap.Stringer("kind", ch.Kind), zap.Int("id", ch.Contact.ID), zap.Error(err))
		return err
	}
	c.logger.Info("contact changed", zap.Stringer("kind", ch.Kind), zap.Int("id", ch.Contact.ID))
	return nil
}

func (c *Controller) Update(ctx context.Context, id int, in validation.FormInput) (models.Contact, error) {
	ch, err := c.PrepareUpdate(id, in)
	if err != nil {
		return models.Contact{}, err
	}
	if err := c.Push(ctx, ch); err != nil {
		return models.Contact{}, err
	}
	if err := c.Commit(ch); err != nil {
		return models.Contact{}, err
	}
	return ch.Contact, nil
}

// Remove reports false without error when the id is unknown.
func (c *Controller) Remove(ctx context.Context, id int) (bool, error) {
	ch, ok := c.PrepareRemove(id)
	if !ok {
		c.logger.Debug("remove of unknown contact ignored", zap.Int("id", id))
		return false, nil
	}
	if err := c.Push(ctx, ch); err != nil {
		return false, err
	}
	if err := c.Commit(ch); err != nil {
		return false, err
	}
	return true, nil
}

// Search sets the query and returns the new view.
func (c *Controller) Search(query string) []models.Contact {
	c.store.Search(query)
	return c.store.Visible()
}

func (c *Controller) Visible() []models.Contact {
	return c.store.Visible()
}

func (c *Controller) ValidateField(field validation.FieldKind, value string) validation.FieldResult {
	return validation.ValidateField(field, value)
}

func (c *Controller) ValidateForm(in validation.FormInput) validation.ValidationResult {
	return validation.ValidateForm(in)
}

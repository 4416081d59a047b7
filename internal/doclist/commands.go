package doclist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vfa-khuongdv/docs-demo/pkg/docs"
	"github.com/vfa-khuongdv/docs-demo/pkg/notification"
)

const (
	KindPrompt     = "What would you like to create : document/presentation/spreadsheet/folder"
	TitlePrompt    = "Name "
	ResourcePrompt = "Enter ResourceId of Element to trash"
	TrashedMessage = "Successfully trashed element"
)

// Browse prints one summary line per entry of a collection, in feed order
func (d *Dispatcher) Browse(ctx context.Context, collection docs.Collection) error {
	feed, err := d.session.Documents.Feed(ctx, collection)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", collection.Name, err)
	}

	d.log.Debug("fetched feed", "collection", collection.Name, "entries", len(feed.Entries))

	for i := range feed.Entries {
		d.prompt.Say(docs.BriefSummary(&feed.Entries[i]))
	}

	return nil
}

// Create asks for a type and a title and creates the entry.
// The type is checked before anything is sent.
func (d *Dispatcher) Create(ctx context.Context) error {
	tag, err := d.prompt.Ask(KindPrompt)
	if err != nil {
		return err
	}

	kind, err := docs.ParseKind(tag)
	if err != nil {
		return err
	}

	title, err := d.prompt.Ask(TitlePrompt)
	if err != nil {
		return err
	}

	entry, err := d.session.Documents.Insert(ctx, docs.AllFiles, kind, title)
	if err != nil {
		d.notify(ctx, &notification.EntryEvent{
			Action: notification.ActionCreated,
			Title:  title,
			Kind:   kind.String(),
			Error:  err.Error(),
		})
		return fmt.Errorf("failed to create %s '%s': %w", kind, title, err)
	}

	d.prompt.Say(docs.BriefSummary(entry))
	d.notify(ctx, &notification.EntryEvent{
		Action:     notification.ActionCreated,
		Title:      entry.Title,
		Kind:       entry.Kind.String(),
		ResourceID: entry.ResourceID(),
		Link:       entry.Link,
	})

	return nil
}

// Trash moves an entry to the trash, provided nobody changed it since it was fetched
func (d *Dispatcher) Trash(ctx context.Context) error {
	resourceID, err := d.prompt.Ask(ResourcePrompt)
	if err != nil {
		return err
	}

	id, err := docs.ParseResourceID(resourceID)
	if err != nil {
		return err
	}

	entry, err := d.session.Documents.Entry(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", resourceID, err)
	}

	d.prompt.Say(docs.DetailedSummary(entry))

	event := &notification.EntryEvent{
		Action:     notification.ActionTrashed,
		Title:      entry.Title,
		Kind:       entry.Kind.String(),
		ResourceID: entry.ResourceID(),
		Link:       entry.Link,
	}

	if err := d.session.Documents.Delete(ctx, entry.ID, entry.Version); err != nil {
		if errors.Is(err, docs.ErrConflict) {
			d.log.Info("entry changed since it was fetched", "id", entry.ID, "version", entry.Version)
		}

		event.Error = err.Error()
		d.notify(ctx, event)
		return fmt.Errorf("failed to trash %s: %w", entry.ResourceID(), err)
	}

	d.prompt.Info(TrashedMessage)
	d.notify(ctx, event)

	return nil
}

func (d *Dispatcher) notify(ctx context.Context, event *notification.EntryEvent) {
	if d.notifier == nil {
		return
	}

	event.Account = d.session.Account
	event.At = time.Now()

	if err := d.notifier.Notify(ctx, event); err != nil {
		d.log.Warn("failed to send notification", "action", event.Action, "error", err)
	}
}

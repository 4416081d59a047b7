// Package gdrive implements the document list service on top of the Google Drive v3 API.
package gdrive

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	"github.com/hashicorp/go-hclog"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/vfa-khuongdv/docs-demo/pkg/docs"
)

const (
	fileFields     = "id,name,mimeType,version,parents,webViewLink,viewedByMeTime,modifiedTime,starred,viewedByMe,writersCanShare"
	fileListFields = "files(" + fileFields + ")"
)

// Service handles Google Drive operations
type Service struct {
	drive  *drive.Service
	log    hclog.Logger
	rootID string
}

var _ docs.DocumentService = (*Service)(nil)

// NewService creates a new Google Drive service. Callers pass option.WithHTTPClient with
// an authenticated client, and option.WithEndpoint to target another server.
func NewService(ctx context.Context, log hclog.Logger, opts ...option.ClientOption) (*Service, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}

	driveService, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &Service{
		drive: driveService,
		log:   log.Named("gdrive"),
	}, nil
}

// Account returns the email address of the authenticated user
func (s *Service) Account(ctx context.Context) (string, error) {
	about, err := s.drive.About.Get().Fields("user(emailAddress)").Context(ctx).Do()
	if err != nil {
		return "", WrapError("get account", err)
	}

	if about.User == nil || about.User.EmailAddress == "" {
		return "", fmt.Errorf("failed to get account: no user in the about resource")
	}

	return about.User.EmailAddress, nil
}

// Query returns the Drive search query selecting a collection
func Query(collection docs.Collection) string {
	query := "trashed=false"
	if mime, ok := MimeType(collection.Kind); ok {
		query = fmt.Sprintf("%s and mimeType='%s'", query, mime)
	}

	return query
}

// Feed lists the first page of a collection in Drive order
func (s *Service) Feed(ctx context.Context, collection docs.Collection) (*docs.Feed, error) {
	query := Query(collection)
	s.log.Debug("listing files", "collection", collection.Name, "query", query)

	res, err := s.drive.Files.List().
		Q(query).
		Fields(googleapi.Field(fileListFields)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, WrapError("list files", err)
	}

	titles := make(map[string]string, len(res.Files))
	for _, f := range res.Files {
		titles[f.Id] = f.Name
	}

	feed := &docs.Feed{Title: collection.Name}
	for _, f := range res.Files {
		entry, err := s.toEntry(ctx, f, titles)
		if err != nil {
			return nil, err
		}
		feed.Entries = append(feed.Entries, *entry)
	}

	return feed, nil
}

// Entry fetches a single file
func (s *Service) Entry(ctx context.Context, id string) (*docs.Entry, error) {
	s.log.Debug("getting file", "id", id)

	f, err := s.drive.Files.Get(id).
		Fields(googleapi.Field(fileFields)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, WrapError("get file", err)
	}

	return s.toEntry(ctx, f, map[string]string{})
}

// Insert creates an empty native file of the given kind
func (s *Service) Insert(ctx context.Context, collection docs.Collection, kind docs.Kind, title string) (*docs.Entry, error) {
	mime, ok := MimeType(kind)
	if !ok {
		return nil, fmt.Errorf("%w '%s'", docs.ErrUnsupportedKind, kind)
	}
	if collection.Kind != docs.KindUnknown && collection.Kind != kind {
		return nil, fmt.Errorf("cannot create a %s in the %s collection", kind, collection.Name)
	}

	s.log.Debug("creating file", "kind", kind, "title", title)

	f, err := s.drive.Files.Create(&drive.File{Name: title, MimeType: mime}).
		Fields(googleapi.Field(fileFields)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, WrapError("create file", err)
	}

	return s.toEntry(ctx, f, map[string]string{})
}

// Delete moves a file to the trash if its version still matches
func (s *Service) Delete(ctx context.Context, id string, version string) error {
	current, err := s.drive.Files.Get(id).
		Fields("id,version").
		Context(ctx).
		Do()
	if err != nil {
		return WrapError("get file", err)
	}

	if v := strconv.FormatInt(current.Version, 10); v != version {
		s.log.Debug("version mismatch", "id", id, "expected", version, "current", v)
		return fmt.Errorf("%w: file %s is at version %s, expected %s", docs.ErrConflict, id, v, version)
	}

	s.log.Debug("trashing file", "id", id, "version", version)

	_, err = s.drive.Files.Update(id, &drive.File{Trashed: true}).
		Fields("id,trashed").
		Context(ctx).
		Do()
	if err != nil {
		return WrapError("trash file", err)
	}

	return nil
}

func (s *Service) toEntry(ctx context.Context, f *drive.File, titles map[string]string) (*docs.Entry, error) {
	entry := &docs.Entry{
		ID:               f.Id,
		Title:            f.Name,
		Kind:             KindOf(f.MimeType),
		Version:          strconv.FormatInt(f.Version, 10),
		Link:             f.WebViewLink,
		LastViewed:       parseTime(f.ViewedByMeTime),
		Updated:          parseTime(f.ModifiedTime),
		Starred:          f.Starred,
		Viewed:           f.ViewedByMe,
		WritersCanInvite: f.WritersCanShare,
	}

	for _, parentID := range f.Parents {
		title, ok := titles[parentID]
		if !ok {
			root, err := s.root(ctx)
			if err != nil {
				return nil, err
			}
			if parentID == root {
				continue
			}

			title, err = s.folderTitle(ctx, parentID)
			if err != nil {
				return nil, err
			}
			titles[parentID] = title
		}

		entry.Parents = append(entry.Parents, docs.Parent{ID: parentID, Title: title})
	}

	return entry, nil
}

func (s *Service) root(ctx context.Context) (string, error) {
	if s.rootID != "" {
		return s.rootID, nil
	}

	f, err := s.drive.Files.Get("root").Fields("id").Context(ctx).Do()
	if err != nil {
		return "", WrapError("get root folder", err)
	}

	s.rootID = f.Id
	return s.rootID, nil
}

func (s *Service) folderTitle(ctx context.Context, id string) (string, error) {
	f, err := s.drive.Files.Get(id).Fields("id,name").Context(ctx).Do()
	if err != nil {
		return "", WrapError("get parent folder", err)
	}

	return f.Name, nil
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}

	t, err := dateparse.ParseAny(value)
	if err != nil {
		return time.Time{}
	}

	return t
}

// WrapError maps Drive API errors onto the document service errors
func WrapError(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusNotFound:
			return fmt.Errorf("failed to %s: %w (%w)", op, docs.ErrNotFound, err)
		case http.StatusConflict, http.StatusPreconditionFailed:
			return fmt.Errorf("failed to %s: %w (%w)", op, docs.ErrConflict, err)
		}
	}

	return fmt.Errorf("failed to %s: %w", op, err)
}

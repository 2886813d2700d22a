package session

import (
	"context"
	"fmt"
	"path"

	"github.com/viant/afs"

	"github.com/liftlog/liftlog-go/apierror"
	"github.com/liftlog/liftlog-go/schema"
)

// UpdateAvatar validates the size ceiling locally, uploads the image and
// commits the returned avatar reference. An oversized payload is rejected
// before any network call.
func (s *Session) UpdateAvatar(ctx context.Context, filename string, content []byte) (*schema.User, error) {
	if int64(len(content)) > s.avatarLimit {
		return nil, apierror.PayloadTooLarge(
			fmt.Sprintf("avatar exceeds the %d MiB limit", s.avatarLimit>>20))
	}
	confirmed, err := s.api.UploadAvatar(ctx, filename, content)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return nil, apierror.New(apierror.KindSessionExpired, "no signed-in user")
	}
	avatarURL := confirmed.AvatarURL
	s.user.AvatarURL = &avatarURL
	snapshot := Snapshot{Status: s.status, User: s.user.Clone()}
	updated := s.user.Clone()
	s.mu.Unlock()
	s.notify(snapshot)
	return updated, nil
}

// UpdateAvatarFromURL loads the image from any afs-supported location (local
// path, file://, s3://, ...) and delegates to UpdateAvatar. The size gate
// still applies before the upload.
func (s *Session) UpdateAvatarFromURL(ctx context.Context, URL string) (*schema.User, error) {
	fs := afs.New()
	content, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, apierror.Wrap(apierror.KindValidation, "reading avatar source", err)
	}
	return s.UpdateAvatar(ctx, path.Base(URL), content)
}

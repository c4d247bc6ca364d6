package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"log/slog"
	"path"
	"strconv"
	"time"

	"github.com/shandysiswandi/userlab/internal/pkg/goerror"
	"github.com/shandysiswandi/userlab/internal/pkg/storage"
	"github.com/shandysiswandi/userlab/internal/registration/entity"
)

const (
	MsgExportUnavailable = "L'export n'est pas disponible"
	MsgAuthRequired      = "Authentification requise"
	MsgForbidden         = "Accès refusé"

	permObjectUsers  = "users"
	permActionExport = "export"

	defaultExportExpiry = 15 * time.Minute
	exportContentType   = "text/csv; charset=utf-8"
)

type ExportOutput struct {
	URL       string
	Key       string
	Count     int
	ExpiresAt time.Time
}

// Export writes every user as a CSV object and returns a download link.
func (s *Usecase) Export(ctx context.Context) (*ExportOutput, error) {
	ctx, span := s.startSpan(ctx, "Export")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, permObjectUsers, permActionExport)
	if err != nil {
		return nil, err
	}

	if s.storage == nil {
		return nil, goerror.NewBusiness(MsgExportUnavailable, goerror.CodeUnavailable)
	}

	users, err := s.repoStore.AllUsers(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get all users", "error", err)
		return nil, goerror.NewServer(err)
	}

	var buf bytes.Buffer
	records := make([][]string, 0, len(users)+1)
	records = append(records, entity.CSVHeader())
	for _, u := range users {
		records = append(records, u.CSVRecord())
	}
	if err := csv.NewWriter(&buf).WriteAll(records); err != nil {
		slog.ErrorContext(ctx, "failed to encode users csv", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now().UTC()
	key := path.Join(s.cfg.GetString("registration.export.prefix"), "users-"+now.Format("20060102T150405Z")+".csv")

	info, err := s.storage.PutObject(ctx, key, &buf, storage.PutOptions{
		Size:        int64(buf.Len()),
		ContentType: exportContentType,
		Metadata:    map[string]string{"rows": strconv.Itoa(len(users))},
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to upload users csv", "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	expiry := s.cfg.GetDuration("registration.export.url_expiry")
	if expiry <= 0 {
		expiry = defaultExportExpiry
	}

	url, err := s.storage.PresignGet(ctx, info.Key, expiry)
	if err != nil {
		slog.ErrorContext(ctx, "failed to presign users csv", "key", info.Key, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "users exported", "subject", clm.Subject, "key", info.Key, "rows", len(users))

	return &ExportOutput{
		URL:       url,
		Key:       info.Key,
		Count:     len(users),
		ExpiresAt: now.Add(expiry),
	}, nil
}

package backup

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contentuc "github.com/khoahotran/scholar-folio/internal/application/usecase/content"
	"github.com/khoahotran/scholar-folio/internal/application/usecase/notify"
	"github.com/khoahotran/scholar-folio/internal/domain/content"
	"github.com/khoahotran/scholar-folio/internal/domain/notification"
	"github.com/khoahotran/scholar-folio/internal/seed"
	"github.com/khoahotran/scholar-folio/pkg/apperror"
	"github.com/khoahotran/scholar-folio/pkg/logger"
)

type fixture struct {
	store   *contentuc.Store
	channel *notify.Channel
	uc      *BackupUseCase
}

func newFixture() fixture {
	log := logger.NewNopLogger()
	store := contentuc.NewStore(seed.Defaults(), nil, log)
	ch := notify.NewChannel(log)
	return fixture{store: store, channel: ch, uc: NewBackupUseCase(store, ch, log)}
}

func TestExportFilename(t *testing.T) {
	ts := time.Date(2024, 3, 7, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "portfolio-backup-2024-03-07.json", ExportFilename(ts))
}

func TestExport_DocumentShape(t *testing.T) {
	f := newFixture()
	raw, err := f.uc.Export(context.Background())
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	for _, key := range []string{"version", "exportedAt", content.ProfileKey} {
		assert.Contains(t, doc, key)
	}
	for _, c := range content.All() {
		assert.Contains(t, doc, string(c.Name()))
	}

	n, ok := f.channel.Current()
	require.True(t, ok)
	assert.Equal(t, notification.KindSuccess, n.Kind)
}

func TestExportImport_RoundTrip(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	first, err := f.uc.Export(ctx)
	require.NoError(t, err)

	other := newFixture()
	_, err = contentuc.Add(ctx, other.store, content.Awards, content.Award{Title: "Only here"})
	require.NoError(t, err)
	require.NoError(t, other.uc.Import(ctx, first))

	assert.Equal(t, f.store.Snapshot(), other.store.Snapshot())

	second, err := other.uc.Export(ctx)
	require.NoError(t, err)
	var a, b Document
	require.NoError(t, json.Unmarshal(first, &a))
	require.NoError(t, json.Unmarshal(second, &b))
	assert.Equal(t, a.Snapshot, b.Snapshot)
}

func TestImport_Rejections(t *testing.T) {
	valid := func() map[string]any {
		var doc map[string]any
		raw, _ := json.Marshal(seed.Defaults())
		_ = json.Unmarshal(raw, &doc)
		return doc
	}
	encode := func(doc map[string]any) []byte {
		raw, _ := json.Marshal(doc)
		return raw
	}

	missingSkills := valid()
	delete(missingSkills, "skills")
	missingProfile := valid()
	delete(missingProfile, "profile")
	badSkills := valid()
	badSkills["skills"] = "not a list"
	nullNews := valid()
	nullNews["news"] = nil
	dupIDs := valid()
	dupIDs["awards"] = []map[string]any{{"id": "x", "title": "a"}, {"id": "x", "title": "b"}}
	emptyID := valid()
	emptyID["awards"] = []map[string]any{{"id": "", "title": "a"}}

	cases := map[string][]byte{
		"not json":        []byte("{oops"),
		"array document":  []byte("[]"),
		"null document":   []byte("null"),
		"missing skills":  encode(missingSkills),
		"missing profile": encode(missingProfile),
		"skills not list": encode(badSkills),
		"null news":       encode(nullNews),
		"duplicate ids":   encode(dupIDs),
		"empty id":        encode(emptyID),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			before := f.store.Snapshot()

			err := f.uc.Import(context.Background(), raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperror.ErrImport)
			assert.Equal(t, before, f.store.Snapshot())

			n, ok := f.channel.Current()
			require.True(t, ok)
			assert.Equal(t, notification.KindError, n.Kind)
		})
	}
}

func TestImport_IgnoresUnknownKeys(t *testing.T) {
	f := newFixture()
	var doc map[string]any
	raw, _ := json.Marshal(seed.Defaults())
	require.NoError(t, json.Unmarshal(raw, &doc))
	doc["somethingElse"] = 42
	doc["profile"].(map[string]any)["name"] = "Imported Name"
	raw, _ = json.Marshal(doc)

	require.NoError(t, f.uc.Import(context.Background(), raw))
	assert.Equal(t, "Imported Name", f.store.Profile().Name)
}

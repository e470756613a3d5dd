package menu

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/shared/apperr"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/storage"
)

type fakeStorage struct {
	puts    int
	deleted []string
}

func (f *fakeStorage) Put(ctx context.Context, r io.Reader, in storage.PutInput) (storage.PutResult, error) {
	f.puts++
	return storage.PutResult{Key: "k-" + in.Filename, URL: "/uploads/k-" + in.Filename}, nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func testService(t *testing.T) (*Service, *gorm.DB, *fakeStorage) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Item{}))
	fs := &fakeStorage{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(NewRepo(db), fs, log), db, fs
}

func TestSeedAndList(t *testing.T) {
	s, db, _ := testService(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, db))
	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 7)

	// Seeding twice must not duplicate.
	require.NoError(t, Seed(ctx, db))
	items, err = s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 7)
}

func TestGetBySlug(t *testing.T) {
	s, db, _ := testService(t)
	ctx := context.Background()
	require.NoError(t, Seed(ctx, db))

	it, err := s.GetBySlug(ctx, "pao-de-queijo")
	require.NoError(t, err)
	assert.Equal(t, "Pão de Queijo", it.Name)
	assert.Equal(t, int64(500), it.PriceCents)

	_, err = s.GetBySlug(ctx, "pastel")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestCreate(t *testing.T) {
	s, _, _ := testService(t)
	ctx := context.Background()

	it, err := s.Create(ctx, CreateInput{Name: "Chá Gelado", Kind: KindCoffee, PriceCents: 700})
	require.NoError(t, err)
	assert.Equal(t, "cha-gelado", it.Slug)
	assert.True(t, it.Active)

	_, err = s.Create(ctx, CreateInput{Name: "Chá Gelado", Kind: KindCoffee, PriceCents: 900})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Conflict))

	_, err = s.Create(ctx, CreateInput{Name: "", Kind: "sushi", PriceCents: -1})
	require.Error(t, err)
	ae, _ := apperr.As(err)
	assert.Len(t, ae.Fields, 3)
}

func TestSetPriceAndActive(t *testing.T) {
	s, _, _ := testService(t)
	ctx := context.Background()

	it, err := s.Create(ctx, CreateInput{Name: "Latte", Kind: KindCoffee, PriceCents: 1000})
	require.NoError(t, err)

	require.NoError(t, s.SetPrice(ctx, it.ID, 1100))
	got, err := s.GetBySlug(ctx, "latte")
	require.NoError(t, err)
	assert.Equal(t, int64(1100), got.PriceCents)

	require.NoError(t, s.SetActive(ctx, it.ID, false))
	_, err = s.GetBySlug(ctx, "latte")
	assert.True(t, apperr.IsKind(err, apperr.NotFound), "inactive items disappear from the menu")

	err = s.SetPrice(ctx, "missing", 100)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestAttachImageReplacesOld(t *testing.T) {
	s, _, fs := testService(t)
	ctx := context.Background()

	it, err := s.Create(ctx, CreateInput{Name: "Mocha", Kind: KindCoffee, PriceCents: 1400})
	require.NoError(t, err)

	first, err := s.AttachImage(ctx, it.ID, "a.png", "image/png", 3, strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/k-a.png", first.ImageURL)
	assert.Empty(t, fs.deleted)

	second, err := s.AttachImage(ctx, it.ID, "b.png", "image/png", 3, strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "k-b.png", second.ImageKey)
	assert.Equal(t, []string{"k-a.png"}, fs.deleted)
	assert.Equal(t, 2, fs.puts)
}

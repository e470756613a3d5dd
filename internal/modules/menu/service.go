package menu

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/shared/apperr"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/shared/slug"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/storage"
)

type Service struct {
	repo  *Repo
	files storage.Storage
	log   *slog.Logger
}

func NewService(repo *Repo, files storage.Storage, log *slog.Logger) *Service {
	return &Service{repo: repo, files: files, log: log}
}

func (s *Service) List(ctx context.Context) ([]Item, error) {
	items, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, apperr.Wrap(err)
	}
	return items, nil
}

func (s *Service) GetBySlug(ctx context.Context, sl string) (Item, error) {
	it, err := s.repo.GetBySlug(ctx, sl)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Item{}, apperr.NotFoundErr("Item não encontrado.")
	}
	if err != nil {
		return Item{}, apperr.Wrap(err)
	}
	return it, nil
}

type CreateInput struct {
	Name        string
	Description string
	Kind        string
	PriceCents  int64
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Item, error) {
	in.Name = strings.TrimSpace(in.Name)

	fields := map[string]string{}
	if in.Name == "" {
		fields["name"] = "Nome é obrigatório."
	}
	if !validKind(in.Kind) {
		fields["kind"] = "Tipo de item inválido."
	}
	if in.PriceCents < 0 {
		fields["price"] = "Preço não pode ser negativo."
	}
	if len(fields) > 0 {
		return Item{}, apperr.InvalidErr("Item inválido.", fields)
	}

	sl := slug.FromName(in.Name)
	if n, err := s.repo.CountBySlug(ctx, sl); err != nil {
		return Item{}, apperr.Wrap(err)
	} else if n > 0 {
		return Item{}, apperr.ConflictErr("Já existe um item com esse nome.")
	}

	now := time.Now()
	it := Item{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Slug:        sl,
		Description: strings.TrimSpace(in.Description),
		Kind:        in.Kind,
		PriceCents:  in.PriceCents,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, &it); err != nil {
		return Item{}, apperr.Wrap(err)
	}

	s.log.Info("menu_item_created", slog.String("id", it.ID), slog.String("slug", it.Slug))
	return it, nil
}

func (s *Service) SetPrice(ctx context.Context, id string, priceCents int64) error {
	if priceCents < 0 {
		return apperr.InvalidErr("Preço não pode ser negativo.",
			map[string]string{"price": "Preço não pode ser negativo."})
	}
	if _, err := s.mustGet(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, map[string]any{"price_cents": priceCents}); err != nil {
		return apperr.Wrap(err)
	}
	return nil
}

func (s *Service) SetActive(ctx context.Context, id string, active bool) error {
	if _, err := s.mustGet(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, map[string]any{"active": active}); err != nil {
		return apperr.Wrap(err)
	}
	return nil
}

// AttachImage uploads the picture and points the item at it, replacing any
// previous file.
func (s *Service) AttachImage(ctx context.Context, id, filename, contentType string, size int64, r io.Reader) (Item, error) {
	it, err := s.mustGet(ctx, id)
	if err != nil {
		return Item{}, err
	}

	res, err := s.files.Put(ctx, r, storage.PutInput{
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
	})
	if err != nil {
		return Item{}, apperr.Wrap(err)
	}

	if it.ImageKey != "" {
		if err := s.files.Delete(ctx, it.ImageKey); err != nil {
			s.log.Warn("menu_old_image_delete_failed", slog.String("key", it.ImageKey), slog.Any("err", err))
		}
	}

	if err := s.repo.Update(ctx, id, map[string]any{
		"image_key": res.Key,
		"image_url": res.URL,
	}); err != nil {
		return Item{}, apperr.Wrap(err)
	}

	it.ImageKey = res.Key
	it.ImageURL = res.URL
	return it, nil
}

func (s *Service) mustGet(ctx context.Context, id string) (Item, error) {
	it, err := s.repo.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Item{}, apperr.NotFoundErr("Item não encontrado.")
	}
	if err != nil {
		return Item{}, apperr.Wrap(err)
	}
	return it, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"zenith/internal/modules/pipeline/domain"
	pipelineout "zenith/internal/modules/pipeline/port/out"
	apperrors "zenith/internal/platform/errors"
)

// reassignAttempts bounds how often stage deletion re-reads and moves the
// prospects still sitting on the doomed stage.
const reassignAttempts = 3

type PipelineService struct {
	prospects pipelineout.ProspectStore
	stages    pipelineout.StageStore
	contacts  pipelineout.ContactDirectory
}

func NewPipelineService(prospects pipelineout.ProspectStore, stages pipelineout.StageStore, contacts pipelineout.ContactDirectory) *PipelineService {
	return &PipelineService{prospects: prospects, stages: stages, contacts: contacts}
}

func (s *PipelineService) Prospects() []domain.Prospect {
	return s.prospects.Items()
}

func (s *PipelineService) Prospect(id string) (domain.Prospect, error) {
	p, ok := s.prospects.Find(id)
	if !ok {
		return domain.Prospect{}, fmt.Errorf("prospect %s: %w", id, apperrors.ErrNotFound)
	}
	return p, nil
}

func (s *PipelineService) Contact(ctx context.Context, id string) (domain.ContactRef, bool) {
	if s.contacts == nil {
		return domain.ContactRef{}, false
	}
	return s.contacts.Lookup(ctx, id)
}

// Promote turns a contact into a prospect. An empty stage means the first
// stage of the registry.
func (s *PipelineService) Promote(ctx context.Context, prospect domain.Prospect) (string, error) {
	if _, ok := s.Contact(ctx, prospect.ContactID); !ok {
		return "", fmt.Errorf("contact %s: %w", prospect.ContactID, apperrors.ErrNotFound)
	}
	stages := s.stages.Items()
	if prospect.Stage == "" {
		prospect.Stage = domain.InitialStage(stages)
	} else if len(stages) > 0 && !domain.HasStage(stages, prospect.Stage) {
		return "", fmt.Errorf("%w: unknown stage %q", apperrors.ErrInvalidInput, prospect.Stage)
	}
	if err := prospect.Validate(); err != nil {
		return "", err
	}
	docID, err := s.prospects.TryAdd(ctx, prospect)
	if err != nil {
		return "", fmt.Errorf("add prospect: %w", err)
	}
	return docID, nil
}

func (s *PipelineService) SaveProspect(ctx context.Context, prospect domain.Prospect) error {
	if err := prospect.Validate(); err != nil {
		return err
	}
	if stages := s.stages.Items(); len(stages) > 0 && !domain.HasStage(stages, prospect.Stage) {
		return fmt.Errorf("%w: unknown stage %q", apperrors.ErrInvalidInput, prospect.Stage)
	}
	s.prospects.Update(ctx, prospect)
	return nil
}

func (s *PipelineService) MoveProspect(ctx context.Context, id, stage string) error {
	p, err := s.Prospect(id)
	if err != nil {
		return err
	}
	p.Stage = stage
	return s.SaveProspect(ctx, p)
}

func (s *PipelineService) DeleteProspect(ctx context.Context, id string) {
	s.prospects.Delete(ctx, id)
}

func (s *PipelineService) Board(ctx context.Context) []domain.Lane {
	return domain.Board(s.stages.Items(), s.prospects.Items(), func(id string) (domain.ContactRef, bool) {
		return s.Contact(ctx, id)
	})
}

func (s *PipelineService) Stages() []domain.Stage {
	return s.stages.Items()
}

// SeedStages fills an empty registry with the default stages, in order.
func (s *PipelineService) SeedStages(ctx context.Context) (int, error) {
	if len(s.stages.Items()) > 0 {
		return 0, nil
	}
	added := 0
	for _, name := range domain.DefaultStages {
		if _, err := s.stages.TryAdd(ctx, domain.Stage{Name: name}); err != nil {
			return added, fmt.Errorf("seed stage %q: %w", name, err)
		}
		added++
	}
	return added, nil
}

func (s *PipelineService) AddStage(ctx context.Context, name string) error {
	name, err := domain.NormalizeStageName(name)
	if err != nil {
		return err
	}
	if domain.HasStage(s.stages.Items(), name) {
		return fmt.Errorf("%q: %w", name, apperrors.ErrDuplicateStage)
	}
	if _, err := s.stages.TryAdd(ctx, domain.Stage{Name: name}); err != nil {
		return fmt.Errorf("add stage %q: %w", name, err)
	}
	return nil
}

// RenameStage moves every prospect from oldName to newName, then renames the
// stage documents themselves.
func (s *PipelineService) RenameStage(ctx context.Context, oldName, newName string) error {
	newName, err := domain.NormalizeStageName(newName)
	if err != nil {
		return err
	}
	if newName == oldName {
		return nil
	}
	stages := s.stages.Items()
	if !domain.HasStage(stages, oldName) {
		return fmt.Errorf("stage %q: %w", oldName, apperrors.ErrNotFound)
	}
	if domain.HasStage(stages, newName) {
		return fmt.Errorf("%q: %w", newName, apperrors.ErrDuplicateStage)
	}

	if _, err := s.reassign(ctx, oldName, newName); err != nil {
		return fmt.Errorf("rename stage %q: %w", oldName, err)
	}
	docs, err := s.stages.Named(ctx, oldName)
	if err != nil {
		return fmt.Errorf("rename stage %q: %w", oldName, err)
	}
	var errs []error
	for _, doc := range docs {
		doc.Name = newName
		if err := s.stages.TryUpdate(ctx, doc); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DeleteStage runs in two phases. Phase one moves every prospect on the stage
// to the fallback stage, re-reading and retrying until none remain. Only then
// does phase two batch-delete the stage documents. A failed phase one leaves
// the stage in place, and rerunning the whole operation is safe.
func (s *PipelineService) DeleteStage(ctx context.Context, name string) (domain.StageDeletion, error) {
	result := domain.StageDeletion{Stage: name}
	stages := s.stages.Items()
	if !domain.HasStage(stages, name) {
		return result, fmt.Errorf("stage %q: %w", name, apperrors.ErrNotFound)
	}
	fallback, err := domain.FallbackStage(stages, name)
	if err != nil {
		return result, err
	}
	result.Fallback = fallback

	result.Reassigned, err = s.reassign(ctx, name, fallback)
	if err != nil {
		return result, fmt.Errorf("delete stage %q: %w", name, err)
	}
	result.Deleted, err = s.stages.DeleteNamed(ctx, name)
	if err != nil {
		return result, fmt.Errorf("delete stage %q: %w", name, err)
	}
	return result, nil
}

func (s *PipelineService) reassign(ctx context.Context, from, to string) (int, error) {
	moved := 0
	var lastErr error
	for attempt := 0; ; attempt++ {
		pending, err := s.prospects.OnStage(ctx, from)
		if err != nil {
			lastErr = err
		} else if len(pending) == 0 {
			return moved, nil
		}
		if attempt == reassignAttempts {
			break
		}
		for _, p := range pending {
			p.Stage = to
			if err := s.prospects.TryUpdate(ctx, p); err != nil {
				lastErr = err
				continue
			}
			moved++
		}
	}
	if lastErr == nil {
		lastErr = errors.New("prospects remain on the stage")
	}
	return moved, lastErr
}

func (s *PipelineService) ListenProspects(fn func([]domain.Prospect)) func() {
	return s.prospects.Listen(fn)
}

func (s *PipelineService) ListenStages(fn func([]domain.Stage)) func() {
	return s.stages.Listen(fn)
}

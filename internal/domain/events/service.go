package events

import (
	"context"
	"fmt"
)

// Service sequences validation, derived-state computation, authorization, and
// persistence for the four event operations. It is the only component that
// talks to the repository; everything it calls above the repository is a pure
// function, so concurrent requests share no state.
type Service struct {
	repo      Repository
	validator *Validator
	assembler Assembler
}

func NewService(repo Repository, baseURL string) *Service {
	return &Service{
		repo:      repo,
		validator: NewValidator(),
		assembler: Assembler{BaseURL: baseURL},
	}
}

// Create validates the submission, derives the classification flags, and
// persists a new DRAFT event owned by the requester. The representation is
// assembled against the persisted record, so the creator always sees the
// update-event affordance.
func (s *Service) Create(ctx context.Context, requester Identity, sub Submission) (*Representation, error) {
	if requester.IsAnonymous() {
		return nil, ErrAuthenticationRequired
	}

	sub = NormalizeSubmission(sub)
	if failures := s.validator.Validate(sub); len(failures) > 0 {
		return nil, &ValidationError{Failures: failures}
	}

	derived := Derive(sub)
	event := &Event{
		Name:              sub.Name,
		Description:       sub.Description,
		Location:          sub.Location,
		BeginEnrollment:   *sub.BeginEnrollment,
		CloseEnrollment:   *sub.CloseEnrollment,
		BeginEvent:        *sub.BeginEvent,
		EndEvent:          *sub.EndEvent,
		BasePrice:         sub.BasePrice,
		MaxPrice:          sub.MaxPrice,
		LimitOfEnrollment: sub.LimitOfEnrollment,
		Free:              derived.Free,
		Offline:           derived.Offline,
		Status:            StatusDraft,
		Manager:           requester,
	}

	saved, err := s.repo.Save(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("save event: %w", err)
	}

	rep := s.assembler.Assemble(saved, PermittedActions(saved, requester), ProfileCreate)
	return &rep, nil
}

// Get fetches one event. Anonymous requesters are fine; they just see fewer
// links.
func (s *Service) Get(ctx context.Context, requester Identity, id string) (*Representation, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rep := s.assembler.Assemble(event, PermittedActions(event, requester), ProfileGet)
	return &rep, nil
}

// List fetches one page and assembles both the items and the page envelope
// for the requester.
func (s *Service) List(ctx context.Context, requester Identity, page Page) (*PageRepresentation, error) {
	result, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	rep := s.assembler.AssemblePage(result, page, requester)
	return &rep, nil
}

// Update replaces the mutable fields of an existing event. Validation runs
// before the ownership check so a bad submission is reported as such even
// when the requester could not update the event anyway; ownership is checked
// strictly before persistence. The id, manager, and status are never taken
// from the submission.
func (s *Service) Update(ctx context.Context, requester Identity, id string, sub Submission) (*Representation, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sub = NormalizeSubmission(sub)
	if failures := s.validator.Validate(sub); len(failures) > 0 {
		return nil, &ValidationError{Failures: failures}
	}

	if requester.IsAnonymous() || existing.Manager != requester {
		return nil, ErrNotManager
	}

	derived := Derive(sub)
	existing.Name = sub.Name
	existing.Description = sub.Description
	existing.Location = sub.Location
	existing.BeginEnrollment = *sub.BeginEnrollment
	existing.CloseEnrollment = *sub.CloseEnrollment
	existing.BeginEvent = *sub.BeginEvent
	existing.EndEvent = *sub.EndEvent
	existing.BasePrice = sub.BasePrice
	existing.MaxPrice = sub.MaxPrice
	existing.LimitOfEnrollment = sub.LimitOfEnrollment
	existing.Free = derived.Free
	existing.Offline = derived.Offline

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	rep := s.assembler.Assemble(updated, PermittedActions(updated, requester), ProfileUpdate)
	return &rep, nil
}

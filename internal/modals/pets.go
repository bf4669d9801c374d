package modals

import (
	"context"

	"pet-adoption/internal/dashboard"
	"pet-adoption/internal/forms"
	"pet-adoption/internal/models"
)

// AddPet arranca con un borrador vacío en cada Open.
type AddPet struct {
	machine
	board *dashboard.PetBoard
	draft forms.PetDraft
}

func NewAddPet(board *dashboard.PetBoard, opts ...Option) *AddPet {
	m := &AddPet{board: board}
	m.configure(opts)
	return m
}

func (m *AddPet) Open() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.openLocked(forms.PetSchema.Fields()...)
	m.draft = forms.PetDraft{}
}

func (m *AddPet) Draft() forms.PetDraft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft
}

// Edit modifica el borrador; no hace nada si el modal no está abierto.
func (m *AddPet) Edit(fn func(*forms.PetDraft)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Open {
		fn(&m.draft)
	}
}

func (m *AddPet) Submit(ctx context.Context) (models.Pet, error) {
	m.mu.Lock()
	if m.state != Open {
		m.mu.Unlock()
		return models.Pet{}, ErrNotOpen
	}
	errs := forms.PetSchema.Validate(m.draft)
	if !errs.Valid() {
		m.errs = errs
		m.mu.Unlock()
		return models.Pet{}, ErrInvalid
	}
	m.errs = errs
	draft := m.draft
	session := m.beginLocked()
	m.mu.Unlock()

	if err := m.wait(ctx, session); err != nil {
		return models.Pet{}, err
	}
	p, err := m.board.Add(ctx, draft)
	if ferr := m.finish(session, err); ferr != nil {
		return p, ferr
	}
	return p, nil
}

// EditPet vuelve a sembrar el borrador desde la mascota en cada Open, así
// ediciones a medias de una apertura anterior se pierden.
type EditPet struct {
	machine
	board    *dashboard.PetBoard
	targetID string
	draft    forms.PetDraft
}

func NewEditPet(board *dashboard.PetBoard, opts ...Option) *EditPet {
	m := &EditPet{board: board}
	m.configure(opts)
	return m
}

func (m *EditPet) Open(target models.Pet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.openLocked(forms.PetSchema.Fields()...)
	m.targetID = target.ID
	m.draft = forms.PetDraftFrom(target)
}

func (m *EditPet) Draft() forms.PetDraft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.draft
}

func (m *EditPet) Edit(fn func(*forms.PetDraft)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Open {
		fn(&m.draft)
	}
}

// Submit manda solo los campos editables (nunca id, status ni dateAdded).
func (m *EditPet) Submit(ctx context.Context) (models.Pet, error) {
	m.mu.Lock()
	if m.state != Open {
		m.mu.Unlock()
		return models.Pet{}, ErrNotOpen
	}
	errs := forms.PetSchema.Validate(m.draft)
	m.errs = errs
	if !errs.Valid() {
		m.mu.Unlock()
		return models.Pet{}, ErrInvalid
	}
	id, patch := m.targetID, m.draft.Patch()
	session := m.beginLocked()
	m.mu.Unlock()

	if err := m.wait(ctx, session); err != nil {
		return models.Pet{}, err
	}
	p, err := m.board.Update(ctx, id, patch)
	if ferr := m.finish(session, err); ferr != nil {
		return p, ferr
	}
	return p, nil
}

// DeletePet se ata al id de la mascota. Escribir el nombre exacto es solo la
// compuerta visual: dos mascotas con el mismo nombre no se confunden.
type DeletePet struct {
	machine
	board        *dashboard.PetBoard
	targetID     string
	targetName   string
	confirmation string
}

func NewDeletePet(board *dashboard.PetBoard, opts ...Option) *DeletePet {
	m := &DeletePet{board: board}
	m.configure(opts)
	return m
}

func (m *DeletePet) Open(target models.Pet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.openLocked()
	m.targetID = target.ID
	m.targetName = target.Name
	m.confirmation = ""
}

// Target devuelve id y nombre de la mascota a borrar.
func (m *DeletePet) Target() (id, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.targetID, m.targetName
}

func (m *DeletePet) SetConfirmation(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirmation = text
}

// CanConfirm: igualdad exacta y sensible a mayúsculas con el nombre.
func (m *DeletePet) CanConfirm() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.canConfirmLocked()
}

func (m *DeletePet) canConfirmLocked() bool {
	return m.state == Open && m.targetName != "" && m.confirmation == m.targetName
}

func (m *DeletePet) Confirm(ctx context.Context) error {
	m.mu.Lock()
	if m.state != Open {
		m.mu.Unlock()
		return ErrNotOpen
	}
	if !m.canConfirmLocked() {
		m.mu.Unlock()
		return ErrNotConfirmed
	}
	id := m.targetID
	session := m.beginLocked()
	m.mu.Unlock()

	if err := m.wait(ctx, session); err != nil {
		return err
	}
	return m.finish(session, m.board.Remove(ctx, id))
}

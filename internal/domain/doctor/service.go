package doctor

import (
	"context"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, d *Doctor) error {
	return s.repo.Create(ctx, d)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Doctor, error) {
	return s.repo.List(ctx, filter)
}

// UpdateInput carries the fields of a partial update. Nil means "leave
// unchanged"; IsActive is a pointer so an explicit false still applies.
type UpdateInput struct {
	Name               *string
	Specialization     *string
	Department         *string
	Qualification      *string
	Experience         *int
	ConsultationFee    *float64
	ProfilePhoto       *string
	AvailableDays      []string
	AvailableTimeSlots []TimeSlot
	Email              *string
	Phone              *string
	Bio                *string
	IsActive           *bool
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*Doctor, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		d.Name = *in.Name
	}
	if in.Specialization != nil {
		d.Specialization = *in.Specialization
	}
	if in.Department != nil {
		d.Department = *in.Department
	}
	if in.Qualification != nil {
		d.Qualification = *in.Qualification
	}
	if in.Experience != nil {
		d.Experience = *in.Experience
	}
	if in.ConsultationFee != nil {
		d.ConsultationFee = *in.ConsultationFee
	}
	if in.ProfilePhoto != nil {
		d.ProfilePhoto = *in.ProfilePhoto
	}
	if in.AvailableDays != nil {
		d.AvailableDays = in.AvailableDays
	}
	if in.AvailableTimeSlots != nil {
		d.AvailableTimeSlots = in.AvailableTimeSlots
	}
	if in.Email != nil {
		d.Email = *in.Email
	}
	if in.Phone != nil {
		d.Phone = *in.Phone
	}
	if in.Bio != nil {
		d.Bio = *in.Bio
	}
	if in.IsActive != nil {
		d.IsActive = *in.IsActive
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/coaching-center-api/internal/models"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
)

const teamCacheResource = "team"

type teamRepository interface {
	List(ctx context.Context, filter models.TeamFilter) ([]models.TeamMember, int, error)
	FindByID(ctx context.Context, id string) (*models.TeamMember, error)
	Create(ctx context.Context, member *models.TeamMember) error
	Update(ctx context.Context, member *models.TeamMember) error
	Delete(ctx context.Context, id string) error
}

// TeamMemberRequest is the team member payload.
type TeamMemberRequest struct {
	Name            string   `json:"name" validate:"required,max=100"`
	Role            string   `json:"role" validate:"required,max=100"`
	Email           string   `json:"email" validate:"required,email"`
	Bio             string   `json:"bio" validate:"required"`
	Image           string   `json:"image" validate:"required"`
	Qualifications  []string `json:"qualifications"`
	AreasOfInterest []string `json:"areasOfInterest"`
	Type            string   `json:"type" validate:"omitempty,oneof=team developer"`
	IsActive        *bool    `json:"isActive"`
	Order           *int     `json:"order"`
	Skills          string   `json:"skills"`
}

func (r *TeamMemberRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Role = strings.TrimSpace(r.Role)
	r.Email = strings.TrimSpace(r.Email)
	r.Bio = strings.TrimSpace(r.Bio)
	r.Image = strings.TrimSpace(r.Image)
	r.Skills = strings.TrimSpace(r.Skills)
}

func (r TeamMemberRequest) apply(member *models.TeamMember) {
	member.Name = r.Name
	member.Role = r.Role
	member.Email = r.Email
	member.Bio = r.Bio
	member.Image = r.Image
	member.Qualifications = pq.StringArray(trimAll(r.Qualifications))
	member.AreasOfInterest = pq.StringArray(trimAll(r.AreasOfInterest))
	member.Type = models.TeamMemberType(stringOr(r.Type, string(models.TeamMemberTypeTeam)))
	member.IsActive = boolOr(r.IsActive, true)
	member.Order = 0
	if r.Order != nil {
		member.Order = *r.Order
	}
	member.Skills = r.Skills
}

// TeamService manages team members.
type TeamService struct {
	repo      teamRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeamService constructs a TeamService.
func NewTeamService(repo teamRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *TeamService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeamService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// ListPublic returns active members in display order, optionally by type.
func (s *TeamService) ListPublic(ctx context.Context, memberType string) ([]models.TeamMember, error) {
	active := true
	filter := models.TeamFilter{
		ListOptions: models.ListOptions{Sort: "order"},
		Type:        models.TeamMemberType(strings.TrimSpace(memberType)),
		IsActive:    &active,
	}
	members, _, err := cachedList(ctx, s.cache, listKey(teamCacheResource, filter), func() ([]models.TeamMember, int, error) {
		return s.repo.List(ctx, filter)
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list team members")
	}
	return members, nil
}

// ListAll returns every member grouped by type then display order.
func (s *TeamService) ListAll(ctx context.Context) ([]models.TeamMember, error) {
	members, _, err := s.repo.List(ctx, models.TeamFilter{ListOptions: models.ListOptions{Sort: "type,order"}})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list team members")
	}
	return members, nil
}

// Get returns a member by id.
func (s *TeamService) Get(ctx context.Context, id string) (*models.TeamMember, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "team member not found", "load team member")
	}
	return member, nil
}

// Create stores a new member.
func (s *TeamService) Create(ctx context.Context, req TeamMemberRequest) (*models.TeamMember, error) {
	req.normalize()
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}
	member := &models.TeamMember{}
	req.apply(member)
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create team member")
	}
	s.cache.Invalidate(ctx, teamCacheResource)
	return member, nil
}

// Update replaces a member.
func (s *TeamService) Update(ctx context.Context, id string, req TeamMemberRequest) (*models.TeamMember, error) {
	member, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	req.normalize()
	if err := validateStruct(s.validator, req); err != nil {
		return nil, err
	}
	req.apply(member)
	if err := s.repo.Update(ctx, member); err != nil {
		return nil, storeError(err, "team member not found", "update team member")
	}
	s.cache.Invalidate(ctx, teamCacheResource)
	return member, nil
}

// Delete removes a member.
func (s *TeamService) Delete(ctx context.Context, id string) error {
	if err := parseID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(err, "team member not found", "delete team member")
	}
	s.cache.Invalidate(ctx, teamCacheResource)
	return nil
}

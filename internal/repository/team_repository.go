package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/coaching-center-api/internal/models"
)

const teamColumns = "id, name, role, email, bio, image, qualifications, areas_of_interest, type, is_active, display_order, skills, created_at, updated_at"

var teamSorts = map[string]string{
	"name":      "name",
	"role":      "role",
	"type":      "type",
	"order":     "display_order",
	"createdAt": "created_at",
}

// TeamRepository persists team members.
type TeamRepository struct {
	db *sqlx.DB
}

// NewTeamRepository constructs a TeamRepository.
func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// List returns team members ordered by display order.
func (r *TeamRepository) List(ctx context.Context, filter models.TeamFilter) ([]models.TeamMember, int, error) {
	var cond conditions
	if filter.Type != "" {
		cond.eq("type", filter.Type)
	}
	if filter.IsActive != nil {
		cond.eq("is_active", *filter.IsActive)
	}

	members := []models.TeamMember{}
	order := orderBy(filter.Sort, teamSorts, "display_order ASC")
	total, err := listAndCount(ctx, r.db, &members, teamColumns, "team_members", cond, order, filter.ListOptions)
	if err != nil {
		return nil, 0, err
	}
	for i := range members {
		members[i].Normalize()
	}
	return members, total, nil
}

// FindByID fetches a team member by ID.
func (r *TeamRepository) FindByID(ctx context.Context, id string) (*models.TeamMember, error) {
	query := "SELECT " + teamColumns + " FROM team_members WHERE id = $1"
	var member models.TeamMember
	if err := r.db.GetContext(ctx, &member, query, id); err != nil {
		return nil, err
	}
	member.Normalize()
	return &member, nil
}

// Create inserts a team member.
func (r *TeamRepository) Create(ctx context.Context, member *models.TeamMember) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	member.Normalize()
	now := time.Now().UTC()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = now
	}
	member.UpdatedAt = now

	const query = `INSERT INTO team_members (id, name, role, email, bio, image, qualifications, areas_of_interest, type, is_active, display_order, skills, created_at, updated_at)
		VALUES (:id, :name, :role, :email, :bio, :image, :qualifications, :areas_of_interest, :type, :is_active, :display_order, :skills, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, member); err != nil {
		return fmt.Errorf("create team member: %w", err)
	}
	return nil
}

// Update replaces a team member.
func (r *TeamRepository) Update(ctx context.Context, member *models.TeamMember) error {
	member.Normalize()
	member.UpdatedAt = time.Now().UTC()
	const query = `UPDATE team_members SET name = :name, role = :role, email = :email, bio = :bio, image = :image,
		qualifications = :qualifications, areas_of_interest = :areas_of_interest, type = :type, is_active = :is_active,
		display_order = :display_order, skills = :skills, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, member)
	if err != nil {
		return fmt.Errorf("update team member: %w", err)
	}
	return expectAffected(res, "update team member")
}

// Delete removes a team member.
func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.db, "team_members", id)
}

// CountActive returns the number of active members.
func (r *TeamRepository) CountActive(ctx context.Context) (int, error) {
	return countWhere(ctx, r.db, "team_members", "is_active = TRUE")
}

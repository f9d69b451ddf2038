package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/askhub/internal/database"
	"github.com/deppfellow/askhub/internal/model"
	"github.com/deppfellow/askhub/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

type ProfileRepository struct{}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{}
}

type CreateProfileParams struct {
	ID        string
	Nickname  string
	UserRole  model.UserRole
	AvatarURL *string
	Email     *string
	Bio       *string
}

func (r *ProfileRepository) Create(ctx context.Context, q database.Querier, p CreateProfileParams) (*model.Profile, error) {
	stmt := `
		INSERT INTO profiles (id, nickname, user_role, avatar_url, email, bio)
		VALUES (@id, @nickname, @user_role, @avatar_url, @email, @bio)
		RETURNING *
	`
	rows, err := q.Query(ctx, stmt, pgx.NamedArgs{
		"id":         p.ID,
		"nickname":   p.Nickname,
		"user_role":  p.UserRole,
		"avatar_url": p.AvatarURL,
		"email":      p.Email,
		"bio":        p.Bio,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create profile id=%s: %w", p.ID, err)
	}

	profile, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Profile])
	if err != nil {
		return nil, fmt.Errorf("failed to collect profile id=%s: %w", p.ID, err)
	}
	return profile, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, q database.Querier, id string) (*model.Profile, error) {
	rows, err := q.Query(ctx, `SELECT * FROM profiles WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query profile id=%s: %w", id, err)
	}

	profile, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Profile])
	if err != nil {
		return nil, fmt.Errorf("failed to get profile id=%s: %w", id, sqlerr.NotFound("profiles", err))
	}
	return profile, nil
}

// UpdateProfileParams carries a partial update; nil fields are left alone.
type UpdateProfileParams struct {
	Nickname  *string
	UserRole  *model.UserRole
	AvatarURL *string
	RealName  *string
	Phone     *string
	WechatID  *string
	Email     *string
	Bio       *string
}

func (r *ProfileRepository) Update(ctx context.Context, q database.Querier, id string, p UpdateProfileParams) (*model.Profile, error) {
	b := newSetBuilder()
	if p.Nickname != nil {
		b.set("nickname", *p.Nickname)
	}
	if p.UserRole != nil {
		b.set("user_role", *p.UserRole)
	}
	if p.AvatarURL != nil {
		b.set("avatar_url", *p.AvatarURL)
	}
	if p.RealName != nil {
		b.set("real_name", *p.RealName)
	}
	if p.Phone != nil {
		b.set("phone", *p.Phone)
	}
	if p.WechatID != nil {
		b.set("wechat_id", *p.WechatID)
	}
	if p.Email != nil {
		b.set("email", *p.Email)
	}
	if p.Bio != nil {
		b.set("bio", *p.Bio)
	}
	if b.empty() {
		return r.GetByID(ctx, q, id)
	}

	b.args["id"] = id
	rows, err := q.Query(ctx, `UPDATE profiles SET `+b.sql()+` WHERE id = @id RETURNING *`, b.args)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile id=%s: %w", id, err)
	}

	profile, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Profile])
	if err != nil {
		return nil, fmt.Errorf("failed to collect updated profile id=%s: %w", id, sqlerr.NotFound("profiles", err))
	}
	return profile, nil
}

// Delete removes a profile and, through foreign keys, everything it owns.
// No policy grants this to users; it must run as the system.
func (r *ProfileRepository) Delete(ctx context.Context, q database.Querier, id string) (bool, error) {
	tag, err := q.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete profile id=%s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"studybot-backend/internal/models"
)

// ConversationRepo is the append-only log of per-user turns. Rows are never
// updated or deleted.
type ConversationRepo struct {
	pool *pgxpool.Pool
}

func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

func (r *ConversationRepo) AppendTurn(ctx context.Context, userID, role, message string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO conversation_turns (user_id, role, message) VALUES ($1, $2, $3)`,
		userID, role, message,
	)
	return err
}

// AppendExchange writes the question and the reply in a single transaction
// so a crash can never leave a question without its answer.
func (r *ConversationRepo) AppendExchange(ctx context.Context, userID, question, answer string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	const insert = `INSERT INTO conversation_turns (user_id, role, message) VALUES ($1, $2, $3)`

	if _, err := tx.Exec(ctx, insert, userID, models.RoleUser, question); err != nil {
		return fmt.Errorf("failed to append user turn: %w", err)
	}
	if _, err := tx.Exec(ctx, insert, userID, models.RoleAssistant, answer); err != nil {
		return fmt.Errorf("failed to append assistant turn: %w", err)
	}

	return tx.Commit(ctx)
}

// ListByUser returns every turn for userID ascending by timestamp, with the
// row id breaking ties so same-timestamp turns keep insertion order.
func (r *ConversationRepo) ListByUser(ctx context.Context, userID string) ([]models.ConversationTurn, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, role, message, created_at
		 FROM conversation_turns
		 WHERE user_id = $1
		 ORDER BY created_at ASC NULLS FIRST, id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	turns := make([]models.ConversationTurn, 0)
	for rows.Next() {
		var turn models.ConversationTurn
		var ts pgtype.Timestamptz
		if scanErr := rows.Scan(&turn.ID, &turn.UserID, &turn.Role, &turn.Message, &ts); scanErr != nil {
			return nil, scanErr
		}
		if ts.Valid {
			t := ts.Time
			turn.Timestamp = &t
		}
		turns = append(turns, turn)
	}

	return turns, rows.Err()
}
